package xapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentMboxPrefix(t *testing.T) {
	a, err := NewAgentWithMbox("tyler@example.com")
	require.NoError(t, err)
	assert.Equal(t, "mailto:tyler@example.com", *a.Mbox)

	a, err = NewAgentWithMbox("mailto:tyler@example.com")
	require.NoError(t, err)
	assert.Equal(t, "mailto:tyler@example.com", *a.Mbox)
}

func TestAgentRejectsEmptyValues(t *testing.T) {
	a := &Agent{}
	assert.ErrorIs(t, a.SetMbox(""), ErrInvalidValue)
	assert.ErrorIs(t, a.SetMboxSHA1Sum(""), ErrInvalidValue)
	assert.ErrorIs(t, a.SetOpenID(""), ErrInvalidValue)
	assert.ErrorIs(t, a.SetName(""), ErrInvalidValue)
}

func TestAgentAccountRequiresBothFields(t *testing.T) {
	_, err := NewAgentAccount("", "http://example.com")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = NewAgentAccount("tyler", "")
	assert.ErrorIs(t, err, ErrInvalidValue)

	acct, err := NewAgentAccount("tyler", "http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "tyler", acct.Name)
}

func TestAgentWireForm(t *testing.T) {
	a, err := NewAgentWithMbox("a@example.com")
	require.NoError(t, err)
	require.NoError(t, a.SetName("A. Person"))

	m, err := a.AsVersion(Version103)
	require.NoError(t, err)
	assert.Equal(t, "Agent", m["objectType"])
	assert.Equal(t, "mailto:a@example.com", m["mbox"])
	assert.Equal(t, "A. Person", m["name"])
	_, present := m["openid"]
	assert.False(t, present, "unset attributes must be absent, not null")
}

func TestAgentRoundTrip(t *testing.T) {
	a, err := NewAgentWithAccount("tyler", "http://example.com")
	require.NoError(t, err)
	require.NoError(t, a.SetName("Tyler"))

	b, err := json.Marshal(a)
	require.NoError(t, err)

	got := &Agent{}
	require.NoError(t, json.Unmarshal(b, got))
	assert.Equal(t, a, got)
}

func TestAgentHomePageWireSpelling(t *testing.T) {
	a, err := NewAgentWithAccount("tyler", "http://example.com")
	require.NoError(t, err)
	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"homePage"`)
	assert.NotContains(t, string(b), `"home_page"`)
}

func TestAgentRejectsUnknownField(t *testing.T) {
	a := &Agent{}
	err := json.Unmarshal([]byte(`{"mbox":"mailto:a@example.com","favoriteColor":"blue"}`), a)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestAgentLegacyObjectTypeSpelling(t *testing.T) {
	a := &Agent{}
	require.NoError(t, json.Unmarshal([]byte(`{"object_type":"Agent","mbox":"mailto:a@example.com"}`), a))
	assert.Equal(t, "mailto:a@example.com", *a.Mbox)
}

func TestGroupAnonymousRequiresMembers(t *testing.T) {
	g := &Group{}
	assert.ErrorIs(t, g.Validate(), ErrInvalidValue)

	member, err := NewAgentWithMbox("m@example.com")
	require.NoError(t, err)
	g.Members = AgentList{member}
	assert.NoError(t, g.Validate())
}

func TestGroupIdentifiedWithoutMembers(t *testing.T) {
	g := &Group{}
	mbox := "mailto:group@example.com"
	g.Mbox = &mbox
	assert.NoError(t, g.Validate())
}

func TestGroupRoundTrip(t *testing.T) {
	m1, err := NewAgentWithMbox("one@example.com")
	require.NoError(t, err)
	m2, err := NewAgentWithMbox("two@example.com")
	require.NoError(t, err)
	g := &Group{Members: AgentList{m1, m2}}

	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"objectType":"Group"`)

	got := &Group{}
	require.NoError(t, json.Unmarshal(b, got))
	assert.Equal(t, g, got)
	require.Len(t, got.Members, 2)
	assert.Equal(t, "mailto:one@example.com", *got.Members[0].Mbox)
}

func TestGroupMemberCoercionFailure(t *testing.T) {
	g := &Group{}
	err := json.Unmarshal([]byte(`{"member":["not an agent"]}`), g)
	assert.ErrorIs(t, err, ErrInvalidType)
}
