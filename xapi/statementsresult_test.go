package xapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementsResultDecode(t *testing.T) {
	data := `{
		"statements": [
			{
				"actor": {"mbox": "mailto:tyler@example.com"},
				"verb": {"id": "http://adlnet.gov/expapi/verbs/experienced"},
				"object": {"id": "http://example.com/activity"}
			},
			{
				"actor": {"mbox": "mailto:other@example.com"},
				"verb": {"id": "http://adlnet.gov/expapi/verbs/completed"},
				"object": {"id": "http://example.com/course"}
			}
		],
		"more": "/xapi/statements?continuation=abc"
	}`

	r, err := StatementsResultFromJSON([]byte(data))
	require.NoError(t, err)
	require.Len(t, r.Statements, 2)
	require.NotNil(t, r.More)
	assert.Equal(t, "/xapi/statements?continuation=abc", *r.More)
	assert.Equal(t, "http://adlnet.gov/expapi/verbs/completed", r.Statements[1].Verb.ID)
}

func TestStatementsResultLastPage(t *testing.T) {
	r, err := StatementsResultFromJSON([]byte(`{"statements": []}`))
	require.NoError(t, err)
	assert.Empty(t, r.Statements)
	assert.Nil(t, r.More)
}

func TestStatementsResultRejectsUnknownField(t *testing.T) {
	_, err := StatementsResultFromJSON([]byte(`{"statements": [], "total": 7}`))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestStatementsResultRoundTrip(t *testing.T) {
	st := newTestStatement(t)
	require.NoError(t, st.SetID("6d969975-d5e4-4a4d-9b35-7e099d5e8e3c"))
	more := "/xapi/statements?continuation=abc"
	r := &StatementsResult{Statements: StatementList{st}, More: &more}

	m, err := r.AsVersion(Version103)
	require.NoError(t, err)
	assert.Equal(t, more, m["more"])
	require.Len(t, m["statements"], 1)
}

func TestAboutDecode(t *testing.T) {
	data := `{
		"version": ["1.0.3", "2.0.0"],
		"extensions": {"http://example.com/ext": {"build": 42}}
	}`
	a, err := AboutFromJSON([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []Version{"1.0.3", "2.0.0"}, a.Version)
	assert.Contains(t, a.Extensions, "http://example.com/ext")
}

func TestAboutRequiresVersion(t *testing.T) {
	_, err := AboutFromJSON([]byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = AboutFromJSON([]byte(`{"version": []}`))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAboutRejectsUnknownField(t *testing.T) {
	_, err := AboutFromJSON([]byte(`{"version": ["1.0.3"], "vendor": "x"}`))
	assert.ErrorIs(t, err, ErrUnknownField)
}
