package xapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDocumentValidate(t *testing.T) {
	activity, err := NewActivity("http://example.com/activity")
	require.NoError(t, err)
	agent, err := NewAgentWithMbox("tyler@example.com")
	require.NoError(t, err)

	d := &StateDocument{
		Document: Document{ID: "bookmark", Content: []byte(`{"page": 4}`)},
		Activity: activity,
		Agent:    agent,
	}
	assert.NoError(t, d.Validate())

	d.Agent = nil
	assert.ErrorIs(t, d.Validate(), ErrInvalidValue)

	d.Agent = agent
	d.Activity = nil
	assert.ErrorIs(t, d.Validate(), ErrInvalidValue)
}

func TestProfileDocumentValidate(t *testing.T) {
	activity, err := NewActivity("http://example.com/activity")
	require.NoError(t, err)
	agent, err := NewAgentWithMbox("tyler@example.com")
	require.NoError(t, err)

	ap := &ActivityProfileDocument{Document: Document{ID: "highscores"}, Activity: activity}
	assert.NoError(t, ap.Validate())
	ap.Activity = nil
	assert.ErrorIs(t, ap.Validate(), ErrInvalidValue)

	gp := &AgentProfileDocument{Document: Document{ID: "prefs"}, Agent: agent}
	assert.NoError(t, gp.Validate())
	gp.Agent = nil
	assert.ErrorIs(t, gp.Validate(), ErrInvalidValue)
}
