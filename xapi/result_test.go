package xapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestScoreScaledRange(t *testing.T) {
	s := &Score{Scaled: f(0.95)}
	assert.NoError(t, s.Validate())

	s.Scaled = f(1.5)
	assert.ErrorIs(t, s.Validate(), ErrInvalidValue)
	s.Scaled = f(-1.5)
	assert.ErrorIs(t, s.Validate(), ErrInvalidValue)
}

func TestScoreBounds(t *testing.T) {
	s := &Score{Raw: f(50), Min: f(0), Max: f(100)}
	assert.NoError(t, s.Validate())

	s.Raw = f(150)
	assert.ErrorIs(t, s.Validate(), ErrInvalidValue)
	s.Raw = f(-1)
	assert.ErrorIs(t, s.Validate(), ErrInvalidValue)

	s = &Score{Min: f(10), Max: f(5)}
	assert.ErrorIs(t, s.Validate(), ErrInvalidValue)
}

func TestResultDuration(t *testing.T) {
	r := &Result{}
	require.NoError(t, r.SetDuration("PT1H30M"))
	assert.Equal(t, "PT01H30M00S", r.Duration.String())

	assert.ErrorIs(t, r.SetDuration("90 minutes"), ErrInvalidValue)
	assert.ErrorIs(t, r.SetDuration("PT1.5H30M"), ErrInvalidValue)
}

func TestResultRoundTrip(t *testing.T) {
	success := true
	completion := true
	response := "golf"
	r := &Result{
		Score:      &Score{Scaled: f(0.95), Raw: f(95), Min: f(0), Max: f(100)},
		Success:    &success,
		Completion: &completion,
		Response:   &response,
		Extensions: Extensions{"http://example.com/ext": "v"},
	}
	require.NoError(t, r.SetDuration("PT02H01M01.5S"))

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"duration":"PT02H01M01.5S"`)

	got := &Result{}
	require.NoError(t, json.Unmarshal(b, got))
	assert.Equal(t, r, got)
}

func TestResultRejectsUnknownField(t *testing.T) {
	r := &Result{}
	err := json.Unmarshal([]byte(`{"success":true,"grade":"A"}`), r)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestAttachmentRequiredFields(t *testing.T) {
	a := &Attachment{
		UsageType:   "http://example.com/usage",
		Display:     LanguageMap{"en-US": "signature"},
		ContentType: "application/octet-stream",
		Length:      4096,
		SHA2:        "672fa5fa658017f1b72d65036f13379c6ab05d4ab3b6664908d8acf0b6a0c634",
	}
	assert.NoError(t, a.Validate())

	broken := *a
	broken.UsageType = ""
	assert.ErrorIs(t, broken.Validate(), ErrInvalidValue)

	broken = *a
	broken.Display = nil
	assert.ErrorIs(t, broken.Validate(), ErrInvalidValue)

	broken = *a
	broken.Length = -1
	assert.ErrorIs(t, broken.Validate(), ErrInvalidValue)

	broken = *a
	broken.SHA2 = ""
	assert.ErrorIs(t, broken.Validate(), ErrInvalidValue)
}

func TestAttachmentRoundTrip(t *testing.T) {
	fileURL := "http://example.com/file"
	a := &Attachment{
		UsageType:   "http://example.com/usage",
		Display:     LanguageMap{"en-US": "signature"},
		Description: LanguageMap{"en-US": "a signature"},
		ContentType: "application/octet-stream",
		Length:      4096,
		SHA2:        "672fa5fa658017f1b72d65036f13379c6ab05d4ab3b6664908d8acf0b6a0c634",
		FileURL:     &fileURL,
	}

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"usageType"`)
	assert.Contains(t, string(b), `"contentType"`)
	assert.Contains(t, string(b), `"fileUrl"`)

	got := &Attachment{}
	require.NoError(t, json.Unmarshal(b, got))
	assert.Equal(t, a, got)
}
