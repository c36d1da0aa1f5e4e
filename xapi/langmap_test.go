package xapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageMapRender(t *testing.T) {
	lm := NewLanguageMap(map[string]string{"en-US": "hello", "fr-CA": "bonjour"})

	b, err := json.Marshal(lm)
	require.NoError(t, err)
	assert.JSONEq(t, `{"en-US":"hello","fr-CA":"bonjour"}`, string(b))
}

func TestLanguageMapRoundTrip(t *testing.T) {
	lm := NewLanguageMap(map[string]string{"en-US": "hello", "fr-CA": "bonjour"})
	b, err := json.Marshal(lm)
	require.NoError(t, err)

	var got LanguageMap
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, lm, got)
}

func TestLanguageMapRejectsNestedValue(t *testing.T) {
	var lm LanguageMap
	err := json.Unmarshal([]byte(`{"en-US":{"nested":"no"}}`), &lm)
	assert.ErrorIs(t, err, ErrInvalidType)

	err = json.Unmarshal([]byte(`{"en-US":3}`), &lm)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestLanguageMapRejectsNonMapping(t *testing.T) {
	var lm LanguageMap
	err := json.Unmarshal([]byte(`["en-US"]`), &lm)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestLanguageMapEmptyIsValid(t *testing.T) {
	var lm LanguageMap
	require.NoError(t, json.Unmarshal([]byte(`{}`), &lm))
	assert.NotNil(t, lm)
	assert.Len(t, lm, 0)
}
