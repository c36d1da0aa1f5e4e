package xapi

import (
	"encoding/json"
	"fmt"
)

// Extensions maps IRI keys to opaque JSON values. Values are carried through
// untouched; only the mapping shape is enforced.
type Extensions map[string]any

// AsVersion projects the extensions to their wire form.
func (e Extensions) AsVersion(v Version) (map[string]any, error) {
	out := make(map[string]any, len(e))
	for k, val := range e {
		out[k] = val
	}
	return out, nil
}

// UnmarshalJSON requires a JSON object; values stay opaque.
func (e *Extensions) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("Extensions: not a JSON object: %w", ErrInvalidType)
	}
	*e = m
	return nil
}
