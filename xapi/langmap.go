package xapi

import (
	"encoding/json"
	"fmt"
)

// LanguageMap maps BCP 47 language tags to display text. Values are plain
// strings; nested structures are rejected at every ingress. A nil map is the
// unset sentinel, an empty non-nil map is a valid (empty) language map.
type LanguageMap map[string]string

// NewLanguageMap copies m into a fresh LanguageMap.
func NewLanguageMap(m map[string]string) LanguageMap {
	out := make(LanguageMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// AsVersion projects the map to its wire form.
func (lm LanguageMap) AsVersion(v Version) (map[string]any, error) {
	out := make(map[string]any, len(lm))
	for k, val := range lm {
		out[k] = val
	}
	return out, nil
}

// UnmarshalJSON rejects any value that is not a flat string-to-string map.
func (lm *LanguageMap) UnmarshalJSON(data []byte) error {
	raw, err := parseObject(data, "LanguageMap")
	if err != nil {
		return err
	}
	out := make(LanguageMap, len(raw))
	for k, rv := range raw {
		var s string
		if err := json.Unmarshal(rv, &s); err != nil {
			return fmt.Errorf("LanguageMap[%q]: value must be a string: %w", k, ErrInvalidType)
		}
		out[k] = s
	}
	*lm = out
	return nil
}

// MarshalJSON renders the map at the latest protocol version.
func (lm LanguageMap) MarshalJSON() ([]byte, error) {
	m, err := lm.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
