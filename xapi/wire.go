package xapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"xapigo/internal/iso8601"
)

// jsonObject is the intermediate form every record decodes through. Holding
// raw messages lets each field run its own validating decode and lets the
// record reject unknown top-level keys.
type jsonObject map[string]json.RawMessage

func parseObject(data []byte, typeName string) (jsonObject, error) {
	var m jsonObject
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: not a JSON object: %w", typeName, ErrInvalidType)
	}
	return m, nil
}

func (o jsonObject) checkKeys(typeName string, allowed ...string) error {
	for k := range o {
		known := false
		for _, a := range allowed {
			if k == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%s: field %q: %w", typeName, k, ErrUnknownField)
		}
	}
	return nil
}

// objectType reads the polymorphic discriminator, accepting the legacy
// object_type spelling. Empty string means absent.
func (o jsonObject) objectType(typeName string) (string, error) {
	raw, ok := o["objectType"]
	if !ok {
		raw, ok = o["object_type"]
	}
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s.objectType: not a string: %w", typeName, ErrInvalidType)
	}
	return s, nil
}

func (o jsonObject) stringField(typeName, key string) (*string, error) {
	raw, ok := o[key]
	if !ok {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%s.%s: not a string: %w", typeName, key, ErrInvalidType)
	}
	return &s, nil
}

func (o jsonObject) boolField(typeName, key string) (*bool, error) {
	raw, ok := o[key]
	if !ok {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%s.%s: not a boolean: %w", typeName, key, ErrInvalidType)
	}
	return &b, nil
}

func (o jsonObject) float64Field(typeName, key string) (*float64, error) {
	raw, ok := o[key]
	if !ok {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%s.%s: not a number: %w", typeName, key, ErrInvalidType)
	}
	return &f, nil
}

func (o jsonObject) int64Field(typeName, key string) (*int64, error) {
	raw, ok := o[key]
	if !ok {
		return nil, nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("%s.%s: not an integer: %w", typeName, key, ErrInvalidType)
	}
	return &n, nil
}

// timeField decodes an ISO 8601 instant. Zoneless values are rejected.
func (o jsonObject) timeField(typeName, key string) (*time.Time, error) {
	s, err := o.stringField(typeName, key)
	if err != nil || s == nil {
		return nil, err
	}
	t, err := iso8601.ParseTimestamp(*s)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %q: %w", typeName, key, *s, ErrInvalidValue)
	}
	return &t, nil
}

func (o jsonObject) uuidField(typeName, key string) (*uuid.UUID, error) {
	s, err := o.stringField(typeName, key)
	if err != nil || s == nil {
		return nil, err
	}
	id, err := ParseUUID(*s)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", typeName, key, err)
	}
	return &id, nil
}

func formatTime(t time.Time) string {
	return iso8601.FormatTimestamp(t)
}
