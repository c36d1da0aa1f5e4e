package xapi

import (
	"encoding/json"
	"fmt"
)

// VoidedVerbID is the reserved verb IRI for voiding statements.
const VoidedVerbID = "http://adlnet.gov/expapi/verbs/voided"

// Verb names the action of a statement by IRI, with an optional display map.
type Verb struct {
	ID      string
	Display LanguageMap
}

// NewVerb builds a Verb with a validated id.
func NewVerb(id string) (*Verb, error) {
	v := &Verb{}
	if err := v.SetID(id); err != nil {
		return nil, err
	}
	return v, nil
}

// SetID rejects the empty string.
func (vb *Verb) SetID(id string) error {
	if id == "" {
		return fmt.Errorf("verb id must not be empty: %w", ErrInvalidValue)
	}
	vb.ID = id
	return nil
}

// Validate checks the id is present.
func (vb *Verb) Validate() error {
	if vb.ID == "" {
		return fmt.Errorf("verb id must not be empty: %w", ErrInvalidValue)
	}
	return nil
}

// AsVersion projects the verb to its wire form.
func (vb *Verb) AsVersion(v Version) (map[string]any, error) {
	if err := vb.Validate(); err != nil {
		return nil, err
	}
	out := map[string]any{"id": vb.ID}
	if vb.Display != nil {
		disp, err := vb.Display.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["display"] = disp
	}
	return out, nil
}

// UnmarshalJSON decodes a verb, rejecting unknown keys.
func (vb *Verb) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "Verb")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("Verb", "id", "display"); err != nil {
		return err
	}
	out := Verb{}
	if s, err := obj.stringField("Verb", "id"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetID(*s); err != nil {
			return err
		}
	}
	if raw, ok := obj["display"]; ok {
		if err := out.Display.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*vb = out
	return nil
}

// MarshalJSON renders the verb at the latest protocol version.
func (vb *Verb) MarshalJSON() ([]byte, error) {
	m, err := vb.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
