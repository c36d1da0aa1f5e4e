package xapi

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// StatementRef points at another statement by id. The wire objectType is
// always "StatementRef" and the id is required.
type StatementRef struct {
	ID *uuid.UUID
}

// NewStatementRef builds a reference from a strict UUID string.
func NewStatementRef(id string) (*StatementRef, error) {
	r := &StatementRef{}
	if err := r.SetID(id); err != nil {
		return nil, err
	}
	return r, nil
}

// ObjectType returns the fixed discriminator "StatementRef".
func (r *StatementRef) ObjectType() string { return "StatementRef" }

// SetID parses s against the strict RFC 4122 grammar.
func (r *StatementRef) SetID(s string) error {
	id, err := ParseUUID(s)
	if err != nil {
		return fmt.Errorf("statement ref: %w", err)
	}
	r.ID = &id
	return nil
}

// Validate checks the id is present.
func (r *StatementRef) Validate() error {
	if r.ID == nil {
		return fmt.Errorf("statement ref id is required: %w", ErrInvalidValue)
	}
	return nil
}

// AsVersion projects the reference to its wire form.
func (r *StatementRef) AsVersion(v Version) (map[string]any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return map[string]any{"objectType": r.ObjectType(), "id": r.ID.String()}, nil
}

// UnmarshalJSON decodes a reference, rejecting unknown keys.
func (r *StatementRef) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "StatementRef")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("StatementRef", "objectType", "object_type", "id"); err != nil {
		return err
	}
	ot, err := obj.objectType("StatementRef")
	if err != nil {
		return err
	}
	if ot != "" && ot != "StatementRef" {
		return fmt.Errorf("StatementRef: objectType %q: %w", ot, ErrInvalidValue)
	}
	out := StatementRef{}
	if out.ID, err = obj.uuidField("StatementRef", "id"); err != nil {
		return err
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*r = out
	return nil
}

// MarshalJSON renders the reference at the latest protocol version.
func (r *StatementRef) MarshalJSON() ([]byte, error) {
	m, err := r.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
