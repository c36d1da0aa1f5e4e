package xapi

import (
	"encoding/json"
	"fmt"
	"time"
)

// SubStatement is a statement nested as the object of another statement. Its
// own object is restricted to Activity, Agent or Group; a nested
// SubStatement or StatementRef is rejected. The wire objectType is always
// "SubStatement".
type SubStatement struct {
	Actor       Actor
	Verb        *Verb
	Object      Object
	Timestamp   *time.Time
	Context     *Context
	Attachments AttachmentList
}

// ObjectType returns the fixed discriminator "SubStatement".
func (s *SubStatement) ObjectType() string { return "SubStatement" }

// SetObject enforces the nesting restriction.
func (s *SubStatement) SetObject(o Object) error {
	switch o.(type) {
	case *Activity, *Agent, *Group:
		s.Object = o
		return nil
	default:
		return fmt.Errorf("sub-statement object must be an Activity, Agent or Group: %w", ErrInvalidValue)
	}
}

// Validate checks the actor-verb-object triple and the nesting rule.
func (s *SubStatement) Validate() error {
	if s.Actor == nil {
		return fmt.Errorf("sub-statement actor is required: %w", ErrInvalidValue)
	}
	if err := s.Actor.Validate(); err != nil {
		return err
	}
	if s.Verb == nil {
		return fmt.Errorf("sub-statement verb is required: %w", ErrInvalidValue)
	}
	if err := s.Verb.Validate(); err != nil {
		return err
	}
	if s.Object == nil {
		return fmt.Errorf("sub-statement object is required: %w", ErrInvalidValue)
	}
	switch s.Object.(type) {
	case *Activity, *Agent, *Group:
	default:
		return fmt.Errorf("sub-statement object must be an Activity, Agent or Group: %w", ErrInvalidValue)
	}
	if err := s.Object.Validate(); err != nil {
		return err
	}
	if s.Context != nil {
		if err := s.Context.Validate(); err != nil {
			return err
		}
	}
	for _, a := range s.Attachments {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AsVersion projects the sub-statement to its wire form.
func (s *SubStatement) AsVersion(v Version) (map[string]any, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	actor, err := s.Actor.AsVersion(v)
	if err != nil {
		return nil, err
	}
	verb, err := s.Verb.AsVersion(v)
	if err != nil {
		return nil, err
	}
	object, err := s.Object.AsVersion(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{
		"objectType": s.ObjectType(),
		"actor":      actor,
		"verb":       verb,
		"object":     object,
	}
	if s.Timestamp != nil {
		out["timestamp"] = formatTime(*s.Timestamp)
	}
	if s.Context != nil {
		m, err := s.Context.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["context"] = m
	}
	if s.Attachments != nil {
		seq, err := s.Attachments.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["attachments"] = seq
	}
	return out, nil
}

// UnmarshalJSON decodes a sub-statement, rejecting unknown keys and nested
// sub-statements.
func (s *SubStatement) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "SubStatement")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("SubStatement", "objectType", "object_type", "actor", "verb", "object", "timestamp", "context", "attachments"); err != nil {
		return err
	}
	ot, err := obj.objectType("SubStatement")
	if err != nil {
		return err
	}
	if ot != "" && ot != "SubStatement" {
		return fmt.Errorf("SubStatement: objectType %q: %w", ot, ErrInvalidValue)
	}
	out := SubStatement{}
	if raw, ok := obj["actor"]; ok {
		if out.Actor, err = decodeActor(raw); err != nil {
			return err
		}
	}
	if raw, ok := obj["verb"]; ok {
		verb := &Verb{}
		if err := verb.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Verb = verb
	}
	if raw, ok := obj["object"]; ok {
		if out.Object, err = decodeObject(raw, true); err != nil {
			return err
		}
	}
	if out.Timestamp, err = obj.timeField("SubStatement", "timestamp"); err != nil {
		return err
	}
	if raw, ok := obj["context"]; ok {
		ctx := &Context{}
		if err := ctx.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Context = ctx
	}
	if raw, ok := obj["attachments"]; ok {
		if err := out.Attachments.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*s = out
	return nil
}

// MarshalJSON renders the sub-statement at the latest protocol version.
func (s *SubStatement) MarshalJSON() ([]byte, error) {
	m, err := s.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
