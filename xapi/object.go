package xapi

import "fmt"

// Object is a statement object: one of Activity, Agent, Group, StatementRef
// or SubStatement, discriminated on the wire by objectType.
type Object interface {
	// ObjectType returns the wire discriminator for the concrete type.
	ObjectType() string
	// AsVersion projects the value to its wire form at protocol version v.
	AsVersion(v Version) (map[string]any, error)
	// Validate checks the structural invariants of the value.
	Validate() error
}

// Actor is a statement subject: an Agent or a Group.
type Actor interface {
	Object
	isActor()
}

// decodeObject routes a statement-object slot by its objectType
// discriminator. An absent discriminator defaults to Activity (documented
// legacy behavior). Nested slots (inside a SubStatement) admit only
// Activity, Agent and Group.
func decodeObject(data []byte, nested bool) (Object, error) {
	obj, err := parseObject(data, "Object")
	if err != nil {
		return nil, err
	}
	ot, err := obj.objectType("Object")
	if err != nil {
		return nil, err
	}
	switch ot {
	case "", "Activity":
		a := &Activity{}
		if err := a.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return a, nil
	case "Agent":
		a := &Agent{}
		if err := a.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return a, nil
	case "Group":
		g := &Group{}
		if err := g.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return g, nil
	case "StatementRef":
		if nested {
			return nil, fmt.Errorf("SubStatement object: StatementRef not permitted: %w", ErrInvalidValue)
		}
		r := &StatementRef{}
		if err := r.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return r, nil
	case "SubStatement":
		if nested {
			return nil, fmt.Errorf("SubStatement object: nested SubStatement not permitted: %w", ErrInvalidValue)
		}
		s := &SubStatement{}
		if err := s.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("object: objectType %q: %w", ot, ErrInvalidValue)
	}
}

// decodeActor routes an actor slot. An absent discriminator defaults to
// Agent (documented legacy behavior).
func decodeActor(data []byte) (Actor, error) {
	obj, err := parseObject(data, "Actor")
	if err != nil {
		return nil, err
	}
	ot, err := obj.objectType("Actor")
	if err != nil {
		return nil, err
	}
	switch ot {
	case "", "Agent":
		a := &Agent{}
		if err := a.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return a, nil
	case "Group":
		g := &Group{}
		if err := g.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("actor: objectType %q: %w", ot, ErrInvalidValue)
	}
}
