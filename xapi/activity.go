package xapi

import (
	"encoding/json"
	"fmt"
)

// InteractionComponent is one selectable part of an interaction activity.
type InteractionComponent struct {
	ID          string
	Description LanguageMap
}

// SetID rejects the empty string.
func (ic *InteractionComponent) SetID(id string) error {
	if id == "" {
		return fmt.Errorf("interaction component id must not be empty: %w", ErrInvalidValue)
	}
	ic.ID = id
	return nil
}

// Validate checks the id is present.
func (ic *InteractionComponent) Validate() error {
	if ic.ID == "" {
		return fmt.Errorf("interaction component id must not be empty: %w", ErrInvalidValue)
	}
	return nil
}

// AsVersion projects the component to its wire form.
func (ic *InteractionComponent) AsVersion(v Version) (map[string]any, error) {
	if err := ic.Validate(); err != nil {
		return nil, err
	}
	out := map[string]any{"id": ic.ID}
	if ic.Description != nil {
		desc, err := ic.Description.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["description"] = desc
	}
	return out, nil
}

// UnmarshalJSON decodes a component, rejecting unknown keys.
func (ic *InteractionComponent) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "InteractionComponent")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("InteractionComponent", "id", "description"); err != nil {
		return err
	}
	out := InteractionComponent{}
	if s, err := obj.stringField("InteractionComponent", "id"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetID(*s); err != nil {
			return err
		}
	}
	if raw, ok := obj["description"]; ok {
		if err := out.Description.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*ic = out
	return nil
}

// InteractionComponentList is an ordered, homogeneous sequence of
// interaction components.
type InteractionComponentList []*InteractionComponent

// AsVersion projects the list element-wise.
func (l InteractionComponentList) AsVersion(v Version) ([]any, error) {
	out := make([]any, 0, len(l))
	for i, ic := range l {
		m, err := ic.AsVersion(v)
		if err != nil {
			return nil, fmt.Errorf("component[%d]: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// UnmarshalJSON decodes a JSON array of components.
func (l *InteractionComponentList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("component list: not a JSON array: %w", ErrInvalidType)
	}
	out := make(InteractionComponentList, 0, len(raw))
	for i, r := range raw {
		ic := &InteractionComponent{}
		if err := ic.UnmarshalJSON(r); err != nil {
			return fmt.Errorf("component[%d]: %w", i, err)
		}
		out = append(out, ic)
	}
	*l = out
	return nil
}

// Interaction types permitted on an ActivityDefinition.
var interactionTypes = map[string]bool{
	"choice":       true,
	"sequencing":   true,
	"likert":       true,
	"matching":     true,
	"performance":  true,
	"true-false":   true,
	"fill-in":      true,
	"long-fill-in": true,
	"numeric":      true,
	"other":        true,
}

// ActivityDefinition describes an Activity: names, typing, and the optional
// interaction structure. All fields are optional.
type ActivityDefinition struct {
	Name                    LanguageMap
	Description             LanguageMap
	Type                    *string
	MoreInfo                *string
	InteractionType         *string
	CorrectResponsesPattern []string
	Choices                 InteractionComponentList
	Scale                   InteractionComponentList
	Source                  InteractionComponentList
	Target                  InteractionComponentList
	Steps                   InteractionComponentList
	Extensions              Extensions
}

// SetInteractionType rejects values outside the fixed enumeration.
func (d *ActivityDefinition) SetInteractionType(t string) error {
	if !interactionTypes[t] {
		return fmt.Errorf("interactionType %q: %w", t, ErrInvalidValue)
	}
	d.InteractionType = &t
	return nil
}

// Validate re-checks the interaction-type enum.
func (d *ActivityDefinition) Validate() error {
	if d.InteractionType != nil && !interactionTypes[*d.InteractionType] {
		return fmt.Errorf("interactionType %q: %w", *d.InteractionType, ErrInvalidValue)
	}
	return nil
}

// AsVersion projects the definition to its wire form.
func (d *ActivityDefinition) AsVersion(v Version) (map[string]any, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out := map[string]any{}
	if d.Name != nil {
		m, err := d.Name.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["name"] = m
	}
	if d.Description != nil {
		m, err := d.Description.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["description"] = m
	}
	if d.Type != nil {
		out["type"] = *d.Type
	}
	if d.MoreInfo != nil {
		out["moreInfo"] = *d.MoreInfo
	}
	if d.InteractionType != nil {
		out["interactionType"] = *d.InteractionType
	}
	if d.CorrectResponsesPattern != nil {
		pattern := make([]any, 0, len(d.CorrectResponsesPattern))
		for _, p := range d.CorrectResponsesPattern {
			pattern = append(pattern, p)
		}
		out["correctResponsesPattern"] = pattern
	}
	for key, list := range map[string]InteractionComponentList{
		"choices": d.Choices, "scale": d.Scale, "source": d.Source, "target": d.Target, "steps": d.Steps,
	} {
		if list != nil {
			seq, err := list.AsVersion(v)
			if err != nil {
				return nil, err
			}
			out[key] = seq
		}
	}
	if d.Extensions != nil {
		ext, err := d.Extensions.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["extensions"] = ext
	}
	return out, nil
}

// UnmarshalJSON decodes a definition, rejecting unknown keys.
func (d *ActivityDefinition) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "ActivityDefinition")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("ActivityDefinition",
		"name", "description", "type", "moreInfo", "interactionType",
		"correctResponsesPattern", "choices", "scale", "source", "target",
		"steps", "extensions"); err != nil {
		return err
	}
	out := ActivityDefinition{}
	if raw, ok := obj["name"]; ok {
		if err := out.Name.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if raw, ok := obj["description"]; ok {
		if err := out.Description.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if out.Type, err = obj.stringField("ActivityDefinition", "type"); err != nil {
		return err
	}
	if out.MoreInfo, err = obj.stringField("ActivityDefinition", "moreInfo"); err != nil {
		return err
	}
	if s, err := obj.stringField("ActivityDefinition", "interactionType"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetInteractionType(*s); err != nil {
			return err
		}
	}
	if raw, ok := obj["correctResponsesPattern"]; ok {
		var pattern []string
		if err := json.Unmarshal(raw, &pattern); err != nil {
			return fmt.Errorf("ActivityDefinition.correctResponsesPattern: not a string array: %w", ErrInvalidType)
		}
		out.CorrectResponsesPattern = pattern
	}
	for key, dst := range map[string]*InteractionComponentList{
		"choices": &out.Choices, "scale": &out.Scale, "source": &out.Source, "target": &out.Target, "steps": &out.Steps,
	} {
		if raw, ok := obj[key]; ok {
			if err := dst.UnmarshalJSON(raw); err != nil {
				return fmt.Errorf("ActivityDefinition.%s: %w", key, err)
			}
		}
	}
	if raw, ok := obj["extensions"]; ok {
		if err := out.Extensions.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	*d = out
	return nil
}

// Activity is a learning target identified by an IRI. The wire objectType is
// always "Activity".
type Activity struct {
	ID         string
	Definition *ActivityDefinition
}

// NewActivity builds an Activity with a validated id.
func NewActivity(id string) (*Activity, error) {
	a := &Activity{}
	if err := a.SetID(id); err != nil {
		return nil, err
	}
	return a, nil
}

// ObjectType returns the fixed discriminator "Activity".
func (a *Activity) ObjectType() string { return "Activity" }

// SetID rejects the empty string.
func (a *Activity) SetID(id string) error {
	if id == "" {
		return fmt.Errorf("activity id must not be empty: %w", ErrInvalidValue)
	}
	a.ID = id
	return nil
}

// Validate checks the id and the definition.
func (a *Activity) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("activity id must not be empty: %w", ErrInvalidValue)
	}
	if a.Definition != nil {
		return a.Definition.Validate()
	}
	return nil
}

// AsVersion projects the activity to its wire form. The objectType
// discriminator is always emitted.
func (a *Activity) AsVersion(v Version) (map[string]any, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	out := map[string]any{"id": a.ID, "objectType": a.ObjectType()}
	if a.Definition != nil {
		def, err := a.Definition.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["definition"] = def
	}
	return out, nil
}

// UnmarshalJSON decodes an activity, rejecting unknown keys.
func (a *Activity) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "Activity")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("Activity", "objectType", "object_type", "id", "definition"); err != nil {
		return err
	}
	ot, err := obj.objectType("Activity")
	if err != nil {
		return err
	}
	if ot != "" && ot != "Activity" {
		return fmt.Errorf("Activity: objectType %q: %w", ot, ErrInvalidValue)
	}
	out := Activity{}
	if s, err := obj.stringField("Activity", "id"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetID(*s); err != nil {
			return err
		}
	}
	if raw, ok := obj["definition"]; ok {
		def := &ActivityDefinition{}
		if err := def.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Definition = def
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*a = out
	return nil
}

// MarshalJSON renders the activity at the latest protocol version.
func (a *Activity) MarshalJSON() ([]byte, error) {
	m, err := a.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// ActivityList is an ordered, homogeneous sequence of activities. On the
// wire a singleton JSON object is accepted and coerced to a one-element
// list, matching the ContextActivities convention.
type ActivityList []*Activity

// AsVersion projects the list element-wise; singletons render as
// one-element arrays.
func (l ActivityList) AsVersion(v Version) ([]any, error) {
	out := make([]any, 0, len(l))
	for i, a := range l {
		m, err := a.AsVersion(v)
		if err != nil {
			return nil, fmt.Errorf("activity[%d]: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// UnmarshalJSON accepts a JSON array of activities or a single activity
// object.
func (l *ActivityList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Singleton coercion.
		a := &Activity{}
		if err := a.UnmarshalJSON(data); err != nil {
			return fmt.Errorf("activity list: %w", err)
		}
		*l = ActivityList{a}
		return nil
	}
	out := make(ActivityList, 0, len(raw))
	for i, r := range raw {
		a := &Activity{}
		if err := a.UnmarshalJSON(r); err != nil {
			return fmt.Errorf("activity[%d]: %w", i, err)
		}
		out = append(out, a)
	}
	*l = out
	return nil
}
