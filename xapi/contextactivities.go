package xapi

import (
	"encoding/json"
	"fmt"
)

// ContextActivities groups the activities a statement relates to. Each slot
// is an ordered activity list; on the wire every slot renders as an array
// even when it holds a single activity.
type ContextActivities struct {
	Category ActivityList
	Parent   ActivityList
	Grouping ActivityList
	Other    ActivityList
}

// Validate checks every contained activity.
func (ca *ContextActivities) Validate() error {
	for _, list := range []ActivityList{ca.Category, ca.Parent, ca.Grouping, ca.Other} {
		for _, a := range list {
			if err := a.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// AsVersion projects the slots to their wire form, omitting unset slots.
func (ca *ContextActivities) AsVersion(v Version) (map[string]any, error) {
	out := map[string]any{}
	for key, list := range map[string]ActivityList{
		"category": ca.Category, "parent": ca.Parent, "grouping": ca.Grouping, "other": ca.Other,
	} {
		if list != nil {
			seq, err := list.AsVersion(v)
			if err != nil {
				return nil, fmt.Errorf("contextActivities.%s: %w", key, err)
			}
			out[key] = seq
		}
	}
	return out, nil
}

// UnmarshalJSON decodes the slot map; singleton activities coerce to
// one-element lists.
func (ca *ContextActivities) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "ContextActivities")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("ContextActivities", "category", "parent", "grouping", "other"); err != nil {
		return err
	}
	out := ContextActivities{}
	for key, dst := range map[string]*ActivityList{
		"category": &out.Category, "parent": &out.Parent, "grouping": &out.Grouping, "other": &out.Other,
	} {
		if raw, ok := obj[key]; ok {
			if err := dst.UnmarshalJSON(raw); err != nil {
				return fmt.Errorf("contextActivities.%s: %w", key, err)
			}
		}
	}
	*ca = out
	return nil
}

// MarshalJSON renders the slots at the latest protocol version.
func (ca *ContextActivities) MarshalJSON() ([]byte, error) {
	m, err := ca.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
