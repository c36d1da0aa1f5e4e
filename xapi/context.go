package xapi

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"xapigo/internal/langtag"
)

// Context carries the situational fields of a statement: registration,
// instructor, team, related activities, platform and language, and a
// reference to a containing statement.
type Context struct {
	Registration      *uuid.UUID
	Instructor        Actor
	Team              *Group
	ContextActivities *ContextActivities
	Revision          *string
	Platform          *string
	Language          *string
	Statement         *StatementRef
	Extensions        Extensions
}

// SetRegistration parses s against the strict RFC 4122 grammar.
func (c *Context) SetRegistration(s string) error {
	id, err := ParseUUID(s)
	if err != nil {
		return fmt.Errorf("context registration: %w", err)
	}
	c.Registration = &id
	return nil
}

// SetLanguage validates tag against the BCP 47 grammar.
func (c *Context) SetLanguage(tag string) error {
	if !langtag.Valid(tag) {
		return fmt.Errorf("context language %q: %w", tag, ErrInvalidValue)
	}
	c.Language = &tag
	return nil
}

// Validate re-checks the language tag and nested records.
func (c *Context) Validate() error {
	if c.Language != nil && !langtag.Valid(*c.Language) {
		return fmt.Errorf("context language %q: %w", *c.Language, ErrInvalidValue)
	}
	if c.Instructor != nil {
		if err := c.Instructor.Validate(); err != nil {
			return err
		}
	}
	if c.Team != nil {
		if err := c.Team.Validate(); err != nil {
			return err
		}
	}
	if c.ContextActivities != nil {
		if err := c.ContextActivities.Validate(); err != nil {
			return err
		}
	}
	if c.Statement != nil {
		if err := c.Statement.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AsVersion projects the context to its wire form.
func (c *Context) AsVersion(v Version) (map[string]any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := map[string]any{}
	if c.Registration != nil {
		out["registration"] = c.Registration.String()
	}
	if c.Instructor != nil {
		m, err := c.Instructor.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["instructor"] = m
	}
	if c.Team != nil {
		m, err := c.Team.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["team"] = m
	}
	if c.ContextActivities != nil {
		m, err := c.ContextActivities.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["contextActivities"] = m
	}
	if c.Revision != nil {
		out["revision"] = *c.Revision
	}
	if c.Platform != nil {
		out["platform"] = *c.Platform
	}
	if c.Language != nil {
		out["language"] = *c.Language
	}
	if c.Statement != nil {
		m, err := c.Statement.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["statement"] = m
	}
	if c.Extensions != nil {
		ext, err := c.Extensions.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["extensions"] = ext
	}
	return out, nil
}

// UnmarshalJSON decodes a context, rejecting unknown keys.
func (c *Context) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "Context")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("Context",
		"registration", "instructor", "team", "contextActivities",
		"revision", "platform", "language", "statement", "extensions"); err != nil {
		return err
	}
	out := Context{}
	if out.Registration, err = obj.uuidField("Context", "registration"); err != nil {
		return err
	}
	if raw, ok := obj["instructor"]; ok {
		actor, err := decodeActor(raw)
		if err != nil {
			return err
		}
		out.Instructor = actor
	}
	if raw, ok := obj["team"]; ok {
		team := &Group{}
		if err := team.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Team = team
	}
	if raw, ok := obj["contextActivities"]; ok {
		ca := &ContextActivities{}
		if err := ca.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.ContextActivities = ca
	}
	if out.Revision, err = obj.stringField("Context", "revision"); err != nil {
		return err
	}
	if out.Platform, err = obj.stringField("Context", "platform"); err != nil {
		return err
	}
	if s, err := obj.stringField("Context", "language"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetLanguage(*s); err != nil {
			return err
		}
	}
	if raw, ok := obj["statement"]; ok {
		ref := &StatementRef{}
		if err := ref.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Statement = ref
	}
	if raw, ok := obj["extensions"]; ok {
		if err := out.Extensions.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	*c = out
	return nil
}

// MarshalJSON renders the context at the latest protocol version.
func (c *Context) MarshalJSON() ([]byte, error) {
	m, err := c.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
