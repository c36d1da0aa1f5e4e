package xapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Statement is the actor-verb-object record at the heart of the protocol.
// Optional fields ride along: result, context, timestamp, and the
// server-stamped stored instant and authority.
type Statement struct {
	ID          *uuid.UUID
	Actor       Actor
	Verb        *Verb
	Object      Object
	Result      *Result
	Context     *Context
	Timestamp   *time.Time
	Stored      *time.Time
	Authority   Actor
	Version     Version
	Attachments AttachmentList
}

// NewStatement builds a statement with the default protocol version
// stamped.
func NewStatement(actor Actor, verb *Verb, object Object) *Statement {
	return &Statement{
		Actor:   actor,
		Verb:    verb,
		Object:  object,
		Version: StatementDefaultVersion,
	}
}

// NewVoidingStatement builds a statement that voids the statement target
// refers to, using the reserved voided verb.
func NewVoidingStatement(actor Actor, target *StatementRef) *Statement {
	verb := &Verb{
		ID:      VoidedVerbID,
		Display: LanguageMap{"en-US": "voided"},
	}
	return NewStatement(actor, verb, target)
}

// SetID parses s against the strict RFC 4122 grammar.
func (s *Statement) SetID(id string) error {
	parsed, err := ParseUUID(id)
	if err != nil {
		return fmt.Errorf("statement id: %w", err)
	}
	s.ID = &parsed
	return nil
}

// Stamp assigns a fresh random id and the current timestamp. Existing
// values are overwritten.
func (s *Statement) Stamp() {
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.ID = &id
	s.Timestamp = &now
}

// Validate checks the triple, the version, and every nested record.
func (s *Statement) Validate() error {
	if s.Actor == nil {
		return fmt.Errorf("statement actor is required: %w", ErrInvalidValue)
	}
	if err := s.Actor.Validate(); err != nil {
		return err
	}
	if s.Verb == nil {
		return fmt.Errorf("statement verb is required: %w", ErrInvalidValue)
	}
	if err := s.Verb.Validate(); err != nil {
		return err
	}
	if s.Object == nil {
		return fmt.Errorf("statement object is required: %w", ErrInvalidValue)
	}
	if err := s.Object.Validate(); err != nil {
		return err
	}
	if s.Version != "" && !s.Version.Supported() {
		return fmt.Errorf("statement version %q: %w", s.Version, ErrUnsupportedVersion)
	}
	if s.Result != nil {
		if err := s.Result.Validate(); err != nil {
			return err
		}
	}
	if s.Context != nil {
		if err := s.Context.Validate(); err != nil {
			return err
		}
	}
	if s.Authority != nil {
		if err := s.Authority.Validate(); err != nil {
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

// AsVersion projects the statement to its wire form at protocol version v.
// The objectType discriminator is emitted on every polymorphic slot.
func (s *Statement) AsVersion(v Version) (map[string]any, error) {
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
		"actor":  actor,
		"verb":   verb,
		"object": object,
	}
	if s.ID != nil {
		out["id"] = s.ID.String()
	}
	if s.Result != nil {
		m, err := s.Result.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["result"] = m
	}
	if s.Context != nil {
		m, err := s.Context.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["context"] = m
	}
	if s.Timestamp != nil {
		out["timestamp"] = formatTime(*s.Timestamp)
	}
	if s.Stored != nil {
		out["stored"] = formatTime(*s.Stored)
	}
	if s.Authority != nil {
		m, err := s.Authority.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["authority"] = m
	}
	if s.Version != "" {
		out["version"] = string(s.Version)
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

// UnmarshalJSON decodes a statement, rejecting unknown top-level keys.
func (s *Statement) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "Statement")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("Statement",
		"id", "actor", "verb", "object", "result", "context",
		"timestamp", "stored", "authority", "version", "attachments"); err != nil {
		return err
	}
	out := Statement{}
	if out.ID, err = obj.uuidField("Statement", "id"); err != nil {
		return err
	}
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
		if out.Object, err = decodeObject(raw, false); err != nil {
			return err
		}
	}
	if raw, ok := obj["result"]; ok {
		res := &Result{}
		if err := res.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Result = res
	}
	if raw, ok := obj["context"]; ok {
		ctx := &Context{}
		if err := ctx.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Context = ctx
	}
	if out.Timestamp, err = obj.timeField("Statement", "timestamp"); err != nil {
		return err
	}
	if out.Stored, err = obj.timeField("Statement", "stored"); err != nil {
		return err
	}
	if raw, ok := obj["authority"]; ok {
		if out.Authority, err = decodeActor(raw); err != nil {
			return err
		}
	}
	if v, err := obj.stringField("Statement", "version"); err != nil {
		return err
	} else if v != nil {
		parsed, err := ParseVersion(*v)
		if err != nil {
			return err
		}
		out.Version = parsed
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

// StatementFromJSON reconstructs a statement from its wire form.
func StatementFromJSON(data []byte) (*Statement, error) {
	s := &Statement{}
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}

// ToJSON renders the statement at protocol version v.
func (s *Statement) ToJSON(v Version) ([]byte, error) {
	m, err := s.AsVersion(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// MarshalJSON renders the statement at the latest protocol version.
func (s *Statement) MarshalJSON() ([]byte, error) {
	return s.ToJSON(LatestVersion())
}

// StatementList is an ordered, homogeneous sequence of statements.
type StatementList []*Statement

// AsVersion projects the list element-wise.
func (l StatementList) AsVersion(v Version) ([]any, error) {
	out := make([]any, 0, len(l))
	for i, s := range l {
		m, err := s.AsVersion(v)
		if err != nil {
			return nil, fmt.Errorf("statement[%d]: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// UnmarshalJSON decodes a JSON array of statements.
func (l *StatementList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("statement list: not a JSON array: %w", ErrInvalidType)
	}
	out := make(StatementList, 0, len(raw))
	for i, r := range raw {
		s := &Statement{}
		if err := s.UnmarshalJSON(r); err != nil {
			return fmt.Errorf("statement[%d]: %w", i, err)
		}
		out = append(out, s)
	}
	*l = out
	return nil
}
