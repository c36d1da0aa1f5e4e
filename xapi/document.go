package xapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Document is the shared shape of the state and profile side-documents.
// Content is held as raw bytes; the LRS never interprets it. Etag and
// Timestamp come back from response headers on retrieval.
type Document struct {
	ID          string
	ContentType string
	Content     []byte
	Etag        string
	Timestamp   *time.Time
}

// StateDocument is a per-activity, per-agent state record, optionally
// scoped by registration. Activity and agent are required for any wire
// operation.
type StateDocument struct {
	Document
	Activity     *Activity
	Agent        *Agent
	Registration *uuid.UUID
}

// Validate checks the wire-operation prerequisites.
func (d *StateDocument) Validate() error {
	if d.Activity == nil {
		return fmt.Errorf("state document activity is required: %w", ErrInvalidValue)
	}
	if err := d.Activity.Validate(); err != nil {
		return err
	}
	if d.Agent == nil {
		return fmt.Errorf("state document agent is required: %w", ErrInvalidValue)
	}
	if err := d.Agent.Validate(); err != nil {
		return err
	}
	return nil
}

// ActivityProfileDocument is a per-activity profile record.
type ActivityProfileDocument struct {
	Document
	Activity *Activity
}

// Validate checks the wire-operation prerequisites.
func (d *ActivityProfileDocument) Validate() error {
	if d.Activity == nil {
		return fmt.Errorf("activity profile document activity is required: %w", ErrInvalidValue)
	}
	return d.Activity.Validate()
}

// AgentProfileDocument is a per-agent profile record.
type AgentProfileDocument struct {
	Document
	Agent *Agent
}

// Validate checks the wire-operation prerequisites.
func (d *AgentProfileDocument) Validate() error {
	if d.Agent == nil {
		return fmt.Errorf("agent profile document agent is required: %w", ErrInvalidValue)
	}
	return d.Agent.Validate()
}
