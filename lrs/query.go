package lrs

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"xapigo/internal/iso8601"
	"xapigo/xapi"
)

// Query formats accepted by the statements resource.
const (
	FormatIDs       = "ids"
	FormatExact     = "exact"
	FormatCanonical = "canonical"
)

// StatementsQuery holds the recognized statement query parameters. Agent is
// encoded as its JSON form; Verb and Activity as their id IRI. Zero values
// are omitted from the query string.
type StatementsQuery struct {
	Agent             xapi.Actor
	Verb              *xapi.Verb
	Activity          *xapi.Activity
	Registration      *uuid.UUID
	RelatedActivities *bool
	RelatedAgents     *bool
	Since             *time.Time
	Until             *time.Time
	Limit             int
	Format            string
	Attachments       *bool
	Ascending         *bool
}

// params encodes the query for the wire. Booleans render lowercase,
// timestamps as ISO 8601, and numbers as decimal strings.
func (q *StatementsQuery) params(v xapi.Version) (url.Values, error) {
	vals := url.Values{}
	if q == nil {
		return vals, nil
	}
	if q.Agent != nil {
		m, err := q.Agent.AsVersion(v)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		vals.Set("agent", string(b))
	}
	if q.Verb != nil {
		if err := q.Verb.Validate(); err != nil {
			return nil, err
		}
		vals.Set("verb", q.Verb.ID)
	}
	if q.Activity != nil {
		if err := q.Activity.Validate(); err != nil {
			return nil, err
		}
		vals.Set("activity", q.Activity.ID)
	}
	if q.Registration != nil {
		vals.Set("registration", q.Registration.String())
	}
	if q.RelatedActivities != nil {
		vals.Set("related_activities", strconv.FormatBool(*q.RelatedActivities))
	}
	if q.RelatedAgents != nil {
		vals.Set("related_agents", strconv.FormatBool(*q.RelatedAgents))
	}
	if q.Since != nil {
		vals.Set("since", iso8601.FormatTimestamp(*q.Since))
	}
	if q.Until != nil {
		vals.Set("until", iso8601.FormatTimestamp(*q.Until))
	}
	if q.Limit > 0 {
		vals.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Format != "" {
		switch q.Format {
		case FormatIDs, FormatExact, FormatCanonical:
		default:
			return nil, fmt.Errorf("lrs: query format %q: %w", q.Format, xapi.ErrInvalidValue)
		}
		vals.Set("format", q.Format)
	}
	if q.Attachments != nil {
		vals.Set("attachments", strconv.FormatBool(*q.Attachments))
	}
	if q.Ascending != nil {
		vals.Set("ascending", strconv.FormatBool(*q.Ascending))
	}
	return vals, nil
}
