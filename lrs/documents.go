package lrs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"xapigo/internal/iso8601"
	"xapigo/xapi"
)

const defaultDocContentType = "application/octet-stream"

// agentParam renders an agent as the JSON form document resources expect.
func (l *RemoteLRS) agentParam(a *xapi.Agent) (string, error) {
	if a == nil {
		return "", fmt.Errorf("lrs: agent is required: %w", xapi.ErrInvalidValue)
	}
	m, err := a.AsVersion(l.version)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func requireActivity(a *xapi.Activity) error {
	if a == nil {
		return fmt.Errorf("lrs: activity is required: %w", xapi.ErrInvalidValue)
	}
	return a.Validate()
}

// fillDocument populates the header-derived fields of a retrieved document.
func fillDocument(doc *xapi.Document, x exchange) {
	doc.Content = x.body
	if ct := x.resp.Header.Get("Content-Type"); ct != "" {
		doc.ContentType = ct
	}
	if etag := x.resp.Header.Get("ETag"); etag != "" {
		doc.Etag = etag
	}
	doc.Timestamp = headerTime(x.resp, "Last-Modified")
}

// decodeIDStrings parses the id-list body of the ids endpoints. The body is
// parsed as JSON exactly once.
func decodeIDStrings(body []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("lrs: decode id list: %w", err)
	}
	return ids, nil
}

// RetrieveStateIDs lists the state ids stored for an activity/agent pair,
// optionally scoped by registration and since.
func (l *RemoteLRS) RetrieveStateIDs(ctx context.Context, activity *xapi.Activity, agent *xapi.Agent, registration *uuid.UUID, since *time.Time) (*Response[[]string], error) {
	if err := requireActivity(activity); err != nil {
		return nil, err
	}
	agentJSON, err := l.agentParam(agent)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("activityId", activity.ID)
	query.Set("agent", agentJSON)
	if registration != nil {
		query.Set("registration", registration.String())
	}
	if since != nil {
		query.Set("since", iso8601.FormatTimestamp(*since))
	}
	x := l.send(ctx, request{method: http.MethodGet, resource: "activities/state", query: query})
	if !x.success {
		return wrap[[]string](x, nil), nil
	}
	ids, err := decodeIDStrings(x.body)
	if err != nil {
		return nil, err
	}
	return wrap(x, ids), nil
}

// RetrieveState fetches one state document. A 404 is tolerated as absence:
// Success is true and Content is nil.
func (l *RemoteLRS) RetrieveState(ctx context.Context, activity *xapi.Activity, agent *xapi.Agent, stateID string, registration *uuid.UUID) (*Response[*xapi.StateDocument], error) {
	if err := requireActivity(activity); err != nil {
		return nil, err
	}
	agentJSON, err := l.agentParam(agent)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("activityId", activity.ID)
	query.Set("agent", agentJSON)
	query.Set("stateId", stateID)
	if registration != nil {
		query.Set("registration", registration.String())
	}
	x := l.send(ctx, request{method: http.MethodGet, resource: "activities/state", query: query, tolerate404: true})
	if !x.success || x.resp.StatusCode == http.StatusNotFound {
		return wrap[*xapi.StateDocument](x, nil), nil
	}
	doc := &xapi.StateDocument{
		Activity:     activity,
		Agent:        agent,
		Registration: registration,
	}
	doc.ID = stateID
	fillDocument(&doc.Document, x)
	return wrap(x, doc), nil
}

// SaveState stores a state document with exactly one PUT. The document's
// content type defaults to application/octet-stream and its etag, when
// present, becomes an If-Match condition.
func (l *RemoteLRS) SaveState(ctx context.Context, doc *xapi.StateDocument) (*Response[*xapi.StateDocument], error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	agentJSON, err := l.agentParam(doc.Agent)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("activityId", doc.Activity.ID)
	query.Set("agent", agentJSON)
	query.Set("stateId", doc.ID)
	if doc.Registration != nil {
		query.Set("registration", doc.Registration.String())
	}
	contentType := doc.ContentType
	if contentType == "" {
		contentType = defaultDocContentType
	}
	x := l.send(ctx, request{
		method:      http.MethodPut,
		resource:    "activities/state",
		query:       query,
		contentType: contentType,
		ifMatch:     doc.Etag,
		body:        doc.Content,
	})
	return wrap(x, doc), nil
}

// DeleteState removes one state document.
func (l *RemoteLRS) DeleteState(ctx context.Context, doc *xapi.StateDocument) (*Response[*xapi.StateDocument], error) {
	return l.deleteState(ctx, doc, true)
}

// ClearState removes every state document matching the activity/agent pair
// (and registration when the document carries one) by omitting stateId.
func (l *RemoteLRS) ClearState(ctx context.Context, activity *xapi.Activity, agent *xapi.Agent, registration *uuid.UUID) (*Response[*xapi.StateDocument], error) {
	doc := &xapi.StateDocument{Activity: activity, Agent: agent, Registration: registration}
	return l.deleteState(ctx, doc, false)
}

func (l *RemoteLRS) deleteState(ctx context.Context, doc *xapi.StateDocument, withID bool) (*Response[*xapi.StateDocument], error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	agentJSON, err := l.agentParam(doc.Agent)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("activityId", doc.Activity.ID)
	query.Set("agent", agentJSON)
	if withID {
		query.Set("stateId", doc.ID)
	}
	if doc.Registration != nil {
		query.Set("registration", doc.Registration.String())
	}
	x := l.send(ctx, request{
		method:   http.MethodDelete,
		resource: "activities/state",
		query:    query,
		ifMatch:  doc.Etag,
	})
	return wrap(x, doc), nil
}

// RetrieveActivityProfileIDs lists the profile ids stored for an activity.
func (l *RemoteLRS) RetrieveActivityProfileIDs(ctx context.Context, activity *xapi.Activity, since *time.Time) (*Response[[]string], error) {
	if err := requireActivity(activity); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("activityId", activity.ID)
	if since != nil {
		query.Set("since", iso8601.FormatTimestamp(*since))
	}
	x := l.send(ctx, request{method: http.MethodGet, resource: "activities/profile", query: query})
	if !x.success {
		return wrap[[]string](x, nil), nil
	}
	ids, err := decodeIDStrings(x.body)
	if err != nil {
		return nil, err
	}
	return wrap(x, ids), nil
}

// RetrieveActivityProfile fetches one activity profile document. A 404 is
// tolerated as absence.
func (l *RemoteLRS) RetrieveActivityProfile(ctx context.Context, activity *xapi.Activity, profileID string) (*Response[*xapi.ActivityProfileDocument], error) {
	if err := requireActivity(activity); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("activityId", activity.ID)
	query.Set("profileId", profileID)
	x := l.send(ctx, request{method: http.MethodGet, resource: "activities/profile", query: query, tolerate404: true})
	if !x.success || x.resp.StatusCode == http.StatusNotFound {
		return wrap[*xapi.ActivityProfileDocument](x, nil), nil
	}
	doc := &xapi.ActivityProfileDocument{Activity: activity}
	doc.ID = profileID
	fillDocument(&doc.Document, x)
	return wrap(x, doc), nil
}

// SaveActivityProfile stores an activity profile document with the same
// header and etag discipline as state documents.
func (l *RemoteLRS) SaveActivityProfile(ctx context.Context, doc *xapi.ActivityProfileDocument) (*Response[*xapi.ActivityProfileDocument], error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("activityId", doc.Activity.ID)
	query.Set("profileId", doc.ID)
	contentType := doc.ContentType
	if contentType == "" {
		contentType = defaultDocContentType
	}
	x := l.send(ctx, request{
		method:      http.MethodPut,
		resource:    "activities/profile",
		query:       query,
		contentType: contentType,
		ifMatch:     doc.Etag,
		body:        doc.Content,
	})
	return wrap(x, doc), nil
}

// DeleteActivityProfile removes one activity profile document.
func (l *RemoteLRS) DeleteActivityProfile(ctx context.Context, doc *xapi.ActivityProfileDocument) (*Response[*xapi.ActivityProfileDocument], error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("activityId", doc.Activity.ID)
	query.Set("profileId", doc.ID)
	x := l.send(ctx, request{
		method:   http.MethodDelete,
		resource: "activities/profile",
		query:    query,
		ifMatch:  doc.Etag,
	})
	return wrap(x, doc), nil
}

// RetrieveAgentProfileIDs lists the profile ids stored for an agent.
func (l *RemoteLRS) RetrieveAgentProfileIDs(ctx context.Context, agent *xapi.Agent, since *time.Time) (*Response[[]string], error) {
	agentJSON, err := l.agentParam(agent)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("agent", agentJSON)
	if since != nil {
		query.Set("since", iso8601.FormatTimestamp(*since))
	}
	x := l.send(ctx, request{method: http.MethodGet, resource: "agents/profile", query: query})
	if !x.success {
		return wrap[[]string](x, nil), nil
	}
	ids, err := decodeIDStrings(x.body)
	if err != nil {
		return nil, err
	}
	return wrap(x, ids), nil
}

// RetrieveAgentProfile fetches one agent profile document. A 404 is
// tolerated as absence.
func (l *RemoteLRS) RetrieveAgentProfile(ctx context.Context, agent *xapi.Agent, profileID string) (*Response[*xapi.AgentProfileDocument], error) {
	agentJSON, err := l.agentParam(agent)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("agent", agentJSON)
	query.Set("profileId", profileID)
	x := l.send(ctx, request{method: http.MethodGet, resource: "agents/profile", query: query, tolerate404: true})
	if !x.success || x.resp.StatusCode == http.StatusNotFound {
		return wrap[*xapi.AgentProfileDocument](x, nil), nil
	}
	doc := &xapi.AgentProfileDocument{Agent: agent}
	doc.ID = profileID
	fillDocument(&doc.Document, x)
	return wrap(x, doc), nil
}

// SaveAgentProfile stores an agent profile document.
func (l *RemoteLRS) SaveAgentProfile(ctx context.Context, doc *xapi.AgentProfileDocument) (*Response[*xapi.AgentProfileDocument], error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	agentJSON, err := l.agentParam(doc.Agent)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("agent", agentJSON)
	query.Set("profileId", doc.ID)
	contentType := doc.ContentType
	if contentType == "" {
		contentType = defaultDocContentType
	}
	x := l.send(ctx, request{
		method:      http.MethodPut,
		resource:    "agents/profile",
		query:       query,
		contentType: contentType,
		ifMatch:     doc.Etag,
		body:        doc.Content,
	})
	return wrap(x, doc), nil
}

// DeleteAgentProfile removes one agent profile document.
func (l *RemoteLRS) DeleteAgentProfile(ctx context.Context, doc *xapi.AgentProfileDocument) (*Response[*xapi.AgentProfileDocument], error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	agentJSON, err := l.agentParam(doc.Agent)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("agent", agentJSON)
	query.Set("profileId", doc.ID)
	x := l.send(ctx, request{
		method:   http.MethodDelete,
		resource: "agents/profile",
		query:    query,
		ifMatch:  doc.Etag,
	})
	return wrap(x, doc), nil
}
