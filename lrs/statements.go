package lrs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"xapigo/xapi"
)

// About fetches the LRS description: supported versions and extensions.
func (l *RemoteLRS) About(ctx context.Context) (*Response[*xapi.About], error) {
	x := l.send(ctx, request{method: http.MethodGet, resource: "about"})
	if !x.success {
		return wrap[*xapi.About](x, nil), nil
	}
	about, err := xapi.AboutFromJSON(x.body)
	if err != nil {
		return nil, fmt.Errorf("lrs: decode about: %w", err)
	}
	return wrap(x, about), nil
}

// SaveStatement stores one statement. A statement with an id is PUT
// idempotently; one without is POSTed and the server-assigned id is stamped
// back onto it. The response content is the same statement value.
func (l *RemoteLRS) SaveStatement(ctx context.Context, s *xapi.Statement) (*Response[*xapi.Statement], error) {
	body, err := s.ToJSON(l.version)
	if err != nil {
		return nil, err
	}
	if l.schemas != nil {
		if err := l.schemas.ValidateStatement(body); err != nil {
			return nil, err
		}
	}
	r := request{method: http.MethodPost, resource: "statements", contentType: "application/json", body: body}
	if s.ID != nil {
		r.method = http.MethodPut
		r.query = map[string][]string{"statementId": {s.ID.String()}}
	}
	x := l.send(ctx, r)
	if !x.success {
		return wrap[*xapi.Statement](x, nil), nil
	}
	if s.ID == nil {
		ids, err := decodeIDList(x.body)
		if err != nil {
			return nil, fmt.Errorf("lrs: decode save response: %w", err)
		}
		if len(ids) != 1 {
			return nil, fmt.Errorf("lrs: expected one id in save response, got %d", len(ids))
		}
		if err := s.SetID(ids[0]); err != nil {
			return nil, fmt.Errorf("lrs: server id: %w", err)
		}
	}
	return wrap(x, s), nil
}

// SaveStatements stores a batch in one POST. Server-assigned ids come back
// in batch order and are stamped pair-wise onto the input list.
func (l *RemoteLRS) SaveStatements(ctx context.Context, stmts xapi.StatementList) (*Response[xapi.StatementList], error) {
	seq, err := stmts.AsVersion(l.version)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(seq)
	if err != nil {
		return nil, err
	}
	if l.schemas != nil {
		if err := l.schemas.ValidateStatements(body); err != nil {
			return nil, err
		}
	}
	x := l.send(ctx, request{method: http.MethodPost, resource: "statements", contentType: "application/json", body: body})
	if !x.success {
		return wrap[xapi.StatementList](x, nil), nil
	}
	ids, err := decodeIDList(x.body)
	if err != nil {
		return nil, fmt.Errorf("lrs: decode save response: %w", err)
	}
	if len(ids) != len(stmts) {
		return nil, fmt.Errorf("lrs: expected %d ids in save response, got %d", len(stmts), len(ids))
	}
	for i, id := range ids {
		if err := stmts[i].SetID(id); err != nil {
			return nil, fmt.Errorf("lrs: server id[%d]: %w", i, err)
		}
	}
	return wrap(x, stmts), nil
}

// RetrieveStatement fetches one statement by id. A 404 is a failure.
func (l *RemoteLRS) RetrieveStatement(ctx context.Context, id string) (*Response[*xapi.Statement], error) {
	return l.retrieveStatement(ctx, "statementId", id)
}

// RetrieveVoidedStatement fetches one voided statement by id.
func (l *RemoteLRS) RetrieveVoidedStatement(ctx context.Context, id string) (*Response[*xapi.Statement], error) {
	return l.retrieveStatement(ctx, "voidedStatementId", id)
}

func (l *RemoteLRS) retrieveStatement(ctx context.Context, param, id string) (*Response[*xapi.Statement], error) {
	if _, err := xapi.ParseUUID(id); err != nil {
		return nil, err
	}
	x := l.send(ctx, request{
		method:   http.MethodGet,
		resource: "statements",
		query:    map[string][]string{param: {id}},
	})
	if !x.success {
		return wrap[*xapi.Statement](x, nil), nil
	}
	s, err := xapi.StatementFromJSON(x.body)
	if err != nil {
		return nil, fmt.Errorf("lrs: decode statement: %w", err)
	}
	return wrap(x, s), nil
}

// QueryStatements runs a statements query and returns the first page.
func (l *RemoteLRS) QueryStatements(ctx context.Context, q *StatementsQuery) (*Response[*xapi.StatementsResult], error) {
	params, err := q.params(l.version)
	if err != nil {
		return nil, err
	}
	x := l.send(ctx, request{method: http.MethodGet, resource: "statements", query: params})
	if !x.success {
		return wrap[*xapi.StatementsResult](x, nil), nil
	}
	result, err := xapi.StatementsResultFromJSON(x.body)
	if err != nil {
		return nil, fmt.Errorf("lrs: decode statements result: %w", err)
	}
	return wrap(x, result), nil
}

// MoreStatements follows a continuation path from a previous page. The path
// resolves against the endpoint's server root (scheme://host[:port]), not
// the endpoint itself.
func (l *RemoteLRS) MoreStatements(ctx context.Context, more string) (*Response[*xapi.StatementsResult], error) {
	if more == "" {
		return nil, fmt.Errorf("lrs: empty more URL")
	}
	x := l.send(ctx, request{method: http.MethodGet, resource: l.serverRoot() + more})
	if !x.success {
		return wrap[*xapi.StatementsResult](x, nil), nil
	}
	result, err := xapi.StatementsResultFromJSON(x.body)
	if err != nil {
		return nil, fmt.Errorf("lrs: decode statements result: %w", err)
	}
	return wrap(x, result), nil
}

// Next follows prev.More. It fails when prev has no continuation.
func (l *RemoteLRS) Next(ctx context.Context, prev *xapi.StatementsResult) (*Response[*xapi.StatementsResult], error) {
	if prev == nil || prev.More == nil {
		return nil, fmt.Errorf("lrs: result has no more URL")
	}
	return l.MoreStatements(ctx, *prev.More)
}

// decodeIDList parses the JSON array of UUID strings a statement save
// returns. The body is parsed as JSON exactly once.
func decodeIDList(body []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
