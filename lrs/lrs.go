// Package lrs talks to a remote Learning Record Store over HTTP(S): saving
// and querying statements, paging, and the state/profile document
// resources.
package lrs

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"xapigo/schema"
	"xapigo/xapi"
)

const versionHeader = "X-Experience-API-Version"

// Config configures a RemoteLRS. Endpoint is required; everything else has
// a usable default.
type Config struct {
	// Endpoint is the LRS base URL. A trailing slash is appended when
	// missing and the scheme defaults to http://.
	Endpoint string

	// Version is the protocol version sent on every request. Defaults to
	// the latest supported version.
	Version xapi.Version

	// Username and Password synthesize a Basic Authorization header. Auth,
	// when set, is used verbatim instead.
	Username string
	Password string
	Auth     string

	// HTTPClient overrides the transport. Defaults to a client with a
	// 30-second timeout.
	HTTPClient *http.Client

	// Logger receives a debug record per round trip. Defaults to a nop
	// logger.
	Logger *zap.Logger

	// Strict validates statement payloads against the xAPI statement
	// schema before they are sent.
	Strict bool
}

// RemoteLRS is the facade over one LRS endpoint. Its fields are fixed at
// construction; one value may be shared by concurrent callers.
type RemoteLRS struct {
	endpoint *url.URL
	version  xapi.Version
	auth     string
	client   *http.Client
	log      *zap.Logger
	schemas  *schema.Validator
}

// New builds a RemoteLRS from cfg.
func New(cfg Config) (*RemoteLRS, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("lrs: endpoint is required")
	}
	raw := cfg.Endpoint
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	endpoint, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("lrs: bad endpoint %q: %w", cfg.Endpoint, err)
	}
	version := cfg.Version
	if version == "" {
		version = xapi.LatestVersion()
	}
	if !version.Supported() {
		return nil, fmt.Errorf("lrs: version %q: %w", version, xapi.ErrUnsupportedVersion)
	}
	auth := cfg.Auth
	if auth == "" && cfg.Username != "" {
		auth = "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.Username+":"+cfg.Password))
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	l := &RemoteLRS{
		endpoint: endpoint,
		version:  version,
		auth:     auth,
		client:   client,
		log:      log,
	}
	if cfg.Strict {
		l.schemas = schema.NewValidator(16)
	}
	return l, nil
}

// Endpoint returns the normalized endpoint URL.
func (l *RemoteLRS) Endpoint() string { return l.endpoint.String() }

// Version returns the protocol version sent on every request.
func (l *RemoteLRS) Version() xapi.Version { return l.version }

// serverRoot is scheme://host[:port] of the endpoint, with any path
// dropped. More-URL paths from paged query results resolve against it.
func (l *RemoteLRS) serverRoot() string {
	return l.endpoint.Scheme + "://" + l.endpoint.Host
}

// request describes one round trip before it is shaped into HTTP.
type request struct {
	method      string
	resource    string // path fragment under the endpoint, or an absolute URL
	query       url.Values
	contentType string
	ifMatch     string
	body        []byte
	tolerate404 bool
}

// send performs one blocking round trip. The connection is not reused;
// every call opens and closes its own.
func (l *RemoteLRS) send(ctx context.Context, r request) exchange {
	target := r.resource
	if !strings.Contains(target, "://") {
		target = l.endpoint.String() + target
	}
	if len(r.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + r.query.Encode()
	}

	var bodyReader io.Reader
	if r.body != nil {
		bodyReader = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, bodyReader)
	if err != nil {
		return exchange{err: fmt.Errorf("lrs: build request: %w", err)}
	}
	req.Close = true
	req.Header.Set(versionHeader, string(l.version))
	if l.auth != "" {
		req.Header.Set("Authorization", l.auth)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.ifMatch != "" {
		req.Header.Set("If-Match", r.ifMatch)
	}

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		l.log.Debug("LRS request failed",
			zap.String("method", r.method),
			zap.String("url", target),
			zap.Error(err),
		)
		return exchange{req: req, err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return exchange{req: req, resp: resp, err: err}
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	if resp.StatusCode == http.StatusNotFound && r.tolerate404 {
		success = true
	}
	l.log.Debug("LRS request",
		zap.String("method", r.method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", success),
		zap.Duration("duration", time.Since(start)),
	)
	return exchange{req: req, resp: resp, body: body, success: success}
}

// headerTime parses an HTTP date header, returning nil when absent or
// malformed.
func headerTime(resp *http.Response, name string) *time.Time {
	v := resp.Header.Get(name)
	if v == "" {
		return nil
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return nil
	}
	return &t
}
