package lrs

import "net/http"

// Response is the uniform outcome record of one LRS round trip. Protocol
// failures are never returned as Go errors: callers inspect Success. For a
// transport failure (connection refused, cancellation, timeout) Success is
// false, HTTPResponse is nil and Err carries the cause.
type Response[T any] struct {
	// Success is true for a 2xx status, or a 404 on an operation flagged as
	// 404-tolerant (single-document reads).
	Success bool

	// Request is the HTTP request that was sent, nil if it could not be
	// built.
	Request *http.Request

	// HTTPResponse is the raw response, nil on transport failure.
	HTTPResponse *http.Response

	// Data is the raw response body decoded as UTF-8 text.
	Data string

	// Err holds the transport error when no response was received.
	Err error

	// Content is the parsed domain value for operations that define one,
	// populated only on success.
	Content T
}

// exchange is the transport-level outcome send produces; each operation
// wraps it into a typed Response.
type exchange struct {
	req     *http.Request
	resp    *http.Response
	body    []byte
	success bool
	err     error
}

func wrap[T any](x exchange, content T) *Response[T] {
	return &Response[T]{
		Success:      x.success,
		Request:      x.req,
		HTTPResponse: x.resp,
		Data:         string(x.body),
		Err:          x.err,
		Content:      content,
	}
}
