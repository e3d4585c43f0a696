package request

import (
	"github.com/rtreacy87/http-server/internal/headers"
)

// Bounds for the request-line tokens. Tokens over these limits are
// rejected, never truncated.
const (
	MaxMethodSize  = 16
	MaxTargetSize  = 1024
	MaxVersionSize = 16
)

// Request is a parsed HTTP request. Body is nil when the request carried
// no body; a zero-length body is a non-nil empty slice.
type Request struct {
	Method  string
	Target  string
	Version string
	Headers *headers.Headers
	Body    []byte
}

// New returns a zeroed request: no body, no headers.
func New() *Request {
	return &Request{
		Headers: headers.New(),
	}
}

// Reset drops the body and all headers so the instance can be reused.
// Idempotent: safe on an already-reset or never-populated request.
func (r *Request) Reset() {
	r.Method = ""
	r.Target = ""
	r.Version = ""
	r.Body = nil
	if r.Headers != nil {
		r.Headers.Reset()
	}
}

// HasBody distinguishes an absent body from a zero-length one.
func (r *Request) HasBody() bool {
	return r.Body != nil
}
