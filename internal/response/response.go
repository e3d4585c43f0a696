package response

import (
	"github.com/rtreacy87/http-server/internal/headers"
)

// Response is an HTTP response under construction. Callers never store a
// Content-Length header; the serializer derives it from Body.
type Response struct {
	Status  StatusCode
	Headers *headers.Headers
	Body    []byte
}

// New returns a response with status 200, zero headers and no body.
func New() *Response {
	return &Response{
		Status:  StatusOK,
		Headers: headers.New(),
	}
}

// Reset returns the response to its freshly constructed state, releasing
// the body reference. Idempotent.
func (r *Response) Reset() {
	r.Status = StatusOK
	r.Body = nil
	if r.Headers != nil {
		r.Headers.Reset()
	}
}

// HasBody reports whether a non-empty body is present.
func (r *Response) HasBody() bool {
	return len(r.Body) > 0
}
