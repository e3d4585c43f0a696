package response

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Text builds a plain-text response.
func Text(code StatusCode, body string) *Response {
	resp := New()
	resp.Status = code
	resp.Body = []byte(body)
	resp.Headers.Add("Content-Type", "text/plain")
	return resp
}

// HTML builds an HTML response.
func HTML(code StatusCode, body string) *Response {
	resp := New()
	resp.Status = code
	resp.Body = []byte(body)
	resp.Headers.Add("Content-Type", "text/html")
	return resp
}

// JSON builds a response by marshaling v.
func JSON(code StatusCode, v any) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("response: marshal body: %w", err)
	}

	resp := New()
	resp.Status = code
	resp.Body = data
	resp.Headers.Add("Content-Type", "application/json")
	return resp, nil
}

// Error builds a plain-text error response. An empty message falls back to
// the reason phrase for the code.
func Error(code StatusCode, message string) *Response {
	if message == "" {
		message = StatusText(code)
	}
	return Text(code, message)
}
