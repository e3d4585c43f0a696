package response

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtreacy87/http-server/internal/headers"
)

func TestNewResponseDefaults(t *testing.T) {
	resp := New()

	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, 0, resp.Headers.Len())
	assert.False(t, resp.HasBody())
}

func TestWriteResponseWithBody(t *testing.T) {
	resp := New()
	resp.Headers.Add("Content-Type", "text/html")
	resp.Body = []byte("<h1>hi</h1>")

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteResponse(resp))

	expected := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: text/html\r\n" +
		"Content-Length: 11\r\n" +
		"\r\n" +
		"<h1>hi</h1>"
	assert.Equal(t, expected, buf.String())
}

func TestNoBodyOmitsContentLength(t *testing.T) {
	resp := New()
	resp.Status = StatusNotFound

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteResponse(resp))

	out := buf.String()
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n\r\n", out)
	assert.NotContains(t, out, "Content-Length")
}

func TestEmptyBodyOmitsContentLength(t *testing.T) {
	resp := New()
	resp.Body = []byte{}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteResponse(resp))

	assert.NotContains(t, buf.String(), "Content-Length")
}

func TestContentLengthMatchesBodyExactly(t *testing.T) {
	body := []byte("0123456789")
	resp := New()
	resp.Body = body

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteResponse(resp))

	out := buf.String()
	assert.Contains(t, out, "Content-Length: 10\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\n0123456789"))
}

func TestHeadersWrittenInStoredOrder(t *testing.T) {
	resp := New()
	resp.Headers.Add("B-Header", "2")
	resp.Headers.Add("A-Header", "1")
	resp.Headers.Add("B-Header", "3")

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteResponse(resp))

	out := buf.String()
	first := strings.Index(out, "B-Header: 2")
	second := strings.Index(out, "A-Header: 1")
	third := strings.Index(out, "B-Header: 3")
	assert.True(t, first >= 0 && second > first && third > second)
}

func TestUnknownStatusGetsGenericPhrase(t *testing.T) {
	resp := New()
	resp.Status = 299

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteResponse(resp))

	assert.True(t, strings.HasPrefix(buf.String(), "HTTP/1.1 299 Unknown\r\n"))
}

func TestReasonPhrases(t *testing.T) {
	assert.Equal(t, "OK", StatusText(StatusOK))
	assert.Equal(t, "Bad Request", StatusText(StatusBadRequest))
	assert.Equal(t, "Not Found", StatusText(StatusNotFound))
	assert.Equal(t, "Method Not Allowed", StatusText(StatusMethodNotAllowed))
	assert.Equal(t, "Internal Server Error", StatusText(StatusInternalServerError))
}

func TestStageOrderEnforced(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	assert.Error(t, w.WriteBody([]byte("too early")))
	assert.Error(t, w.WriteHeaders(headers.New(), 0))

	require.NoError(t, w.WriteStatusLine(StatusOK))
	assert.Error(t, w.WriteStatusLine(StatusOK))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestHadError(t *testing.T) {
	w := NewWriter(failingWriter{})

	err := w.WriteStatusLine(StatusOK)
	require.Error(t, err)
	assert.True(t, w.HadError())
}

func TestTextHelper(t *testing.T) {
	resp := Text(StatusOK, "Hello, World!")

	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "Hello, World!", string(resp.Body))
	ct, _ := resp.Headers.Get("Content-Type")
	assert.Equal(t, "text/plain", ct)
}

func TestJSONHelper(t *testing.T) {
	resp, err := JSON(StatusOK, map[string]string{"status": "healthy"})

	require.NoError(t, err)
	ct, _ := resp.Headers.Get("Content-Type")
	assert.Equal(t, "application/json", ct)
	assert.JSONEq(t, `{"status":"healthy"}`, string(resp.Body))
}

func TestErrorHelperFallsBackToReasonPhrase(t *testing.T) {
	resp := Error(StatusInternalServerError, "")

	assert.Equal(t, StatusInternalServerError, resp.Status)
	assert.Equal(t, "Internal Server Error", string(resp.Body))
}

func TestResponseReset(t *testing.T) {
	resp := Text(StatusNotFound, "gone")

	resp.Reset()
	assert.Equal(t, StatusOK, resp.Status)
	assert.False(t, resp.HasBody())
	assert.Equal(t, 0, resp.Headers.Len())

	resp.Reset() // idempotent
	assert.False(t, resp.HasBody())
}
