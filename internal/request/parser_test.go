package request

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleGETRequest(t *testing.T) {
	req, err := Parse([]byte("GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n"))

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/index.html", req.Target)
	assert.Equal(t, "HTTP/1.1", req.Version)

	host, ok := req.Headers.Get("host")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)
	assert.False(t, req.HasBody())
}

func TestNoHeaders(t *testing.T) {
	req, err := Parse([]byte("GET / HTTP/1.1\r\n\r\n"))

	require.NoError(t, err)
	assert.Equal(t, "/", req.Target)
	assert.Equal(t, 0, req.Headers.Len())
}

func TestBareLFTerminator(t *testing.T) {
	req, err := Parse([]byte("GET /a HTTP/1.0\nHost: example.com\n\n"))

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "HTTP/1.0", req.Version)

	host, ok := req.Headers.Get("Host")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)
}

func TestMissingHeaderTerminator(t *testing.T) {
	_, err := Parse([]byte("GET / HTTP/1.1\r\nHost: example.com\r\n"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestIncompleteRequestLine(t *testing.T) {
	_, err := Parse([]byte("GET /path\r\n\r\n"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestExtraRequestLineTokensIgnored(t *testing.T) {
	req, err := Parse([]byte("GET / HTTP/1.1 junk more\r\n\r\n"))

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/", req.Target)
	assert.Equal(t, "HTTP/1.1", req.Version)
}

func TestHeaderWithoutColonFailsWholeRequest(t *testing.T) {
	raw := "GET / HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"this line has no colon\r\n" +
		"Accept: */*\r\n" +
		"\r\n"

	req, err := Parse([]byte(raw))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
	assert.Nil(t, req)
}

func TestHeaderValueLeadingWhitespaceTrimmed(t *testing.T) {
	req, err := Parse([]byte("GET / HTTP/1.1\r\nHost: \t  example.com\r\n\r\n"))

	require.NoError(t, err)
	host, _ := req.Headers.Get("Host")
	assert.Equal(t, "example.com", host)
}

func TestHeaderKeyCasePreserved(t *testing.T) {
	req, err := Parse([]byte("GET / HTTP/1.1\r\nX-CuStOm: v\r\n\r\n"))

	require.NoError(t, err)
	assert.Equal(t, "X-CuStOm", req.Headers.Fields()[0].Key)

	// Consumers still match case-insensitively
	v, ok := req.Headers.Get("x-custom")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestDuplicateHeadersNotMerged(t *testing.T) {
	raw := "GET / HTTP/1.1\r\n" +
		"Accept: text/html\r\n" +
		"Accept: text/plain\r\n" +
		"\r\n"

	req, err := Parse([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, []string{"text/html", "text/plain"}, req.Headers.GetAll("Accept"))
}

func TestBlankLineEndsHeadersEarly(t *testing.T) {
	// A stray blank line inside the block ends header parsing; the rest
	// is not interpreted as headers.
	raw := "GET / HTTP/1.1\r\nHost: a\r\n\nIgnored: b\r\n\r\n"

	req, err := Parse([]byte(raw))

	require.NoError(t, err)
	_, ok := req.Headers.Get("Ignored")
	assert.False(t, ok)
}

func TestTooManyHeaders(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("GET / HTTP/1.1\r\n")
	for i := 0; i < 51; i++ {
		fmt.Fprintf(&sb, "X-Header-%d: v\r\n", i)
	}
	sb.WriteString("\r\n")

	_, err := Parse([]byte(sb.String()))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestOversizeHeaderRejected(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nX-Big: " + strings.Repeat("v", 257) + "\r\n\r\n"

	_, err := Parse([]byte(raw))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestBodyIsTransportRemainder(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\nHost: x\r\n\r\nhello body"

	req, err := Parse([]byte(raw))

	require.NoError(t, err)
	assert.True(t, req.HasBody())
	assert.Equal(t, "hello body", string(req.Body))
}

func TestNoBodyIsNil(t *testing.T) {
	req, err := Parse([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n"))

	require.NoError(t, err)
	assert.Nil(t, req.Body)
}

func TestBodyIsCopied(t *testing.T) {
	raw := []byte("POST / HTTP/1.1\r\n\r\nabc")

	req, err := Parse(raw)
	require.NoError(t, err)

	raw[len(raw)-1] = 'z'
	assert.Equal(t, "abc", string(req.Body))
}

func TestRequestLineTokenTooLarge(t *testing.T) {
	raw := "GET /" + strings.Repeat("a", MaxTargetSize) + " HTTP/1.1\r\n\r\n"

	_, err := Parse([]byte(raw))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestReset(t *testing.T) {
	req, err := Parse([]byte("POST / HTTP/1.1\r\nHost: x\r\n\r\nbody"))
	require.NoError(t, err)

	req.Reset()
	assert.Empty(t, req.Method)
	assert.False(t, req.HasBody())
	assert.Equal(t, 0, req.Headers.Len())

	req.Reset() // idempotent
	assert.False(t, req.HasBody())
}
