package request

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrMalformedRequest covers every structural violation of the request
// grammar: missing header terminator, short request line, a header line
// without a colon, or a capacity overflow. Callers map it to a 400.
var ErrMalformedRequest = errors.New("request: malformed request")

var (
	crlfcrlf = []byte("\r\n\r\n")
	lflf     = []byte("\n\n")
)

// Parse turns one complete raw request into a Request. The buffer must
// contain at least the full header block; any bytes past the blank-line
// terminator become the body. Body length is whatever the transport
// delivered, never inferred from headers.
func Parse(raw []byte) (*Request, error) {
	headerEnd, bodyStart := findHeaderEnd(raw)
	if headerEnd < 0 {
		return nil, fmt.Errorf("%w: no header terminator", ErrMalformedRequest)
	}

	lineEnd := bytes.IndexByte(raw, '\n')
	if lineEnd < 0 {
		return nil, fmt.Errorf("%w: no request line", ErrMalformedRequest)
	}

	req := New()
	if err := parseRequestLine(trimCR(raw[:lineEnd]), req); err != nil {
		return nil, err
	}

	if start := lineEnd + 1; start < headerEnd {
		if err := parseHeaderBlock(raw[start:headerEnd], req); err != nil {
			return nil, err
		}
	}

	if bodyStart < len(raw) {
		req.Body = append([]byte(nil), raw[bodyStart:]...)
	}
	return req, nil
}

// Complete reports whether raw contains a full header block, i.e. whether
// Parse has everything it needs.
func Complete(raw []byte) bool {
	headerEnd, _ := findHeaderEnd(raw)
	return headerEnd >= 0
}

// findHeaderEnd locates the header/body boundary: the first \r\n\r\n,
// falling back to \n\n. Returns the offset where the header block ends and
// the offset where the body starts, or (-1, -1) if neither terminator is
// present.
func findHeaderEnd(raw []byte) (headerEnd, bodyStart int) {
	if idx := bytes.Index(raw, crlfcrlf); idx >= 0 {
		return idx, idx + len(crlfcrlf)
	}
	if idx := bytes.Index(raw, lflf); idx >= 0 {
		return idx, idx + len(lflf)
	}
	return -1, -1
}

// parseRequestLine splits the request line into method, target and
// version. Tokens past the third are ignored.
func parseRequestLine(line []byte, req *Request) error {
	tokens := bytes.Fields(line)
	if len(tokens) < 3 {
		return fmt.Errorf("%w: request line needs method, target and version", ErrMalformedRequest)
	}

	method, target, version := tokens[0], tokens[1], tokens[2]
	if len(method) > MaxMethodSize || len(target) > MaxTargetSize || len(version) > MaxVersionSize {
		return fmt.Errorf("%w: request line token too large", ErrMalformedRequest)
	}

	req.Method = string(method)
	req.Target = string(target)
	req.Version = string(version)
	return nil
}

// parseHeaderBlock parses Key: Value lines until the block ends or a blank
// line cuts it short. The first bad header fails the whole request.
func parseHeaderBlock(block []byte, req *Request) error {
	for _, line := range bytes.Split(block, []byte("\n")) {
		line = trimCR(line)
		if len(line) == 0 {
			break
		}

		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			return fmt.Errorf("%w: header line without colon", ErrMalformedRequest)
		}

		// Keys keep their case and whitespace; only the value loses
		// leading spaces and tabs.
		key := string(line[:colon])
		value := string(bytes.TrimLeft(line[colon+1:], " \t"))

		if err := req.Headers.Add(key, value); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
	}
	return nil
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}
