package response

import (
	"fmt"
	"io"

	"github.com/rtreacy87/http-server/internal/headers"
)

// writerState tracks what has been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer serializes a response to an io.Writer in wire order: status line,
// stored headers, synthesized Content-Length, blank line, body.
type Writer struct {
	w        io.Writer
	state    writerState
	hadError bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// WriteResponse serializes a complete response, driving every stage in
// order with no interleaving.
func (w *Writer) WriteResponse(resp *Response) error {
	if err := w.WriteStatusLine(resp.Status); err != nil {
		return err
	}
	if err := w.WriteHeaders(resp.Headers, len(resp.Body)); err != nil {
		return err
	}
	return w.WriteBody(resp.Body)
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>\r\n".
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return fmt.Errorf("response: status line already written")
	}

	statusLine := fmt.Sprintf("HTTP/1.1 %d %s\r\n", code, StatusText(code))
	if _, err := io.WriteString(w.w, statusLine); err != nil {
		w.hadError = true
		return err
	}

	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes the stored header fields in order, then a
// Content-Length header if and only if bodyLen is positive, then the blank
// line that terminates the header block.
func (w *Writer) WriteHeaders(h *headers.Headers, bodyLen int) error {
	if w.state != stateStatusWritten {
		return fmt.Errorf("response: must write status line before headers")
	}

	if h != nil {
		for _, f := range h.Fields() {
			line := fmt.Sprintf("%s: %s\r\n", f.Key, f.Value)
			if _, err := io.WriteString(w.w, line); err != nil {
				w.hadError = true
				return err
			}
		}
	}

	if bodyLen > 0 {
		line := fmt.Sprintf("Content-Length: %d\r\n", bodyLen)
		if _, err := io.WriteString(w.w, line); err != nil {
			w.hadError = true
			return err
		}
	}

	if _, err := io.WriteString(w.w, "\r\n"); err != nil {
		w.hadError = true
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the raw body bytes, exactly len(p) of them, with no
// terminator appended.
func (w *Writer) WriteBody(p []byte) error {
	if w.state != stateHeadersWritten {
		return fmt.Errorf("response: must write status line and headers before body")
	}

	if len(p) > 0 {
		if _, err := w.w.Write(p); err != nil {
			w.hadError = true
			return err
		}
	}

	w.state = stateBodyWritten
	return nil
}

// HadError reports whether any write failed at the transport.
func (w *Writer) HadError() bool {
	return w.hadError
}
