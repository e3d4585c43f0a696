package server

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rtreacy87/http-server/internal/request"
	"github.com/rtreacy87/http-server/internal/response"
)

// ErrRequestTooLarge means the header block did not complete within the
// configured request size cap.
var ErrRequestTooLarge = errors.New("server: request too large")

const readChunkSize = 4096

var readBufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, readChunkSize)
		return &buf
	},
}

// serveConn handles exactly one request on the connection and closes it.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	s.metrics.ConnOpened()
	defer s.metrics.ConnClosed()

	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	raw, err := readRequest(conn, s.cfg.MaxRequestBytes)
	if err != nil {
		if len(raw) == 0 && errors.Is(err, io.EOF) {
			// Connection opened and closed without a request.
			return
		}
		s.log.Warn().Err(err).Msg("request read failed")
		s.respond(conn, response.Text(response.StatusBadRequest, "Bad request"))
		return
	}

	req, err := request.Parse(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("request rejected")
		s.respond(conn, response.Text(response.StatusBadRequest, "Bad request"))
		return
	}

	s.respond(conn, s.handler.Handle(req))
}

func (s *Server) respond(conn net.Conn, resp *response.Response) {
	if err := response.NewWriter(conn).WriteResponse(resp); err != nil {
		s.log.Warn().Err(err).Msg("response write failed")
	}
}

// readRequest accumulates bytes until a complete header block is seen or
// maxBytes is hit. Bytes that arrive past the blank line in the same
// window become the request body; body completion is never inferred from
// headers.
func readRequest(conn io.Reader, maxBytes int) ([]byte, error) {
	chunkPtr := readBufPool.Get().(*[]byte)
	defer readBufPool.Put(chunkPtr)
	chunk := *chunkPtr

	var raw []byte
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			if len(raw)+n > maxBytes {
				return raw, ErrRequestTooLarge
			}
			raw = append(raw, chunk[:n]...)
			if request.Complete(raw) {
				return raw, nil
			}
		}
		if err != nil {
			return raw, err
		}
	}
}
