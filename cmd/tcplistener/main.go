// tcplistener accepts raw TCP connections and dumps whatever the parser
// makes of them. Useful for poking the request parser with netcat.
package main

import (
	"flag"
	"io"
	"net"
	"os"

	"github.com/rs/zerolog"

	"github.com/rtreacy87/http-server/internal/request"
)

const maxRequestBytes = 64 << 10

func main() {
	addr := flag.String("addr", ":42069", "listen address")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal().Err(err).Msg("listen failed")
	}
	defer listener.Close()
	log.Info().Str("addr", listener.Addr().String()).Msg("listening")

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Error().Err(err).Msg("accept failed")
			continue
		}
		go dumpRequest(conn, log)
	}
}

func dumpRequest(conn net.Conn, log zerolog.Logger) {
	defer conn.Close()

	var raw []byte
	chunk := make([]byte, 4096)
	for !request.Complete(raw) {
		n, err := conn.Read(chunk)
		raw = append(raw, chunk[:n]...)
		if err != nil {
			if err != io.EOF {
				log.Error().Err(err).Msg("read failed")
				return
			}
			break
		}
		if len(raw) > maxRequestBytes {
			log.Error().Msg("request too large")
			return
		}
	}

	req, err := request.Parse(raw)
	if err != nil {
		log.Error().Err(err).Msg("parse failed")
		return
	}

	log.Info().
		Str("method", req.Method).
		Str("target", req.Target).
		Str("version", req.Version).
		Msg("request line")
	for _, f := range req.Headers.Fields() {
		log.Info().Str("key", f.Key).Str("value", f.Value).Msg("header")
	}
	if req.HasBody() {
		log.Info().Int("bytes", len(req.Body)).Msg("body")
	}
}
