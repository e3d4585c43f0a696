package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rtreacy87/http-server/internal/request"
	"github.com/rtreacy87/http-server/internal/response"
	"github.com/rtreacy87/http-server/internal/router"
	"github.com/rtreacy87/http-server/internal/server"
	"github.com/rtreacy87/http-server/internal/static"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	docRoot := flag.String("root", "./static", "document root for static files")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "per-connection read deadline")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	cfg := server.DefaultConfig()
	cfg.Addr = *addr
	cfg.ReadTimeout = *readTimeout

	r := router.New()
	srv := server.New(cfg, r, log)

	// A dropped route is a silent availability bug, so registration
	// failures are fatal at startup.
	if err := registerRoutes(r, srv, *docRoot); err != nil {
		log.Fatal().Err(err).Msg("route registration failed")
	}

	srv.Use(server.RecoveryMiddleware(log))
	srv.Use(server.LoggingMiddleware(log))
	srv.Use(server.MetricsMiddleware(srv.Metrics()))

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			return srv.Close()
		case <-ctx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

func registerRoutes(r *router.Router, srv *server.Server, docRoot string) error {
	routes := []struct {
		path    string
		handler router.Handler
	}{
		{"/", homeHandler{}},
		{"/hello", helloHandler{}},
		{"/health", healthHandler{}},
		{"/metrics", server.NewMetricsHandler(srv.Metrics())},
	}
	for _, rt := range routes {
		if err := r.Register(rt.path, rt.handler); err != nil {
			return err
		}
	}

	// Anything without an exact route falls through to the file server.
	r.SetNotFound(static.NewFileHandler(docRoot))
	return nil
}

type homeHandler struct{}

func (homeHandler) Handle(*request.Request) *response.Response {
	return response.HTML(response.StatusOK,
		"<html><body><h1>Welcome to our HTTP Server!</h1></body></html>")
}

type helloHandler struct{}

func (helloHandler) Handle(*request.Request) *response.Response {
	return response.Text(response.StatusOK, "Hello, World!")
}

type healthHandler struct{}

func (healthHandler) Handle(*request.Request) *response.Response {
	resp, err := response.JSON(response.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return response.Error(response.StatusInternalServerError, "")
	}
	return resp
}
