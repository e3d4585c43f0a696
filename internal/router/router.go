package router

import (
	"errors"

	"github.com/rtreacy87/http-server/internal/request"
	"github.com/rtreacy87/http-server/internal/response"
)

// MaxRoutes bounds the route table.
const MaxRoutes = 50

// ErrCapacityExceeded is returned when registration would grow the table
// past MaxRoutes. A silently dropped route is an availability bug, so the
// overflow fails loudly at startup instead.
var ErrCapacityExceeded = errors.New("router: route table capacity exceeded")

// Handler consumes a request and produces a response.
type Handler interface {
	Handle(req *request.Request) *response.Response
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(req *request.Request) *response.Response

func (f HandlerFunc) Handle(req *request.Request) *response.Response {
	return f(req)
}

// Route binds an exact-match path to a handler.
type Route struct {
	Path    string
	Handler Handler
}

// Router maps request targets to handlers by exact path match, scanned in
// registration order. Registration must complete before any dispatch; the
// table is read-only thereafter.
type Router struct {
	routes   []Route
	notFound Handler
}

func New() *Router {
	return &Router{
		routes:   make([]Route, 0, MaxRoutes),
		notFound: NotFoundHandler{},
	}
}

// Register appends a route in call order. Duplicate paths are accepted;
// the first-registered route wins at dispatch time.
func (r *Router) Register(path string, handler Handler) error {
	if len(r.routes) >= MaxRoutes {
		return ErrCapacityExceeded
	}
	r.routes = append(r.routes, Route{Path: path, Handler: handler})
	return nil
}

// RegisterFunc is Register for a bare function.
func (r *Router) RegisterFunc(path string, handler func(*request.Request) *response.Response) error {
	return r.Register(path, HandlerFunc(handler))
}

// SetNotFound replaces the fallback handler used when no route matches.
func (r *Router) SetNotFound(handler Handler) {
	r.notFound = handler
}

// Dispatch scans the table in registration order and invokes the first
// handler whose path equals the request target byte for byte. No pattern
// matching and no query-string stripping: a target carrying a query string
// will not match a registered path. No match falls through to the
// not-found handler.
func (r *Router) Dispatch(req *request.Request) *response.Response {
	for _, route := range r.routes {
		if route.Path == req.Target {
			return route.Handler.Handle(req)
		}
	}
	return r.notFound.Handle(req)
}

// Len reports the number of registered routes.
func (r *Router) Len() int {
	return len(r.routes)
}

// NotFoundHandler produces the canonical 404 response.
type NotFoundHandler struct{}

func (NotFoundHandler) Handle(*request.Request) *response.Response {
	return response.Text(response.StatusNotFound, "Page not found")
}
