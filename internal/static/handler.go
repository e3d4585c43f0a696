package static

import (
	"errors"

	"github.com/rtreacy87/http-server/internal/request"
	"github.com/rtreacy87/http-server/internal/response"
)

type resolver interface {
	Resolve(target string) (*Resource, error)
}

// FileHandler serves files under a document root as a router handler.
type FileHandler struct {
	resolver resolver
}

func NewFileHandler(root string) *FileHandler {
	return &FileHandler{resolver: NewResolver(root)}
}

func (h *FileHandler) Handle(req *request.Request) *response.Response {
	res, err := h.resolver.Resolve(req.Target)
	if err != nil {
		if errors.Is(err, ErrRead) {
			return response.Text(response.StatusInternalServerError, "Internal server error")
		}
		// Unsafe paths are indistinguishable from misses on the wire.
		return response.Text(response.StatusNotFound, "File not found")
	}

	resp := response.New()
	resp.Body = res.Data
	resp.Headers.Add("Content-Type", res.MIMEType)
	resp.Headers.Add("Cache-Control", "public, max-age=3600")
	return resp
}
