// Package static resolves request targets to files under a document root.
package static

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrUnsafePath flags a target containing ".." or "//". Callers map
	// it to a 404, the same as a miss.
	ErrUnsafePath = errors.New("static: unsafe path")
	// ErrNotFound means the candidate path does not exist or is not a
	// regular file.
	ErrNotFound = errors.New("static: file not found")
	// ErrRead means the file existed but could not be fully read.
	// Callers map it to a 500.
	ErrRead = errors.New("static: read failed")
)

// Resource is a fully loaded static file.
type Resource struct {
	Data     []byte
	MIMEType string
}

// Resolver maps request targets to files under a fixed document root.
// Every call re-stats and re-reads; nothing is cached.
type Resolver struct {
	root string
}

func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve turns a target into file bytes plus a MIME type.
//
// The ".."/"//" filter is a coarse traversal defense: it does not
// canonicalize the path or resolve symlinks, it guarantees the candidate
// path cannot climb out of the document root by textual means. The target
// "/" maps to "/index.html"; everything else is appended to the root
// verbatim.
func (r *Resolver) Resolve(target string) (*Resource, error) {
	if !isSafePath(target) {
		return nil, ErrUnsafePath
	}

	if target == "/" {
		target = "/index.html"
	}
	path := r.root + target

	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrNotFound
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()

	// Exactly the stat-reported size; a short read returns nothing
	// rather than a partial body.
	data := make([]byte, info.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	return &Resource{Data: data, MIMEType: MIMEType(path)}, nil
}

func isSafePath(target string) bool {
	return !strings.Contains(target, "..") && !strings.Contains(target, "//")
}
