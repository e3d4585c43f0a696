package static

import (
	"path/filepath"
	"strings"
)

const defaultMIMEType = "application/octet-stream"

var mimeTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".txt":  "text/plain",
	".pdf":  "application/pdf",
}

// MIMEType maps a filename's extension, case-insensitively, to a MIME
// type. Unknown or missing extensions get application/octet-stream.
func MIMEType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return defaultMIMEType
	}
	if mime, ok := mimeTypes[ext]; ok {
		return mime
	}
	return defaultMIMEType
}
