package headers

import (
	"errors"
	"strings"
)

// Capacity limits. A field whose key or value exceeds MaxFieldSize is
// rejected outright, never truncated.
const (
	MaxFields    = 50
	MaxFieldSize = 256
)

var (
	ErrTooManyFields = errors.New("headers: too many header fields")
	ErrFieldTooLarge = errors.New("headers: header key or value too large")
)

// Field is a single header key/value pair. Keys are stored exactly as
// given; case-insensitive matching happens at lookup time.
type Field struct {
	Key   string
	Value string
}

// Headers is an ordered sequence of header fields. Insertion order is
// preserved and duplicate keys are kept as separate fields.
type Headers struct {
	fields []Field
}

func New() *Headers {
	return &Headers{}
}

// Add appends a field, enforcing the capacity and per-field size limits.
func (h *Headers) Add(key, value string) error {
	if len(h.fields) >= MaxFields {
		return ErrTooManyFields
	}
	if len(key) > MaxFieldSize || len(value) > MaxFieldSize {
		return ErrFieldTooLarge
	}
	h.fields = append(h.fields, Field{Key: key, Value: value})
	return nil
}

// Get returns the first value whose key matches case-insensitively.
func (h *Headers) Get(key string) (string, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}
	return "", false
}

// GetAll returns every value whose key matches case-insensitively, in
// insertion order.
func (h *Headers) GetAll(key string) []string {
	var values []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Key, key) {
			values = append(values, f.Value)
		}
	}
	return values
}

// Fields returns the stored fields in insertion order. The returned slice
// must not be mutated.
func (h *Headers) Fields() []Field {
	return h.fields
}

// Len reports the number of stored fields.
func (h *Headers) Len() int {
	return len(h.fields)
}

// Reset drops all fields so the instance can be reused. Safe to call on an
// empty or already-reset instance.
func (h *Headers) Reset() {
	h.fields = h.fields[:0]
}
