package forms

import (
	"errors"
	"sort"
	"strings"
)

// ErrPendingUpload means an image field still holds a local-preview
// placeholder at submit time.
var ErrPendingUpload = errors.New("image upload still pending")

// FieldErrors maps a wire field name (or images.<field>) to its message.
type FieldErrors map[string]string

func (e FieldErrors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Fields returns the failing field names, sorted.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ValidationError blocks a submit until the user fixes the listed fields.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
