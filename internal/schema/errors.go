package schema

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalid matches every *ValidationError via errors.Is.
var ErrInvalid = errors.New("invalid data")

// Issue is a single field-level problem.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError lists one issue per violated field, in field declaration order.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Path+": "+is.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Field returns the message recorded for path, or "" when the field is fine.
func (e *ValidationError) Field(path string) string {
	if e == nil {
		return ""
	}
	for _, is := range e.Issues {
		if is.Path == path {
			return is.Message
		}
	}
	return ""
}

// Nest returns a copy whose paths are prefixed with "<section>.<index>.",
// the way the creation form keys its rows (e.g. todos.0.title).
func (e *ValidationError) Nest(section string, index int) *ValidationError {
	if e == nil {
		return nil
	}
	prefix := section + "." + strconv.Itoa(index) + "."
	out := &ValidationError{Issues: make([]Issue, 0, len(e.Issues))}
	for _, is := range e.Issues {
		out.Issues = append(out.Issues, Issue{Path: prefix + is.Path, Message: is.Message})
	}
	return out
}

// AsValidationError unwraps err into a *ValidationError when it carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Merge concatenates the issues of several errors; nil entries are skipped.
// It returns nil when nothing was collected.
func Merge(errs ...*ValidationError) *ValidationError {
	var out []Issue
	for _, e := range errs {
		if e != nil {
			out = append(out, e.Issues...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return &ValidationError{Issues: out}
}
