// pkg/envelope/validation.go
package envelope

import "strings"

// DetailedError is what validationError consumes: any validation failure that
// can report its findings. Wrap your validation library's error type with a
// small adapter satisfying this.
type DetailedError interface {
	Details() []FieldError
}

// ValidationFailure is a ready-made DetailedError for callers without a
// validation library of their own.
type ValidationFailure struct {
	Fields []FieldError
}

func (e *ValidationFailure) Details() []FieldError { return e.Fields }

func (e *ValidationFailure) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
