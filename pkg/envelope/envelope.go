// pkg/envelope/envelope.go

// Package envelope standardizes the JSON body every HTTP handler sends back:
// a single shape, picked by which named method the handler invokes.
package envelope

// Envelope is the one body shape this package emits. statusCode mirrors the
// HTTP status line; it is never a second source of truth.
type Envelope struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Data       any          `json:"data"`
	StatusCode int          `json:"statusCode"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// FieldError is one validation finding. Path keeps its original segment
// sequence (strings and indexes) rather than a flattened dotted string.
type FieldError struct {
	Message string `json:"message"`
	Path    []any  `json:"path"`
}

// Options is the bag every formatter accepts. Zero values resolve to the
// invoked method's defaults, computed fresh on each call.
type Options struct {
	Message    string
	Data       any
	StatusCode int
	Errors     []FieldError
}
