// pkg/envelope/registry.go
package envelope

import (
	"sync"

	"go.uber.org/zap"
)

// Formatter is an unbound response method: given a Sender and the caller's
// arguments it writes one envelope. The registry stores these; binding to a
// concrete request happens per request, nowhere else.
type Formatter func(s Sender, args ...any) Sender

// Canonical names of the seeded methods.
const (
	MethodSuccess         = "success"
	MethodBadRequest      = "badRequest"
	MethodNotFound        = "notFound"
	MethodServerError     = "serverError"
	MethodValidationError = "validationError"
)

// Registry maps method names to formatters. Registration is expected during
// process setup, but the table is safe for registration concurrent with
// traffic; a reader never observes a half-written entry.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]Formatter
	log     *zap.Logger
}

// NewRegistry returns a registry seeded with the five builtin methods.
func NewRegistry() *Registry {
	r := &Registry{
		methods: make(map[string]Formatter, 8),
		log:     zap.NewNop(),
	}
	r.methods[MethodSuccess] = successFormatter
	r.methods[MethodBadRequest] = errorFormatter("Bad Request", 400)
	r.methods[MethodNotFound] = errorFormatter("Not Found", 404)
	r.methods[MethodServerError] = errorFormatter("Internal Server Error", 500)
	r.methods[MethodValidationError] = validationFormatter
	return r
}

// SetLogger attaches a logger used to surface override warnings.
func (r *Registry) SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	r.mu.Lock()
	r.log = l
	r.mu.Unlock()
}

// Register makes f callable under name on every subsequently bound request.
// Re-registering an existing name, builtin or custom, replaces it; last write
// wins. The collision is logged, not rejected.
func (r *Registry) Register(name string, f Formatter) {
	if name == "" || f == nil {
		panic("envelope: method name and formatter required")
	}
	r.mu.Lock()
	if _, dup := r.methods[name]; dup {
		r.log.Warn("response method overridden", zap.String("name", name))
	}
	r.methods[name] = f
	r.mu.Unlock()
}

// Snapshot copies the current table. Later registrations do not show up in a
// snapshot already taken.
func (r *Registry) Snapshot() map[string]Formatter {
	r.mu.RLock()
	out := make(map[string]Formatter, len(r.methods))
	for n, f := range r.methods {
		out[n] = f
	}
	r.mu.RUnlock()
	return out
}

// Bind attaches every method currently registered to s. Each call returns a
// fresh Methods; two requests never share one.
func (r *Registry) Bind(s Sender) *Methods {
	return &Methods{sender: s, table: r.Snapshot()}
}

// Default is the process-wide registry used by the package-level helpers and
// by middleware constructed without an explicit registry.
var Default = NewRegistry()

// Register adds a custom method to the Default registry.
func Register(name string, f Formatter) { Default.Register(name, f) }
