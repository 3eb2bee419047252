// pkg/middleware/respond/middleware.go
package respond

import (
	"context"
	"net/http"

	"github.com/ali-hajeh/response-handler/pkg/envelope"
)

type ctxKey struct{}

// Middleware binds the registry's response methods to each request. The
// registry holds unbound formatters; this is the only place a formatter gets
// tied to a concrete response writer.
type Middleware struct {
	registry *envelope.Registry
	observer func(method string, status int)
}

func ProvideMiddleware(reg *envelope.Registry) *Middleware {
	return &Middleware{registry: reg}
}

// New returns a Middleware over the Default registry.
func New() *Middleware { return &Middleware{registry: envelope.Default} }

// SetObserver forwards every (method, status) send to fn. Metrics wiring
// hangs off this.
func (m *Middleware) SetObserver(fn func(method string, status int)) {
	m.observer = fn
}

// Middleware snapshots the registry per request, binds it to that request's
// writer, stashes the bound set in the context, and always proceeds.
func (m *Middleware) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bound := m.registry.Bind(envelope.NewHTTPSender(w))
			if m.observer != nil {
				bound.SetObserver(m.observer)
			}
			ctx := context.WithValue(r.Context(), ctxKey{}, bound)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// From returns the bound methods for r. If the middleware never ran it
// returns methods bound to a throwaway recorder rather than nil, so handler
// code stays panic-free in tests wired without the middleware.
func From(r *http.Request) *envelope.Methods {
	if m, ok := r.Context().Value(ctxKey{}).(*envelope.Methods); ok {
		return m
	}
	return envelope.Default.Bind(envelope.NewRecorder())
}
