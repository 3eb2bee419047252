// pkg/envelope/bound.go
package envelope

import "fmt"

// Methods is the per-request view of the registry: every formatter bound to
// one request's Sender. Built by Registry.Bind, discarded with the request.
type Methods struct {
	sender  Sender
	table   map[string]Formatter
	observe func(name string, status int)
}

type statusReader interface {
	Status() int
}

// SetObserver installs a hook called after every send with the method name
// and the resolved status code.
func (m *Methods) SetObserver(fn func(name string, status int)) {
	m.observe = fn
}

// Invoke dispatches name against the bound table. Unknown names panic; that
// is handler programming error, same as calling a method that does not exist.
func (m *Methods) Invoke(name string, args ...any) Sender {
	f, ok := m.table[name]
	if !ok {
		panic(fmt.Sprintf("envelope: no response method %q", name))
	}
	s := f(m.sender, args...)
	if m.observe != nil {
		if sr, ok := s.(statusReader); ok {
			m.observe(name, sr.Status())
		}
	}
	return s
}

// Has reports whether a method is bound under name.
func (m *Methods) Has(name string) bool {
	_, ok := m.table[name]
	return ok
}

// Typed wrappers over Invoke. They go through the table, so a custom
// registration shadowing a builtin name takes effect here too.

func (m *Methods) Success(o *Options) Sender     { return m.Invoke(MethodSuccess, o) }
func (m *Methods) BadRequest(o *Options) Sender  { return m.Invoke(MethodBadRequest, o) }
func (m *Methods) NotFound(o *Options) Sender    { return m.Invoke(MethodNotFound, o) }
func (m *Methods) ServerError(o *Options) Sender { return m.Invoke(MethodServerError, o) }

func (m *Methods) ValidationError(err DetailedError, o *Options) Sender {
	return m.Invoke(MethodValidationError, err, o)
}
