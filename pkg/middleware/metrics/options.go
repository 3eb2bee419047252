// pkg/middleware/metrics/options.go
package metrics

import (
	"net/http"
	"strings"
	"sync"
)

var (
	optMu     sync.RWMutex
	skipPaths = map[string]struct{}{"/metrics": {}}

	pathNormalizer = func(r *http.Request) string { return r.URL.Path }
)

// AddSkipPaths extends the skip list (default keeps only "/metrics").
func AddSkipPaths(paths ...string) {
	optMu.Lock()
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p != "" {
			skipPaths[p] = struct{}{}
		}
	}
	optMu.Unlock()
}

// SetPathNormalizer allows callers to normalize the URI label (e.g., collapse
// IDs). By default it returns r.URL.Path unchanged.
func SetPathNormalizer(fn func(*http.Request) string) {
	if fn == nil {
		return
	}
	optMu.Lock()
	pathNormalizer = fn
	optMu.Unlock()
}

func isSkipPath(r *http.Request) bool {
	optMu.RLock()
	_, ok := skipPaths[r.URL.Path]
	optMu.RUnlock()
	return ok
}

func normalizePath(r *http.Request) string {
	optMu.RLock()
	fn := pathNormalizer
	optMu.RUnlock()
	return fn(r)
}
