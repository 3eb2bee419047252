// pkg/middleware/auth/middleware.go
package auth

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ali-hajeh/response-handler/pkg/envelope"
	"github.com/ali-hajeh/response-handler/pkg/middleware/respond"
	"github.com/golang-jwt/jwt/v5"
)

// MethodUnauthorized is the custom response method this package registers.
const MethodUnauthorized = "unauthorized"

// Middleware validates bearer tokens (HMAC JWT) and carries the resulting
// user in the request context. Rejections go out through the registry's
// unauthorized envelope, so this package doubles as the reference consumer of
// the custom-method extension point.
type Middleware struct {
	secret    []byte
	issuer    string
	audience  string
	leeway    time.Duration
	devBypass bool
}

// ProvideAuthentication wires env config and registers the unauthorized
// response method.
func ProvideAuthentication(reg *envelope.Registry) *Middleware {
	leeway := 60 * time.Second
	if v := strings.TrimSpace(os.Getenv("AUTH_LEEWAY_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			leeway = time.Duration(n) * time.Second
		}
	}

	m := &Middleware{
		secret:    []byte(os.Getenv("AUTH_HMAC_SECRET")),
		issuer:    strings.TrimSpace(os.Getenv("AUTH_ISSUER")),
		audience:  strings.TrimSpace(os.Getenv("AUTH_AUDIENCE")),
		leeway:    leeway,
		devBypass: os.Getenv("AUTH_DEV_BYPASS") == "true",
	}

	reg.Register(MethodUnauthorized, UnauthorizedFormatter)
	return m
}

// UnauthorizedFormatter emits the 401 envelope. Registered under
// MethodUnauthorized; exported so embedders can seed their own registries.
func UnauthorizedFormatter(s envelope.Sender, args ...any) envelope.Sender {
	return s.SetStatusCode(http.StatusUnauthorized).SendJSON(envelope.Envelope{
		Success:    false,
		Message:    "Unauthorized",
		StatusCode: http.StatusUnauthorized,
	})
}

// Middleware attaches the authenticated user to the context when a valid
// bearer token is present. It never rejects; Require does that per route.
func (m *Middleware) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.devBypass {
				next.ServeHTTP(w, r.WithContext(
					context.WithValue(r.Context(), ctxKey{}, User{Username: "dev", Role: Role{Name: "admin"}})))
				return
			}
			if u, err := m.validateBearer(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Require guards a route: unauthenticated requests get the unauthorized
// envelope and never reach next.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.IsAuthenticated(r.Context()) {
			respond.From(r).Invoke(MethodUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) validateBearer(r *http.Request) (User, error) {
	// No configured secret means no verifiable tokens. Never validate
	// against an empty key; that would accept anything signed with one.
	if len(m.secret) == 0 {
		return User{}, jwt.ErrTokenUnverifiable
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(raw, prefix) {
		return User{}, jwt.ErrTokenMalformed
	}
	raw = strings.TrimSpace(raw[len(prefix):])

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithLeeway(m.leeway),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return User{}, err
	}

	u := User{}
	if sub, err := claims.GetSubject(); err == nil {
		u.Username = sub
	}
	if role, ok := claims["role"].(string); ok {
		u.Role.Name = role
	}
	return u, nil
}

func (m *Middleware) GetUser(ctx context.Context) User {
	if u, ok := ctx.Value(ctxKey{}).(User); ok {
		return u
	}
	return User{}
}

func (m *Middleware) IsAuthenticated(ctx context.Context) bool {
	return m.GetUser(ctx).Username != ""
}

func (m *Middleware) IsRole(ctx context.Context, role Role) bool {
	return m.GetUser(ctx).Role == role
}
