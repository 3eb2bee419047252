package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali-hajeh/response-handler/pkg/envelope"
	"github.com/ali-hajeh/response-handler/pkg/middleware/respond"
)

const testSecret = "test-secret"

func newTestMiddleware(t *testing.T, reg *envelope.Registry) *Middleware {
	t.Helper()
	t.Setenv("AUTH_HMAC_SECRET", testSecret)
	t.Setenv("AUTH_DEV_BYPASS", "")
	return ProvideAuthentication(reg)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func guardedStack(mw *Middleware, respMW *respond.Middleware, h http.HandlerFunc) http.Handler {
	return respMW.Middleware()(mw.Middleware()(mw.Require(h)))
}

func TestProvideRegistersUnauthorizedMethod(t *testing.T) {
	reg := envelope.NewRegistry()
	newTestMiddleware(t, reg)

	rec := envelope.NewRecorder()
	m := reg.Bind(rec)
	require.True(t, m.Has(MethodUnauthorized))

	m.Invoke(MethodUnauthorized)
	assert.Equal(t, 401, rec.Code)
	env := rec.Body.(envelope.Envelope)
	assert.False(t, env.Success)
	assert.Equal(t, "Unauthorized", env.Message)
	assert.Equal(t, 401, env.StatusCode)
}

func TestRequireRejectsMissingToken(t *testing.T) {
	reg := envelope.NewRegistry()
	mw := newTestMiddleware(t, reg)
	respMW := respond.ProvideMiddleware(reg)

	h := guardedStack(mw, respMW, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized", body["message"])
}

func TestRequireRejectsBadSignature(t *testing.T) {
	reg := envelope.NewRegistry()
	mw := newTestMiddleware(t, reg)
	respMW := respond.ProvideMiddleware(reg)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "mallory",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	h := guardedStack(mw, respMW, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestValidTokenReachesHandler(t *testing.T) {
	reg := envelope.NewRegistry()
	mw := newTestMiddleware(t, reg)
	respMW := respond.ProvideMiddleware(reg)

	raw := signToken(t, jwt.MapClaims{
		"sub":  "alice",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	var seen User
	h := guardedStack(mw, respMW, func(w http.ResponseWriter, r *http.Request) {
		seen = mw.GetUser(r.Context())
		respond.From(r).Success(nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "alice", seen.Username)
	assert.Equal(t, "admin", seen.Role.Name)
}

func TestEmptySecretRejectsAllTokens(t *testing.T) {
	reg := envelope.NewRegistry()
	t.Setenv("AUTH_HMAC_SECRET", "")
	t.Setenv("AUTH_DEV_BYPASS", "")
	mw := ProvideAuthentication(reg)
	respMW := respond.ProvideMiddleware(reg)

	// A token signed with the empty key must not verify against an
	// unconfigured secret.
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "mallory",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte(""))
	require.NoError(t, err)

	h := guardedStack(mw, respMW, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)

	// Unsigned requests stay rejected too.
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, 401, w.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	reg := envelope.NewRegistry()
	t.Setenv("AUTH_HMAC_SECRET", testSecret)
	t.Setenv("AUTH_LEEWAY_SECONDS", "0")
	mw := ProvideAuthentication(reg)
	respMW := respond.ProvideMiddleware(reg)

	raw := signToken(t, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	h := guardedStack(mw, respMW, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}
