package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali-hajeh/response-handler/pkg/envelope"
	"github.com/ali-hajeh/response-handler/pkg/middleware/respond"
)

func TestRouterDispatch(t *testing.T) {
	r := NewChi()
	r.Get("/hello", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	r.Mux().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hello", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestNotFoundEmitsEnvelope(t *testing.T) {
	reg := envelope.NewRegistry()
	mw := respond.ProvideMiddleware(reg)

	r := NewChi()
	r.Use(mw.Middleware())
	r.Get("/known", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respond.From(req).Success(nil)
	}))
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respond.From(req).NotFound(nil)
	})

	w := httptest.NewRecorder()
	r.Mux().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 404, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not Found", body["message"])
	assert.Equal(t, float64(404), body["statusCode"])
}

func TestMethodNotAllowedEmitsEnvelope(t *testing.T) {
	reg := envelope.NewRegistry()
	mw := respond.ProvideMiddleware(reg)

	r := NewChi()
	r.Use(mw.Middleware())
	r.Get("/only-get", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respond.From(req).Success(nil)
	}))
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respond.From(req).BadRequest(&envelope.Options{
			Message:    "Method Not Allowed",
			StatusCode: http.StatusMethodNotAllowed,
		})
	})

	w := httptest.NewRecorder()
	r.Mux().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/only-get", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Method Not Allowed", body["message"])
}
