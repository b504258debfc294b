package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/exchange-settings-service/internal/handler"
	"github.com/stretchr/testify/assert"
)

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newEngine(p handler.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// nil service: only health routes are exercised here
	handler.Register(r, p, nil, handler.PageDefaults{})
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestReadiness(t *testing.T) {
	cases := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"api_ok", "/api/v1/health/ready", nil, http.StatusOK},
		{"api_down", "/api/v1/health/ready", errors.New("db down"), http.StatusServiceUnavailable},
		{"root_ok", "/ready", nil, http.StatusOK},
		{"root_down", "/ready", errors.New("db down"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(newEngine(stubPinger{err: tc.err}), http.MethodGet, tc.path)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestLiveness_IgnoresDependencies(t *testing.T) {
	r := newEngine(stubPinger{err: errors.New("db down")})
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/live").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/health/live").Code)
}

func TestReadiness_NamedPingers(t *testing.T) {
	ready := handler.NamedPingers{
		"postgres": stubPinger{},
		"redis":    stubPinger{err: errors.New("connection refused")},
		"unused":   nil,
	}
	w := serve(newEngine(ready), http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis: connection refused")

	ready["redis"] = stubPinger{}
	assert.Equal(t, http.StatusOK, serve(newEngine(ready), http.MethodGet, "/ready").Code)
}

func TestHealth_NotFound(t *testing.T) {
	w := serve(newEngine(stubPinger{}), http.MethodGet, "/no-such")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadiness_MethodNotAllowed(t *testing.T) {
	// Gin answers 404 for an unregistered method unless HandleMethodNotAllowed is on.
	w := serve(newEngine(stubPinger{}), http.MethodPost, "/api/v1/health/ready")
	assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, w.Code)
}
