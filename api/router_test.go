package api

import (
	"io"
	"net/http/httptest"
	"testing"

	"vhsghost/signal-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// newTestAPI builds the full routing table with no stores attached,
// which exercises every degraded-mode path without Redis or R2.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("host.origin", "https://vhs-ghost.com")
	viper.Set("cors.allowed_origins", []string{"https://vhs-ghost.com", "http://localhost:5000"})
	viper.Set("video.allowed_referrers", []string{"https://vhs-ghost.com", "http://localhost"})
	viper.Set("secrets.emails_api", "")

	a := &API{Router: gin.New()}
	a.Router.Use(
		middleware.NewCORSMiddleware(),
		middleware.NewRequestIDMiddleware(),
	)
	a.registerRoutes()

	return a
}

func doRequest(a *API, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	return w
}

func TestPreflightEchoesAllowedOrigin(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "OPTIONS", "/api/email", nil, map[string]string{
		"Origin": "http://localhost:5000",
	})

	if w.Code != 204 {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5000" {
		t.Errorf("expected allowed origin echoed back, got %q", got)
	}
}

func TestPreflightFallsBackForUnknownOrigin(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "OPTIONS", "/api/email", nil, map[string]string{
		"Origin": "https://evil.example",
	})

	if w.Code != 204 {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://vhs-ghost.com" {
		t.Errorf("expected fallback to production origin, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("unexpected allowed methods %q", got)
	}
}
