package api

import (
	"strings"
	"testing"
)

func TestRootServesDeniedPage(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "GET", "/", nil, nil)

	if w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "ACCESS DENIED") {
		t.Error("expected ACCESS DENIED in body")
	}
	if !strings.Contains(body, "@unknown") {
		t.Error("expected unknown subject in body")
	}
}

func TestUnknownUsernameDenied(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "GET", "/doesnotexist123", nil, nil)

	if w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "NO MATCH IN DATABASE") {
		t.Error("expected NO MATCH IN DATABASE in body")
	}
	if !strings.Contains(body, "doesnotexist123") {
		t.Error("expected the attempted username in body")
	}
}

func TestKnownUsernameRendersTerminal(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "GET", "/testuser1", nil, nil)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "1,500") {
		t.Error("expected thousands-separated follower count in body")
	}
	if !strings.Contains(body, "8.50%") {
		t.Error("expected formatted engagement rate in body")
	}
	if !strings.Contains(body, "testuser1") {
		t.Error("expected username in body")
	}

	headers := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "no-referrer",
	}
	for k, want := range headers {
		if got := w.Header().Get(k); got != want {
			t.Errorf("header %s = %q, want %q", k, got, want)
		}
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "no-store") {
		t.Errorf("expected no-store cache control, got %q", cc)
	}
}

func TestHostileUsernameSanitized(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "GET", "/%3Cscript%3Ealert(1)%3C/script%3E", nil, nil)

	if w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	body := w.Body.String()
	if strings.Contains(body, "<script>alert") {
		t.Error("raw script tag reached the page")
	}
	if !strings.Contains(body, "scriptalert1script") {
		t.Error("expected the sanitized residue of the attempted username")
	}
}

func TestDeepPathTreatedAsUsername(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "GET", "/some/deep/path", nil, nil)

	if w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "NO MATCH IN DATABASE") {
		t.Error("expected NO MATCH IN DATABASE in body")
	}
}
