package api

import (
	"encoding/json"
	"testing"
)

func TestChunkListEmptyWithoutBucket(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "GET", "/api/chunks", nil, nil)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Chunks []string `json:"chunks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Chunks) != 0 {
		t.Errorf("expected empty chunk list, got %v", resp.Chunks)
	}

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard CORS for chunk listing, got %q", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "max-age=300" {
		t.Errorf("expected 5 minute cache directive, got %q", got)
	}
}

func TestVideoBlocksForeignReferrer(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "GET", "/api/video/chunk_01.mp4", nil, map[string]string{
		"Referer": "https://evil.example/page",
	})

	if w.Code != 403 {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestVideoBlocksForeignOrigin(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "GET", "/api/video/chunk_01.mp4", nil, map[string]string{
		"Origin": "https://evil.example",
	})

	if w.Code != 403 {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestVideoAllowsDirectAccess(t *testing.T) {
	a := newTestAPI(t)

	// No Referer and no Origin passes the gate; without a bucket the
	// service then reports unavailable.
	w := doRequest(a, "GET", "/api/video/chunk_01.mp4", nil, nil)

	if w.Code != 503 {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestVideoAllowsListedReferrer(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(a, "GET", "/api/video/chunk_01.mp4", nil, map[string]string{
		"Referer": "https://vhs-ghost.com/testuser1",
	})

	if w.Code != 503 {
		t.Fatalf("expected 503 past the referrer gate, got %d", w.Code)
	}
}
