package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	// Burst of 2 is allowed, the third request is rejected.
	if code := do("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("first request: expected 200, got %d", code)
	}
	if code := do("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("second request: expected 200, got %d", code)
	}
	if code := do("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("third request: expected 429, got %d", code)
	}

	// Another IP gets its own bucket.
	if code := do("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("other client: expected 200, got %d", code)
	}
}
