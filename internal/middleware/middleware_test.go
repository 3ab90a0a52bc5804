package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-house/internal/platform/logger"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doFrom(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/assistant/messages", nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 2, CleanupInterval: time.Minute}, nil)
	defer rl.Stop()

	h := rl.Middleware(okHandler())

	for i := 0; i < 2; i++ {
		if w := doFrom(h, "10.0.0.1:1234"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}

	w := doFrom(h, "10.0.0.1:5555")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After=1, got %q", w.Header().Get("Retry-After"))
	}

	// otro cliente tiene su propio bucket
	if w := doFrom(h, "10.0.0.2:1234"); w.Code != http.StatusOK {
		t.Fatalf("other client must not be limited, got %d", w.Code)
	}
	if rl.ClientCount() != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", rl.ClientCount())
	}
}

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, CleanupInterval: time.Minute}, nil)
	defer rl.Stop()

	doFrom(rl.Middleware(okHandler()), "10.0.0.1:1")
	rl.cleanup(time.Now().Add(time.Minute))
	if rl.ClientCount() != 1 {
		t.Fatalf("recent client must be kept")
	}

	rl.cleanup(time.Now().Add(3 * time.Minute))
	if rl.ClientCount() != 0 {
		t.Fatalf("idle client must be dropped, got %d", rl.ClientCount())
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(PerMinute(30), nil)
	rl.Stop()
	rl.Stop()
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Writer: &buf})

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pet not found", http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/pets/nope", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"level=warn", "status=404", "path=/pets/nope", "method=GET", "msg=http_request"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log line %q", want, out)
		}
	}
}
