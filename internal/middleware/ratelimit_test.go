package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/hitoshi/taskman/internal/model"
)

func newTestRateLimiter(generalBurst, authBurst int) *RateLimiter {
	// レートをほぼゼロにしてバースト分のみ許可する
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:     rate.Limit(0.0001),
		GeneralBurst:    generalBurst,
		AuthRate:        rate.Limit(0.0001),
		AuthBurst:       authBurst,
		CleanupInterval: 1 * time.Hour,
	})
	return rl
}

func TestRateLimiter_AuthMiddleware_BlocksAfterBurst(t *testing.T) {
	rl := newTestRateLimiter(10, 2)
	defer rl.Stop()

	var called int
	handler := rl.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}

	// バーストを使い切った3回目は429
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
	if called != 2 {
		t.Errorf("handler called %d times, want 2", called)
	}
}

func TestRateLimiter_AuthMiddleware_SeparatePerIP(t *testing.T) {
	rl := newTestRateLimiter(10, 1)
	defer rl.Stop()

	handler := rl.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// IP Aがバーストを使い切る
	reqA := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	reqA.RemoteAddr = "10.0.0.1:1000"
	handler.ServeHTTP(httptest.NewRecorder(), reqA)

	// IP Bは影響を受けない
	reqB := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	reqB.RemoteAddr = "10.0.0.2:1000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, reqB)

	if w.Code != http.StatusOK {
		t.Errorf("status for second IP = %d, want 200", w.Code)
	}
}

func TestRateLimiter_GeneralMiddleware_KeyedByUserID(t *testing.T) {
	rl := newTestRateLimiter(1, 10)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(userID int64) int {
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		identity := model.Identity{UserID: userID, Role: model.RoleUser}
		req = req.WithContext(ContextWithIdentity(req.Context(), identity))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	// ユーザー1がバーストを使い切る
	if code := send(1); code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", code)
	}
	if code := send(1); code != http.StatusTooManyRequests {
		t.Errorf("second request for same user: status = %d, want 429", code)
	}

	// 同一IPでも別ユーザーは制限されない
	if code := send(2); code != http.StatusOK {
		t.Errorf("request for another user: status = %d, want 200", code)
	}
}
