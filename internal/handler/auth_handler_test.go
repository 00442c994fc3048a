package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/taskman/internal/model"
)

// --- モック定義 ---

type mockAuthService struct {
	signupFn func(ctx context.Context, email, plainPassword, roleStr string) (string, error)
	signinFn func(ctx context.Context, email, plainPassword string) (string, error)
}

func (m *mockAuthService) Signup(ctx context.Context, email, plainPassword, roleStr string) (string, error) {
	if m.signupFn != nil {
		return m.signupFn(ctx, email, plainPassword, roleStr)
	}
	return "signup-token", nil
}

func (m *mockAuthService) Signin(ctx context.Context, email, plainPassword string) (string, error) {
	if m.signinFn != nil {
		return m.signinFn(ctx, email, plainPassword)
	}
	return "signin-token", nil
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) apiErrorResponse {
	t.Helper()
	var body apiErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

// --- テスト ---

func TestAuthHandler_Signup_ReturnsToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		signupFn: func(ctx context.Context, email, plainPassword, roleStr string) (string, error) {
			if email != "alice@example.com" || roleStr != "USER" {
				t.Errorf("signup args = (%q, %q)", email, roleStr)
			}
			return "new-token", nil
		},
	})

	body := `{"email":"alice@example.com","password":"Passw0rd","role":"USER"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	var resp tokenResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.BearerToken != "new-token" {
		t.Errorf("bearer_token = %q, want new-token", resp.BearerToken)
	}
}

func TestAuthHandler_Signup_DuplicateEmailReturns409(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		signupFn: func(ctx context.Context, email, plainPassword, roleStr string) (string, error) {
			return "", model.NewDuplicateEmailError()
		},
	})

	body := `{"email":"dup@example.com","password":"Passw0rd","role":"USER"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	if body := decodeAPIError(t, w); body.Code != model.ErrCodeDuplicateEmail {
		t.Errorf("error code = %q, want DUPLICATE_EMAIL", body.Code)
	}
}

func TestAuthHandler_Signup_InvalidBodyReturns400(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	for _, body := range []string{"not json", `{"email":"","password":""}`, `{}`} {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Signup(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestAuthHandler_Signin_WrongPasswordReturns401(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		signinFn: func(ctx context.Context, email, plainPassword string) (string, error) {
			return "", model.NewWrongPasswordError()
		},
	})

	body := `{"email":"alice@example.com","password":"Wrong123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Signin(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if body := decodeAPIError(t, w); body.Code != model.ErrCodeWrongPassword {
		t.Errorf("error code = %q, want WRONG_PASSWORD", body.Code)
	}
}

func TestAuthHandler_Signin_ReturnsToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	body := `{"email":"alice@example.com","password":"Passw0rd"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Signin(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	var resp tokenResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.BearerToken != "signin-token" {
		t.Errorf("bearer_token = %q, want signin-token", resp.BearerToken)
	}
}
