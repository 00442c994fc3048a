package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Signup は新規ユーザーを登録し、Bearerトークンを発行する。
	Signup(ctx context.Context, email, plainPassword, roleStr string) (string, error)
	// Signin は登録済みユーザーを認証し、Bearerトークンを発行する。
	Signin(ctx context.Context, email, plainPassword string) (string, error)
}

// AuthHandler はサインアップ・サインインのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// signupRequest はサインアップリクエストのボディ。
type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// signinRequest はサインインリクエストのボディ。
type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse は発行されたBearerトークンのレスポンス。
type tokenResponse struct {
	BearerToken string `json:"bearer_token"`
}

// Signup はユーザー登録を処理する。
// POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeInvalidBody(w)
		return
	}

	bearerToken, err := h.service.Signup(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{BearerToken: bearerToken})
}

// Signin はサインインを処理する。
// POST /auth/signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeInvalidBody(w)
		return
	}

	bearerToken, err := h.service.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{BearerToken: bearerToken})
}
