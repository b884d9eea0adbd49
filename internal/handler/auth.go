package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/middleware"
	"emoticon-rest-api/internal/model"
	"emoticon-rest-api/pkg/apierror"
	"emoticon-rest-api/pkg/response"
)

// AuthService is the part of service.AuthService the handler needs.
type AuthService interface {
	SignUp(ctx context.Context, username, password string) (*model.Token, error)
	SignIn(ctx context.Context, username, password string) (*model.Token, error)
}

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth AuthService
	log  logging.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log.With("component", "auth_handler"),
	}
}

// CredentialsRequest represents the sign-up request body.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUp handles POST /auth/sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.ValidationError("invalid request body"))
		return
	}

	token, err := h.auth.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Raw(w, http.StatusCreated, token)
}

// SignIn handles POST /auth/sign-in with an application/x-www-form-urlencoded body.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, apierror.ValidationError("invalid form body"))
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	var missing []apierror.FieldError
	if username == "" {
		missing = append(missing, apierror.FieldError{Field: "username", Message: "field required"})
	}
	if password == "" {
		missing = append(missing, apierror.FieldError{Field: "password", Message: "field required"})
	}
	if len(missing) > 0 {
		response.Error(w, apierror.ValidationError("invalid form body", missing...))
		return
	}

	token, err := h.auth.SignIn(r.Context(), username, password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	response.Raw(w, http.StatusOK, token)
}

// User handles GET /auth/user
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apierror.Unauthorized("").WithChallenge())
		return
	}

	response.Raw(w, http.StatusOK, identity)
}
