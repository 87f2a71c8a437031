package handler

import (
	"net/http"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
	"github.com/comanda-app/table-service/internal/service"
)

// AuthHandler handles registration, login and the caller's own profile
type AuthHandler struct {
	auth   *service.AuthService
	scopes *service.ScopeResolver
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, scopes *service.ScopeResolver) *AuthHandler {
	return &AuthHandler{auth: auth, scopes: scopes}
}

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req models.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, user)
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := decodeAndValidate(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}{Token: token, User: *user})
}

// HandleMe handles GET /me and PUT /me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveScope(r, h.scopes)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		api.WriteJSON(w, http.StatusOK, scope)

	case http.MethodPut:
		var req models.ProfileUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			api.WriteError(w, err)
			return
		}

		user, err := h.auth.UpdateProfile(r.Context(), scope, req)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, user)

	default:
		methodNotAllowed(w)
	}
}
