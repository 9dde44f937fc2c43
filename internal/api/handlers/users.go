package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventhub/server/internal/api/problem"
	"github.com/eventhub/server/internal/auth"
	"github.com/eventhub/server/internal/domain/users"
)

// TokenCookieName is the HTTP-only cookie carrying the signed token.
const TokenCookieName = "token"

type UsersHandler struct {
	Service *users.Service
	Tokens  *auth.TokenManager
	Env     string
}

func NewUsersHandler(service *users.Service, tokens *auth.TokenManager, env string) *UsersHandler {
	return &UsersHandler{Service: service, Tokens: tokens, Env: env}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register handles POST /register. The password hash is never echoed back.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid request body", err, h.Env)
		return
	}

	user, err := h.Service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			problem.Write(w, r, http.StatusUnprocessableEntity, "Email already registered", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, "Error creating user", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login handles POST /login. An unknown email is a 404, distinct from a
// wrong password, which is a 401.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid request body", err, h.Env)
		return
	}

	user, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			problem.Write(w, r, http.StatusNotFound, "User not found", err, h.Env)
		case errors.Is(err, users.ErrInvalidCredentials):
			problem.Write(w, r, http.StatusUnauthorized, "Invalid password", err, h.Env)
		default:
			problem.Write(w, r, http.StatusInternalServerError, "Database error", err, h.Env)
		}
		return
	}

	token, err := h.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "Failed to generate token", err, h.Env)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, loginResponse{ID: user.ID, Email: user.Email, Name: user.Name})
}

// Logout clears the token cookie. There is no server-side session to revoke.
func (h *UsersHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, true)
}

// List handles GET /users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "Error fetching users", err, h.Env)
		return
	}

	payload := make([]userResponse, 0, len(items))
	for _, user := range items {
		payload = append(payload, userResponse{ID: user.ID, Name: user.Name, Email: user.Email})
	}
	writeJSON(w, http.StatusOK, payload)
}

type profileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    int64  `json:"id"`
}

type profileError struct {
	Message string `json:"message"`
	User    any    `json:"user"`
}

// Profile handles GET /profile. An absent cookie, an invalid token, and a
// user deleted out-of-band are three distinct responses; name and email are
// always re-read from the store, never trusted from the token.
func (h *UsersHandler) Profile(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, profileError{Message: "Unauthorized"})
		return
	}

	claims, err := h.Tokens.Validate(cookie.Value)
	if err != nil {
		writeJSON(w, http.StatusForbidden, profileError{Message: "Invalid token"})
		return
	}

	user, err := h.Service.Profile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, profileError{Message: "User not found"})
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, "Internal server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{Name: user.Name, Email: user.Email, ID: user.ID})
}
