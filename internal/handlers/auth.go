package handlers

import (
	"fmt"
	"net/http"

	"github.com/mrfarhan786/MVOTE/auth"
	"github.com/mrfarhan786/MVOTE/httpx"
	"github.com/mrfarhan786/MVOTE/internal/services"
)

type AuthHandler struct {
	Identity *services.IdentityService
	Notifier *services.NotifierService
}

func NewAuthHandler(identity *services.IdentityService, notifier *services.NotifierService) *AuthHandler {
	return &AuthHandler{Identity: identity, Notifier: notifier}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/register", h.register)
	mux.HandleFunc("POST /api/login", h.login)
	mux.HandleFunc("POST /api/logout", h.logout)
	mux.HandleFunc("GET /api/user", h.currentUser)
}

type registerRequest struct {
	Username  *string `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	user, err := h.Identity.CreateUser(services.NewUser{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Best effort: registration succeeds even if the welcome note fails.
	h.Notifier.Dispatch(user.ID, "Welcome to MVote!",
		"Welcome! Your account has been created successfully. Start by creating your first voting session.")

	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Identifier == "" || req.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "identifier_and_password_required", nil)
		return
	}
	user, err := h.Identity.VerifyCredentials(req.Identifier, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	greeting := "Good to see you again"
	if user.FirstName != "" {
		greeting = fmt.Sprintf("Good to see you again, %s", user.FirstName)
	}
	h.Notifier.Dispatch(user.ID, "Welcome Back!", greeting+"! You've successfully logged in.")

	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	w.WriteHeader(http.StatusOK)
}

// currentUser answers with the authenticated user or null, never 401; the SPA
// uses it to probe session state.
func (h *AuthHandler) currentUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok || uid == 0 {
		httpx.JSON(w, http.StatusOK, nil)
		return
	}
	user, err := h.Identity.GetUser(uid)
	if err != nil {
		httpx.JSON(w, http.StatusOK, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
