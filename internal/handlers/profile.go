package handlers

import (
	"net/http"

	"github.com/mrfarhan786/MVOTE/auth"
	"github.com/mrfarhan786/MVOTE/httpx"
	"github.com/mrfarhan786/MVOTE/internal/services"
)

type ProfileHandler struct {
	Identity *services.IdentityService
}

func NewProfileHandler(identity *services.IdentityService) *ProfileHandler {
	return &ProfileHandler{Identity: identity}
}

func (h *ProfileHandler) Register(mux *http.ServeMux) {
	mux.Handle("POST /api/complete-profile", auth.RequireAuth(http.HandlerFunc(h.completeProfile)))
	mux.Handle("PATCH /api/user", auth.RequireAuth(http.HandlerFunc(h.updateUser)))
}

type completeProfileRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// completeProfile sets the username and name fields and flips the
// profile-completed flag in one update.
func (h *ProfileHandler) completeProfile(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var req completeProfileRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Username == "" || req.FirstName == "" || req.LastName == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed",
			map[string]string{"username": "required", "firstName": "required", "lastName": "required"})
		return
	}
	completed := true
	user, err := h.Identity.UpdateUser(uid, services.UserUpdate{
		Username:         &req.Username,
		FirstName:        &req.FirstName,
		LastName:         &req.LastName,
		ProfileCompleted: &completed,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	ProfileImage *string `json:"profileImage"`
}

func (h *ProfileHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var req updateUserRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	user, err := h.Identity.UpdateUser(uid, services.UserUpdate{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
