package handlers

import (
	"net/http"

	"github.com/mrfarhan786/MVOTE/auth"
	"github.com/mrfarhan786/MVOTE/httpx"
	"github.com/mrfarhan786/MVOTE/internal/models"
	"github.com/mrfarhan786/MVOTE/internal/services"
)

type NotificationHandler struct {
	Notifier *services.NotifierService
}

func NewNotificationHandler(notifier *services.NotifierService) *NotificationHandler {
	return &NotificationHandler{Notifier: notifier}
}

func (h *NotificationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/notifications", h.list)
	mux.Handle("PATCH /api/notifications/{id}/read", auth.RequireAuth(http.HandlerFunc(h.markRead)))
	mux.Handle("DELETE /api/notifications/{id}", auth.RequireAuth(http.HandlerFunc(h.deleteOne)))
	mux.Handle("DELETE /api/notifications", auth.RequireAuth(http.HandlerFunc(h.deleteAll)))
}

// list answers an empty array for anonymous callers so the dropdown renders in
// demo mode.
func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok || uid == 0 {
		httpx.JSON(w, http.StatusOK, []models.Notification{})
		return
	}
	list, err := h.Notifier.ListForUser(uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *NotificationHandler) markRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Notifier.MarkRead(id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *NotificationHandler) deleteOne(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Notifier.DeleteOne(id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *NotificationHandler) deleteAll(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Notifier.DeleteAllForUser(uid); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
