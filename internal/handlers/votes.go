package handlers

import (
	"errors"
	"net/http"

	"github.com/mrfarhan786/MVOTE/auth"
	"github.com/mrfarhan786/MVOTE/httpx"
	"github.com/mrfarhan786/MVOTE/internal/services"
)

type VoteHandler struct {
	Ballot *services.BallotService
}

func NewVoteHandler(ballot *services.BallotService) *VoteHandler {
	return &VoteHandler{Ballot: ballot}
}

func (h *VoteHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/voting-sessions/{id}/votes", auth.RequireAuth(http.HandlerFunc(h.list)))
	mux.Handle("POST /api/voting-sessions/{id}/votes", auth.RequireAuth(http.HandlerFunc(h.cast)))
	mux.Handle("GET /api/voting-sessions/{id}/votes/me", auth.RequireAuth(http.HandlerFunc(h.mine)))
}

func (h *VoteHandler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	votes, err := h.Ballot.ListForSession(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, votes)
}

type castRequest struct {
	Choice string `json:"choice"`
}

func (h *VoteHandler) cast(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req castRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	vote, err := h.Ballot.Cast(id, uid, req.Choice)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, vote)
}

// mine returns the caller's vote in the session, or null when absent.
func (h *VoteHandler) mine(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	vote, err := h.Ballot.UserVote(id, uid)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, vote)
}
