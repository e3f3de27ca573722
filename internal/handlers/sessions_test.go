package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mrfarhan786/MVOTE/auth"
	"github.com/mrfarhan786/MVOTE/internal/services"
)

func TestSessionCreateAndGet(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewSessionHandler(services.NewSessionService(db))
	owner := seedUser(t, db, "owner@example.com")

	body := `{"title":"Budget","description":"Q2 budget","startDate":"2026-03-01T09:00:00Z","endDate":"2026-03-03T09:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/voting-sessions", strings.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), owner.ID))
	w := httptest.NewRecorder()
	h.create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["status"] != "pending" {
		t.Fatalf("expected pending status: %#v", created)
	}
	id := strconv.Itoa(int(created["id"].(float64)))

	getReq := httptest.NewRequest(http.MethodGet, "/api/voting-sessions/"+id, nil)
	getReq.SetPathValue("id", id)
	getW := httptest.NewRecorder()
	h.get(getW, getReq)
	if getW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", getW.Code)
	}
}

func TestSessionCreateInvalidDates(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewSessionHandler(services.NewSessionService(db))
	owner := seedUser(t, db, "owner@example.com")

	body := `{"title":"Bad","description":"end before start","startDate":"2026-03-03T09:00:00Z","endDate":"2026-03-01T09:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/voting-sessions", strings.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), owner.ID))
	w := httptest.NewRecorder()
	h.create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSessionUpdateForbiddenForNonOwner(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewSessionHandler(services.NewSessionService(db))
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	session := seedActiveSession(t, db, owner.ID)
	id := strconv.Itoa(int(session.ID))

	req := httptest.NewRequest(http.MethodPatch, "/api/voting-sessions/"+id, strings.NewReader(`{"title":"nope"}`))
	req.SetPathValue("id", id)
	req = req.WithContext(auth.WithUserID(req.Context(), other.ID))
	w := httptest.NewRecorder()
	h.update(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSessionUpdateNotFound(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewSessionHandler(services.NewSessionService(db))
	owner := seedUser(t, db, "owner@example.com")

	req := httptest.NewRequest(http.MethodPatch, "/api/voting-sessions/424242", strings.NewReader(`{"title":"x"}`))
	req.SetPathValue("id", "424242")
	req = req.WithContext(auth.WithUserID(req.Context(), owner.ID))
	w := httptest.NewRecorder()
	h.update(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestSessionListOrdering(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewSessionHandler(services.NewSessionService(db))
	owner := seedUser(t, db, "owner@example.com")
	svc := services.NewSessionService(db)

	for _, title := range []string{"older", "newer"} {
		start := mustParse(t, "2026-03-01T09:00:00Z")
		if title == "newer" {
			start = mustParse(t, "2026-04-01T09:00:00Z")
		}
		if _, err := svc.Create(owner.ID, services.NewSession{Title: title, Description: "d", StartDate: start, EndDate: start.Add(24 * time.Hour)}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/voting-sessions", nil)
	w := httptest.NewRecorder()
	h.list(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 || list[0]["title"] != "newer" {
		t.Fatalf("expected newest first: %#v", list)
	}
}
