package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mrfarhan786/MVOTE/auth"
	"github.com/mrfarhan786/MVOTE/internal/services"
)

func TestCompleteProfile(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewProfileHandler(services.NewIdentityService(db))
	user := seedUser(t, db, "new@example.com")

	body := `{"username":"new_voter","firstName":"New","lastName":"Voter"}`
	req := httptest.NewRequest(http.MethodPost, "/api/complete-profile", strings.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), user.ID))
	w := httptest.NewRecorder()
	h.completeProfile(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["username"] != "new_voter" || got["profileCompleted"] != true {
		t.Fatalf("profile not completed: %#v", got)
	}
}

func TestCompleteProfileUsernameTaken(t *testing.T) {
	db := setupHandlerDB(t)
	identity := services.NewIdentityService(db)
	h := NewProfileHandler(identity)

	taken := "taken"
	if _, err := identity.CreateUser(services.NewUser{Username: &taken, Email: "a@example.com", Password: "Passw0rd"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	user := seedUser(t, db, "b@example.com")

	body := `{"username":"taken","firstName":"B","lastName":"User"}`
	req := httptest.NewRequest(http.MethodPost, "/api/complete-profile", strings.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), user.ID))
	w := httptest.NewRecorder()
	h.completeProfile(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateUserPatch(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewProfileHandler(services.NewIdentityService(db))
	user := seedUser(t, db, "patch@example.com")

	body := `{"firstName":"Patched","profileImage":"/uploads/x.png"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/user", strings.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), user.ID))
	w := httptest.NewRecorder()
	h.updateUser(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["firstName"] != "Patched" || got["profileImage"] != "/uploads/x.png" {
		t.Fatalf("patch not applied: %#v", got)
	}
	if got["email"] != "patch@example.com" {
		t.Fatalf("email clobbered: %#v", got)
	}
}
