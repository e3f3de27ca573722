package handlers

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/mrfarhan786/MVOTE/internal/models"
	"github.com/mrfarhan786/MVOTE/internal/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, err := services.NewIdentityService(db).CreateUser(services.NewUser{Email: email, Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedActiveSession(t *testing.T, db *gorm.DB, owner uint) *models.VotingSession {
	t.Helper()
	svc := services.NewSessionService(db)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	session, err := svc.Create(owner, services.NewSession{Title: "Budget", Description: "d", StartDate: start, EndDate: start.Add(48 * time.Hour)})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	status := models.StatusActive
	session, err = svc.Update(session.ID, owner, services.SessionUpdate{Status: &status})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	return session
}

func newNotifier(db *gorm.DB) *services.NotifierService {
	return services.NewNotifierService(db, slog.Default())
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return ts
}
