package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/mrfarhan786/MVOTE/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	testEnd   = testStart.Add(48 * time.Hour)
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// One connection keeps sqlite from throwing busy errors under the
	// concurrent cast test.
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

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	svc := NewIdentityService(db)
	user, err := svc.CreateUser(NewUser{Email: email, Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createActiveSession(t *testing.T, db *gorm.DB, owner uint) *models.VotingSession {
	t.Helper()
	svc := NewSessionService(db)
	session, err := svc.Create(owner, NewSession{
		Title:       "Budget",
		Description: "Quarterly budget vote",
		StartDate:   testStart,
		EndDate:     testEnd,
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	status := models.StatusActive
	session, err = svc.Update(session.ID, owner, SessionUpdate{Status: &status})
	if err != nil {
		t.Fatalf("activate session: %v", err)
	}
	return session
}
