package db

import (
	"log/slog"
	"time"

	"github.com/mrfarhan786/MVOTE/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seed inserts a demo account and an open voting session for local
// development. Safe to run repeatedly.
func seed(conn *gorm.DB) {
	var demo models.User
	err := conn.Where("email = ?", "demo@mvote.local").First(&demo).Error
	if err == gorm.ErrRecordNotFound {
		hash, herr := bcrypt.GenerateFromPassword([]byte("Demo1234"), bcrypt.DefaultCost)
		if herr != nil {
			slog.Warn("seed: hash failed", "error", herr)
			return
		}
		username := "demo"
		demo = models.User{Username: &username, Email: "demo@mvote.local", Password: string(hash), FirstName: "Demo", LastName: "User", ProfileCompleted: true}
		if cerr := conn.Create(&demo).Error; cerr != nil {
			slog.Warn("seed: demo user", "error", cerr)
			return
		}
	} else if err != nil {
		slog.Warn("seed: lookup demo user", "error", err)
		return
	}

	var count int64
	conn.Model(&models.VotingSession{}).Where("created_by = ?", demo.ID).Count(&count)
	if count == 0 {
		now := time.Now().UTC()
		session := models.VotingSession{
			Title:       "Sample budget vote",
			Description: "Seeded session for local development",
			StartDate:   now,
			EndDate:     now.Add(7 * 24 * time.Hour),
			CreatedBy:   demo.ID,
			Status:      models.StatusActive,
		}
		if cerr := conn.Create(&session).Error; cerr != nil {
			slog.Warn("seed: demo session", "error", cerr)
		}
	}
}
