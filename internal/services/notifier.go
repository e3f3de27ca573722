package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mrfarhan786/MVOTE/internal/models"

	"gorm.io/gorm"
)

// NotifierService owns per-user notifications. Writes triggered by other
// operations go through Dispatch, which is best-effort: a failed insert is
// logged and never reaches the caller.
type NotifierService struct {
	DB     *gorm.DB
	Logger *slog.Logger

	wg sync.WaitGroup
}

func NewNotifierService(db *gorm.DB, logger *slog.Logger) *NotifierService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotifierService{DB: db, Logger: logger}
}

// Notify inserts an unread notification with a server-side timestamp.
func (s *NotifierService) Notify(userID uint, title, description string) (*models.Notification, error) {
	n := models.Notification{
		UserID:      userID,
		Title:       title,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Read:        false,
	}
	if err := s.DB.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// Dispatch fires Notify in the background. Failures are logged only; the
// triggering operation has already committed and must not be rolled back or
// failed because of a notification.
func (s *NotifierService) Dispatch(userID uint, title, description string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.Notify(userID, title, description); err != nil {
			s.Logger.Error("notification write failed", "user_id", userID, "title", title, "error", err)
		}
	}()
}

// Flush waits for in-flight dispatches. Called on shutdown and from tests.
func (s *NotifierService) Flush() { s.wg.Wait() }

// ListForUser returns a user's notifications, newest first.
func (s *NotifierService) ListForUser(userID uint) ([]models.Notification, error) {
	var list []models.Notification
	if err := s.DB.Where("user_id = ?", userID).Order("timestamp desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// MarkRead flags a notification as read. Unknown ids are a no-op.
func (s *NotifierService) MarkRead(id uint) error {
	return s.DB.Model(&models.Notification{}).Where("id = ?", id).Update("read", true).Error
}

// DeleteOne removes a notification. Deleting a missing id is not an error.
func (s *NotifierService) DeleteOne(id uint) error {
	return s.DB.Delete(&models.Notification{}, id).Error
}

// DeleteAllForUser removes every notification of a user; a user with none is a
// no-op success.
func (s *NotifierService) DeleteAllForUser(userID uint) error {
	return s.DB.Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}
