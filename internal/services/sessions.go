package services

import (
	"errors"
	"time"

	"github.com/mrfarhan786/MVOTE/internal/models"
	"github.com/mrfarhan786/MVOTE/validation"

	"gorm.io/gorm"
)

// SessionService owns voting-session records and their status writes.
type SessionService struct{ DB *gorm.DB }

func NewSessionService(db *gorm.DB) *SessionService { return &SessionService{DB: db} }

// NewSession is the creation input; Status always starts at pending.
type NewSession struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

// SessionUpdate applies only non-nil fields. Only the owner may update.
type SessionUpdate struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *string
}

func (s *SessionService) Create(owner uint, in NewSession) (*models.VotingSession, error) {
	v := validation.Violations{}
	validation.Required("title", in.Title, v)
	validation.Required("description", in.Description, v)
	if in.StartDate.IsZero() {
		v["startDate"] = "required"
	}
	if in.EndDate.IsZero() {
		v["endDate"] = "required"
	} else if !in.EndDate.After(in.StartDate) {
		v["endDate"] = "must_be_after_start"
	}
	if err := Validate(v); err != nil {
		return nil, err
	}

	session := models.VotingSession{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedBy:   owner,
		Status:      models.StatusPending,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionService) Get(id uint) (*models.VotingSession, error) {
	var session models.VotingSession
	err := s.DB.First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns all sessions ordered by start date, newest first.
func (s *SessionService) List() ([]models.VotingSession, error) {
	var sessions []models.VotingSession
	if err := s.DB.Order("start_date desc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update modifies a session on behalf of requester. The owner may set any of
// the four statuses in any order; transitions are not constrained beyond the
// enum itself.
func (s *SessionService) Update(id, requester uint, in SessionUpdate) (*models.VotingSession, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if session.CreatedBy != requester {
		return nil, ErrForbidden
	}

	if in.Status != nil && !models.ValidStatus(*in.Status) {
		return nil, Validate(validation.Violations{"status": "unknown_status"})
	}

	if in.Title != nil {
		session.Title = *in.Title
	}
	if in.Description != nil {
		session.Description = *in.Description
	}
	if in.StartDate != nil {
		session.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		session.EndDate = *in.EndDate
	}
	if in.Status != nil {
		session.Status = *in.Status
	}
	if err := s.DB.Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}
