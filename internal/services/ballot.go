package services

import (
	"errors"
	"time"

	"github.com/mrfarhan786/MVOTE/internal/models"
	"github.com/mrfarhan786/MVOTE/validation"

	"gorm.io/gorm"
)

// BallotService owns vote records and enforces one vote per user per session.
type BallotService struct{ DB *gorm.DB }

func NewBallotService(db *gorm.DB) *BallotService { return &BallotService{DB: db} }

// Cast records a vote for voter in session. The session must exist and be
// active, and the voter must not have voted already. The whole check-then-act
// runs in one transaction, and the unique index on (session_id, user_id)
// guarantees that two concurrent casts for the same pair cannot both commit;
// the losing insert surfaces as ErrDuplicateVote.
func (s *BallotService) Cast(sessionID, voterID uint, choice string) (*models.Vote, error) {
	v := validation.Violations{}
	validation.Required("choice", choice, v)
	if err := Validate(v); err != nil {
		return nil, err
	}

	var vote models.Vote
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var session models.VotingSession
		if err := tx.First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if session.Status != models.StatusActive {
			return ErrSessionNotActive
		}

		var count int64
		if err := tx.Model(&models.Vote{}).
			Where("session_id = ? AND user_id = ?", sessionID, voterID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateVote
		}

		vote = models.Vote{
			SessionID: sessionID,
			UserID:    voterID,
			Choice:    choice,
			Timestamp: time.Now().UTC(),
		}
		if err := tx.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateVote
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// ListForSession returns the votes of a session in insertion order.
func (s *BallotService) ListForSession(sessionID uint) ([]models.Vote, error) {
	var votes []models.Vote
	if err := s.DB.Where("session_id = ?", sessionID).Order("id").Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

// UserVote returns the vote a user cast in a session, or ErrNotFound.
func (s *BallotService) UserVote(sessionID, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := s.DB.Where("session_id = ? AND user_id = ?", sessionID, userID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}
