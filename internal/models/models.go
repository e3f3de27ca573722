package models

import "time"

// Voting session statuses. Status is free-form text at the storage level;
// services reject anything outside this set.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the four session statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         *string   `gorm:"uniqueIndex" json:"username"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	ProfileImage     string    `json:"profileImage"`
	ProfileCompleted bool      `gorm:"not null;default:false" json:"profileCompleted"`
	CreatedAt        time.Time `json:"createdAt"`
}

type VotingSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	StartDate   time.Time `gorm:"not null;index" json:"startDate"`
	EndDate     time.Time `gorm:"not null" json:"endDate"`
	CreatedBy   uint      `gorm:"not null;index" json:"createdBy"`
	Creator     User      `gorm:"foreignKey:CreatedBy" json:"-"`
	Status      string    `gorm:"not null;default:pending" json:"status"`
}

// Vote carries a composite unique index so the store itself rejects a second
// vote for the same (session, user) pair; see BallotService.Cast.
type Vote struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	SessionID uint          `gorm:"not null;uniqueIndex:idx_votes_session_user" json:"sessionId"`
	Session   VotingSession `gorm:"foreignKey:SessionID" json:"-"`
	UserID    uint          `gorm:"not null;uniqueIndex:idx_votes_session_user" json:"userId"`
	User      User          `gorm:"foreignKey:UserID" json:"-"`
	Choice    string        `gorm:"not null" json:"choice"`
	Timestamp time.Time     `gorm:"not null" json:"timestamp"`
}

type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
}

// All lists every model in migration order (referenced tables first).
func All() []any {
	return []any{&User{}, &VotingSession{}, &Vote{}, &Notification{}}
}
