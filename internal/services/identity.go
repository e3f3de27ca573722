package services

import (
	"errors"

	"github.com/mrfarhan786/MVOTE/internal/models"
	"github.com/mrfarhan786/MVOTE/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IdentityService owns user records and credential verification.
type IdentityService struct{ DB *gorm.DB }

func NewIdentityService(db *gorm.DB) *IdentityService { return &IdentityService{DB: db} }

// NewUser is the registration input. Username is optional; email is required.
type NewUser struct {
	Username     *string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	ProfileImage string
}

// UserUpdate applies only non-nil fields.
type UserUpdate struct {
	Username         *string
	Email            *string
	Password         *string
	FirstName        *string
	LastName         *string
	ProfileImage     *string
	ProfileCompleted *bool
}

// CreateUser stores a new user with the password bcrypt-hashed. Returns
// ErrEmailTaken or ErrUsernameTaken when the unique fields collide.
func (s *IdentityService) CreateUser(in NewUser) (*models.User, error) {
	v := validation.Violations{}
	validation.Email("email", in.Email, v)
	validation.Password("password", in.Password, v)
	if in.Username != nil && *in.Username != "" {
		validation.Username("username", *in.Username, v)
	}
	if err := Validate(v); err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	if in.Username != nil && *in.Username != "" {
		if _, err := s.GetUserByUsername(*in.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		Password:     string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		ProfileImage: in.ProfileImage,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// Unique indexes backstop the lookups above under concurrent signups.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// VerifyCredentials resolves the identifier against username first, then
// email, and compares the bcrypt hash. The error never says which part was
// wrong.
func (s *IdentityService) VerifyCredentials(identifier, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(identifier)
	if errors.Is(err, ErrNotFound) {
		var byEmail models.User
		err = s.DB.Where("email = ?", identifier).First(&byEmail).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		if err != nil {
			return nil, err
		}
		user = &byEmail
	} else if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateUser applies the provided fields only, re-hashing the password when
// present. A new username colliding with another user yields ErrUsernameTaken.
func (s *IdentityService) UpdateUser(id uint, in UserUpdate) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != "" {
		v := validation.Violations{}
		validation.Username("username", *in.Username, v)
		if err := Validate(v); err != nil {
			return nil, err
		}
		if existing, err := s.GetUserByUsername(*in.Username); err == nil {
			if existing.ID != id {
				return nil, ErrUsernameTaken
			}
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		user.Username = in.Username
	}
	if in.Email != nil && *in.Email != "" {
		v := validation.Violations{}
		validation.Email("email", *in.Email, v)
		if err := Validate(v); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		v := validation.Violations{}
		validation.Password("password", *in.Password, v)
		if err := Validate(v); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}
	if in.ProfileCompleted != nil {
		user.ProfileCompleted = *in.ProfileCompleted
	}

	if err := s.DB.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) GetUser(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *IdentityService) GetUserByUsername(name string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", name).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
