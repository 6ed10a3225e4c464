package services

import (
	"errors"
	"fmt"
	"strings"

	"pelada-backend/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type CreateUserInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Photo    string `json:"photo"`
	Profile  string `json:"profile"`
}

type UpdateUserInput struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Photo    *string `json:"photo,omitempty"`
	Profile  *string `json:"profile,omitempty"`
}

// FindAll lists every active user.
func (s *UserService) FindAll() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("active = ?", true).Order("full_name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindActiveByID looks up an active user.
func (s *UserService) FindActiveByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ? AND active = ?", id, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

// Create registers a new account. E-mail must be unused; the profile defaults
// to JOGADOR.
func (s *UserService) Create(in CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: full_name, email and password are required", ErrInvalidInput)
	}

	profile := in.Profile
	if profile == "" {
		profile = models.ProfileJogador
	}
	if profile != models.ProfileJogador && !models.IsAdminProfile(profile) {
		return nil, fmt.Errorf("%w: unknown profile %q", ErrInvalidInput, profile)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hash),
		Photo:    in.Photo,
		Profile:  profile,
		Active:   true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: e-mail already in use", ErrBusinessRule)
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update patches an active user. Changing the e-mail re-checks uniqueness
// against everyone else.
func (s *UserService) Update(id string, in UpdateUserInput) (*models.User, error) {
	var user *models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var found models.User
		if err := tx.Where("id = ? AND active = ?", id, true).First(&found).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s", ErrNotFound, id)
			}
			return err
		}

		if in.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*in.Email))
			if email != found.Email {
				var count int64
				if err := tx.Model(&models.User{}).
					Where("email = ? AND id <> ?", email, id).
					Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return fmt.Errorf("%w: e-mail already in use", ErrBusinessRule)
				}
				found.Email = email
			}
		}
		if in.FullName != nil && strings.TrimSpace(*in.FullName) != "" {
			found.FullName = strings.TrimSpace(*in.FullName)
		}
		if in.Password != nil && *in.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			found.Password = string(hash)
		}
		if in.Photo != nil {
			found.Photo = *in.Photo
		}
		if in.Profile != nil {
			if *in.Profile != models.ProfileJogador && !models.IsAdminProfile(*in.Profile) {
				return fmt.Errorf("%w: unknown profile %q", ErrInvalidInput, *in.Profile)
			}
			found.Profile = *in.Profile
		}

		if err := tx.Save(&found).Error; err != nil {
			return err
		}
		user = &found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete deactivates a user. The row stays so confirmation history and
// statistics keep a valid owner id.
func (s *UserService) Delete(id string) error {
	user, err := s.FindActiveByID(id)
	if err != nil {
		return err
	}
	user.Active = false
	return s.DB.Save(user).Error
}
