package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pelada-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConfirmationService struct {
	DB    *gorm.DB
	Games *GameService
}

func NewConfirmationService(db *gorm.DB, games *GameService) *ConfirmationService {
	return &ConfirmationService{DB: db, Games: games}
}

// ConfirmNameInput is one name going onto the list. IsGuest marks a stand-in
// without an account, registered under the caller's responsibility.
type ConfirmNameInput struct {
	ConfirmedName string `json:"confirmed_name"`
	IsGuest       bool   `json:"is_guest"`
}

// ConfirmName reserves a name on a released game's list.
//
// The name must be unique within the game (exact match). A non-guest
// confirmation is attributed to the requester; a guest confirmation mints a
// fresh identity so the guest gets an independent statistics track, and
// records the requester as the one who brought them. Nothing stops the same
// requester from confirming several distinct names on one game.
func (s *ConfirmationService) ConfirmName(gameID, requesterID string, in ConfirmNameInput) (*models.GameConfirmation, error) {
	name := strings.TrimSpace(in.ConfirmedName)
	if name == "" {
		return nil, fmt.Errorf("%w: confirmed_name is required", ErrInvalidInput)
	}
	if len(name) > 255 {
		return nil, fmt.Errorf("%w: confirmed_name must be at most 255 characters", ErrInvalidInput)
	}

	var confirmation *models.GameConfirmation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, "id = ?", gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: game %s", ErrNotFound, gameID)
			}
			return err
		}

		if err := s.Games.AssertAcceptingConfirmations(&game); err != nil {
			return err
		}

		var taken int64
		if err := tx.Model(&models.GameConfirmation{}).
			Where("game_id = ? AND confirmed_name = ?", gameID, name).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return fmt.Errorf("%w: name already confirmed for this game, pick another one", ErrConflict)
		}

		confirmation = &models.GameConfirmation{
			ID:            uuid.NewString(),
			GameID:        gameID,
			UserID:        requesterID,
			ConfirmedName: name,
			ConfirmedAt:   time.Now().UTC(),
		}
		if in.IsGuest {
			confirmation.UserID = uuid.NewString()
			confirmation.IsGuest = true
			confirmation.ConfirmedByUserID = requesterID
		}

		return tx.Create(confirmation).Error
	})
	if err != nil {
		return nil, err
	}
	return confirmation, nil
}

// ListForGame returns every confirmation of a game, in insertion order.
// Admin only.
func (s *ConfirmationService) ListForGame(gameID, requesterProfile string) ([]models.GameConfirmation, error) {
	if !models.IsAdminProfile(requesterProfile) {
		return nil, fmt.Errorf("%w: only ADMIN or SUPER_ADMIN can list all confirmations", ErrForbidden)
	}
	if _, err := s.Games.FindByID(gameID); err != nil {
		return nil, err
	}

	var confirmations []models.GameConfirmation
	if err := s.DB.Where("game_id = ?", gameID).
		Order("created_at").
		Find(&confirmations).Error; err != nil {
		return nil, err
	}
	return confirmations, nil
}

// ListRelatedToUser returns the caller's own confirmation plus every guest the
// caller registered on the game.
func (s *ConfirmationService) ListRelatedToUser(gameID, userID string) ([]models.GameConfirmation, error) {
	if _, err := s.Games.FindByID(gameID); err != nil {
		return nil, err
	}

	var confirmations []models.GameConfirmation
	if err := s.DB.Where("game_id = ?", gameID).
		Where(s.DB.Where("user_id = ?", userID).Or("confirmed_by_user_id = ?", userID)).
		Order("created_at").
		Find(&confirmations).Error; err != nil {
		return nil, err
	}
	return confirmations, nil
}
