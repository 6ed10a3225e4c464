package services

import (
	"errors"
	"fmt"
	"time"

	"pelada-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameService struct {
	DB    *gorm.DB
	Stats *StatisticsService
}

func NewGameService(db *gorm.DB, stats *StatisticsService) *GameService {
	return &GameService{DB: db, Stats: stats}
}

// CreateGameInput carries the caller-supplied schedule. Date and hour are
// combined and always interpreted as UTC.
type CreateGameInput struct {
	StartDate string `json:"start_date"` // yyyy-MM-dd
	StartHour string `json:"start_hour"` // HH:mm
}

// Create opens a new game for confirmations. Creating is an admin action.
// Every game currently released is flipped to released = false inside the same
// transaction, so exactly one game accepts confirmations afterwards. The
// returned message names the superseded game(s) and is empty when none
// existed.
func (s *GameService) Create(requesterProfile string, in CreateGameInput) (*models.Game, string, error) {
	if !models.IsAdminProfile(requesterProfile) {
		return nil, "", fmt.Errorf("%w: only ADMIN or SUPER_ADMIN can create games", ErrForbidden)
	}

	gameDate, err := parseGameDateTime(in.StartDate, in.StartHour)
	if err != nil {
		return nil, "", err
	}

	game := &models.Game{
		ID:       uuid.NewString(),
		GameDate: gameDate,
		Released: true,
	}

	var message string
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var released []models.Game
		if err := tx.Where("released = ?", true).Find(&released).Error; err != nil {
			return err
		}

		for i := range released {
			released[i].Released = false
			if err := tx.Save(&released[i]).Error; err != nil {
				return err
			}
		}

		switch len(released) {
		case 0:
			// first game, nothing superseded
		case 1:
			message = fmt.Sprintf("game %s was set to released = false; the new game is the only one with released = true", released[0].ID)
		default:
			message = fmt.Sprintf("%d games were set to released = false; the new game is the only one with released = true", len(released))
		}

		return tx.Create(game).Error
	})
	if err != nil {
		return nil, "", err
	}

	return game, message, nil
}

// Release closes the list for a game: released flips to false and further
// confirmations are blocked. Other games are untouched.
func (s *GameService) Release(requesterProfile, gameID string) (*models.Game, error) {
	if !models.IsAdminProfile(requesterProfile) {
		return nil, fmt.Errorf("%w: only ADMIN or SUPER_ADMIN can release games", ErrForbidden)
	}

	var game models.Game
	if err := s.DB.First(&game, "id = ?", gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
		}
		return nil, err
	}

	game.Released = false
	if err := s.DB.Save(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// FindReleased returns the single game currently open for confirmations, or
// nil when no game is open. Never an error in the empty case.
func (s *GameService) FindReleased() (*models.Game, error) {
	var game models.Game
	err := s.DB.Where("released = ?", true).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// FindByID looks up a game by id.
func (s *GameService) FindByID(gameID string) (*models.Game, error) {
	var game models.Game
	if err := s.DB.First(&game, "id = ?", gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
		}
		return nil, err
	}
	return &game, nil
}

// AssertAcceptingConfirmations checks that a game can still take name
// confirmations: the list must be released and kickoff must be strictly in the
// future. A game starting exactly now is already closed.
func (s *GameService) AssertAcceptingConfirmations(game *models.Game) error {
	if !game.Released {
		return fmt.Errorf("%w: list is not released", ErrForbidden)
	}
	if !game.GameDate.After(time.Now().UTC()) {
		return fmt.Errorf("%w: list closed - game already started", ErrBusinessRule)
	}
	return nil
}

// BulkStatisticsEntry is one player's absolute statistics for a finished game.
type BulkStatisticsEntry struct {
	UserID string `json:"user_id"`
	StatisticsPatch
}

// BulkUpdateStatistics applies per-player statistics after a game. Every entry
// must reference a user id confirmed on this game (guests included); the whole
// batch is validated before anything is written and the per-entry writes
// commit in one transaction, in input order.
func (s *GameService) BulkUpdateStatistics(requesterID, gameID string, entries []BulkStatisticsEntry) ([]models.UserStatistics, error) {
	if _, err := s.FindByID(gameID); err != nil {
		return nil, err
	}

	var confirmations []models.GameConfirmation
	if err := s.DB.Where("game_id = ?", gameID).Find(&confirmations).Error; err != nil {
		return nil, err
	}

	confirmed := make(map[string]bool, len(confirmations))
	for _, c := range confirmations {
		confirmed[c.UserID] = true
	}

	for _, entry := range entries {
		if !confirmed[entry.UserID] {
			return nil, fmt.Errorf("%w: user %s is not confirmed in this game", ErrBusinessRule, entry.UserID)
		}
	}

	updated := make([]models.UserStatistics, 0, len(entries))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			stats, err := s.Stats.applyPatch(tx, requesterID, entry.UserID, entry.StatisticsPatch)
			if err != nil {
				return err
			}
			updated = append(updated, *stats)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// parseGameDateTime combines "yyyy-MM-dd" and "HH:mm" into a UTC instant.
func parseGameDateTime(startDate, startHour string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid start_date %q, expected yyyy-MM-dd", ErrInvalidInput, startDate)
	}
	hour, err := time.Parse("15:04", startHour)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid start_hour %q, expected HH:mm", ErrInvalidInput, startHour)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour.Hour(), hour.Minute(), 0, 0, time.UTC), nil
}
