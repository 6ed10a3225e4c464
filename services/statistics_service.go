package services

import (
	"errors"
	"fmt"

	"pelada-backend/models"
	"pelada-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatisticsService struct {
	DB *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{DB: db}
}

// CounterField names one of the integer statistics.
type CounterField string

const (
	FieldGoals      CounterField = "goals"
	FieldComplaints CounterField = "complaints"
	FieldVictories  CounterField = "victories"
	FieldDraws      CounterField = "draws"
	FieldDefeats    CounterField = "defeats"
)

// StatisticsPatch is a partial update. Nil fields are left untouched.
// MinutesPlayed is a signed "HH:mm:ss" string ADDED to the stored total;
// the integer counters REPLACE the stored value. Both are clamped at zero.
// The asymmetry is deliberate: minutes are a running total fed per game,
// while the discrete counters are set to whatever the admin decides.
type StatisticsPatch struct {
	MinutesPlayed *string `json:"minutes_played,omitempty"`
	Goals         *int    `json:"goals,omitempty"`
	Complaints    *int    `json:"complaints,omitempty"`
	Victories     *int    `json:"victories,omitempty"`
	Draws         *int    `json:"draws,omitempty"`
	Defeats       *int    `json:"defeats,omitempty"`
}

// GetOrCreate returns the statistics row for a user, creating a zeroed one on
// first access. SUPER_ADMIN users never have statistics.
func (s *StatisticsService) GetOrCreate(userID string) (*models.UserStatistics, error) {
	var stats *models.UserStatistics
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := validateStatisticsTarget(tx, userID); err != nil {
			return err
		}
		var err error
		stats, err = getOrCreateStatistics(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ApplyCounterDelta adds a signed delta onto one integer field. The result is
// floored at zero; driving a counter below zero is not an error.
func (s *StatisticsService) ApplyCounterDelta(requesterID, targetID string, field CounterField, delta int) (*models.UserStatistics, error) {
	var stats *models.UserStatistics
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := validateAdminRequester(tx, requesterID); err != nil {
			return err
		}
		if err := validateStatisticsTarget(tx, targetID); err != nil {
			return err
		}

		var err error
		stats, err = getOrCreateStatistics(tx, targetID)
		if err != nil {
			return err
		}

		switch field {
		case FieldGoals:
			stats.Goals = utils.ClampNonNegative(stats.Goals + delta)
		case FieldComplaints:
			stats.Complaints = utils.ClampNonNegative(stats.Complaints + delta)
		case FieldVictories:
			stats.Victories = utils.ClampNonNegative(stats.Victories + delta)
		case FieldDraws:
			stats.Draws = utils.ClampNonNegative(stats.Draws + delta)
		case FieldDefeats:
			stats.Defeats = utils.ClampNonNegative(stats.Defeats + delta)
		default:
			return fmt.Errorf("%w: unknown statistics field %q", ErrInvalidInput, field)
		}

		return tx.Save(stats).Error
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ApplyMinutesDelta adds a signed "HH:mm:ss" duration onto the played-time
// total, floored at zero.
func (s *StatisticsService) ApplyMinutesDelta(requesterID, targetID, delta string) (*models.UserStatistics, error) {
	minutes := delta
	return s.UpdateStatistics(requesterID, targetID, StatisticsPatch{MinutesPlayed: &minutes})
}

// UpdateStatistics applies a partial patch in one transaction.
func (s *StatisticsService) UpdateStatistics(requesterID, targetID string, patch StatisticsPatch) (*models.UserStatistics, error) {
	var stats *models.UserStatistics
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = s.applyPatch(tx, requesterID, targetID, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// applyPatch runs inside the caller's transaction so bulk updates commit or
// roll back as one unit.
func (s *StatisticsService) applyPatch(tx *gorm.DB, requesterID, targetID string, patch StatisticsPatch) (*models.UserStatistics, error) {
	if err := validateAdminRequester(tx, requesterID); err != nil {
		return nil, err
	}
	if err := validateStatisticsTarget(tx, targetID); err != nil {
		return nil, err
	}

	stats, err := getOrCreateStatistics(tx, targetID)
	if err != nil {
		return nil, err
	}

	if patch.MinutesPlayed != nil {
		delta, err := utils.ParseSignedDuration(*patch.MinutesPlayed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		stats.MinutesPlayed = utils.AccumulateDuration(stats.MinutesPlayed, delta)
	}
	if patch.Goals != nil {
		stats.Goals = utils.ClampNonNegative(*patch.Goals)
	}
	if patch.Complaints != nil {
		stats.Complaints = utils.ClampNonNegative(*patch.Complaints)
	}
	if patch.Victories != nil {
		stats.Victories = utils.ClampNonNegative(*patch.Victories)
	}
	if patch.Draws != nil {
		stats.Draws = utils.ClampNonNegative(*patch.Draws)
	}
	if patch.Defeats != nil {
		stats.Defeats = utils.ClampNonNegative(*patch.Defeats)
	}

	if err := tx.Save(stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// validateAdminRequester resolves the requester and checks for admin rights.
func validateAdminRequester(tx *gorm.DB, requesterID string) error {
	var user models.User
	if err := tx.Where("id = ? AND active = ?", requesterID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, requesterID)
		}
		return err
	}
	if !models.IsAdminProfile(user.Profile) {
		return fmt.Errorf("%w: only ADMIN can update statistics", ErrUnauthorized)
	}
	return nil
}

// validateStatisticsTarget checks the target can carry statistics: an active
// account that is not SUPER_ADMIN (the management tier has no statistics
// track), or a guest identity minted by a confirmation. Guests have no account
// row, their confirmation is what makes them a valid target.
func validateStatisticsTarget(tx *gorm.DB, targetID string) error {
	var user models.User
	err := tx.Where("id = ? AND active = ?", targetID, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var guests int64
		if err := tx.Model(&models.GameConfirmation{}).
			Where("user_id = ? AND is_guest = ?", targetID, true).
			Count(&guests).Error; err != nil {
			return err
		}
		if guests > 0 {
			return nil
		}
		return fmt.Errorf("%w: user %s", ErrNotFound, targetID)
	}
	if err != nil {
		return err
	}
	if user.Profile == models.ProfileSuperAdmin {
		return fmt.Errorf("%w: SUPER_ADMIN users have no statistics", ErrBusinessRule)
	}
	return nil
}

func getOrCreateStatistics(tx *gorm.DB, userID string) (*models.UserStatistics, error) {
	var stats models.UserStatistics
	err := tx.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.UserStatistics{
			ID:     uuid.NewString(),
			UserID: userID,
		}
		if err := tx.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
