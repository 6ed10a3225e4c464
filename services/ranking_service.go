package services

import (
	"fmt"
	"strconv"
	"time"

	"pelada-backend/models"
	"pelada-backend/utils"

	"gorm.io/gorm"
)

type RankingService struct {
	DB *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{DB: db}
}

// Metrics a leaderboard can be sorted by. MetricMinutes ranks by total seconds
// played; the rest rank by the raw counter.
const (
	MetricGoals      = "goals"
	MetricComplaints = "complaints"
	MetricVictories  = "victories"
	MetricDraws      = "draws"
	MetricDefeats    = "defeats"
	MetricMinutes    = "minutes-played"
)

// metricColumns maps a metric to its ORDER BY column.
var metricColumns = map[string]string{
	MetricGoals:      "goals",
	MetricComplaints: "complaints",
	MetricVictories:  "victories",
	MetricDraws:      "draws",
	MetricDefeats:    "defeats",
	MetricMinutes:    "minutes_played",
}

var metricDescriptions = map[string]string{
	MetricGoals:      "Goals ranking",
	MetricComplaints: "Complaints ranking",
	MetricVictories:  "Victories ranking",
	MetricDraws:      "Draws ranking",
	MetricDefeats:    "Defeats ranking",
	MetricMinutes:    "Minutes played ranking",
}

type RankingItem struct {
	Position       int    `json:"position"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	UserEmail      string `json:"user_email"`
	Value          int64  `json:"value"`
	FormattedValue string `json:"formatted_value"`
}

type Ranking struct {
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Items       []RankingItem `json:"items"`
	Total       int           `json:"total"`
}

// Rank builds the leaderboard for one metric: every statistics row sorted
// descending, joined against the user directory. Rows whose owner is missing
// (guests, removed accounts), inactive, or outside the ADMIN/JOGADOR profiles
// are dropped, and positions are re-numbered densely over the survivors.
func (s *RankingService) Rank(metric string) (*Ranking, error) {
	column, ok := metricColumns[metric]
	if !ok {
		return nil, fmt.Errorf("%w: unknown ranking metric %q", ErrInvalidInput, metric)
	}

	var statistics []models.UserStatistics
	if err := s.DB.Order(column + " DESC").Find(&statistics).Error; err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(statistics))
	for _, stat := range statistics {
		userIDs = append(userIDs, stat.UserID)
	}

	users := make(map[string]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var rows []models.User
		if err := s.DB.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	items := make([]RankingItem, 0, len(statistics))
	for _, stat := range statistics {
		user, ok := users[stat.UserID]
		if !ok || !user.Active || !models.IsRankedProfile(user.Profile) {
			continue
		}

		value, formatted := metricValue(metric, stat)
		items = append(items, RankingItem{
			Position:       len(items) + 1,
			UserID:         user.ID,
			UserName:       user.FullName,
			UserEmail:      user.Email,
			Value:          value,
			FormattedValue: formatted,
		})
	}

	return &Ranking{
		Type:        metric,
		Description: metricDescriptions[metric],
		Items:       items,
		Total:       len(items),
	}, nil
}

func metricValue(metric string, stat models.UserStatistics) (int64, string) {
	switch metric {
	case MetricGoals:
		return int64(stat.Goals), strconv.Itoa(stat.Goals)
	case MetricComplaints:
		return int64(stat.Complaints), strconv.Itoa(stat.Complaints)
	case MetricVictories:
		return int64(stat.Victories), strconv.Itoa(stat.Victories)
	case MetricDraws:
		return int64(stat.Draws), strconv.Itoa(stat.Draws)
	case MetricDefeats:
		return int64(stat.Defeats), strconv.Itoa(stat.Defeats)
	case MetricMinutes:
		return int64(stat.MinutesPlayed / time.Second), utils.FormatDuration(stat.MinutesPlayed)
	}
	return 0, "0"
}
