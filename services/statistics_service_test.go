package services

import (
	"testing"
	"time"

	"pelada-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStatisticsFixture(t *testing.T) (*StatisticsService, *gorm.DB) {
	db := newTestDB(t)
	return NewStatisticsService(db), db
}

func TestGetOrCreateIsLazyAndIdempotent(t *testing.T) {
	svc, db := newStatisticsFixture(t)
	player := seedUser(t, db, "Ana Silva", models.ProfileJogador)

	var count int64
	require.NoError(t, db.Model(&models.UserStatistics{}).Count(&count).Error)
	assert.Zero(t, count, "no row until first access")

	first, err := svc.GetOrCreate(player.ID)
	require.NoError(t, err)
	assert.Zero(t, first.Goals)
	assert.Zero(t, first.MinutesPlayed)

	second, err := svc.GetOrCreate(player.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	require.NoError(t, db.Model(&models.UserStatistics{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateRejectsUnknownAndSuperAdmin(t *testing.T) {
	svc, db := newStatisticsFixture(t)

	_, err := svc.GetOrCreate("no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)

	boss := seedUser(t, db, "Root", models.ProfileSuperAdmin)
	_, err = svc.GetOrCreate(boss.ID)
	assert.ErrorIs(t, err, ErrBusinessRule)
}

func TestApplyCounterDeltaClampsAtZero(t *testing.T) {
	svc, db := newStatisticsFixture(t)
	admin := seedUser(t, db, "Admin", models.ProfileAdmin)
	player := seedUser(t, db, "Ana Silva", models.ProfileJogador)

	stats, err := svc.ApplyCounterDelta(admin.ID, player.ID, FieldGoals, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Goals)

	stats, err = svc.ApplyCounterDelta(admin.ID, player.ID, FieldGoals, -5)
	require.NoError(t, err)
	assert.Zero(t, stats.Goals, "floored, not an error")

	_, err = svc.ApplyCounterDelta(admin.ID, player.ID, "red-cards", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMinutesAccumulateWhileCountersReplace(t *testing.T) {
	svc, db := newStatisticsFixture(t)
	admin := seedUser(t, db, "Admin", models.ProfileAdmin)
	player := seedUser(t, db, "Ana Silva", models.ProfileJogador)

	stats, err := svc.UpdateStatistics(admin.ID, player.ID, StatisticsPatch{
		MinutesPlayed: strPtr("0:05:30"),
		Goals:         intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute+30*time.Second, stats.MinutesPlayed)
	assert.Equal(t, 2, stats.Goals)

	stats, err = svc.UpdateStatistics(admin.ID, player.ID, StatisticsPatch{
		MinutesPlayed: strPtr("00:05:30"),
		Goals:         intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 11*time.Minute, stats.MinutesPlayed, "minutes add up")
	assert.Equal(t, 1, stats.Goals, "counters are overwritten")
}

func TestMinutesFloorAtZero(t *testing.T) {
	svc, db := newStatisticsFixture(t)
	admin := seedUser(t, db, "Admin", models.ProfileAdmin)
	player := seedUser(t, db, "Ana Silva", models.ProfileJogador)

	_, err := svc.ApplyMinutesDelta(admin.ID, player.ID, "00:10:00")
	require.NoError(t, err)

	stats, err := svc.ApplyMinutesDelta(admin.ID, player.ID, "-00:30:00")
	require.NoError(t, err)
	assert.Zero(t, stats.MinutesPlayed)
}

func TestUpdateStatisticsNilFieldsAreUntouched(t *testing.T) {
	svc, db := newStatisticsFixture(t)
	admin := seedUser(t, db, "Admin", models.ProfileAdmin)
	player := seedUser(t, db, "Ana Silva", models.ProfileJogador)

	_, err := svc.UpdateStatistics(admin.ID, player.ID, StatisticsPatch{Goals: intPtr(4), Victories: intPtr(2)})
	require.NoError(t, err)

	stats, err := svc.UpdateStatistics(admin.ID, player.ID, StatisticsPatch{Defeats: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Goals)
	assert.Equal(t, 2, stats.Victories)
	assert.Equal(t, 1, stats.Defeats)
}

func TestUpdateStatisticsAuthorization(t *testing.T) {
	svc, db := newStatisticsFixture(t)
	player := seedUser(t, db, "Ana Silva", models.ProfileJogador)
	other := seedUser(t, db, "Rui Costa", models.ProfileJogador)

	_, err := svc.UpdateStatistics(player.ID, other.ID, StatisticsPatch{Goals: intPtr(1)})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.UpdateStatistics("ghost", other.ID, StatisticsPatch{Goals: intPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatisticsRejectsBadDuration(t *testing.T) {
	svc, db := newStatisticsFixture(t)
	admin := seedUser(t, db, "Admin", models.ProfileAdmin)
	player := seedUser(t, db, "Ana Silva", models.ProfileJogador)

	_, err := svc.UpdateStatistics(admin.ID, player.ID, StatisticsPatch{MinutesPlayed: strPtr("ninety minutes")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGuestIdentityIsAValidTarget(t *testing.T) {
	db := newTestDB(t)
	stats := NewStatisticsService(db)
	games := NewGameService(db, stats)
	confirmations := NewConfirmationService(db, games)

	admin := seedUser(t, db, "Admin", models.ProfileAdmin)
	game := openGame(t, games)

	guest, err := confirmations.ConfirmName(game.ID, admin.ID, ConfirmNameInput{ConfirmedName: "Bob (guest)", IsGuest: true})
	require.NoError(t, err)

	row, err := stats.UpdateStatistics(admin.ID, guest.UserID, StatisticsPatch{Goals: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, row.Goals)
	assert.Equal(t, guest.UserID, row.UserID)
}

func TestBulkUpdateStatistics(t *testing.T) {
	db := newTestDB(t)
	stats := NewStatisticsService(db)
	games := NewGameService(db, stats)
	confirmations := NewConfirmationService(db, games)

	admin := seedUser(t, db, "Admin", models.ProfileAdmin)
	ana := seedUser(t, db, "Ana Silva", models.ProfileJogador)
	game := openGame(t, games)

	_, err := confirmations.ConfirmName(game.ID, ana.ID, ConfirmNameInput{ConfirmedName: "Ana"})
	require.NoError(t, err)
	guest, err := confirmations.ConfirmName(game.ID, ana.ID, ConfirmNameInput{ConfirmedName: "Bob (guest)", IsGuest: true})
	require.NoError(t, err)

	updated, err := games.BulkUpdateStatistics(admin.ID, game.ID, []BulkStatisticsEntry{
		{UserID: ana.ID, StatisticsPatch: StatisticsPatch{Goals: intPtr(2), MinutesPlayed: strPtr("01:30:00")}},
		{UserID: guest.UserID, StatisticsPatch: StatisticsPatch{Goals: intPtr(1)}},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, 2, updated[0].Goals)
	assert.Equal(t, 90*time.Minute, updated[0].MinutesPlayed)
	assert.Equal(t, 1, updated[1].Goals)
}

func TestBulkUpdateStatisticsRejectsUnconfirmedTarget(t *testing.T) {
	db := newTestDB(t)
	stats := NewStatisticsService(db)
	games := NewGameService(db, stats)
	confirmations := NewConfirmationService(db, games)

	admin := seedUser(t, db, "Admin", models.ProfileAdmin)
	ana := seedUser(t, db, "Ana Silva", models.ProfileJogador)
	rui := seedUser(t, db, "Rui Costa", models.ProfileJogador)
	game := openGame(t, games)

	_, err := confirmations.ConfirmName(game.ID, ana.ID, ConfirmNameInput{ConfirmedName: "Ana"})
	require.NoError(t, err)

	_, err = games.BulkUpdateStatistics(admin.ID, game.ID, []BulkStatisticsEntry{
		{UserID: ana.ID, StatisticsPatch: StatisticsPatch{Goals: intPtr(2)}},
		{UserID: rui.ID, StatisticsPatch: StatisticsPatch{Goals: intPtr(1)}},
	})
	assert.ErrorIs(t, err, ErrBusinessRule)

	// the valid entry must not have been applied either
	var count int64
	require.NoError(t, db.Model(&models.UserStatistics{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = games.BulkUpdateStatistics(admin.ID, uuid.NewString(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
