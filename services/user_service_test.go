package services

import (
	"testing"

	"pelada-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserDefaultsToJogador(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.Create(CreateUserInput{
		FullName: "Ana Silva",
		Email:    "Ana.Silva@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ProfileJogador, user.Profile)
	assert.Equal(t, "ana.silva@example.com", user.Email, "e-mail is normalized")
	assert.True(t, user.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Create(CreateUserInput{Email: "a@b.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(CreateUserInput{FullName: "Ana", Email: "a@b.com", Password: "x", Profile: "COACH"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Create(CreateUserInput{FullName: "Ana", Email: "ana@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Create(CreateUserInput{FullName: "Other Ana", Email: "ANA@example.com", Password: "y"})
	assert.ErrorIs(t, err, ErrBusinessRule)
}

func TestUpdateUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	user := seedUser(t, svc.DB, "Ana Silva", models.ProfileJogador)

	updated, err := svc.Update(user.ID, UpdateUserInput{
		FullName: strPtr("Ana de Souza"),
		Profile:  strPtr(models.ProfileAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana de Souza", updated.FullName)
	assert.Equal(t, models.ProfileAdmin, updated.Profile)

	_, err = svc.Update("missing", UpdateUserInput{FullName: strPtr("X")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ana := seedUser(t, svc.DB, "Ana Silva", models.ProfileJogador)
	rui := seedUser(t, svc.DB, "Rui Costa", models.ProfileJogador)

	_, err := svc.Update(ana.ID, UpdateUserInput{Email: &rui.Email})
	assert.ErrorIs(t, err, ErrBusinessRule)

	// keeping your own e-mail is not a conflict
	_, err = svc.Update(ana.ID, UpdateUserInput{Email: &ana.Email})
	assert.NoError(t, err)
}

func TestDeleteDeactivatesInstead(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	user := seedUser(t, svc.DB, "Ana Silva", models.ProfileJogador)

	require.NoError(t, svc.Delete(user.ID))

	_, err := svc.FindActiveByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var row models.User
	require.NoError(t, svc.DB.Where("id = ?", user.ID).First(&row).Error)
	assert.False(t, row.Active, "the row survives for history")

	assert.ErrorIs(t, svc.Delete(user.ID), ErrNotFound)
}
