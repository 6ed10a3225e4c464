package services

import (
	"fmt"
	"testing"

	"pelada-backend/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database and migrates the full
// schema. cache=shared keeps every connection of the pool on the same
// database for the lifetime of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserStatistics{},
		&models.Game{},
		&models.GameConfirmation{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedUser inserts an active user with the given profile and returns it.
func seedUser(t *testing.T, db *gorm.DB, fullName, profile string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:       uuid.NewString(),
		FullName: fullName,
		Email:    fmt.Sprintf("%s@example.com", uuid.NewString()),
		Password: string(hash),
		Profile:  profile,
		Active:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
