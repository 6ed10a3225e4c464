package models

import (
	"time"
)

// Profiles ordered by privilege. SUPER_ADMIN is the management tier and never
// appears on match lists or rankings.
const (
	ProfileSuperAdmin = "SUPER_ADMIN"
	ProfileAdmin      = "ADMIN"
	ProfileJogador    = "JOGADOR"
)

// IsAdminProfile reports whether the profile may perform administrative
// operations (create games, close lists, edit statistics).
func IsAdminProfile(profile string) bool {
	return profile == ProfileAdmin || profile == ProfileSuperAdmin
}

// IsRankedProfile reports whether the profile is eligible to appear in
// rankings. Only real players and admins show up; the management tier and
// anything unknown is filtered out.
func IsRankedProfile(profile string) bool {
	return profile == ProfileAdmin || profile == ProfileJogador
}

type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	FullName string `json:"full_name" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Photo    string `json:"photo,omitempty"`
	Profile  string `json:"profile" gorm:"not null;default:'JOGADOR'"`

	// Soft delete: deactivated users keep their rows (and statistics history)
	// but disappear from listings, logins and rankings.
	Active bool `json:"active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStatistics is a 1:1 satellite of User keyed by UserID. Rows are created
// lazily on first access and never deleted. MinutesPlayed is stored as a
// time.Duration (int64 nanoseconds in the DB); every numeric field is clamped
// to >= 0 on write by the statistics service.
type UserStatistics struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	UserID        string        `json:"user_id" gorm:"uniqueIndex;not null"`
	MinutesPlayed time.Duration `json:"-" gorm:"not null;default:0"`
	Goals         int           `json:"goals" gorm:"not null;default:0"`
	Complaints    int           `json:"complaints" gorm:"not null;default:0"`
	Victories     int           `json:"victories" gorm:"not null;default:0"`
	Draws         int           `json:"draws" gorm:"not null;default:0"`
	Defeats       int           `json:"defeats" gorm:"not null;default:0"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
