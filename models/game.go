package models

import (
	"time"
)

// Game is one pickup session. At most one game has Released = true at any
// instant: creating a new game flips every previously released game to false
// inside the same transaction. Games are never deleted.
type Game struct {
	ID string `json:"id" gorm:"primaryKey"`

	// GameDate is the kickoff instant, always stored in UTC. Confirmations are
	// rejected once GameDate <= now, even if the game is still flagged released.
	GameDate time.Time `json:"game_date" gorm:"not null"`

	// Released = true means the list is open for name confirmations.
	Released bool `json:"released" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameConfirmation is one reserved slot on a game's list. Append-only history:
// rows are never updated or removed.
//
// For a regular confirmation UserID is the confirming user and
// ConfirmedByUserID is empty. For a guest, UserID is a freshly minted
// identifier that never collides with a real account, and ConfirmedByUserID
// records the principal who brought the guest. The same principal may register
// any number of guests on one game as long as each name is distinct.
type GameConfirmation struct {
	ID     string `json:"id" gorm:"primaryKey"`
	GameID string `json:"game_id" gorm:"index;not null"`
	UserID string `json:"user_id" gorm:"index;not null"`

	// Unique per game, exact case-sensitive match.
	ConfirmedName string `json:"confirmed_name" gorm:"size:255;not null"`

	IsGuest           bool   `json:"is_guest" gorm:"not null;default:false"`
	ConfirmedByUserID string `json:"confirmed_by_user_id,omitempty" gorm:"index"`

	ConfirmedAt time.Time `json:"confirmed_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
