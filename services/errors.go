package services

import "errors"

// Error kinds surfaced by every service. Handlers translate these into HTTP
// statuses; wrap with fmt.Errorf("%w: ...") to add context.
var (
	// ErrNotFound: the referenced game, user or confirmation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden: the caller's profile lacks the capability, or the list is
	// not released.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized: the caller's identity could not be established, or a
	// mutation requires admin rights the caller does not hold.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict: the confirmed name is already taken within the game.
	ErrConflict = errors.New("conflict")

	// ErrBusinessRule: game already started, SUPER_ADMIN statistics target,
	// bulk target not confirmed in the game, duplicate e-mail.
	ErrBusinessRule = errors.New("business rule violation")

	// ErrInvalidInput: malformed date, time or duration string.
	ErrInvalidInput = errors.New("invalid input")
)
