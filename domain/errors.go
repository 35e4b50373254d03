package domain

import "errors"

var (
	UnexpectedDatabaseError = errors.New("database-error")
	ErrDuplicateUsername    = errors.New("duplicate-username")
	ErrUserNotFound         = errors.New("user-not-found")
)

var HashingError = errors.New("hashing-error")

var (
	UnexpectedPasswordHashingError        = errors.New("password-hashing-error")
	UnexpectedPasswordHashComparisonError = errors.New("password-comparison-error")
	UnexpectedTokenGenerationError        = errors.New("token-generation-error")
)

var (
	ErrInvalidSigningAlg     = errors.New("invalid-signing-alg")
	ErrExpiredToken          = errors.New("expired-token")
	ErrInvalidTokenSignature = errors.New("invalid-token-signature")
	ErrCorruptedToken        = errors.New("corrupted-token")
)

// Session join refusals. User-visible reasons, not internal faults.
var (
	ErrWrongPassword   = errors.New("wrong-password")
	ErrNameTaken       = errors.New("name-already-in-game")
	ErrNoFreePlace     = errors.New("no-free-place")
	ErrPlaceIsOccupied = errors.New("place-is-occupied")
	ErrSessionNotFound = errors.New("session-not-found")
)
