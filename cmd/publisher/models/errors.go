package models

import "errors"

// Workflow error discriminants. Repositories and services wrap these with
// context; the HTTP layer maps them to status codes with errors.Is.
var (
	// ErrInvalidInput marks missing or malformed request input
	ErrInvalidInput = errors.New("invalid input")

	// ErrRequestNotFound marks an unknown submission request id
	ErrRequestNotFound = errors.New("game request not found")

	// ErrAlreadyProcessed marks a decision attempt on a terminal request
	ErrAlreadyProcessed = errors.New("game request already processed")

	// ErrDuplicateVersion marks a (game_id, version) pair that already has a
	// submission, detected either at the bundle upload or at the row insert
	ErrDuplicateVersion = errors.New("game version already published")
)
