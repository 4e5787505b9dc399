package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for failures handled locally and mapped to specific
// client-facing statuses.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrUnauthorized       = errors.New("password does not match")
	ErrNicknameRequired   = errors.New("nickname is required")
	ErrNicknameTooLong    = errors.New("nickname is too long")
	ErrNicknameDuplicated = errors.New("nickname already taken")
)

// ValidationError wraps a request-shape violation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ModerationBlockedError reports a toxic verdict from the classifier.
type ModerationBlockedError struct {
	Label string
	Score float64
}

func (e *ModerationBlockedError) Error() string {
	return fmt.Sprintf("blocked toxic content: label=%s score=%.3f", e.Label, e.Score)
}

// ModerationUnavailableError reports that the classifier itself failed.
// It is surfaced as a server error, not a client error.
type ModerationUnavailableError struct {
	Err error
}

func (e *ModerationUnavailableError) Error() string {
	return fmt.Sprintf("moderation unavailable: %v", e.Err)
}

func (e *ModerationUnavailableError) Unwrap() error { return e.Err }
