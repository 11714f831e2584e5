package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNoActiveChallenge  = "PUB001"
	ErrCodeChallengeCompleted = "PUB002"
	ErrCodePostNotFound       = "PUB003"
	ErrCodePublishFailed      = "PUB004"
	ErrCodeCompensationFailed = "PUB005"
)

// Errors
var (
	ErrNoActiveChallenge         = errors.New("no active challenge")
	ErrChallengeAlreadyCompleted = errors.New("challenge already completed by this user")
	ErrPostNotFound              = errors.New("post not found")
	ErrPublishFailed             = errors.New("failed to publish post event")
)

// PostError custom error type
type PostError struct {
	Code    string
	Message string
	Err     error
}

func (e *PostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewNoActiveChallengeError() *PostError {
	return &PostError{
		Code:    ErrCodeNoActiveChallenge,
		Message: "No challenge is currently active",
		Err:     ErrNoActiveChallenge,
	}
}

func NewChallengeCompletedError() *PostError {
	return &PostError{
		Code:    ErrCodeChallengeCompleted,
		Message: "You have already published a post for this challenge",
		Err:     ErrChallengeAlreadyCompleted,
	}
}

func NewPostNotFoundError() *PostError {
	return &PostError{
		Code:    ErrCodePostNotFound,
		Message: "Post not found",
		Err:     ErrPostNotFound,
	}
}

// NewPublishFailedError wraps the transport error that made the bus
// announcement fail; the stored post has been rolled back.
func NewPublishFailedError(cause error) *PostError {
	return &PostError{
		Code:    ErrCodePublishFailed,
		Message: "Post could not be announced on the bus",
		Err:     fmt.Errorf("%w: %v", ErrPublishFailed, cause),
	}
}
