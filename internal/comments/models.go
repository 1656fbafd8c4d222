package comments

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidInput is returned when name or message is missing, not text, or blank.
var ErrInvalidInput = errors.New("name and message are required")

// Comment is a single visitor entry on the board.
type Comment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateCommentRequest is the body of POST /api/comments.
// Pointers distinguish an absent or null field from an empty string.
type CreateCommentRequest struct {
	Name    *string `json:"name"`
	Message *string `json:"message"`
}

// Normalize returns the trimmed name and message, or ErrInvalidInput.
func (r CreateCommentRequest) Normalize() (name, message string, err error) {
	if r.Name == nil || r.Message == nil {
		return "", "", ErrInvalidInput
	}
	name = strings.TrimSpace(*r.Name)
	message = strings.TrimSpace(*r.Message)
	if name == "" || message == "" {
		return "", "", ErrInvalidInput
	}
	return name, message, nil
}
