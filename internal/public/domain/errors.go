package domain

import "errors"

var (
	// ErrRestaurantNotFound is returned when the referenced restaurant id
	// resolves to no document.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrReviewNotFound is returned when a review id resolves to no document.
	ErrReviewNotFound = errors.New("review not found")
	// ErrRatingNotFound is returned when no rating exists for a
	// (restaurant, user) pair.
	ErrRatingNotFound = errors.New("rating not found")
)

// ValidationError marks input that must abort an operation before any
// mutation happens (missing required fields, malformed CSV, ...).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
