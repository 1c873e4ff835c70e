package application

import "errors"

// ErrRestaurantNotFound is returned when no listing matches the id.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ValidationError marks moderator input that failed value-object checks.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
