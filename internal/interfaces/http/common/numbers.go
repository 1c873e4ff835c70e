package common

import (
	"strconv"
	"strings"
)

// ParsePositiveInt parses positive integers with fallback.
func ParsePositiveInt(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback, false
	}
	return parsed, true
}

// ParseRating parses a star value and reports whether it lies in [1, 5].
func ParseRating(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 1 || parsed > 5 {
		return 0, false
	}
	return parsed, true
}

// RatingInRange reports whether an already-decoded star value lies in [1, 5].
func RatingInRange(value float64) bool {
	return value >= 1 && value <= 5
}
