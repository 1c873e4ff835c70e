package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Admin edits go through constructor value objects so a correction can
// never write a malformed value over crowd-submitted data.

// usStateNames mirrors the directory's recognized state list for admin-side
// validation.
var usStateNames = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
	"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey",
	"New Mexico", "New York", "North Carolina", "North Dakota", "Ohio", "Oklahoma",
	"Oregon", "Pennsylvania", "Rhode Island", "South Carolina", "South Dakota", "Tennessee",
	"Texas", "Utah", "Vermont", "Virginia", "Washington", "West Virginia",
	"Wisconsin", "Wyoming",
}

const maxDescriptionRunes = 2000

type StateName string

func NewStateName(value string) (StateName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("state is required")
	}
	for _, state := range usStateNames {
		if strings.EqualFold(state, trimmed) {
			return StateName(state), nil
		}
	}
	return "", fmt.Errorf("unknown state: %s", trimmed)
}

func (s StateName) String() string {
	return string(s)
}

type CityName string

func NewCityName(value string) (CityName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("city is required")
	}
	return CityName(trimmed), nil
}

func (c CityName) String() string {
	return string(c)
}

type ZipCode string

// NewZipCode accepts an empty value, a 5-digit ZIP, or ZIP+4.
func NewZipCode(value string) (ZipCode, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	parts := strings.SplitN(trimmed, "-", 2)
	if !isDigits(parts[0]) || len(parts[0]) != 5 {
		return "", fmt.Errorf("invalid zip code: %s", trimmed)
	}
	if len(parts) == 2 && (!isDigits(parts[1]) || len(parts[1]) != 4) {
		return "", fmt.Errorf("invalid zip code: %s", trimmed)
	}
	return ZipCode(trimmed), nil
}

func (z ZipCode) String() string {
	return string(z)
}

type Phone string

// NewPhone accepts an empty value or a number with at least ten digits;
// punctuation and spaces are kept as entered.
func NewPhone(value string) (Phone, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	digits := 0
	for _, r := range trimmed {
		switch {
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune("()-+. ", r):
		default:
			return "", fmt.Errorf("invalid phone number: %s", trimmed)
		}
	}
	if digits < 10 {
		return "", fmt.Errorf("phone number must carry at least 10 digits: %s", trimmed)
	}
	return Phone(trimmed), nil
}

func (p Phone) String() string {
	return string(p)
}

type URL string

func NewURL(value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("invalid url: %s", trimmed)
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}

type Description string

func NewDescription(value string) (Description, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) > maxDescriptionRunes {
		return "", fmt.Errorf("description exceeds %d characters", maxDescriptionRunes)
	}
	return Description(trimmed), nil
}

func (d Description) String() string {
	return string(d)
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
