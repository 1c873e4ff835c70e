package application

import (
	"fmt"
	"strings"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

// requiredCSVColumns must all be present in the header row; the parse fails
// wholesale otherwise.
var requiredCSVColumns = []string{"name", "address", "city", "state"}

// RestaurantRow is one parsed CSV data row. Line keeps the 1-based position
// within the pasted text (header included) for per-row error reporting.
type RestaurantRow struct {
	Line    int
	Command SubmitRestaurantCommand
}

// ParseRestaurantCSV parses pasted CSV text into submission commands.
//
// The format is deliberately small: a case-insensitive header row, fields
// split on commas, double-quote delimited fields may contain commas, "" is
// an escaped quote, and unquoted content is trimmed. Recognized optional
// headers are zipcode/zip, phone, website/url and description; anything
// else is ignored. A column-count mismatch or a row missing a required
// value aborts the whole parse before anything is inserted.
func ParseRestaurantCSV(text string) ([]RestaurantRow, error) {
	lines := splitCSVLines(text)
	if len(lines) < 2 {
		return nil, domain.NewValidationError("CSV must have at least a header row and one data row")
	}

	headers := splitCSVFields(lines[0])
	for i, header := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(stripOuterQuotes(header)))
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVColumns {
		if !containsString(headers, required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("Missing required columns: " + strings.Join(missing, ", "))
	}

	rows := make([]RestaurantRow, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		values := splitCSVFields(lines[i])
		for j, value := range values {
			values[j] = strings.TrimSpace(stripOuterQuotes(value))
		}
		if len(values) != len(headers) {
			return nil, domain.NewValidationError(fmt.Sprintf("Row %d has %d columns but header has %d", i+1, len(values), len(headers)))
		}

		cmd := SubmitRestaurantCommand{}
		for j, header := range headers {
			value := values[j]
			switch header {
			case "name":
				cmd.Name = value
			case "address":
				cmd.Address = value
			case "city":
				cmd.City = value
			case "state":
				cmd.State = value
			case "zipcode", "zip":
				cmd.ZipCode = value
			case "phone":
				cmd.Phone = value
			case "website", "url":
				cmd.Website = value
			case "description":
				cmd.Description = value
			}
		}

		if cmd.Name == "" || cmd.Address == "" || cmd.City == "" || cmd.State == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("Row %d is missing required fields", i+1))
		}

		rows = append(rows, RestaurantRow{Line: i + 1, Command: cmd})
	}

	return rows, nil
}

// splitCSVLines drops blank lines so trailing newlines in pasted text do
// not produce phantom rows.
func splitCSVLines(text string) []string {
	raw := strings.Split(strings.TrimSpace(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitCSVFields walks a single line, honoring double-quote delimited
// fields with "" as an escaped quote. Each field is trimmed.
func splitCSVFields(line string) []string {
	result := make([]string, 0, 8)
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}

func stripOuterQuotes(value string) string {
	value = strings.TrimPrefix(value, `"`)
	return strings.TrimSuffix(value, `"`)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
