package application

import (
	"context"
	"fmt"
)

type importService struct {
	restaurants RestaurantCommandService
}

// NewImportService creates the bulk import service. Rows go through the
// regular submission path so imported entries start with zeroed aggregates
// like any other submission.
func NewImportService(restaurants RestaurantCommandService) ImportService {
	return &importService{restaurants: restaurants}
}

// Run parses the pasted CSV and inserts the rows one at a time, strictly
// sequentially. Parse failures abort before any insertion; a failed insert
// is recorded against its row and the batch continues. Partial success is
// the expected outcome, not an error.
func (s *importService) Run(ctx context.Context, csvText string) (*ImportResult, error) {
	rows, err := ParseRestaurantCSV(csvText)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}
	for _, row := range rows {
		if _, err := s.restaurants.Submit(ctx, row.Command); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.Line, err))
			continue
		}
		result.SuccessCount++
	}
	return result, nil
}
