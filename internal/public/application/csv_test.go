package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

const csvHeader = "name,address,city,state,zipcode,phone,website,description"

func TestParseRestaurantCSVQuotedFields(t *testing.T) {
	text := csvHeader + "\n" +
		`Pho Express,"789 Broadway, Suite 100",New York,New York,10001,212-555-9012,https://phoexpress.com,"Great pho, friendly staff"`

	rows, err := ParseRestaurantCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	cmd := rows[0].Command
	assert.Equal(t, "Pho Express", cmd.Name)
	assert.Equal(t, "789 Broadway, Suite 100", cmd.Address)
	assert.Equal(t, "New York", cmd.City)
	assert.Equal(t, "New York", cmd.State)
	assert.Equal(t, "10001", cmd.ZipCode)
	assert.Equal(t, "212-555-9012", cmd.Phone)
	assert.Equal(t, "https://phoexpress.com", cmd.Website)
	assert.Equal(t, "Great pho, friendly staff", cmd.Description)
	assert.Equal(t, 2, rows[0].Line)
}

func TestParseRestaurantCSVEscapedQuote(t *testing.T) {
	text := "name,address,city,state\n" +
		`"Pho ""Number One""",12 Elm St,Austin,Texas`

	rows, err := ParseRestaurantCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, `Pho "Number One"`, rows[0].Command.Name)
}

func TestParseRestaurantCSVHeaderAliases(t *testing.T) {
	text := "Name,Address,City,State,ZIP,URL\n" +
		"Pho Hoa,1 Main St,Seattle,Washington,98101,https://phohoa.example"

	rows, err := ParseRestaurantCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "98101", rows[0].Command.ZipCode)
	assert.Equal(t, "https://phohoa.example", rows[0].Command.Website)
}

func TestParseRestaurantCSVUnknownHeadersIgnored(t *testing.T) {
	text := "name,address,city,state,hours\n" +
		"Pho Hoa,1 Main St,Seattle,Washington,9-5"

	rows, err := ParseRestaurantCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Command.Description)
}

func TestParseRestaurantCSVMissingRequiredColumn(t *testing.T) {
	text := "name,address,city\n" +
		"Pho Hoa,1 Main St,Seattle"

	_, err := ParseRestaurantCSV(text)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "state")
}

func TestParseRestaurantCSVColumnCountMismatch(t *testing.T) {
	text := "name,address,city,state\n" +
		"Pho Hoa,1 Main St,Seattle,Washington\n" +
		"Pho 79,2 Pine St,Portland"

	_, err := ParseRestaurantCSV(text)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "Row 3")
}

func TestParseRestaurantCSVMissingRequiredValue(t *testing.T) {
	text := "name,address,city,state\n" +
		"Pho Hoa,1 Main St,,Washington"

	_, err := ParseRestaurantCSV(text)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "missing required fields")
}

func TestParseRestaurantCSVHeaderOnly(t *testing.T) {
	_, err := ParseRestaurantCSV("name,address,city,state\n\n")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestImportRunPartialFailure(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	restaurants.failNames["Pho 79"] = errStoreDown
	service := NewImportService(NewRestaurantCommandService(restaurants))

	text := "name,address,city,state\n" +
		"Pho Hoa,1 Main St,Seattle,Washington\n" +
		"Pho 79,2 Pine St,Portland,Oregon\n" +
		"Pho Bac,3 Oak St,Boise,Idaho"

	result, err := service.Run(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 3:")
	assert.Len(t, restaurants.restaurants, 2)
}

func TestImportRunParseFailureInsertsNothing(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	service := NewImportService(NewRestaurantCommandService(restaurants))

	text := "name,address,city\n" +
		"Pho Hoa,1 Main St,Seattle"

	_, err := service.Run(context.Background(), text)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, restaurants.restaurants)
}
