package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phofinder/phofinder-services/api/internal/interfaces/http/common"
	publicapp "github.com/phofinder/phofinder-services/api/internal/public/application"
	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

type stubRestaurantQueries struct {
	restaurants []domain.Restaurant
	detail      *domain.Restaurant
	detailErr   error
}

func (s *stubRestaurantQueries) List(_ context.Context, _ publicapp.RestaurantFilter) ([]domain.Restaurant, error) {
	return s.restaurants, nil
}

func (s *stubRestaurantQueries) Detail(_ context.Context, _ string) (*domain.Restaurant, error) {
	return s.detail, s.detailErr
}

type stubRestaurantCommands struct {
	submitted    []publicapp.SubmitRestaurantCommand
	submitErr    error
	closure      publicapp.ClosureStatus
	closureErr   error
	closureCalls int
}

func (s *stubRestaurantCommands) Submit(_ context.Context, cmd publicapp.SubmitRestaurantCommand) (*domain.Restaurant, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.submitted = append(s.submitted, cmd)
	return &domain.Restaurant{
		ID:      "rest-1",
		Name:    cmd.Name,
		Address: cmd.Address,
		City:    cmd.City,
		State:   cmd.State,
	}, nil
}

func (s *stubRestaurantCommands) ReportClosure(_ context.Context, _ string) (publicapp.ClosureStatus, error) {
	s.closureCalls++
	return s.closure, s.closureErr
}

type stubRatings struct {
	upserted []publicapp.UpsertRatingCommand
	own      *domain.Rating
	ownErr   error
}

func (s *stubRatings) Upsert(_ context.Context, cmd publicapp.UpsertRatingCommand) error {
	s.upserted = append(s.upserted, cmd)
	return nil
}

func (s *stubRatings) FindOwn(_ context.Context, restaurantID, _ string) (*domain.Rating, error) {
	if s.ownErr != nil {
		return nil, s.ownErr
	}
	if s.own != nil {
		return s.own, nil
	}
	return &domain.Rating{RestaurantID: restaurantID, Rating: 4, UpdatedAt: time.Now()}, nil
}

type stubReviews struct {
	listed    []domain.Review
	submitted []publicapp.SubmitReviewCommand
}

func (s *stubReviews) ListByRestaurant(_ context.Context, _ string) ([]domain.Review, error) {
	return s.listed, nil
}

func (s *stubReviews) Submit(_ context.Context, cmd publicapp.SubmitReviewCommand) (*domain.Review, error) {
	s.submitted = append(s.submitted, cmd)
	return &domain.Review{
		ID:           "rev-1",
		RestaurantID: cmd.RestaurantID,
		UserID:       cmd.UserID,
		UserName:     cmd.UserName,
		Rating:       cmd.Rating,
		Comment:      cmd.Comment,
	}, nil
}

type stubImporter struct {
	result  *publicapp.ImportResult
	err     error
	lastCSV string
}

func (s *stubImporter) Run(_ context.Context, csvText string) (*publicapp.ImportResult, error) {
	s.lastCSV = csvText
	return s.result, s.err
}

type stubDirectory struct {
	states    []domain.StateCities
	breakdown *domain.StateBreakdown
}

func (s *stubDirectory) States(_ context.Context) ([]domain.StateCities, error) {
	return s.states, nil
}

func (s *stubDirectory) StateBreakdown(_ context.Context, _ string) (*domain.StateBreakdown, error) {
	return s.breakdown, nil
}

type handlerStubs struct {
	queries   *stubRestaurantQueries
	commands  *stubRestaurantCommands
	reviews   *stubReviews
	ratings   *stubRatings
	directory *stubDirectory
	importer  *stubImporter
}

func newTestRouter(t *testing.T, stubs handlerStubs) chi.Router {
	t.Helper()
	if stubs.queries == nil {
		stubs.queries = &stubRestaurantQueries{}
	}
	if stubs.commands == nil {
		stubs.commands = &stubRestaurantCommands{}
	}
	if stubs.reviews == nil {
		stubs.reviews = &stubReviews{}
	}
	if stubs.ratings == nil {
		stubs.ratings = &stubRatings{}
	}
	if stubs.directory == nil {
		stubs.directory = &stubDirectory{}
	}
	if stubs.importer == nil {
		stubs.importer = &stubImporter{result: &publicapp.ImportResult{Errors: []string{}}}
	}

	handler := NewHandler(Config{
		Logger:             log.New(io.Discard, "", 0),
		RestaurantQueries:  stubs.queries,
		RestaurantCommands: stubs.commands,
		Reviews:            stubs.reviews,
		Ratings:            stubs.ratings,
		Directory:          stubs.directory,
		Importer:           stubs.importer,
	})

	authAsTester := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{ID: "user-1"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	router := chi.NewRouter()
	handler.Register(router, authAsTester)
	return router
}

func TestRestaurantSubmitRejectsMissingFields(t *testing.T) {
	commands := &stubRestaurantCommands{}
	router := newTestRouter(t, handlerStubs{commands: commands})

	body := `{"name":"Pho Saigon","city":"San Jose","state":"California"}`
	req := httptest.NewRequest(http.MethodPost, "/restaurants", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, commands.submitted)
}

func TestRestaurantSubmitCanonicalizesState(t *testing.T) {
	commands := &stubRestaurantCommands{}
	router := newTestRouter(t, handlerStubs{commands: commands})

	body := `{"name":"Pho Saigon","address":"123 Main St","city":"San Jose","state":"ca"}`
	req := httptest.NewRequest(http.MethodPost, "/restaurants", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, commands.submitted, 1)
	assert.Equal(t, "California", commands.submitted[0].State)
}

func TestRestaurantDetailNotFound(t *testing.T) {
	queries := &stubRestaurantQueries{detailErr: domain.ErrRestaurantNotFound}
	router := newTestRouter(t, handlerStubs{queries: queries})

	req := httptest.NewRequest(http.MethodGet, "/restaurants/ffffffffffffffffffffffff", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClosureReportResponseCarriesStatus(t *testing.T) {
	commands := &stubRestaurantCommands{closure: publicapp.ClosureStatus{ClosureReports: 3, IsClosed: true}}
	router := newTestRouter(t, handlerStubs{commands: commands})

	req := httptest.NewRequest(http.MethodPost, "/restaurants/rest-1/closure-reports", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp closureReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.ClosureReports)
	assert.True(t, resp.IsClosed)
	assert.Equal(t, 1, commands.closureCalls)
}

func TestReviewCreateRejectsOutOfRangeRating(t *testing.T) {
	reviews := &stubReviews{}
	router := newTestRouter(t, handlerStubs{reviews: reviews})

	body := `{"restaurantId":"rest-1","rating":6,"comment":"too good"}`
	req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, reviews.submitted)
}

func TestReviewCreateDefaultsUserName(t *testing.T) {
	reviews := &stubReviews{}
	router := newTestRouter(t, handlerStubs{reviews: reviews})

	body := `{"restaurantId":"rest-1","rating":4,"comment":"rich broth"}`
	req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, reviews.submitted, 1)
	assert.Equal(t, "Anonymous", reviews.submitted[0].UserName)
	assert.Equal(t, "user-1", reviews.submitted[0].UserID)
}

func TestRatingUpsertValidatesRange(t *testing.T) {
	ratings := &stubRatings{}
	router := newTestRouter(t, handlerStubs{ratings: ratings})

	req := httptest.NewRequest(http.MethodPut, "/restaurants/rest-1/rating", strings.NewReader(`{"rating":0.5}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ratings.upserted)
}

func TestRatingUpsertUsesSessionUser(t *testing.T) {
	ratings := &stubRatings{own: &domain.Rating{RestaurantID: "rest-1", Rating: 5}}
	router := newTestRouter(t, handlerStubs{ratings: ratings})

	req := httptest.NewRequest(http.MethodPut, "/restaurants/rest-1/rating", strings.NewReader(`{"rating":5}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, ratings.upserted, 1)
	assert.Equal(t, "user-1", ratings.upserted[0].UserID)
	assert.Equal(t, "rest-1", ratings.upserted[0].RestaurantID)
	assert.InDelta(t, 5, ratings.upserted[0].Rating, 0.0001)
}

func TestRatingGetMissingReturnsNotFound(t *testing.T) {
	ratings := &stubRatings{ownErr: domain.ErrRatingNotFound}
	router := newTestRouter(t, handlerStubs{ratings: ratings})

	req := httptest.NewRequest(http.MethodGet, "/restaurants/rest-1/rating", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportAcceptsRawCSVBody(t *testing.T) {
	importer := &stubImporter{result: &publicapp.ImportResult{SuccessCount: 2, Errors: []string{}}}
	router := newTestRouter(t, handlerStubs{importer: importer})

	csvText := "name,address,city,state\nPho Saigon,123 Main St,San Jose,California\nPho 79,456 Oak Ave,Houston,Texas\n"
	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(csvText))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, csvText, importer.lastCSV)

	var resp importResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Empty(t, resp.Errors)
}

func TestImportAcceptsJSONEnvelope(t *testing.T) {
	importer := &stubImporter{result: &publicapp.ImportResult{SuccessCount: 1, Errors: []string{}}}
	router := newTestRouter(t, handlerStubs{importer: importer})

	payload, err := json.Marshal(map[string]string{
		"csv": "name,address,city,state\nPho Saigon,123 Main St,San Jose,California",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/import", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, importer.lastCSV, "Pho Saigon")
}

func TestImportParseFailureReturnsBadRequest(t *testing.T) {
	importer := &stubImporter{err: errors.New("Missing required columns: state")}
	router := newTestRouter(t, handlerStubs{importer: importer})

	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader("name,address,city\nPho,1 Main,San Jose"))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required columns")
}

func TestDirectoryStateBreakdownRejectsUnknownState(t *testing.T) {
	router := newTestRouter(t, handlerStubs{})

	req := httptest.NewRequest(http.MethodGet, "/directory/states/Atlantis", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDirectoryStateBreakdownAcceptsAbbreviation(t *testing.T) {
	directory := &stubDirectory{breakdown: &domain.StateBreakdown{
		State:  "California",
		Cities: []domain.CityCount{{City: "San Jose", Count: 2}},
	}}
	router := newTestRouter(t, handlerStubs{directory: directory})

	req := httptest.NewRequest(http.MethodGet, "/directory/states/CA", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp stateBreakdownResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "California", resp.State)
	require.Len(t, resp.Cities, 1)
	assert.Equal(t, "San Jose", resp.Cities[0].City)
}
