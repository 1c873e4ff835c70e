package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	publicapp "github.com/phofinder/phofinder-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger             *log.Logger
	restaurantQueries  publicapp.RestaurantQueryService
	restaurantCommands publicapp.RestaurantCommandService
	reviews            publicapp.ReviewService
	ratings            publicapp.RatingService
	directory          publicapp.DirectoryService
	importer           publicapp.ImportService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger             *log.Logger
	RestaurantQueries  publicapp.RestaurantQueryService
	RestaurantCommands publicapp.RestaurantCommandService
	Reviews            publicapp.ReviewService
	Ratings            publicapp.RatingService
	Directory          publicapp.DirectoryService
	Importer           publicapp.ImportService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:             cfg.Logger,
		restaurantQueries:  cfg.RestaurantQueries,
		restaurantCommands: cfg.RestaurantCommands,
		reviews:            cfg.Reviews,
		ratings:            cfg.Ratings,
		directory:          cfg.Directory,
		importer:           cfg.Importer,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/restaurants", h.restaurantListHandler())
	r.Get("/restaurants/{id}", h.restaurantDetailHandler())
	r.With(authMiddleware).Post("/restaurants", h.restaurantSubmitHandler())
	r.Post("/restaurants/{id}/closure-reports", h.closureReportHandler())
	r.Get("/restaurants/{id}/reviews", h.reviewListHandler())
	r.Get("/directory/states", h.directoryStatesHandler())
	r.Get("/directory/states/{state}", h.directoryStateBreakdownHandler())
	r.With(authMiddleware).Post("/reviews", h.reviewCreateHandler())
	r.With(authMiddleware).Get("/restaurants/{id}/rating", h.ratingGetHandler())
	r.With(authMiddleware).Put("/restaurants/{id}/rating", h.ratingUpsertHandler())
	r.With(authMiddleware).Post("/import", h.importHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())
}
