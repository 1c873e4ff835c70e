package admin

import (
	"log"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/phofinder/phofinder-services/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger            *log.Logger
	restaurantService adminapp.RestaurantService
	reviewService     adminapp.ReviewService
	metricsService    adminapp.MetricsService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger            *log.Logger
	RestaurantService adminapp.RestaurantService
	ReviewService     adminapp.ReviewService
	MetricsService    adminapp.MetricsService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:            cfg.Logger,
		restaurantService: cfg.RestaurantService,
		reviewService:     cfg.ReviewService,
		metricsService:    cfg.MetricsService,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/restaurants", h.restaurantSearchHandler())
	r.Get("/restaurants/{id}", h.restaurantDetailHandler())
	r.Patch("/restaurants/{id}", h.restaurantUpdateHandler())
	r.Get("/reviews", h.reviewListHandler())
	r.Get("/metrics", h.metricsHandler())
}
