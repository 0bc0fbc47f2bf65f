package handlers

import (
	"etalase/internal/middleware"
	"etalase/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the aggregate metrics behind the dashboard charts.
type DashboardHandler struct {
	service *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// RegisterRoutes registers the dashboard routes on the protected router.
func (h *DashboardHandler) RegisterRoutes(protected fiber.Router) {
	protected.Get("/dashboard/metrics", h.HandleMetrics)
}

// HandleMetrics returns the catalog-wide aggregates.
func (h *DashboardHandler) HandleMetrics(c *fiber.Ctx) error {
	metrics, err := h.service.Metrics(middleware.SessionFromCtx(c))
	if err != nil {
		return productErrorResponse(c, err, "Could not compute dashboard metrics")
	}
	return c.JSON(metrics)
}
