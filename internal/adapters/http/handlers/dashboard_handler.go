package handlers

import (
	"time"

	"loye-backend/internal/core/services"
	"loye-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles per-role dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Renter returns the renter's home view
// @Summary Renter dashboard
// @Description Unit snapshot, rent banner and recent payments
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loye/dashboard [get]
func (h *DashboardHandler) Renter(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	dashboard, err := h.dashboardService.RenterDashboard(c.Context(), userID, time.Now())
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dashboard)
}

// Owner returns the owner/manager home view
// @Summary Owner dashboard
// @Description Occupancy and rent collection across the caller's properties
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loye/dashboard/owner [get]
func (h *DashboardHandler) Owner(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	dashboard, err := h.dashboardService.OwnerDashboard(c.Context(), userID, time.Now())
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dashboard)
}

// Admin returns the platform-wide admin view
// @Summary Admin dashboard
// @Description Platform-wide totals
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loye/admin/dashboard [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	dashboard, err := h.dashboardService.AdminDashboard(c.Context(), time.Now())
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dashboard)
}
