package handlers

import (
	"errors"
	"strings"
	"time"

	"loye-backend/internal/core/domain"
	"loye-backend/internal/core/services"
	"loye-backend/internal/pkg/pagination"
	"loye-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles rent payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitWaveRequest represents a payment initiation request
type InitWaveRequest struct {
	UnitCode    string `json:"unitCode"`
	Amount      int64  `json:"amount"`
	RenterPhone string `json:"renterPhone"`
}

// InitWave initiates a Wave checkout session
// @Summary Initiate Wave payment
// @Description Create a payment record and open a Wave checkout session
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body InitWaveRequest true "Payment data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /loye/payments/wave/init [post]
func (h *PaymentHandler) InitWave(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req InitWaveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.UnitCode) == "" {
		return response.BadRequest(c, "Unit code is required")
	}

	input := &services.InitWavePaymentInput{
		UnitCode:    strings.TrimSpace(req.UnitCode),
		Amount:      req.Amount,
		RenterPhone: strings.TrimSpace(req.RenterPhone),
	}

	checkoutURL, err := h.paymentService.InitWavePayment(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnitNotFound):
			return response.NotFound(c, "Unit not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Not your unit")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to initiate payment")
		}
	}

	return response.Success(c, "Checkout session created", fiber.Map{
		"checkoutUrl": checkoutURL,
	})
}

// Webhook handles Wave status callbacks
// @Summary Wave webhook
// @Description Apply a Wave payment status callback
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loye/payments/wave/webhook [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var input services.WebhookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.ClientReference == "" {
		return response.BadRequest(c, "client_reference is required")
	}

	if err := h.paymentService.HandleWebhook(c.Context(), &input); err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to process webhook")
	}

	return response.Success(c, "Webhook processed", nil)
}

// Latest returns the renter's recent payments
// @Summary Latest payments
// @Description List the renter's recent payments, newest first
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max rows (default 20)"
// @Success 200 {object} response.Response
// @Router /loye/payments/renter/payments/latest [get]
func (h *PaymentHandler) Latest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	limit := c.QueryInt("limit", 20)
	payments, err := h.paymentService.LatestPayments(c.Context(), userID, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully", fiber.Map{
		"items": payments,
	})
}

// RentStatus returns the renter's unit snapshot and due-date banner
// @Summary Rent status
// @Description Get the renter's unit snapshot and rent due-date banner
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loye/rent-status [get]
func (h *PaymentHandler) RentStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	unit, banner, err := h.paymentService.RentStatus(c.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrUnitNotFound) {
			return response.NotFound(c, "No unit bound to this account")
		}
		return response.InternalServerError(c, "Failed to compute rent status")
	}

	return response.Success(c, "Rent status retrieved successfully", fiber.Map{
		"unit":   unit,
		"banner": banner,
	})
}

// AdminListPayments lists all payments
// @Summary List all payments
// @Description Paginated list of all payments for the admin view
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /loye/admin/payments [get]
func (h *PaymentHandler) AdminListPayments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	payments, total, err := h.paymentService.ListPayments(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully",
		pagination.NewResponse(payments, params, total))
}

// AdminListPayouts lists all payouts
// @Summary List all payouts
// @Description Paginated list of all payouts for the admin view
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /loye/admin/payouts [get]
func (h *PaymentHandler) AdminListPayouts(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	payouts, total, err := h.paymentService.ListPayouts(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payouts")
	}

	return response.Success(c, "Payouts retrieved successfully",
		pagination.NewResponse(payouts, params, total))
}
