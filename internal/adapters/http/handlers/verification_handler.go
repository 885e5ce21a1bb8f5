package handlers

import (
	"errors"

	"loye-backend/internal/core/domain"
	"loye-backend/internal/core/services"
	"loye-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VerificationHandler handles payout verification endpoints
type VerificationHandler struct {
	verificationService *services.VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// Get returns the caller's verification record
// @Summary Get verification
// @Description Get the caller's payout verification record
// @Tags Verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loye/verification [get]
func (h *VerificationHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	verification, err := h.verificationService.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrVerificationNotFound) {
			return response.NotFound(c, "No verification submitted")
		}
		return response.InternalServerError(c, "Failed to load verification")
	}

	return response.Success(c, "Verification retrieved successfully", verification)
}

// Submit creates or resubmits the caller's verification
// @Summary Submit verification
// @Description Submit or resubmit payout verification documents. Resubmission resets the status to PENDING.
// @Tags Verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitInput true "Verification data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loye/verification [post]
func (h *VerificationHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	verification, err := h.verificationService.Submit(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to submit verification")
	}

	return response.Created(c, "Verification submitted successfully", verification)
}

// AdminListAll lists all verification records
// @Summary List verifications
// @Description List all verification records for the admin review queue
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loye/verification/admin/all [get]
func (h *VerificationHandler) AdminListAll(c *fiber.Ctx) error {
	verifications, err := h.verificationService.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list verifications")
	}

	return response.Success(c, "Verifications retrieved successfully", fiber.Map{
		"items": verifications,
	})
}

// AdminDecide applies an admin decision
// @Summary Decide verification
// @Description Approve or reject a verification record
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Verification ID"
// @Param decision path string true "approved or rejected"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loye/verification/admin/{id}/{decision} [put]
func (h *VerificationHandler) AdminDecide(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid verification ID")
	}
	decision := c.Params("decision")

	verification, err := h.verificationService.Decide(c.Context(), uint(id), decision)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDecision):
			return response.BadRequest(c, "Decision must be approved or rejected")
		case errors.Is(err, services.ErrVerificationNotFound):
			return response.NotFound(c, "Verification not found")
		default:
			return response.InternalServerError(c, "Failed to decide verification")
		}
	}

	return response.Success(c, "Verification decided successfully", verification)
}
