package handlers

import (
	"errors"
	"strings"

	"loye-backend/internal/config"
	"loye-backend/internal/core/domain"
	"loye-backend/internal/core/services"
	"loye-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoyeAuthHandler handles Loye onboarding endpoints
type LoyeAuthHandler struct {
	loyeAuthService *services.LoyeAuthService
	cfg             *config.Config
}

// NewLoyeAuthHandler creates a new loye auth handler
func NewLoyeAuthHandler(loyeAuthService *services.LoyeAuthService, cfg *config.Config) *LoyeAuthHandler {
	return &LoyeAuthHandler{
		loyeAuthService: loyeAuthService,
		cfg:             cfg,
	}
}

// CheckRole returns the caller's Loye role
// @Summary Check Loye role
// @Description Resolve the caller's role inside the Loye module. Empty role means not onboarded.
// @Tags Loye
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loye/auth/check-role [get]
func (h *LoyeAuthHandler) CheckRole(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.UnauthorizedRedirect(c, "Unauthorized", "/auth")
	}

	tokenRole, _ := c.Locals("loyeRole").(string)
	role := h.loyeAuthService.CheckRole(c.Context(), userID, tokenRole)

	return response.Success(c, "Role resolved", fiber.Map{
		"role":      role,
		"onboarded": role != "",
	})
}

// RegisterRoleRequest represents a direct role registration
type RegisterRoleRequest struct {
	Role string `json:"role"`
}

// RegisterRole onboards the caller as owner or manager
// @Summary Register Loye role
// @Description Onboard the caller as owner or manager (renters use invite codes)
// @Tags Loye
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterRoleRequest true "Role"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loye/auth/register-role [post]
func (h *LoyeAuthHandler) RegisterRole(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.UnauthorizedRedirect(c, "Unauthorized", "/auth")
	}

	var req RegisterRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.loyeAuthService.RegisterRole(c.Context(), userID, strings.TrimSpace(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLoyeRole):
			return response.BadRequest(c, "Role must be owner or manager")
		case errors.Is(err, domain.ErrAlreadyOnboarded):
			return response.Conflict(c, "Already onboarded into Loye")
		default:
			return response.InternalServerError(c, "Failed to register role")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Created(c, "Role registered successfully", fiber.Map{
		"token":    result.AccessToken,
		"user":     result.User,
		"redirect": services.RedirectForRole(domain.LoyeRole(result.User.Loye.Role)),
	})
}

// ConsumeInviteRequest represents an invite code consumption
type ConsumeInviteRequest struct {
	Code string `json:"code"`
}

// ConsumeInvite onboards the caller with the role an invite carries
// @Summary Consume invite code
// @Description Join Loye through an invite code (renter or manager)
// @Tags Loye
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ConsumeInviteRequest true "Invite code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loye/invite [post]
func (h *LoyeAuthHandler) ConsumeInvite(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.UnauthorizedRedirect(c, "Unauthorized", "/auth")
	}

	var req ConsumeInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Code) == "" {
		return response.BadRequest(c, "Invite code is required")
	}

	role, err := h.loyeAuthService.ConsumeInvite(c.Context(), userID, strings.TrimSpace(req.Code))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInviteCodeInvalid):
			return response.BadRequest(c, "Invite code invalid or already used")
		case errors.Is(err, domain.ErrAlreadyOnboarded):
			return response.Conflict(c, "Already onboarded into Loye")
		case errors.Is(err, domain.ErrUnitAlreadyOccupied):
			return response.Conflict(c, "Unit already has a renter")
		case errors.Is(err, domain.ErrUnitNotFound), errors.Is(err, domain.ErrPropertyNotFound):
			return response.NotFound(c, "Invite target no longer exists")
		default:
			return response.InternalServerError(c, "Failed to consume invite")
		}
	}

	return response.Success(c, "Invite consumed successfully", fiber.Map{
		"role":     role,
		"redirect": services.RedirectForRole(domain.LoyeRole(role)),
	})
}

// setAuthCookies sets access and refresh token cookies
func (h *LoyeAuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
