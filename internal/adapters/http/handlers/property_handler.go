package handlers

import (
	"errors"

	"loye-backend/internal/core/domain"
	"loye-backend/internal/core/services"
	"loye-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PropertyHandler handles property and unit endpoints
type PropertyHandler struct {
	propertyService *services.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Create creates a property with units grouped by type
// @Summary Create property
// @Description Create a property with its units and one renter invite code per unit
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePropertyInput true "Property data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loye/properties [post]
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreatePropertyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" || input.Address == "" {
		return response.BadRequest(c, "Name and address are required")
	}

	result, err := h.propertyService.CreateProperty(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create property")
	}

	return response.Created(c, "Property created successfully", result)
}

// List lists properties the caller owns or manages
// @Summary List properties
// @Description List properties owned or managed by the caller
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loye/properties [get]
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	properties, err := h.propertyService.ListProperties(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list properties")
	}

	return response.Success(c, "Properties retrieved successfully", fiber.Map{
		"items": properties,
	})
}

// Get returns one property with its units
// @Summary Get property
// @Description Get a property with its units, restricted to its owner or manager
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loye/properties/{id} [get]
func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	propertyID, err := c.ParamsInt("id")
	if err != nil || propertyID <= 0 {
		return response.BadRequest(c, "Invalid property ID")
	}

	property, err := h.propertyService.GetProperty(c.Context(), userID, uint(propertyID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			return response.NotFound(c, "Property not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Not your property")
		default:
			return response.InternalServerError(c, "Failed to load property")
		}
	}

	return response.Success(c, "Property retrieved successfully", property)
}

// InviteManager issues a manager invite code for a property
// @Summary Invite manager
// @Description Issue a single-use manager invite code for a property (owner only)
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loye/properties/{id}/invite-manager [post]
func (h *PropertyHandler) InviteManager(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	propertyID, err := c.ParamsInt("id")
	if err != nil || propertyID <= 0 {
		return response.BadRequest(c, "Invalid property ID")
	}

	code, err := h.propertyService.InviteManager(c.Context(), userID, uint(propertyID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			return response.NotFound(c, "Property not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only the owner can invite a manager")
		default:
			return response.InternalServerError(c, "Failed to create manager invite")
		}
	}

	return response.Created(c, "Manager invite created successfully", fiber.Map{
		"code": code,
	})
}

// UpdateUnit patches a unit
// @Summary Update unit
// @Description Update a unit's rent amount, due date or lease end
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Unit ID"
// @Param body body services.UpdateUnitInput true "Unit fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /loye/units/{id} [patch]
func (h *PropertyHandler) UpdateUnit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	unitID, err := c.ParamsInt("id")
	if err != nil || unitID <= 0 {
		return response.BadRequest(c, "Invalid unit ID")
	}

	var input services.UpdateUnitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	unit, err := h.propertyService.UpdateUnit(c.Context(), userID, uint(unitID), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnitNotFound):
			return response.NotFound(c, "Unit not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Not your unit")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update unit")
		}
	}

	return response.Success(c, "Unit updated successfully", unit)
}

// CreateRenter provisions a renter account bound to a unit
// @Summary Create renter
// @Description Provision a renter account directly bound to a unit
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Unit ID"
// @Param body body services.CreateRenterInput true "Renter data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loye/units/{id}/create-renter [post]
func (h *PropertyHandler) CreateRenter(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	unitID, err := c.ParamsInt("id")
	if err != nil || unitID <= 0 {
		return response.BadRequest(c, "Invalid unit ID")
	}

	var input services.CreateRenterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" || input.Email == "" {
		return response.BadRequest(c, "Name and email are required")
	}

	renter, err := h.propertyService.CreateRenter(c.Context(), userID, uint(unitID), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnitNotFound):
			return response.NotFound(c, "Unit not found")
		case errors.Is(err, domain.ErrUnitAlreadyOccupied):
			return response.Conflict(c, "Unit already has a renter")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Not your unit")
		case errors.Is(err, services.ErrUserAlreadyExists):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrInvalidPhone):
			return response.BadRequest(c, "Invalid phone number")
		default:
			return response.InternalServerError(c, "Failed to create renter")
		}
	}

	return response.Created(c, "Renter created successfully", fiber.Map{
		"user": renter,
	})
}
