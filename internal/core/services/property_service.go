package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/adapters/persistence/repositories"
	"loye-backend/internal/core/domain"
	"loye-backend/internal/pkg/password"
	"loye-backend/internal/pkg/phone"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyService handles property and unit management
type PropertyService struct {
	propertyRepo repositories.PropertyRepository
	inviteRepo   repositories.InviteCodeRepository
	userRepo     repositories.UserRepository
	profileRepo  repositories.LoyeProfileRepository
	resolver     *RoleResolver
}

// NewPropertyService creates a new property service
func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	inviteRepo repositories.InviteCodeRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.LoyeProfileRepository,
	resolver *RoleResolver,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		inviteRepo:   inviteRepo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		resolver:     resolver,
	}
}

// UnitsByTypeInput is the per-type unit block of a property creation request
type UnitsByTypeInput struct {
	Count int   `json:"count"`
	Rent  int64 `json:"rent"`
}

// CreatePropertyInput represents property creation input
type CreatePropertyInput struct {
	Name        string                      `json:"name"`
	Address     string                      `json:"address"`
	UnitsByType map[string]UnitsByTypeInput `json:"unitsByType"`
}

// CreatePropertyResult carries the created property and the renter invite
// codes generated for its units, which the caller hands out once.
type CreatePropertyResult struct {
	Property    *models.Property  `json:"property"`
	InviteCodes map[string]string `json:"inviteCodes"` // unit code -> invite code
}

// CreateProperty creates a property with its units and one renter invite
// code per unit.
func (s *PropertyService) CreateProperty(ctx context.Context, ownerID uint, input *CreatePropertyInput) (*CreatePropertyResult, error) {
	// 1. Validate unit blocks
	total := 0
	for unitType, block := range input.UnitsByType {
		if !domain.ValidUnitType(unitType) {
			return nil, fmt.Errorf("%w: unknown unit type %q", domain.ErrInvalidInput, unitType)
		}
		if block.Count <= 0 || block.Rent <= 0 {
			return nil, fmt.Errorf("%w: count and rent must be positive", domain.ErrInvalidInput)
		}
		total += block.Count
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: at least one unit is required", domain.ErrInvalidInput)
	}

	// 2. Create the property
	property := &models.Property{
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
		OwnerID: ownerID,
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	// 3. Create units and their renter invite codes
	inviteCodes := make(map[string]string)
	for _, unitType := range domain.UnitTypes {
		block, ok := input.UnitsByType[string(unitType)]
		if !ok {
			continue
		}
		for i := 0; i < block.Count; i++ {
			unit := &models.Unit{
				PropertyID: property.ID,
				Code:       shortCode("U"),
				Type:       string(unitType),
				RentAmount: block.Rent,
			}
			if err := s.propertyRepo.CreateUnit(ctx, unit); err != nil {
				return nil, err
			}

			invite := &models.InviteCode{
				Code:       shortCode("REN"),
				Role:       string(domain.LoyeRoleRenter),
				UnitID:     &unit.ID,
				PropertyID: &property.ID,
				CreatedBy:  ownerID,
			}
			if err := s.inviteRepo.Create(ctx, invite); err != nil {
				return nil, err
			}
			inviteCodes[unit.Code] = invite.Code
			property.Units = append(property.Units, *unit)
		}
	}

	log.Printf("✅ Property created: %s (%d units)", property.Name, len(property.Units))

	return &CreatePropertyResult{
		Property:    property,
		InviteCodes: inviteCodes,
	}, nil
}

// InviteManager issues a single-use manager invite code for a property.
// Only the owner can delegate management; consuming the code attaches the
// holder to the property as its manager.
func (s *PropertyService) InviteManager(ctx context.Context, userID, propertyID uint) (string, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrPropertyNotFound
		}
		return "", err
	}
	if property.OwnerID != userID {
		return "", domain.ErrForbidden
	}

	invite := &models.InviteCode{
		Code:       shortCode("MGR"),
		Role:       string(domain.LoyeRoleManager),
		PropertyID: &property.ID,
		CreatedBy:  userID,
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return "", err
	}

	log.Printf("✅ Manager invite issued for property %s", property.Name)

	return invite.Code, nil
}

// PropertySummary is the list row for the owner's property list
type PropertySummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	UnitCount int       `json:"unitCount"`
	Occupied  int       `json:"occupied"`
	CreatedAt time.Time `json:"created_at"`
}

// ListProperties lists properties owned or managed by the user
func (s *PropertyService) ListProperties(ctx context.Context, userID uint) ([]*PropertySummary, error) {
	properties, err := s.propertyRepo.ListByManagerOrOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*PropertySummary, 0, len(properties))
	for _, p := range properties {
		summary := &PropertySummary{
			ID:        p.ID,
			Name:      p.Name,
			Address:   p.Address,
			UnitCount: len(p.Units),
			CreatedAt: p.CreatedAt,
		}
		for _, u := range p.Units {
			if u.IsOccupied() {
				summary.Occupied++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetProperty returns one property with its units, restricted to its
// owner or manager.
func (s *PropertyService) GetProperty(ctx context.Context, userID, propertyID uint) (*models.Property, error) {
	property, err := s.propertyRepo.GetByIDWithUnits(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	if property.OwnerID != userID && (property.ManagerID == nil || *property.ManagerID != userID) {
		return nil, domain.ErrForbidden
	}
	return property, nil
}

// UpdateUnitInput represents a unit patch
type UpdateUnitInput struct {
	RentAmount  *int64     `json:"rentAmount"`
	RentDueDate *int       `json:"rentDueDate"`
	LeaseEnd    *time.Time `json:"leaseEnd"`
}

// UpdateUnit applies a partial update to a unit, restricted to the
// owner/manager of its property.
func (s *PropertyService) UpdateUnit(ctx context.Context, userID, unitID uint, input *UpdateUnitInput) (*models.Unit, error) {
	unit, err := s.propertyRepo.GetUnitByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, err
	}

	property, err := s.propertyRepo.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != userID && (property.ManagerID == nil || *property.ManagerID != userID) {
		return nil, domain.ErrForbidden
	}

	if input.RentAmount != nil {
		if *input.RentAmount <= 0 {
			return nil, fmt.Errorf("%w: rent amount must be positive", domain.ErrInvalidInput)
		}
		unit.RentAmount = *input.RentAmount
	}
	if input.RentDueDate != nil {
		if *input.RentDueDate < 1 || *input.RentDueDate > 28 {
			return nil, fmt.Errorf("%w: rent due date must be between 1 and 28", domain.ErrInvalidInput)
		}
		unit.RentDueDate = *input.RentDueDate
	}
	if input.LeaseEnd != nil {
		unit.LeaseEnd = input.LeaseEnd
	}

	if err := s.propertyRepo.UpdateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// CreateRenterInput represents a pre-provisioned renter account
type CreateRenterInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateRenter provisions a renter account directly bound to a unit,
// skipping the invite flow. The account starts with a random password the
// renter resets out of band.
func (s *PropertyService) CreateRenter(ctx context.Context, userID, unitID uint, input *CreateRenterInput) (*models.UserResponse, error) {
	unit, err := s.propertyRepo.GetUnitByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, err
	}
	if unit.IsOccupied() {
		return nil, domain.ErrUnitAlreadyOccupied
	}

	property, err := s.propertyRepo.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != userID && (property.ManagerID == nil || *property.ManagerID != userID) {
		return nil, domain.ErrForbidden
	}

	normalizedPhone, err := phone.Normalize(input.Phone)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := password.Hash(uuid.New().String())
	if err != nil {
		return nil, err
	}

	renter := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Phone:    normalizedPhone,
		Password: hashed,
		Role:     "user",
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, renter); err != nil {
		return nil, err
	}

	profile := &models.LoyeProfile{
		UserID:    renter.ID,
		Role:      string(domain.LoyeRoleRenter),
		Onboarded: true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	unit.RenterID = &renter.ID
	if err := s.propertyRepo.UpdateUnit(ctx, unit); err != nil {
		return nil, err
	}

	log.Printf("✅ Renter provisioned for unit %s: %s", unit.Code, renter.Email)

	response := renter.ToResponse()
	response.Loye = &models.LoyeInfo{Role: profile.Role, Onboarded: true}
	return response, nil
}

// shortCode builds a short public code like "REN-3F9KA2" from a uuid
func shortCode(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + "-" + raw[:6]
}
