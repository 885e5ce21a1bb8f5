package services

import (
	"context"
	"errors"
	"log"

	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/adapters/persistence/repositories"
	"loye-backend/internal/config"
	"loye-backend/internal/core/domain"

	"gorm.io/gorm"
)

// LoyeAuthService handles onboarding into the Loye module: role checks,
// direct role registration (owner/manager) and invite code consumption.
type LoyeAuthService struct {
	userRepo     repositories.UserRepository
	profileRepo  repositories.LoyeProfileRepository
	propertyRepo repositories.PropertyRepository
	inviteRepo   repositories.InviteCodeRepository
	authService  *AuthService
	resolver     *RoleResolver
	cfg          *config.Config
}

// NewLoyeAuthService creates a new loye auth service
func NewLoyeAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.LoyeProfileRepository,
	propertyRepo repositories.PropertyRepository,
	inviteRepo repositories.InviteCodeRepository,
	authService *AuthService,
	resolver *RoleResolver,
	cfg *config.Config,
) *LoyeAuthService {
	return &LoyeAuthService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		propertyRepo: propertyRepo,
		inviteRepo:   inviteRepo,
		authService:  authService,
		resolver:     resolver,
		cfg:          cfg,
	}
}

// CheckRole resolves the caller's Loye role. An empty role means the user
// has not onboarded; that is not an error state the caller can distinguish
// from a failed lookup.
func (s *LoyeAuthService) CheckRole(ctx context.Context, userID uint, tokenRole string) string {
	res := s.resolver.Resolve(ctx, userID, tokenRole)
	if res.State != RoleResolved {
		return ""
	}
	return string(res.Role)
}

// RegisterRole onboards the user as owner or manager without an invite.
// Renters must come through an invite code, so the role is rejected here.
func (s *LoyeAuthService) RegisterRole(ctx context.Context, userID uint, role string) (*AuthResponse, error) {
	if role != string(domain.LoyeRoleOwner) && role != string(domain.LoyeRoleManager) {
		return nil, domain.ErrInvalidLoyeRole
	}

	// Reject double onboarding
	if _, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		return nil, domain.ErrAlreadyOnboarded
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile := &models.LoyeProfile{
		UserID:    userID,
		Role:      role,
		Onboarded: true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.resolver.Put(userID, domain.LoyeRole(role))

	log.Printf("✅ Loye role registered: user %d -> %s", userID, role)

	// Issue a fresh token pair with the role embedded in the claims
	return s.reissueSession(ctx, userID, role)
}

// ConsumeInvite onboards the caller with the role the invite carries.
// Renter codes bind the caller to the invite's unit; manager codes attach
// the caller to the invite's property.
func (s *LoyeAuthService) ConsumeInvite(ctx context.Context, userID uint, code string) (string, error) {
	// 1. Look up and validate the code
	invite, err := s.inviteRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrInviteCodeInvalid
		}
		return "", err
	}
	if invite.IsUsed() {
		return "", domain.ErrInviteCodeInvalid
	}

	// 2. Reject double onboarding
	if _, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		return "", domain.ErrAlreadyOnboarded
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// 3. Bind according to the invite's role
	switch domain.LoyeRole(invite.Role) {
	case domain.LoyeRoleRenter:
		if invite.UnitID == nil {
			return "", domain.ErrInviteCodeInvalid
		}
		unit, err := s.propertyRepo.GetUnitByID(ctx, *invite.UnitID)
		if err != nil {
			return "", domain.ErrUnitNotFound
		}
		if unit.IsOccupied() {
			return "", domain.ErrUnitAlreadyOccupied
		}
		unit.RenterID = &userID
		if err := s.propertyRepo.UpdateUnit(ctx, unit); err != nil {
			return "", err
		}
	case domain.LoyeRoleManager:
		if invite.PropertyID == nil {
			return "", domain.ErrInviteCodeInvalid
		}
		property, err := s.propertyRepo.GetByID(ctx, *invite.PropertyID)
		if err != nil {
			return "", domain.ErrPropertyNotFound
		}
		property.ManagerID = &userID
		if err := s.propertyRepo.Update(ctx, property); err != nil {
			return "", err
		}
	default:
		return "", domain.ErrInviteCodeInvalid
	}

	// 4. Burn the code
	if err := s.inviteRepo.MarkUsed(ctx, invite, userID); err != nil {
		return "", domain.ErrInviteCodeInvalid
	}

	// 5. Create the profile and warm the session cache
	profile := &models.LoyeProfile{
		UserID:    userID,
		Role:      invite.Role,
		Onboarded: true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return "", err
	}
	s.resolver.Put(userID, domain.LoyeRole(invite.Role))

	log.Printf("✅ Invite %s consumed: user %d -> %s", invite.Code, userID, invite.Role)

	return invite.Role, nil
}

// reissueSession builds a fresh AuthResponse for a user whose Loye state
// just changed.
func (s *LoyeAuthService) reissueSession(ctx context.Context, userID uint, loyeRole string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	tokens, err := s.authService.generateTokens(user, loyeRole)
	if err != nil {
		return nil, err
	}
	if err := s.authService.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	userResponse := user.ToResponse()
	userResponse.Loye = &models.LoyeInfo{Role: loyeRole, Onboarded: true}

	return &AuthResponse{
		User:         userResponse,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}
