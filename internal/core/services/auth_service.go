package services

import (
	"context"
	"errors"
	"log"

	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/adapters/persistence/repositories"
	"loye-backend/internal/config"
	"loye-backend/internal/pkg/jwt"
	"loye-backend/internal/pkg/password"
	"loye-backend/internal/pkg/phone"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidPhone       = errors.New("invalid phone number")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	profileRepo      repositories.LoyeProfileRepository
	resolver         *RoleResolver
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	profileRepo repositories.LoyeProfileRepository,
	resolver *RoleResolver,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		profileRepo:      profileRepo,
		resolver:         resolver,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	// 2. Normalize phone when provided
	normalizedPhone := ""
	if input.Phone != "" {
		normalizedPhone, err = phone.Normalize(input.Phone)
		if err != nil {
			return nil, ErrInvalidPhone
		}
	}

	// 3. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user
	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    normalizedPhone,
		Password: hashedPassword,
		Role:     "user",
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 5. Generate tokens (fresh accounts carry no Loye role yet)
	tokens, err := s.generateTokens(user, "")
	if err != nil {
		return nil, err
	}

	// 6. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Name, user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Attach Loye onboarding state when present
	loyeRole := ""
	userResponse := user.ToResponse()
	if profile, err := s.profileRepo.GetByUserID(ctx, user.ID); err == nil {
		loyeRole = profile.Role
		userResponse.Loye = &models.LoyeInfo{Role: profile.Role, Onboarded: profile.Onboarded}
	}

	// 5. Generate tokens
	tokens, err := s.generateTokens(user, loyeRole)
	if err != nil {
		return nil, err
	}

	// 6. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         userResponse,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Check stored token (hash) is known and live
	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenRevoked
		}
		return nil, err
	}
	if stored.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 3. Load the user
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 4. Rotate: revoke old token, issue a fresh pair
	if err := s.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	loyeRole := ""
	userResponse := user.ToResponse()
	if profile, err := s.profileRepo.GetByUserID(ctx, user.ID); err == nil {
		loyeRole = profile.Role
		userResponse.Loye = &models.LoyeInfo{Role: profile.Role, Onboarded: profile.Onboarded}
	}

	tokens, err := s.generateTokens(user, loyeRole)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         userResponse,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes all refresh tokens for the user and clears the session
// role cache. Credential and cached role always go away together.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	s.resolver.Evict(userID)

	log.Printf("✅ User logged out: %d", userID)
	return nil
}

// GetProfile returns the user's profile with Loye onboarding state
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	userResponse := user.ToResponse()
	if profile, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		userResponse.Loye = &models.LoyeInfo{Role: profile.Role, Onboarded: profile.Onboarded}
	}
	return userResponse, nil
}

// UpdateProfileInput represents a profile patch
type UpdateProfileInput struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profilePic"`
	IDImage    *string `json:"idImage"`
}

// UpdateProfile applies a partial update to the user's profile
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		normalized, err := phone.Normalize(*input.Phone)
		if err != nil {
			return nil, ErrInvalidPhone
		}
		user.Phone = normalized
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.ProfilePic != nil {
		user.ProfilePic = *input.ProfilePic
	}
	if input.IDImage != nil {
		user.IDImage = *input.IDImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// generateTokens generates an access/refresh token pair
func (s *AuthService) generateTokens(user *models.User, loyeRole string) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Name,
		user.Role,
		loyeRole,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()
	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a hashed refresh token
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	return s.refreshTokenRepo.Create(ctx, token)
}
