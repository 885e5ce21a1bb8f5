package repositories

import (
	"context"

	"loye-backend/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// LoyeProfileRepository defines loye profile repository interface.
// GetByUserID returning gorm.ErrRecordNotFound means "not onboarded".
type LoyeProfileRepository interface {
	Create(ctx context.Context, profile *models.LoyeProfile) error
	GetByUserID(ctx context.Context, userID uint) (*models.LoyeProfile, error)
	Update(ctx context.Context, profile *models.LoyeProfile) error
}

// PropertyRepository defines property and unit repository interface
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id uint) (*models.Property, error)
	GetByIDWithUnits(ctx context.Context, id uint) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	ListByManagerOrOwner(ctx context.Context, userID uint) ([]*models.Property, error)
	Count(ctx context.Context) (int64, error)

	CreateUnit(ctx context.Context, unit *models.Unit) error
	GetUnitByID(ctx context.Context, id uint) (*models.Unit, error)
	GetUnitByCode(ctx context.Context, code string) (*models.Unit, error)
	GetUnitByRenterID(ctx context.Context, renterID uint) (*models.Unit, error)
	UpdateUnit(ctx context.Context, unit *models.Unit) error
	ListOccupiedUnits(ctx context.Context) ([]*models.Unit, error)
}

// InviteCodeRepository defines invite code repository interface
type InviteCodeRepository interface {
	Create(ctx context.Context, invite *models.InviteCode) error
	GetByCode(ctx context.Context, code string) (*models.InviteCode, error)
	MarkUsed(ctx context.Context, invite *models.InviteCode, userID uint) error
	ListByProperty(ctx context.Context, propertyID uint) ([]*models.InviteCode, error)
}

// PaymentRepository defines payment and payout repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	ListByRenter(ctx context.Context, renterID uint, limit int) ([]*models.Payment, error)
	List(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error)
	HasAcceptedForPeriod(ctx context.Context, unitID uint, month, year int) (bool, error)
	SumAcceptedForPeriod(ctx context.Context, month, year int) (int64, error)

	CreatePayout(ctx context.Context, payout *models.Payout) error
	ListPayouts(ctx context.Context, offset, limit int) ([]*models.Payout, int64, error)
}

// VerificationRepository defines verification repository interface
type VerificationRepository interface {
	Upsert(ctx context.Context, verification *models.Verification) error
	GetByUserID(ctx context.Context, userID uint) (*models.Verification, error)
	GetByID(ctx context.Context, id uint) (*models.Verification, error)
	Update(ctx context.Context, verification *models.Verification) error
	ListAll(ctx context.Context) ([]*models.Verification, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// ReminderRepository defines rent reminder repository interface
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.RentReminder) error
	Exists(ctx context.Context, unitID uint, month, year int) (bool, error)
}
