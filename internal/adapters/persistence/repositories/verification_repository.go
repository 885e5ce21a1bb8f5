package repositories

import (
	"context"
	"errors"

	"loye-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// verificationRepository implements VerificationRepository interface
type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

// Upsert creates the user's verification record or replaces the fields of
// an existing one (resubmission resets the status to PENDING).
func (r *verificationRepository) Upsert(ctx context.Context, verification *models.Verification) error {
	var existing models.Verification
	err := r.db.WithContext(ctx).Where("user_id = ?", verification.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(verification).Error
		}
		return err
	}

	verification.ID = existing.ID
	verification.CreatedAt = existing.CreatedAt
	verification.DecidedAt = nil
	return r.db.WithContext(ctx).Save(verification).Error
}

// GetByUserID gets a verification by user ID
func (r *verificationRepository) GetByUserID(ctx context.Context, userID uint) (*models.Verification, error) {
	var verification models.Verification
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&verification).Error
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

// GetByID gets a verification by ID
func (r *verificationRepository) GetByID(ctx context.Context, id uint) (*models.Verification, error) {
	var verification models.Verification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&verification).Error
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

// Update updates a verification
func (r *verificationRepository) Update(ctx context.Context, verification *models.Verification) error {
	return r.db.WithContext(ctx).Save(verification).Error
}

// ListAll lists all verifications, newest first
func (r *verificationRepository) ListAll(ctx context.Context) ([]*models.Verification, error) {
	var verifications []*models.Verification
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&verifications).Error
	if err != nil {
		return nil, err
	}
	return verifications, nil
}

// CountByStatus counts verifications in a lifecycle state
func (r *verificationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Verification{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
