package repositories

import (
	"context"

	"loye-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loyeProfileRepository implements LoyeProfileRepository interface
type loyeProfileRepository struct {
	db *gorm.DB
}

// NewLoyeProfileRepository creates a new loye profile repository
func NewLoyeProfileRepository(db *gorm.DB) LoyeProfileRepository {
	return &loyeProfileRepository{db: db}
}

// Create creates a new loye profile
func (r *loyeProfileRepository) Create(ctx context.Context, profile *models.LoyeProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByUserID gets a loye profile by user ID
func (r *loyeProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.LoyeProfile, error) {
	var profile models.LoyeProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update updates a loye profile
func (r *loyeProfileRepository) Update(ctx context.Context, profile *models.LoyeProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
