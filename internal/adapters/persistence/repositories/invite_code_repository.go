package repositories

import (
	"context"
	"time"

	"loye-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// inviteCodeRepository implements InviteCodeRepository interface
type inviteCodeRepository struct {
	db *gorm.DB
}

// NewInviteCodeRepository creates a new invite code repository
func NewInviteCodeRepository(db *gorm.DB) InviteCodeRepository {
	return &inviteCodeRepository{db: db}
}

// Create creates a new invite code
func (r *inviteCodeRepository) Create(ctx context.Context, invite *models.InviteCode) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

// GetByCode gets an invite code by its code string
func (r *inviteCodeRepository) GetByCode(ctx context.Context, code string) (*models.InviteCode, error) {
	var invite models.InviteCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// MarkUsed marks an invite code as consumed by a user. The guard on
// used_by keeps two concurrent consumers from both succeeding.
func (r *inviteCodeRepository) MarkUsed(ctx context.Context, invite *models.InviteCode, userID uint) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.InviteCode{}).
		Where("id = ? AND used_by IS NULL", invite.ID).
		Updates(map[string]interface{}{
			"used_by": userID,
			"used_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	invite.UsedBy = &userID
	invite.UsedAt = &now
	return nil
}

// ListByProperty lists invite codes attached to a property's units
func (r *inviteCodeRepository) ListByProperty(ctx context.Context, propertyID uint) ([]*models.InviteCode, error) {
	var invites []*models.InviteCode
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}
