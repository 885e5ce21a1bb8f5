package repositories

import (
	"context"

	"loye-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// reminderRepository implements ReminderRepository interface
type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

// Create creates a new rent reminder
func (r *reminderRepository) Create(ctx context.Context, reminder *models.RentReminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

// Exists reports whether a reminder was already recorded for a unit and period
func (r *reminderRepository) Exists(ctx context.Context, unitID uint, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RentReminder{}).
		Where("unit_id = ? AND period_month = ? AND period_year = ?", unitID, month, year).
		Count(&count).Error
	return count > 0, err
}
