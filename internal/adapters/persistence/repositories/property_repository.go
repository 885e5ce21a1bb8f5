package repositories

import (
	"context"

	"loye-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// propertyRepository implements PropertyRepository interface
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create creates a new property (units included via association)
func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// GetByID gets a property by ID
func (r *propertyRepository) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetByIDWithUnits gets a property with its units preloaded
func (r *propertyRepository) GetByIDWithUnits(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Units").
		Where("id = ?", id).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// Update updates a property
func (r *propertyRepository) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

// ListByManagerOrOwner lists properties the user owns or manages
func (r *propertyRepository) ListByManagerOrOwner(ctx context.Context, userID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Preload("Units").
		Where("owner_id = ? OR manager_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// Count counts all properties
func (r *propertyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Property{}).Count(&count).Error
	return count, err
}

// CreateUnit creates a new unit
func (r *propertyRepository) CreateUnit(ctx context.Context, unit *models.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

// GetUnitByID gets a unit by ID
func (r *propertyRepository) GetUnitByID(ctx context.Context, id uint) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// GetUnitByCode gets a unit by its public code
func (r *propertyRepository) GetUnitByCode(ctx context.Context, code string) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("code = ?", code).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// GetUnitByRenterID gets the unit currently leased by a renter
func (r *propertyRepository) GetUnitByRenterID(ctx context.Context, renterID uint) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("renter_id = ?", renterID).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// UpdateUnit updates a unit
func (r *propertyRepository) UpdateUnit(ctx context.Context, unit *models.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// ListOccupiedUnits lists all units that currently have a renter
func (r *propertyRepository) ListOccupiedUnits(ctx context.Context) ([]*models.Unit, error) {
	var units []*models.Unit
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("renter_id IS NOT NULL").
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	return units, nil
}
