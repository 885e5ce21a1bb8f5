package repositories

import (
	"context"

	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/core/domain"

	"gorm.io/gorm"
)

// acceptedStatuses are the raw provider strings the ACCEPTED bucket covers
var acceptedStatuses = []string{
	string(domain.StatusAccepted), "PAID", "COMPLETE",
}

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByTransactionID gets a payment by transaction ID
func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update updates a payment
func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// ListByRenter lists a renter's payments, newest first
func (r *paymentRepository) ListByRenter(ctx context.Context, renterID uint, limit int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// List lists all payments with pagination
func (r *paymentRepository) List(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// HasAcceptedForPeriod reports whether a unit's rent is settled for a period
func (r *paymentRepository) HasAcceptedForPeriod(ctx context.Context, unitID uint, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("unit_id = ? AND period_month = ? AND period_year = ?", unitID, month, year).
		Where("UPPER(provider_status) IN ?", acceptedStatuses).
		Count(&count).Error
	return count > 0, err
}

// SumAcceptedForPeriod sums settled payment amounts for a period
func (r *paymentRepository) SumAcceptedForPeriod(ctx context.Context, month, year int) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("period_month = ? AND period_year = ?", month, year).
		Where("UPPER(provider_status) IN ?", acceptedStatuses).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// CreatePayout creates a new payout
func (r *paymentRepository) CreatePayout(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Create(payout).Error
}

// ListPayouts lists all payouts with pagination
func (r *paymentRepository) ListPayouts(ctx context.Context, offset, limit int) ([]*models.Payout, int64, error) {
	var payouts []*models.Payout
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Payout{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&payouts).Error
	if err != nil {
		return nil, 0, err
	}

	return payouts, total, nil
}
