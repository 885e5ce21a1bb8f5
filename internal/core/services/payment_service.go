package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/adapters/persistence/repositories"
	"loye-backend/internal/core/domain"
	"loye-backend/internal/pkg/phone"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// platformFeePercent is the share of each settled payment kept by the
// platform; the rest is booked as the owner's payout.
const platformFeePercent = 3

// PaymentService handles rent payment initiation, provider webhooks and
// payment listings.
type PaymentService struct {
	paymentRepo  repositories.PaymentRepository
	propertyRepo repositories.PropertyRepository
	waveService  *WaveService
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	propertyRepo repositories.PropertyRepository,
	waveService *WaveService,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		propertyRepo: propertyRepo,
		waveService:  waveService,
	}
}

// InitWavePaymentInput represents a payment initiation request
type InitWavePaymentInput struct {
	UnitCode    string `json:"unitCode"`
	Amount      int64  `json:"amount"`
	RenterPhone string `json:"renterPhone"`
}

// InitWavePayment creates a CREATED payment row and a Wave checkout
// session, returning the URL the client redirects to. The provider takes
// over from there; status only changes again via the webhook.
func (s *PaymentService) InitWavePayment(ctx context.Context, renterID uint, input *InitWavePaymentInput) (string, error) {
	// 1. Validate the unit and the caller's claim on it
	unit, err := s.propertyRepo.GetUnitByCode(ctx, input.UnitCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUnitNotFound
		}
		return "", err
	}
	if unit.RenterID == nil || *unit.RenterID != renterID {
		return "", domain.ErrForbidden
	}
	if input.Amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if input.RenterPhone != "" && !phone.IsValid(input.RenterPhone) {
		return "", fmt.Errorf("%w: renter phone", domain.ErrInvalidInput)
	}

	// 2. Record the payment before touching the provider
	now := time.Now()
	due := NextDueDate(now, unit.RentDueDate)
	payment := &models.Payment{
		TransactionID:  uuid.New().String(),
		UnitID:         unit.ID,
		UnitCode:       unit.Code,
		RenterID:       renterID,
		Amount:         input.Amount,
		PeriodMonth:    int(due.Month()),
		PeriodYear:     due.Year(),
		Provider:       "wave",
		ProviderStatus: string(domain.StatusCreated),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return "", err
	}

	// 3. Open the checkout session
	session, err := s.waveService.CreateCheckoutSession(input.Amount, payment.TransactionID)
	if err != nil {
		log.Printf("❌ Wave checkout failed for %s: %v", payment.TransactionID, err)
		return "", err
	}

	payment.CheckoutURL = session.WaveLaunchURL
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return "", err
	}

	log.Printf("✅ Wave checkout opened: %s (%d XOF, unit %s)", payment.TransactionID, input.Amount, unit.Code)

	return session.WaveLaunchURL, nil
}

// WebhookInput represents a Wave status callback
type WebhookInput struct {
	ClientReference string `json:"client_reference"`
	PaymentStatus   string `json:"payment_status"`
}

// HandleWebhook applies a provider status callback to the matching
// payment. A settlement into the ACCEPTED bucket books the owner's payout
// net of the platform fee.
func (s *PaymentService) HandleWebhook(ctx context.Context, input *WebhookInput) error {
	payment, err := s.paymentRepo.GetByTransactionID(ctx, input.ClientReference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPaymentNotFound
		}
		return err
	}

	wasAccepted := domain.NormalizeStatus(payment.ProviderStatus) == domain.StatusAccepted

	payment.ProviderStatus = input.PaymentStatus
	if domain.NormalizeStatus(input.PaymentStatus) == domain.StatusAccepted {
		fee := payment.Amount * platformFeePercent / 100
		payment.NetAmount = payment.Amount - fee
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return err
	}

	// Book the payout once, on the first transition into ACCEPTED
	if !wasAccepted && domain.NormalizeStatus(input.PaymentStatus) == domain.StatusAccepted {
		unit, err := s.propertyRepo.GetUnitByID(ctx, payment.UnitID)
		if err != nil {
			return err
		}
		property, err := s.propertyRepo.GetByID(ctx, unit.PropertyID)
		if err != nil {
			return err
		}
		payout := &models.Payout{
			PaymentID: payment.ID,
			OwnerID:   property.OwnerID,
			Amount:    payment.NetAmount,
			Status:    "PENDING",
		}
		if err := s.paymentRepo.CreatePayout(ctx, payout); err != nil {
			return err
		}
		log.Printf("✅ Payment settled: %s, payout %d XOF -> owner %d", payment.TransactionID, payout.Amount, property.OwnerID)
	}

	return nil
}

// LatestPayments returns the renter's payment history, newest first, with
// the canonical display projection applied.
func (s *PaymentService) LatestPayments(ctx context.Context, renterID uint, limit int) ([]*models.PaymentResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	payments, err := s.paymentRepo.ListByRenter(ctx, renterID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}
	return responses, nil
}

// UnitSnapshot is the renter-facing read-only view of their unit
type UnitSnapshot struct {
	Code            string     `json:"code"`
	RentAmount      int64      `json:"rentAmount"`
	RentDueDate     int        `json:"rentDueDate"`
	PropertyAddress string     `json:"propertyAddress"`
	LeaseEnd        *time.Time `json:"leaseEnd,omitempty"`
	UnitType        string     `json:"unitType"`
}

// RentStatus computes the renter's due-date banner together with their
// unit snapshot.
func (s *PaymentService) RentStatus(ctx context.Context, renterID uint, now time.Time) (*UnitSnapshot, *RentBanner, error) {
	unit, err := s.propertyRepo.GetUnitByRenterID(ctx, renterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrUnitNotFound
		}
		return nil, nil, err
	}

	paid, err := s.paymentRepo.HasAcceptedForPeriod(ctx, unit.ID, int(now.Month()), now.Year())
	if err != nil {
		return nil, nil, err
	}

	snapshot := &UnitSnapshot{
		Code:            unit.Code,
		RentAmount:      unit.RentAmount,
		RentDueDate:     unit.RentDueDate,
		PropertyAddress: unit.Property.Address,
		LeaseEnd:        unit.LeaseEnd,
		UnitType:        unit.Type,
	}
	banner := BuildRentBanner(now, unit.RentDueDate, paid)
	return snapshot, &banner, nil
}

// ListPayments lists all payments for the admin view
func (s *PaymentService) ListPayments(ctx context.Context, offset, limit int) ([]*models.PaymentResponse, int64, error) {
	payments, total, err := s.paymentRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]*models.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}
	return responses, total, nil
}

// ListPayouts lists all payouts for the admin view
func (s *PaymentService) ListPayouts(ctx context.Context, offset, limit int) ([]*models.Payout, int64, error) {
	return s.paymentRepo.ListPayouts(ctx, offset, limit)
}
