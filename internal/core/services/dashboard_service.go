package services

import (
	"context"
	"errors"
	"time"

	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/adapters/persistence/repositories"
	"loye-backend/internal/core/domain"
)

// DashboardService aggregates per-role dashboard views
type DashboardService struct {
	userRepo         repositories.UserRepository
	propertyRepo     repositories.PropertyRepository
	paymentRepo      repositories.PaymentRepository
	verificationRepo repositories.VerificationRepository
	paymentService   *PaymentService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	propertyRepo repositories.PropertyRepository,
	paymentRepo repositories.PaymentRepository,
	verificationRepo repositories.VerificationRepository,
	paymentService *PaymentService,
) *DashboardService {
	return &DashboardService{
		userRepo:         userRepo,
		propertyRepo:     propertyRepo,
		paymentRepo:      paymentRepo,
		verificationRepo: verificationRepo,
		paymentService:   paymentService,
	}
}

// RenterDashboard is the renter's home view: unit, due-date banner and
// recent payments.
type RenterDashboard struct {
	Unit     *UnitSnapshot             `json:"unit"`
	Banner   *RentBanner               `json:"banner"`
	Payments []*models.PaymentResponse `json:"payments"`
}

// RenterDashboard builds the renter home view. A renter without a bound
// unit gets a dashboard with a nil unit, not an error; the client shows
// the empty state.
func (s *DashboardService) RenterDashboard(ctx context.Context, renterID uint, now time.Time) (*RenterDashboard, error) {
	dashboard := &RenterDashboard{Payments: []*models.PaymentResponse{}}

	snapshot, banner, err := s.paymentService.RentStatus(ctx, renterID, now)
	if err != nil {
		if !errors.Is(err, domain.ErrUnitNotFound) {
			return nil, err
		}
		return dashboard, nil
	}
	dashboard.Unit = snapshot
	dashboard.Banner = banner

	payments, err := s.paymentService.LatestPayments(ctx, renterID, 5)
	if err != nil {
		return nil, err
	}
	dashboard.Payments = payments
	return dashboard, nil
}

// OwnerDashboard is the owner/manager home view
type OwnerDashboard struct {
	PropertyCount int   `json:"propertyCount"`
	UnitCount     int   `json:"unitCount"`
	OccupiedUnits int   `json:"occupiedUnits"`
	ExpectedRent  int64 `json:"expectedRent"`
	CollectedRent int64 `json:"collectedRent"`
}

// OwnerDashboard aggregates occupancy and the current month's rent
// collection across the user's properties. Expected rent counts only
// occupied units; vacant ones have nobody to pay.
func (s *DashboardService) OwnerDashboard(ctx context.Context, userID uint, now time.Time) (*OwnerDashboard, error) {
	properties, err := s.propertyRepo.ListByManagerOrOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &OwnerDashboard{PropertyCount: len(properties)}
	month, year := int(now.Month()), now.Year()

	for _, property := range properties {
		dashboard.UnitCount += len(property.Units)
		for _, unit := range property.Units {
			if !unit.IsOccupied() {
				continue
			}
			dashboard.OccupiedUnits++
			dashboard.ExpectedRent += unit.RentAmount

			paid, err := s.paymentRepo.HasAcceptedForPeriod(ctx, unit.ID, month, year)
			if err != nil {
				return nil, err
			}
			if paid {
				dashboard.CollectedRent += unit.RentAmount
			}
		}
	}
	return dashboard, nil
}

// AdminDashboard is the platform-wide admin view
type AdminDashboard struct {
	TotalUsers           int64 `json:"totalUsers"`
	TotalProperties      int64 `json:"totalProperties"`
	CollectedThisMonth   int64 `json:"collectedThisMonth"`
	PendingVerifications int64 `json:"pendingVerifications"`
}

// AdminDashboard aggregates platform-wide totals
func (s *DashboardService) AdminDashboard(ctx context.Context, now time.Time) (*AdminDashboard, error) {
	users, err := s.userRepo.CountByRole(ctx, "user")
	if err != nil {
		return nil, err
	}
	properties, err := s.propertyRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	collected, err := s.paymentRepo.SumAcceptedForPeriod(ctx, int(now.Month()), now.Year())
	if err != nil {
		return nil, err
	}
	pending, err := s.verificationRepo.CountByStatus(ctx, string(domain.VerificationPending))
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalUsers:           users,
		TotalProperties:      properties,
		CollectedThisMonth:   collected,
		PendingVerifications: pending,
	}, nil
}
