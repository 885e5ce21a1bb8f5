package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/adapters/persistence/repositories"
	"loye-backend/internal/core/domain"
	"loye-backend/internal/pkg/phone"

	"gorm.io/gorm"
)

// Verification errors
var (
	ErrVerificationNotFound = errors.New("verification not found")
	ErrInvalidDecision      = errors.New("invalid verification decision")
)

// VerificationService handles owner/manager payout verification
type VerificationService struct {
	verificationRepo repositories.VerificationRepository
	resolver         *RoleResolver
}

// NewVerificationService creates a new verification service
func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	resolver *RoleResolver,
) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		resolver:         resolver,
	}
}

// SubmitInput represents a verification submission
type SubmitInput struct {
	FullName         string `json:"fullName"`
	Phone            string `json:"phone"`
	WaveNumber       string `json:"waveNumber"`
	BankName         string `json:"bankName"`
	AccountNumber    string `json:"accountNumber"`
	IDCardImage      string `json:"idCardImage"`
	ProofOfOwnership string `json:"proofOfOwnership"`
}

// Submit creates or resubmits the caller's verification record. A
// resubmission is the explicit edit signal: the record goes back to
// PENDING and the session role cache entry is evicted so the next gate
// check re-reads the store.
func (s *VerificationService) Submit(ctx context.Context, userID uint, input *SubmitInput) (*models.Verification, error) {
	// Validate before any side effect
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("%w: fullName is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.IDCardImage) == "" {
		return nil, fmt.Errorf("%w: idCardImage is required", domain.ErrInvalidInput)
	}

	normalizedPhone, err := phone.Normalize(input.Phone)
	if err != nil {
		return nil, fmt.Errorf("%w: phone", domain.ErrInvalidInput)
	}
	normalizedWave, err := phone.Normalize(input.WaveNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: waveNumber", domain.ErrInvalidInput)
	}

	verification := &models.Verification{
		UserID:           userID,
		FullName:         strings.TrimSpace(input.FullName),
		Phone:            normalizedPhone,
		WaveNumber:       normalizedWave,
		BankName:         strings.TrimSpace(input.BankName),
		AccountNumber:    strings.TrimSpace(input.AccountNumber),
		IDCardImage:      input.IDCardImage,
		ProofOfOwnership: input.ProofOfOwnership,
		Status:           string(domain.VerificationPending),
	}

	if err := s.verificationRepo.Upsert(ctx, verification); err != nil {
		return nil, err
	}

	s.resolver.Evict(userID)

	log.Printf("✅ Verification submitted: user %d", userID)
	return verification, nil
}

// Get returns the caller's verification record
func (s *VerificationService) Get(ctx context.Context, userID uint) (*models.Verification, error) {
	verification, err := s.verificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return verification, nil
}

// ListAll returns all verification records for the admin review queue
func (s *VerificationService) ListAll(ctx context.Context) ([]*models.Verification, error) {
	return s.verificationRepo.ListAll(ctx)
}

// Decide applies an admin decision to a verification record.
// decision is "approved" or "rejected", as the admin UI sends it.
func (s *VerificationService) Decide(ctx context.Context, id uint, decision string) (*models.Verification, error) {
	var status domain.VerificationStatus
	switch strings.ToLower(decision) {
	case "approved":
		status = domain.VerificationApproved
	case "rejected":
		status = domain.VerificationRejected
	default:
		return nil, ErrInvalidDecision
	}

	verification, err := s.verificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}

	now := time.Now()
	verification.Status = string(status)
	verification.DecidedAt = &now
	if err := s.verificationRepo.Update(ctx, verification); err != nil {
		return nil, err
	}

	log.Printf("✅ Verification %d %s", id, strings.ToLower(decision))
	return verification, nil
}
