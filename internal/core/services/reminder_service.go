package services

import (
	"context"
	"log"
	"time"

	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// ReminderService scans occupied units once a day and sends rent
// reminders for unpaid rent entering the due-soon window or overdue.
type ReminderService struct {
	propertyRepo  repositories.PropertyRepository
	paymentRepo   repositories.PaymentRepository
	reminderRepo  repositories.ReminderRepository
	userRepo      repositories.UserRepository
	notifyService *NotificationService
	cron          *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	propertyRepo repositories.PropertyRepository,
	paymentRepo repositories.PaymentRepository,
	reminderRepo repositories.ReminderRepository,
	userRepo repositories.UserRepository,
	notifyService *NotificationService,
) *ReminderService {
	return &ReminderService{
		propertyRepo:  propertyRepo,
		paymentRepo:   paymentRepo,
		reminderRepo:  reminderRepo,
		userRepo:      userRepo,
		notifyService: notifyService,
		cron:          cron.New(),
	}
}

// Start schedules the daily scan (08:30)
func (s *ReminderService) Start() {
	s.cron.AddFunc("30 8 * * *", func() {
		s.RunScan(context.Background(), time.Now())
	})
	s.cron.Start()
	log.Println("🚀 ReminderService started (daily 08:30)")
}

// Stop stops the cron scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("🛑 ReminderService stopped")
}

// RunScan walks all occupied units and records one reminder per unit per
// rent period. The unique index on rent_reminders makes re-runs for the
// same day harmless.
func (s *ReminderService) RunScan(ctx context.Context, now time.Time) {
	units, err := s.propertyRepo.ListOccupiedUnits(ctx)
	if err != nil {
		log.Printf("❌ Reminder scan query error: %v", err)
		return
	}

	month, year := int(now.Month()), now.Year()
	sent := 0

	for _, unit := range units {
		paid, err := s.paymentRepo.HasAcceptedForPeriod(ctx, unit.ID, month, year)
		if err != nil {
			log.Printf("❌ Reminder payment check error for unit %s: %v", unit.Code, err)
			continue
		}
		if paid {
			continue
		}

		banner := BuildRentBanner(now, unit.RentDueDate, false)
		if banner.Tier == TierOnTime {
			continue
		}

		exists, err := s.reminderRepo.Exists(ctx, unit.ID, month, year)
		if err != nil || exists {
			continue
		}

		reminder := &models.RentReminder{
			UnitID:      unit.ID,
			PeriodMonth: month,
			PeriodYear:  year,
			Tier:        string(banner.Tier),
		}
		if err := s.reminderRepo.Create(ctx, reminder); err != nil {
			log.Printf("❌ Reminder create error for unit %s: %v", unit.Code, err)
			continue
		}

		s.notifyRenter(ctx, unit, banner)
		sent++
	}

	if sent > 0 {
		log.Printf("📅 Sent %d rent reminders", sent)
	}
}

func (s *ReminderService) notifyRenter(ctx context.Context, unit *models.Unit, banner RentBanner) {
	if unit.RenterID == nil {
		return
	}
	renter, err := s.userRepo.GetByID(ctx, *unit.RenterID)
	if err != nil {
		return
	}

	switch banner.Tier {
	case TierDueSoon:
		s.notifyService.NotifyRentDueSoon(renter.Phone, unit.Code, unit.RentAmount, banner.DaysRemaining)
	case TierOverdue:
		s.notifyService.NotifyRentOverdue(renter.Phone, unit.Code, unit.RentAmount, -banner.DaysRemaining)
	}
}
