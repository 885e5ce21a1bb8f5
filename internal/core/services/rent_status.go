package services

import (
	"fmt"
	"time"
)

// RentTier is the display tier of the rent due-date banner
type RentTier string

const (
	TierOnTime  RentTier = "on-time"
	TierDueSoon RentTier = "due-soon"
	TierOverdue RentTier = "overdue"
)

// dueSoonWindow is the number of days before the due date at which the
// banner switches from on-time to due-soon.
const dueSoonWindow = 3

// RentBanner is the projection the renter dashboard renders. It is computed
// entirely client-side of the database: the only backend-sourced input is
// the paid flag.
type RentBanner struct {
	Tier          RentTier  `json:"tier"`
	Variant       string    `json:"variant"` // success | warning | danger
	StatusLine    string    `json:"statusLine"`
	DaysRemaining int       `json:"daysRemaining"`
	NextDueDate   time.Time `json:"nextDueDate"`
	Paid          bool      `json:"paid"`
}

// NextDueDate returns the next occurrence of day-of-month dueDay on or
// after today. dueDay is clamped to [1,28] so the result exists in every
// month. The returned date always has day == dueDay.
func NextDueDate(today time.Time, dueDay int) time.Time {
	if dueDay < 1 {
		dueDay = 1
	}
	if dueDay > 28 {
		dueDay = 28
	}

	day := truncateToDay(today)
	due := time.Date(day.Year(), day.Month(), dueDay, 0, 0, 0, 0, day.Location())
	if due.Before(day) {
		due = due.AddDate(0, 1, 0)
	}
	return due
}

// DaysUntilDue returns the calendar-day difference between the current
// month's due day and today. Negative when the due day already passed.
func DaysUntilDue(today time.Time, dueDay int) int {
	if dueDay < 1 {
		dueDay = 1
	}
	if dueDay > 28 {
		dueDay = 28
	}

	day := truncateToDay(today)
	due := time.Date(day.Year(), day.Month(), dueDay, 0, 0, 0, 0, day.Location())
	return int(due.Sub(day).Hours() / 24)
}

// BuildRentBanner computes the due-date banner for a unit.
//
// Tiers: more than 3 days out is on-time, 0-3 days is due-soon, a missed
// due day with the month unpaid is overdue. A settled month overrides the
// date arithmetic entirely.
func BuildRentBanner(today time.Time, dueDay int, paidThisMonth bool) RentBanner {
	next := NextDueDate(today, dueDay)
	remaining := DaysUntilDue(today, dueDay)

	if paidThisMonth {
		return RentBanner{
			Tier:          TierOnTime,
			Variant:       "success",
			StatusLine:    "Loyer payé pour ce mois",
			DaysRemaining: remaining,
			NextDueDate:   next,
			Paid:          true,
		}
	}

	banner := RentBanner{
		DaysRemaining: remaining,
		NextDueDate:   next,
	}

	switch {
	case remaining < 0:
		banner.Tier = TierOverdue
		banner.Variant = "danger"
		banner.StatusLine = fmt.Sprintf("En retard de %d jours", -remaining)
	case remaining == 0:
		banner.Tier = TierDueSoon
		banner.Variant = "warning"
		banner.StatusLine = "Paiement aujourd'hui"
	case remaining == 1:
		banner.Tier = TierDueSoon
		banner.Variant = "warning"
		banner.StatusLine = "Paiement dans 1 jour"
	case remaining <= dueSoonWindow:
		banner.Tier = TierDueSoon
		banner.Variant = "warning"
		banner.StatusLine = fmt.Sprintf("Paiement dans %d jours", remaining)
	default:
		banner.Tier = TierOnTime
		banner.Variant = "success"
		banner.StatusLine = fmt.Sprintf("Paiement dans %d jours", remaining)
	}

	return banner
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
