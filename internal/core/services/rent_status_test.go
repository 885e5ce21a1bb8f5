package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// The next due date must fall on or after today and always carry the due
// day itself, for every valid due day and a spread of reference dates.
func TestNextDueDateAlwaysOnOrAfterToday(t *testing.T) {
	todays := []time.Time{
		date(2026, time.January, 1),
		date(2026, time.February, 28),
		date(2026, time.June, 15),
		date(2026, time.December, 31),
	}

	for _, today := range todays {
		for dueDay := 1; dueDay <= 28; dueDay++ {
			next := NextDueDate(today, dueDay)
			if next.Before(today) {
				t.Fatalf("NextDueDate(%s, %d) = %s, before today",
					today.Format("2006-01-02"), dueDay, next.Format("2006-01-02"))
			}
			if next.Day() != dueDay {
				t.Fatalf("NextDueDate(%s, %d) = %s, day != %d",
					today.Format("2006-01-02"), dueDay, next.Format("2006-01-02"), dueDay)
			}
		}
	}
}

func TestNextDueDateClampsDueDay(t *testing.T) {
	today := date(2026, time.February, 1)

	if got := NextDueDate(today, 31); got.Day() != 28 {
		t.Fatalf("expected due day clamped to 28, got %d", got.Day())
	}
	if got := NextDueDate(today, 0); got.Day() != 1 {
		t.Fatalf("expected due day clamped to 1, got %d", got.Day())
	}
}

func TestNextDueDateRollsToNextMonth(t *testing.T) {
	today := date(2026, time.March, 15)
	next := NextDueDate(today, 10)

	if next.Month() != time.April || next.Day() != 10 {
		t.Fatalf("expected April 10, got %s", next.Format("2006-01-02"))
	}
}

func TestBuildRentBanner(t *testing.T) {
	tests := []struct {
		name     string
		today    time.Time
		dueDay   int
		paid     bool
		wantTier RentTier
		wantLine string
		wantDays int
	}{
		{
			name:     "two days out",
			today:    date(2026, time.May, 8),
			dueDay:   10,
			wantTier: TierDueSoon,
			wantLine: "Paiement dans 2 jours",
			wantDays: 2,
		},
		{
			name:     "one day out uses singular",
			today:    date(2026, time.May, 9),
			dueDay:   10,
			wantTier: TierDueSoon,
			wantLine: "Paiement dans 1 jour",
			wantDays: 1,
		},
		{
			name:     "due today",
			today:    date(2026, time.May, 10),
			dueDay:   10,
			wantTier: TierDueSoon,
			wantLine: "Paiement aujourd'hui",
			wantDays: 0,
		},
		{
			name:     "overdue",
			today:    date(2026, time.May, 15),
			dueDay:   10,
			wantTier: TierOverdue,
			wantLine: "En retard de 5 jours",
			wantDays: -5,
		},
		{
			name:     "comfortably on time",
			today:    date(2026, time.May, 1),
			dueDay:   10,
			wantTier: TierOnTime,
			wantLine: "Paiement dans 9 jours",
			wantDays: 9,
		},
		{
			name:     "paid overrides overdue",
			today:    date(2026, time.May, 15),
			dueDay:   10,
			paid:     true,
			wantTier: TierOnTime,
			wantLine: "Loyer payé pour ce mois",
			wantDays: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			banner := BuildRentBanner(tt.today, tt.dueDay, tt.paid)

			if banner.Tier != tt.wantTier {
				t.Fatalf("tier = %s, want %s", banner.Tier, tt.wantTier)
			}
			if banner.StatusLine != tt.wantLine {
				t.Fatalf("statusLine = %q, want %q", banner.StatusLine, tt.wantLine)
			}
			if banner.DaysRemaining != tt.wantDays {
				t.Fatalf("daysRemaining = %d, want %d", banner.DaysRemaining, tt.wantDays)
			}
			if banner.Paid != tt.paid {
				t.Fatalf("paid = %v, want %v", banner.Paid, tt.paid)
			}
		})
	}
}

func TestBuildRentBannerVariants(t *testing.T) {
	if got := BuildRentBanner(date(2026, time.May, 1), 10, false).Variant; got != "success" {
		t.Fatalf("on-time variant = %q, want success", got)
	}
	if got := BuildRentBanner(date(2026, time.May, 9), 10, false).Variant; got != "warning" {
		t.Fatalf("due-soon variant = %q, want warning", got)
	}
	if got := BuildRentBanner(date(2026, time.May, 20), 10, false).Variant; got != "danger" {
		t.Fatalf("overdue variant = %q, want danger", got)
	}
}
