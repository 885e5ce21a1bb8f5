package domain

import "testing"

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want PaymentStatus
	}{
		{"ACCEPTED", StatusAccepted},
		{"PAID", StatusAccepted},
		{"COMPLETE", StatusAccepted},
		{"accepted", StatusAccepted},
		{" paid ", StatusAccepted},
		{"REFUSED", StatusRefused},
		{"FAILED", StatusRefused},
		{"ERROR", StatusRefused},
		{"PENDING", StatusPending},
		{"NEW", StatusPending},
		{"new", StatusPending},
		{"CREATED", StatusPending},
		{"created", StatusPending},
		{"", StatusCreated},
		{"SOMETHING_ELSE", StatusCreated},
		{"cancelled", StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeStatus(tt.raw); got != tt.want {
				t.Fatalf("NormalizeStatus(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

// The settled buckets must map to themselves, otherwise re-normalizing an
// already-normalized value would move it. CREATED is the exception: a raw
// "CREATED" is a payment awaiting checkout and renders as pending.
func TestNormalizeStatusIdempotent(t *testing.T) {
	for _, s := range []PaymentStatus{StatusAccepted, StatusRefused, StatusPending} {
		if got := NormalizeStatus(string(s)); got != s {
			t.Fatalf("NormalizeStatus(%s) = %s, not a fixed point", s, got)
		}
	}
}

func TestNormalizeStatusRawCreatedIsPending(t *testing.T) {
	if got := NormalizeStatus("CREATED"); got != StatusPending {
		t.Fatalf("NormalizeStatus(CREATED) = %s, want %s", got, StatusPending)
	}
}

func TestStatusLabelAndColor(t *testing.T) {
	tests := []struct {
		status PaymentStatus
		label  string
		color  string
	}{
		{StatusAccepted, "Payé", "green"},
		{StatusRefused, "Échoué", "red"},
		{StatusPending, "En attente", "orange"},
		{StatusCreated, "Créé", "neutral"},
	}

	for _, tt := range tests {
		if got := StatusLabel(tt.status); got != tt.label {
			t.Fatalf("StatusLabel(%s) = %q, want %q", tt.status, got, tt.label)
		}
		if got := StatusColor(tt.status); got != tt.color {
			t.Fatalf("StatusColor(%s) = %q, want %q", tt.status, got, tt.color)
		}
	}
}
