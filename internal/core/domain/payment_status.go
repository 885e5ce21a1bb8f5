package domain

import "strings"

// PaymentStatus is one of the four canonical buckets every raw provider
// status string is mapped into for display.
type PaymentStatus string

const (
	StatusAccepted PaymentStatus = "ACCEPTED"
	StatusRefused  PaymentStatus = "REFUSED"
	StatusPending  PaymentStatus = "PENDING"
	StatusCreated  PaymentStatus = "CREATED"
)

// NormalizeStatus maps a raw provider status string (case-insensitive) to
// exactly one canonical bucket. The mapping is total: unknown, empty or
// missing values land in CREATED, never an error. A raw "CREATED" is a
// payment awaiting checkout and displays as pending.
func NormalizeStatus(raw string) PaymentStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACCEPTED", "PAID", "COMPLETE":
		return StatusAccepted
	case "REFUSED", "FAILED", "ERROR":
		return StatusRefused
	case "PENDING", "CREATED", "NEW":
		return StatusPending
	default:
		return StatusCreated
	}
}

// StatusLabel returns the French display label for a canonical bucket
func StatusLabel(s PaymentStatus) string {
	switch s {
	case StatusAccepted:
		return "Payé"
	case StatusRefused:
		return "Échoué"
	case StatusPending:
		return "En attente"
	default:
		return "Créé"
	}
}

// StatusColor returns the display color for a canonical bucket
func StatusColor(s PaymentStatus) string {
	switch s {
	case StatusAccepted:
		return "green"
	case StatusRefused:
		return "red"
	case StatusPending:
		return "orange"
	default:
		return "neutral"
	}
}
