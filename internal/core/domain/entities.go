package domain

import "time"

// Role represents the platform-level user role
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// LoyeRole represents a user's role inside the Loye rental module.
// A user without a Loye role has not onboarded into the module yet.
type LoyeRole string

const (
	LoyeRoleRenter  LoyeRole = "renter"
	LoyeRoleOwner   LoyeRole = "owner"
	LoyeRoleManager LoyeRole = "manager"
)

// ValidLoyeRole reports whether s is one of the three Loye roles
func ValidLoyeRole(s string) bool {
	switch LoyeRole(s) {
	case LoyeRoleRenter, LoyeRoleOwner, LoyeRoleManager:
		return true
	}
	return false
}

// User represents a user in the domain layer
type User struct {
	ID        uint
	Name      string
	Email     string
	Phone     string
	Password  string // Hashed
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnitType enumerates the leasable unit types a property can declare
type UnitType string

const (
	UnitStudio   UnitType = "studio"
	UnitOneBed   UnitType = "1chambre"
	UnitTwoBed   UnitType = "2chambres"
	UnitThreeBed UnitType = "3chambres"
	UnitFourBed  UnitType = "4chambres"
	UnitDuplex   UnitType = "duplex"
)

// UnitTypes lists all unit types in display order
var UnitTypes = []UnitType{
	UnitStudio, UnitOneBed, UnitTwoBed, UnitThreeBed, UnitFourBed, UnitDuplex,
}

// ValidUnitType reports whether s is a known unit type
func ValidUnitType(s string) bool {
	for _, t := range UnitTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// VerificationStatus is the lifecycle state of a payout verification record
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// Period identifies the rent month a payment covers
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}
