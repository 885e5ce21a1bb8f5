package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// Loye errors
var (
	ErrInvalidLoyeRole     = errors.New("invalid loye role")
	ErrAlreadyOnboarded    = errors.New("user already onboarded into loye")
	ErrInviteCodeInvalid   = errors.New("invite code invalid or expired")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrUnitAlreadyOccupied = errors.New("unit already has a renter")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrPaymentNotFound     = errors.New("payment not found")
)
