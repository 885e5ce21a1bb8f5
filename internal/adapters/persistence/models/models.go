package models

import (
	"time"

	"gorm.io/gorm"

	"loye-backend/internal/core/domain"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone      string         `gorm:"size:20;index" json:"phone"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Role       string         `gorm:"size:20;default:'user'" json:"role"`
	Bio        string         `gorm:"type:text" json:"bio"`
	ProfilePic string         `gorm:"size:500" json:"profilePic"`
	IDImage    string         `gorm:"size:500" json:"idImage"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// LoyeInfo is the Loye block embedded in the user DTO
type LoyeInfo struct {
	Role      string `json:"role"`
	Onboarded bool   `json:"onboarded"`
}

// UserResponse DTO
type UserResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	Bio        string    `json:"bio,omitempty"`
	ProfilePic string    `json:"profilePic,omitempty"`
	IDImage    string    `json:"idImage,omitempty"`
	IsActive   bool      `json:"is_active"`
	Loye       *LoyeInfo `json:"loye,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
		IDImage:    u.IDImage,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Loye Module Tables
// ============================================================

// LoyeProfile holds a user's onboarding state inside the Loye module.
// Absence of a row means "not yet onboarded".
type LoyeProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	Onboarded bool      `gorm:"default:true" json:"onboarded"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func (LoyeProfile) TableName() string {
	return "loye_profiles"
}

// Property represents properties table
type Property struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	Address   string         `gorm:"size:255;not null" json:"address"`
	OwnerID   uint           `gorm:"index;not null" json:"owner_id"`
	ManagerID *uint          `gorm:"index" json:"manager_id,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Units     []Unit         `gorm:"foreignKey:PropertyID" json:"units,omitempty"`
}

func (Property) TableName() string {
	return "properties"
}

// Unit represents units table. Code is the short public identifier the
// renter sees and payments reference.
type Unit struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PropertyID  uint           `gorm:"index;not null" json:"property_id"`
	Code        string         `gorm:"uniqueIndex;size:20;not null" json:"code"`
	Type        string         `gorm:"size:20;not null" json:"unitType"`
	RentAmount  int64          `gorm:"not null" json:"rentAmount"`
	RentDueDate int            `gorm:"default:10" json:"rentDueDate"`
	RenterID    *uint          `gorm:"index" json:"renter_id,omitempty"`
	LeaseEnd    *time.Time     `json:"leaseEnd,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Property    Property       `gorm:"foreignKey:PropertyID" json:"-"`
}

func (Unit) TableName() string {
	return "units"
}

func (u *Unit) IsOccupied() bool {
	return u.RenterID != nil
}

// InviteCode represents invite_codes table. Renter codes bind the consumer
// to a unit; manager codes attach the consumer to a property.
type InviteCode struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Code       string     `gorm:"uniqueIndex;size:20;not null" json:"code"`
	Role       string     `gorm:"size:20;not null" json:"role"`
	UnitID     *uint      `gorm:"index" json:"unit_id,omitempty"`
	PropertyID *uint      `gorm:"index" json:"property_id,omitempty"`
	CreatedBy  uint       `gorm:"not null" json:"created_by"`
	UsedBy     *uint      `gorm:"index" json:"used_by,omitempty"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (InviteCode) TableName() string {
	return "invite_codes"
}

func (ic *InviteCode) IsUsed() bool {
	return ic.UsedBy != nil
}

// ============================================================
// Payment Tables
// ============================================================

// Payment represents payments table. Rows are created by the wave/init
// call and only ever mutated by the provider webhook.
type Payment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TransactionID  string    `gorm:"uniqueIndex;size:64;not null" json:"transactionId"`
	UnitID         uint      `gorm:"index;not null" json:"unit_id"`
	UnitCode       string    `gorm:"index;size:20;not null" json:"unitCode"`
	RenterID       uint      `gorm:"index;not null" json:"renter_id"`
	Amount         int64     `gorm:"not null" json:"amount"`
	NetAmount      int64     `json:"netAmount"`
	PeriodMonth    int       `gorm:"not null" json:"-"`
	PeriodYear     int       `gorm:"not null" json:"-"`
	Provider       string    `gorm:"size:20;default:'wave'" json:"provider"`
	ProviderStatus string    `gorm:"size:30" json:"providerStatus"`
	CheckoutURL    string    `gorm:"size:500" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentResponse DTO carrying the canonical display projection
type PaymentResponse struct {
	ID            uint          `json:"id"`
	TransactionID string        `json:"transactionId"`
	UnitCode      string        `json:"unitCode"`
	Amount        int64         `json:"amount"`
	NetAmount     int64         `json:"netAmount,omitempty"`
	Period        domain.Period `json:"period"`
	Status        string        `json:"status"`
	StatusLabel   string        `json:"statusLabel"`
	StatusColor   string        `json:"statusColor"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (p *Payment) ToResponse() *PaymentResponse {
	bucket := domain.NormalizeStatus(p.ProviderStatus)
	return &PaymentResponse{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		UnitCode:      p.UnitCode,
		Amount:        p.Amount,
		NetAmount:     p.NetAmount,
		Period:        domain.Period{Month: p.PeriodMonth, Year: p.PeriodYear},
		Status:        string(bucket),
		StatusLabel:   domain.StatusLabel(bucket),
		StatusColor:   domain.StatusColor(bucket),
		CreatedAt:     p.CreatedAt,
	}
}

// Payout represents payouts table. One row is booked per settled payment,
// net of the platform fee, for the unit's owner.
type Payout struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PaymentID uint       `gorm:"uniqueIndex;not null" json:"payment_id"`
	OwnerID   uint       `gorm:"index;not null" json:"owner_id"`
	Amount    int64      `gorm:"not null" json:"amount"`
	Status    string     `gorm:"size:20;default:'PENDING'" json:"status"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Payout) TableName() string {
	return "payouts"
}

// ============================================================
// Verification Table
// ============================================================

// Verification represents verifications table, one row per owner/manager
type Verification struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName         string     `gorm:"size:150;not null" json:"fullName"`
	Phone            string     `gorm:"size:20;not null" json:"phone"`
	WaveNumber       string     `gorm:"size:20;not null" json:"waveNumber"`
	BankName         string     `gorm:"size:100" json:"bankName,omitempty"`
	AccountNumber    string     `gorm:"size:50" json:"accountNumber,omitempty"`
	IDCardImage      string     `gorm:"size:500;not null" json:"idCardImage"`
	ProofOfOwnership string     `gorm:"size:500" json:"proofOfOwnership,omitempty"`
	Status           string     `gorm:"size:20;default:'PENDING'" json:"status"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	User             User       `gorm:"foreignKey:UserID" json:"-"`
}

func (Verification) TableName() string {
	return "verifications"
}

// RentReminder represents rent_reminders table. The unique index keeps the
// daily scan from reminding the same unit twice for one rent period.
type RentReminder struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UnitID      uint      `gorm:"uniqueIndex:idx_reminder_unit_period;not null" json:"unit_id"`
	PeriodMonth int       `gorm:"uniqueIndex:idx_reminder_unit_period;not null" json:"period_month"`
	PeriodYear  int       `gorm:"uniqueIndex:idx_reminder_unit_period;not null" json:"period_year"`
	Tier        string    `gorm:"size:20" json:"tier"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RentReminder) TableName() string {
	return "rent_reminders"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&LoyeProfile{},
		&Property{},
		&Unit{},
		&InviteCode{},
		&Payment{},
		&Payout{},
		&Verification{},
		&RentReminder{},
	)
}
