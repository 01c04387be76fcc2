package billing

import (
	"time"

	"gorm.io/gorm"
)

// Subscription statuses
const (
	SubscriptionPending   = "PENDING"
	SubscriptionActive    = "ACTIVE"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionCancelled = "CANCELLED"
)

// Payment charge statuses
const (
	ChargePending = "PENDING"
	ChargePaid    = "PAID"
	ChargeFailed  = "FAILED"
)

// Payment methods
const (
	MethodPix  = "PIX"
	MethodCard = "CARD"
)

// Subscription grants a student platform access for a billing period.
type Subscription struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	Plan         string     `json:"plan" gorm:"default:'MONTHLY'"` // MONTHLY, YEARLY
	Status       string     `json:"status" gorm:"default:'PENDING'"`
	StartsAt     *time.Time `json:"starts_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
	ReminderSent bool       `json:"reminder_sent" gorm:"default:false"`
	IsDeleted    bool       `gorm:"default:false"`
}

// PaymentCharge is one gateway charge backing a subscription payment.
type PaymentCharge struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	SubscriptionID  uint       `json:"subscription_id" gorm:"index;not null"`
	Method          string     `json:"method" gorm:"default:'PIX'"` // PIX, CARD
	Amount          float64    `json:"amount"`
	GatewayChargeID string     `json:"gateway_charge_id" gorm:"index"`
	PixQrCode       string     `json:"pix_qr_code" gorm:"type:text"` // copy-and-paste payload
	Status          string     `json:"status" gorm:"default:'PENDING'"`
	PaidAt          *time.Time `json:"paid_at"`
	IsDeleted       bool       `gorm:"default:false"`
}
