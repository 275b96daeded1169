package subscription

import (
	"time"
)

type Plan struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:100;not null"`
	Slug         string `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Description  string `json:"description" gorm:"type:text"`
	PriceCents   int64  `json:"price_cents" gorm:"not null"`
	DurationDays int    `json:"duration_days" gorm:"not null;default:30"`
	Features     string `json:"features" gorm:"type:text"`
	Active       bool   `json:"active" gorm:"not null;default:true"`
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	PlanID    uint      `json:"plan_id" gorm:"not null"`
	Plan      Plan      `json:"plan" gorm:"foreignKey:PlanID"`
	Status    Status    `json:"status" gorm:"size:20;not null;default:'pending';index"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	AutoRenew bool      `json:"auto_renew" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment is a stub record: no gateway integration, just the ledger row
// the revenue aggregates are built from.
type Payment struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	UserID         uint          `json:"user_id" gorm:"not null;index"`
	SubscriptionID *uint         `json:"subscription_id" gorm:"index"`
	AmountCents    int64         `json:"amount_cents" gorm:"not null"`
	Currency       string        `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Status         PaymentStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	Method         string        `json:"method" gorm:"size:20;not null;default:'card'"`
	TransactionID  string        `json:"transaction_id" gorm:"uniqueIndex;size:64"`
	PaymentDate    time.Time     `json:"payment_date" gorm:"autoCreateTime"`
	Notes          string        `json:"notes" gorm:"type:text"`
}

func (Payment) TableName() string {
	return "payments"
}
