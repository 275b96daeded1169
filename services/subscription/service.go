package subscription

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streamify/streamify/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadySubscribed    = errors.New("an active subscription already exists")
)

type Service struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewService(db *gorm.DB, logger *logging.Service) *Service {
	return &Service{db: db, logger: logger}
}

func (s *Service) Plans() ([]Plan, error) {
	var plans []Plan
	if err := s.db.Where("active = ?", true).Order("price_cents").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	return plans, nil
}

func (s *Service) PlanBySlug(slug string) (*Plan, error) {
	var plan Plan
	if err := s.db.Where("slug = ? AND active = ?", slug, true).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to look up plan: %w", err)
	}
	return &plan, nil
}

// Subscribe creates a pending subscription together with its pending
// payment row. CompletePayment activates both.
func (s *Service) Subscribe(userID uint, planSlug, method string) (*Subscription, *Payment, error) {
	plan, err := s.PlanBySlug(planSlug)
	if err != nil {
		return nil, nil, err
	}

	active, err := s.HasActiveSubscription(userID)
	if err != nil {
		return nil, nil, err
	}
	if active {
		return nil, nil, ErrAlreadySubscribed
	}

	now := time.Now()
	sub := &Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    StatusPending,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, plan.DurationDays),
		AutoRenew: true,
	}

	payment := &Payment{
		UserID:        userID,
		AmountCents:   plan.PriceCents,
		Currency:      "USD",
		Status:        PaymentPending,
		Method:        method,
		TransactionID: uuid.New().String(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		payment.SubscriptionID = &sub.ID
		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("subscription created",
			zap.Uint("user_id", userID),
			zap.String("plan", plan.Slug),
			zap.String("transaction_id", payment.TransactionID))
	}
	return sub, payment, nil
}

// CompletePayment records a successful (stub) payment and activates the
// subscription it belongs to.
func (s *Service) CompletePayment(transactionID string) error {
	var payment Payment
	if err := s.db.Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return fmt.Errorf("failed to look up payment: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).Update("status", PaymentCompleted).Error; err != nil {
			return err
		}
		if payment.SubscriptionID == nil {
			return nil
		}
		return tx.Model(&Subscription{}).
			Where("id = ?", *payment.SubscriptionID).
			Update("status", StatusActive).Error
	})
}

func (s *Service) HasActiveSubscription(userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&Subscription{}).
		Where("user_id = ? AND status = ? AND end_date >= ?", userID, StatusActive, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}

func (s *Service) Current(userID uint) (*Subscription, error) {
	var sub Subscription
	err := s.db.Preload("Plan").
		Where("user_id = ? AND status = ? AND end_date >= ?", userID, StatusActive, time.Now()).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}
	return &sub, nil
}

func (s *Service) Cancel(userID, subscriptionID uint) error {
	result := s.db.Model(&Subscription{}).
		Where("id = ? AND user_id = ? AND status = ?", subscriptionID, userID, StatusActive).
		Updates(map[string]any{
			"status":     StatusCancelled,
			"auto_renew": false,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to cancel subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// ExpireDue marks active subscriptions whose end date has passed.
func (s *Service) ExpireDue() (int64, error) {
	result := s.db.Model(&Subscription{}).
		Where("status = ? AND end_date < ?", StatusActive, time.Now()).
		Update("status", StatusExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type RevenueSummary struct {
	TotalCents int64         `json:"total_cents"`
	Payments   int64         `json:"payments"`
	ByPlan     []PlanRevenue `json:"by_plan"`
}

type PlanRevenue struct {
	Plan       string `json:"plan"`
	TotalCents int64  `json:"total_cents"`
	Payments   int64  `json:"payments"`
}

// Revenue aggregates completed payments since a point in time, for the
// admin dashboard.
func (s *Service) Revenue(since time.Time) (*RevenueSummary, error) {
	summary := &RevenueSummary{}

	row := s.db.Model(&Payment{}).
		Select("COALESCE(SUM(amount_cents), 0), COUNT(*)").
		Where("status = ? AND payment_date >= ?", PaymentCompleted, since).
		Row()
	if err := row.Scan(&summary.TotalCents, &summary.Payments); err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	err := s.db.Model(&Payment{}).
		Select("plans.name AS plan, COALESCE(SUM(payments.amount_cents), 0) AS total_cents, COUNT(*) AS payments").
		Joins("JOIN subscriptions ON subscriptions.id = payments.subscription_id").
		Joins("JOIN plans ON plans.id = subscriptions.plan_id").
		Where("payments.status = ? AND payments.payment_date >= ?", PaymentCompleted, since).
		Group("plans.name").
		Scan(&summary.ByPlan).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by plan: %w", err)
	}

	return summary, nil
}
