package subscription

import (
	"testing"
	"time"

	"github.com/streamify/streamify/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	db := testutils.SetupTestDB(t, &Plan{}, &Subscription{}, &Payment{})
	return NewService(db, nil)
}

func seedPlan(t *testing.T, s *Service, slug string, priceCents int64) *Plan {
	plan := &Plan{
		Name:         "Plan " + slug,
		Slug:         slug,
		PriceCents:   priceCents,
		DurationDays: 30,
		Active:       true,
	}
	require.NoError(t, s.db.Create(plan).Error)
	return plan
}

func TestService_Subscribe(t *testing.T) {
	t.Run("creates a pending subscription with a pending payment", func(t *testing.T) {
		s := newTestService(t)
		seedPlan(t, s, "premium", 999)

		sub, payment, err := s.Subscribe(1, "premium", "card")
		require.NoError(t, err)
		assert.Equal(t, StatusPending, sub.Status)
		assert.Equal(t, PaymentPending, payment.Status)
		assert.Equal(t, int64(999), payment.AmountCents)
		assert.NotEmpty(t, payment.TransactionID)
		require.NotNil(t, payment.SubscriptionID)
		assert.Equal(t, sub.ID, *payment.SubscriptionID)

		// Pending means not yet active.
		active, err := s.HasActiveSubscription(1)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("unknown plan", func(t *testing.T) {
		s := newTestService(t)

		_, _, err := s.Subscribe(1, "missing", "card")
		testutils.AssertErrorType(t, ErrPlanNotFound, err)
	})

	t.Run("rejects a second active subscription", func(t *testing.T) {
		s := newTestService(t)
		seedPlan(t, s, "premium", 999)

		_, payment, err := s.Subscribe(1, "premium", "card")
		require.NoError(t, err)
		require.NoError(t, s.CompletePayment(payment.TransactionID))

		_, _, err = s.Subscribe(1, "premium", "card")
		testutils.AssertErrorType(t, ErrAlreadySubscribed, err)
	})
}

func TestService_CompletePayment(t *testing.T) {
	s := newTestService(t)
	seedPlan(t, s, "premium", 999)

	sub, payment, err := s.Subscribe(1, "premium", "card")
	require.NoError(t, err)

	require.NoError(t, s.CompletePayment(payment.TransactionID))

	var got Subscription
	require.NoError(t, s.db.First(&got, sub.ID).Error)
	assert.Equal(t, StatusActive, got.Status)

	active, err := s.HasActiveSubscription(1)
	require.NoError(t, err)
	assert.True(t, active)

	err = s.CompletePayment("no-such-transaction")
	testutils.AssertErrorType(t, ErrSubscriptionNotFound, err)
}

func TestService_Cancel(t *testing.T) {
	s := newTestService(t)
	seedPlan(t, s, "premium", 999)

	sub, payment, err := s.Subscribe(1, "premium", "card")
	require.NoError(t, err)
	require.NoError(t, s.CompletePayment(payment.TransactionID))

	require.NoError(t, s.Cancel(1, sub.ID))

	active, err := s.HasActiveSubscription(1)
	require.NoError(t, err)
	assert.False(t, active)

	// Cancelling again finds nothing active.
	err = s.Cancel(1, sub.ID)
	testutils.AssertErrorType(t, ErrSubscriptionNotFound, err)
}

func TestService_ExpireDue(t *testing.T) {
	s := newTestService(t)
	seedPlan(t, s, "premium", 999)

	_, payment, err := s.Subscribe(1, "premium", "card")
	require.NoError(t, err)
	require.NoError(t, s.CompletePayment(payment.TransactionID))

	// Push the subscription past its end date.
	require.NoError(t, s.db.Model(&Subscription{}).
		Where("user_id = ?", 1).
		Update("end_date", time.Now().Add(-time.Hour)).Error)

	expired, err := s.ExpireDue()
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	active, err := s.HasActiveSubscription(1)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestService_Revenue(t *testing.T) {
	s := newTestService(t)
	seedPlan(t, s, "basic", 499)
	seedPlan(t, s, "premium", 999)

	_, p1, err := s.Subscribe(1, "basic", "card")
	require.NoError(t, err)
	require.NoError(t, s.CompletePayment(p1.TransactionID))

	_, p2, err := s.Subscribe(2, "premium", "card")
	require.NoError(t, err)
	require.NoError(t, s.CompletePayment(p2.TransactionID))

	// A pending payment that must not count.
	_, _, err = s.Subscribe(3, "premium", "card")
	require.NoError(t, err)

	summary, err := s.Revenue(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1498), summary.TotalCents)
	assert.Equal(t, int64(2), summary.Payments)
	assert.Len(t, summary.ByPlan, 2)
}

func TestService_Current(t *testing.T) {
	s := newTestService(t)
	seedPlan(t, s, "premium", 999)

	_, err := s.Current(1)
	testutils.AssertErrorType(t, ErrSubscriptionNotFound, err)

	_, payment, err := s.Subscribe(1, "premium", "card")
	require.NoError(t, err)
	require.NoError(t, s.CompletePayment(payment.TransactionID))

	sub, err := s.Current(1)
	require.NoError(t, err)
	assert.Equal(t, "premium", sub.Plan.Slug)
}
