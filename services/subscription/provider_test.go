package subscription

import (
	"testing"
	"time"

	"github.com/streamify/streamify/testutils"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestStartExpiryLoop(t *testing.T) {
	db := testutils.SetupTestDB(t, &Plan{}, &Subscription{}, &Payment{})

	// The sweep runs on its own goroutine; pin the pool to one
	// connection so it sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s := NewService(db, nil)
	seedPlan(t, s, "premium", 999)

	_, payment, err := s.Subscribe(1, "premium", "card")
	require.NoError(t, err)
	require.NoError(t, s.CompletePayment(payment.TransactionID))
	require.NoError(t, s.db.Model(&Subscription{}).
		Where("user_id = ?", 1).
		Update("end_date", time.Now().Add(-time.Hour)).Error)

	cfg := testutils.GetTestConfig()
	cfg.Subscription.ExpireEnabled = true
	cfg.Subscription.ExpireInterval = 10 * time.Millisecond

	lc := fxtest.NewLifecycle(t)
	startExpiryLoop(lc, cfg, s)
	lc.RequireStart()
	defer lc.RequireStop()

	require.Eventually(t, func() bool {
		var sub Subscription
		if err := db.Where("user_id = ?", 1).First(&sub).Error; err != nil {
			return false
		}
		return sub.Status == StatusExpired
	}, 2*time.Second, 20*time.Millisecond)
}

func TestStartExpiryLoop_Disabled(t *testing.T) {
	cfg := testutils.GetTestConfig()
	cfg.Subscription.ExpireEnabled = false

	lc := fxtest.NewLifecycle(t)
	startExpiryLoop(lc, cfg, NewService(nil, nil))
	lc.RequireStart()
	lc.RequireStop()
}
