package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/streamify/streamify/services/subscription"
	"github.com/streamify/streamify/session"
)

type SubscriptionHandler struct {
	subscriptions *subscription.Service
}

func NewSubscriptionHandler(subscriptions *subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

func (h *SubscriptionHandler) Plans(c echo.Context) error {
	plans, err := h.subscriptions.Plans()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"plans": plans})
}

type subscribeRequest struct {
	Plan   string `json:"plan" form:"plan"`
	Method string `json:"method" form:"method"`
}

// Subscribe starts a checkout: a pending subscription and its pending
// payment. The stub payment is completed via CompletePayment.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if req.Method == "" {
		req.Method = "card"
	}

	sub, payment, err := h.subscriptions.Subscribe(session.GetUserID(c), req.Plan, req.Method)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, echo.Map{
			"subscription":   sub,
			"transaction_id": payment.TransactionID,
		})
	case errors.Is(err, subscription.ErrPlanNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Plan not found")
	case errors.Is(err, subscription.ErrAlreadySubscribed):
		return echo.NewHTTPError(http.StatusConflict, "An active subscription already exists")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
}

// CompletePayment is the stub payment confirmation callback.
func (h *SubscriptionHandler) CompletePayment(c echo.Context) error {
	if err := h.subscriptions.CompletePayment(c.Param("transactionID")); err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment completed."})
}

func (h *SubscriptionHandler) Current(c echo.Context) error {
	sub, err := h.subscriptions.Current(session.GetUserID(c))
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"subscription": nil})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"subscription": sub})
}

func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	sub, err := h.subscriptions.Current(session.GetUserID(c))
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No active subscription")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}

	if err := h.subscriptions.Cancel(session.GetUserID(c), sub.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Subscription cancelled."})
}
