// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"

	"keymint-server/billing"
	"keymint-server/middlewares"

	"github.com/labstack/echo/v4"
)

// CreateCheckoutHandler godoc
// @Summary      Create a checkout session for the pro upgrade
// @Description  Returns a hosted checkout URL. The account's API key travels in the
// @Description  session metadata so the completion webhook can be mapped back.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key issued at registration"
// @Success      200 {object} CheckoutResponse  "Checkout session created"
// @Failure      401 {object} echo.HTTPError    "Missing or unknown API key"
// @Failure      500 {object} echo.HTTPError    "Payment processor error"
// @Router       /v1/billing/create-checkout [post]
func CreateCheckoutHandler(c echo.Context) error {
	logger := c.Logger()

	account, err := middlewares.GetAuthenticatedAccount(c)
	if err != nil {
		logger.Error("Failed to get authenticated account:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		}
	}

	provider, err := getBillingProvider()
	if err != nil {
		logger.Error("Billing provider unavailable:", err)
		return echo.ErrInternalServerError
	}

	session, err := provider.CreateCheckout(c.Request().Context(), billing.CheckoutRequest{
		CustomerID: account.CustomerID,
		Email:      account.Email,
		APIKey:     account.APIKey,
	})
	if err != nil {
		logger.Errorf("Failed to create checkout session: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusInternalServerError,
			Message: billing.ErrorMessage(err),
		}
	}

	return c.JSON(http.StatusOK, CheckoutResponse{URL: session.URL})
}

// CancelSubscriptionHandler godoc
// @Summary      Cancel the active subscription
// @Description  Schedules the cancellation at the end of the current billing period.
// @Description  The downgrade itself is applied when the processor's webhook arrives.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key issued at registration"
// @Success      200 {object} CancelResponse  "Cancellation scheduled"
// @Failure      400 {object} echo.HTTPError  "No active subscription"
// @Failure      401 {object} echo.HTTPError  "Missing or unknown API key"
// @Failure      500 {object} echo.HTTPError  "Payment processor error"
// @Router       /v1/billing/cancel [post]
func CancelSubscriptionHandler(c echo.Context) error {
	logger := c.Logger()

	account, err := middlewares.GetAuthenticatedAccount(c)
	if err != nil {
		logger.Error("Failed to get authenticated account:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		}
	}

	if account.SubscriptionID == nil || *account.SubscriptionID == "" {
		logger.Error("Account has no active subscription.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "No active subscription",
		}
	}

	provider, err := getBillingProvider()
	if err != nil {
		logger.Error("Billing provider unavailable:", err)
		return echo.ErrInternalServerError
	}

	if err := provider.CancelAtPeriodEnd(c.Request().Context(), *account.SubscriptionID); err != nil {
		logger.Errorf("Failed to cancel subscription: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusInternalServerError,
			Message: billing.ErrorMessage(err),
		}
	}

	return c.JSON(http.StatusOK, CancelResponse{
		Success: true,
		Message: "Subscription will cancel at period end",
	})
}
