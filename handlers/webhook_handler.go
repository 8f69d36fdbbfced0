// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"io"
	"net/http"

	"keymint-server/billing"
	"keymint-server/db"
	"keymint-server/entitlement"

	"github.com/labstack/echo/v4"
)

// WebhookHandler godoc
// @Summary      Receive payment processor webhooks
// @Description  Verifies the raw-body signature and reconciles the event into local
// @Description  account state. Replayed event ids are acknowledged without changes.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header  string  true  "Signature over the raw payload"
// @Success      200 {object} WebhookResponse  "Event received"
// @Failure      400 {object} echo.HTTPError   "Invalid signature or payload"
// @Failure      500 {object} echo.HTTPError   "Internal server error"
// @Router       /v1/billing/webhook [post]
func WebhookHandler(c echo.Context) error {
	logger := c.Logger()

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		logger.Error("Failed to read webhook payload:", err)
		return echo.ErrBadRequest
	}

	provider, err := getBillingProvider()
	if err != nil {
		logger.Error("Billing provider unavailable:", err)
		return echo.ErrInternalServerError
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	event, err := provider.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidSignature) {
			logger.Error("Webhook signature verification failed:", err)
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "Invalid signature",
			}
		}
		logger.Error("Failed to parse webhook payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid payload",
		}
	}

	reconciler := entitlement.Reconciler{DB: db.Conn}
	applied, err := reconciler.Apply(event)
	if err != nil {
		logger.Errorf("Failed to reconcile webhook event %s: %v", event.ID, err)
		return echo.ErrInternalServerError
	}
	if applied {
		logger.Infof("Applied webhook event %s (%s)", event.ID, event.ProviderEvent)
	}

	return c.JSON(http.StatusOK, WebhookResponse{Received: true})
}
