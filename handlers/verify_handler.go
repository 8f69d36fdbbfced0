// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"

	"keymint-server/db"
	"keymint-server/entitlement"
	"keymint-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// VerifyHandler godoc
// @Summary      Verify an API key
// @Description  Resolves the effective plan and concurrency limit for the key in the X-API-Key header.
// @Description  Accounts with a subscription get a live status check; on processor failure the cached plan is served with stale=true.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key issued at registration"
// @Success      200 {object} VerifyResponse  "Key is valid"
// @Failure      401 {object} VerifyResponse  "Missing or unknown API key"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/auth/verify [get]
func VerifyHandler(c echo.Context) error {
	logger := c.Logger()

	apiKey := c.Request().Header.Get("X-API-Key")
	if apiKey == "" {
		logger.Error("X-API-Key header missing.")
		return c.JSON(http.StatusUnauthorized, VerifyResponse{
			Valid: false,
			Error: "No API key provided",
		})
	}

	account := models.Account{}
	err := db.Conn.Where("api_key = ?", apiKey).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Unknown API key.")
			return c.JSON(http.StatusUnauthorized, VerifyResponse{
				Valid: false,
				Error: "Invalid API key",
			})
		}
		logger.Errorf("Failed to look up account: %v", err)
		return echo.ErrInternalServerError
	}

	provider, err := getBillingProvider()
	if err != nil {
		logger.Error("Billing provider unavailable:", err)
		return echo.ErrInternalServerError
	}

	resolver := entitlement.Resolver{DB: db.Conn, Provider: provider}
	resolved, err := resolver.Resolve(c.Request().Context(), &account)
	if err != nil {
		logger.Errorf("Failed to resolve entitlement: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, VerifyResponse{
		Valid:               true,
		Plan:                string(resolved.Plan),
		MaxWorkers:          resolved.MaxWorkers,
		Email:               resolved.Email,
		SubscriptionExpired: resolved.SubscriptionExpired,
		TrialExpired:        resolved.TrialExpired,
		Stale:               resolved.Stale,
	})
}
