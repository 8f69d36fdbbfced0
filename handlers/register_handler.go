// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"time"

	"keymint-server/billing"
	"keymint-server/crypto"
	"keymint-server/db"
	"keymint-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RegisterHandler godoc
// @Summary      Register for a free trial
// @Description  Creates an account with a fresh API key and a 7-day trial.
// @Description  Registering an email that already has an account returns the existing key.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body  RegisterRequest  true  "Register request payload"
// @Success      200 {object} RegisterResponse  "Registration successful"
// @Failure      400 {object} echo.HTTPError    "Bad request, missing email"
// @Failure      500 {object} echo.HTTPError    "Payment processor error"
// @Router       /v1/auth/register [post]
func RegisterHandler(c echo.Context) error {
	logger := c.Logger()

	provider, err := getBillingProvider()
	if err != nil {
		logger.Error("Billing provider unavailable:", err)
		return echo.ErrInternalServerError
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid register request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	existing := models.Account{}
	err = db.Conn.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		logger.Infof("Email already registered, returning existing record")
		return c.JSON(http.StatusOK, RegisterResponse{
			APIKey:       existing.APIKey,
			Plan:         string(existing.Plan),
			ExistingUser: true,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Errorf("Failed to look up account: %v", err)
		return echo.ErrInternalServerError
	}

	apiKey, err := crypto.GenerateRandomString("mk_", 32, "base64url")
	if err != nil {
		logger.Errorf("Failed to generate API key: %v", err)
		return echo.ErrInternalServerError
	}

	expires := time.Now().Add(models.TrialDuration)

	customerID, err := provider.CreateCustomer(c.Request().Context(), req.Email, apiKey)
	if err != nil {
		logger.Errorf("Failed to create processor customer: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusInternalServerError,
			Message: billing.ErrorMessage(err),
		}
	}

	account := models.Account{
		Email:      req.Email,
		APIKey:     apiKey,
		CustomerID: customerID,
		Plan:       models.TrialPlan,
		ExpiresAt:  expires,
		MaxWorkers: models.FreeMaxWorkers,
	}

	if err := db.Conn.Create(&account).Error; err != nil {
		// Lost a race with a concurrent registration for the same
		// email: recover by returning the stored record.
		if err := db.Conn.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			return c.JSON(http.StatusOK, RegisterResponse{
				APIKey:       existing.APIKey,
				Plan:         string(existing.Plan),
				ExistingUser: true,
			})
		}
		logger.Errorf("Failed to create account: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Create(&models.Stats{Type: models.StatsTypeSignup}).Error; err != nil {
		logger.Errorf("Failed to record signup stat: %v", err)
	}
	if err := LogAuthEventHandler(account.ID, "account registered"); err != nil {
		logger.Errorf("Failed to create event log: %v", err)
	}

	logger.Infof("Account registered successfully")
	return c.JSON(http.StatusOK, RegisterResponse{
		APIKey:    apiKey,
		Plan:      string(models.TrialPlan),
		TrialEnds: expires.Unix(),
	})
}
