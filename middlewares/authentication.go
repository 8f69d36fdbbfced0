// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"

	"keymint-server/db"
	"keymint-server/models"

	"github.com/labstack/echo/v4"
)

// VerifyAPIKeyMiddleware resolves the X-API-Key header to an account
// and stores it in the request context. Unknown keys get 401.
func VerifyAPIKeyMiddleware() func(echo.HandlerFunc) echo.HandlerFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := c.Logger()

			apiKey := c.Request().Header.Get("X-API-Key")
			if apiKey == "" {
				logger.Error("X-API-Key header missing.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				}
			}

			account := models.Account{}
			if err := db.Conn.Where("api_key = ?", apiKey).First(&account).Error; err != nil {
				logger.Error("Authentication failed.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid API key",
				}
			}

			c.Set("account", account)
			return next(c)
		}
	}
}

func GetAuthenticatedAccount(c echo.Context) (*models.Account, error) {
	if account, ok := c.Get("account").(models.Account); ok {
		return &account, nil
	}
	return nil, errors.New("no authenticated account found")
}
