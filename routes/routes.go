// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"keymint-server/commons"
	"keymint-server/handlers"
	"keymint-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering v1 routes")
	e.GET("/health", handlers.HealthHandler)

	api_v1 := e.Group("/v1")
	api_v1.POST("/auth/register", handlers.RegisterHandler)
	api_v1.GET("/auth/verify", handlers.VerifyHandler)
	api_v1.POST("/billing/create-checkout", handlers.CreateCheckoutHandler, middlewares.VerifyAPIKeyMiddleware())
	api_v1.POST("/billing/cancel", handlers.CancelSubscriptionHandler, middlewares.VerifyAPIKeyMiddleware())
	api_v1.POST("/billing/webhook", handlers.WebhookHandler)
	api_v1.GET("/admin/stats", handlers.AdminStatsHandler)
	commons.Logger.Info("v1 routes registered successfully")
}
