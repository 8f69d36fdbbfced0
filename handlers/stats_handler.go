// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"

	"keymint-server/commons"
	"keymint-server/db"
	"keymint-server/models"

	"github.com/labstack/echo/v4"
)

// AdminStatsHandler godoc
// @Summary      Get account statistics
// @Description  Returns account counts per plan. Gated by the X-Admin-Key header when ADMIN_API_KEY is set.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-Admin-Key  header  string  false  "Admin key, required when ADMIN_API_KEY is configured"
// @Success      200 {object} StatsResponse   "Statistics retrieved successfully"
// @Failure      401 {object} echo.HTTPError  "Invalid admin key"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/admin/stats [get]
func AdminStatsHandler(c echo.Context) error {
	logger := c.Logger()

	if adminKey := commons.GetEnv("ADMIN_API_KEY"); adminKey != "" {
		if c.Request().Header.Get("X-Admin-Key") != adminKey {
			logger.Error("Admin key missing or invalid.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Invalid admin key",
			}
		}
	}

	counts := map[models.PlanName]int64{}
	for _, plan := range []models.PlanName{models.TrialPlan, models.ProPlan, models.FreePlan} {
		var count int64
		if err := db.Conn.Model(&models.Account{}).Where("plan = ?", plan).Count(&count).Error; err != nil {
			logger.Errorf("Failed to count %s accounts: %v", plan, err)
			return echo.ErrInternalServerError
		}
		counts[plan] = count
	}

	var total int64
	if err := db.Conn.Model(&models.Account{}).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count accounts: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, StatsResponse{
		TotalUsers: total,
		TrialUsers: counts[models.TrialPlan],
		ProUsers:   counts[models.ProPlan],
		FreeUsers:  counts[models.FreePlan],
	})
}
