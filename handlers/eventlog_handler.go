// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"

	"keymint-server/db"
	"keymint-server/models"
)

func CreateEventLogHandler(eventLog models.EventLog) error {
	if err := db.Conn.Create(&eventLog).Error; err != nil {
		return fmt.Errorf("failed to create event log: %w", err)
	}
	return nil
}

func LogAuthEventHandler(accountID uint, description string) error {
	category := models.Auth
	status := models.Applied
	return CreateEventLogHandler(models.EventLog{
		Category:    &category,
		Status:      &status,
		AccountID:   &accountID,
		Description: &description,
	})
}
