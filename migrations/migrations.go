// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"

	"keymint-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_backfill_signup_stats",
			Migrate: func(tx *gorm.DB) error {
				var accounts []models.Account
				if err := tx.Select("created_at").Find(&accounts).Error; err != nil {
					return fmt.Errorf("failed to fetch accounts for stats: %w", err)
				}

				for _, account := range accounts {
					stat := models.Stats{
						Type:      models.StatsTypeSignup,
						CreatedAt: account.CreatedAt,
					}
					if err := tx.Create(&stat).Error; err != nil {
						return fmt.Errorf("failed to create stat: %w", err)
					}
				}

				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Where("type = ?", models.StatsTypeSignup).Delete(&models.Stats{}).Error
			},
		},
		{
			ID: "002_default_max_workers",
			Migrate: func(tx *gorm.DB) error {
				// Accounts imported before the max_workers column existed
				// carry a zero value; entitlement math expects at least 1.
				if err := tx.Model(&models.Account{}).
					Where("max_workers < ?", 1).
					Update("max_workers", models.FreeMaxWorkers).Error; err != nil {
					return fmt.Errorf("failed to backfill max_workers: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
