// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

var AllModels []any

type PlanName string

const (
	TrialPlan        PlanName = "trial"
	FreePlan         PlanName = "free"
	ProPlan          PlanName = "pro"
	TrialExpiredPlan PlanName = "trial_expired"
)

const (
	FreeMaxWorkers = 1
	ProMaxWorkers  = 8

	// TrialDuration is the free trial window granted at registration.
	TrialDuration = 7 * 24 * time.Hour
)

// Account holds the billing and entitlement state for one email.
// Rows are created at registration and mutated by verification
// downgrades and webhook reconciliation; they are never deleted.
type Account struct {
	ID             uint     `gorm:"primaryKey"`
	Email          string   `gorm:"size:255;not null;uniqueIndex"`
	APIKey         string   `gorm:"size:255;not null;uniqueIndex"`
	CustomerID     string   `gorm:"size:255"`
	SubscriptionID *string  `gorm:"size:255;default:null;index"`
	Plan           PlanName `gorm:"size:50;not null;default:'trial'"`
	ExpiresAt      time.Time
	MaxWorkers     int `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TrialExpired reports whether the stored trial window has lapsed. It
// never mutates the row; expired trials keep plan=trial in storage.
func (account *Account) TrialExpired(now time.Time) bool {
	return account.Plan == TrialPlan && now.After(account.ExpiresAt)
}

func init() {
	AllModels = append(AllModels, &Account{})
}
