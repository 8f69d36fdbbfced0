// SPDX-License-Identifier: GPL-3.0-only

package entitlement

import (
	"context"
	"time"

	"keymint-server/billing"
	"keymint-server/commons"
	"keymint-server/models"

	"gorm.io/gorm"
)

// Entitlement is the resolved permission set for one API key: the
// effective plan plus the concurrency limit it grants.
type Entitlement struct {
	Email               string
	Plan                models.PlanName
	MaxWorkers          int
	SubscriptionExpired bool
	TrialExpired        bool
	Stale               bool
}

// Resolver derives the effective plan for an account from the stored
// row plus a live subscription status check against the processor.
type Resolver struct {
	DB       *gorm.DB
	Provider billing.Provider
	Now      func() time.Time
}

func (r Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r Resolver) Resolve(ctx context.Context, account *models.Account) (Entitlement, error) {
	if account.SubscriptionID != nil && *account.SubscriptionID != "" {
		status, err := r.Provider.SubscriptionStatus(ctx, *account.SubscriptionID)
		switch {
		case err != nil:
			// Processor outage must not lock out every subscriber at
			// once; serve the cached row and flag it.
			commons.Logger.Warnf("Subscription status check failed, using cached plan: %v", err)
			return Entitlement{
				Email:      account.Email,
				Plan:       account.Plan,
				MaxWorkers: account.MaxWorkers,
				Stale:      true,
			}, nil
		case status != billing.StatusActive:
			account.Plan = models.FreePlan
			account.MaxWorkers = models.FreeMaxWorkers
			if err := r.DB.Save(account).Error; err != nil {
				return Entitlement{}, err
			}
			return Entitlement{
				Email:               account.Email,
				Plan:                models.FreePlan,
				MaxWorkers:          models.FreeMaxWorkers,
				SubscriptionExpired: true,
			}, nil
		}
	}

	if account.TrialExpired(r.now()) {
		// Reported only; the stored row keeps plan=trial.
		return Entitlement{
			Email:        account.Email,
			Plan:         models.TrialExpiredPlan,
			MaxWorkers:   models.FreeMaxWorkers,
			TrialExpired: true,
		}, nil
	}

	return Entitlement{
		Email:      account.Email,
		Plan:       account.Plan,
		MaxWorkers: account.MaxWorkers,
	}, nil
}
