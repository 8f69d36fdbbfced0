// SPDX-License-Identifier: GPL-3.0-only

package entitlement

import (
	"errors"

	"keymint-server/billing"
	"keymint-server/commons"
	"keymint-server/models"

	"gorm.io/gorm"
)

// Reconciler maps verified billing events onto local account state.
type Reconciler struct {
	DB *gorm.DB
}

// Apply performs the state transition for one event. It returns false
// when nothing changed: an event type we do not track, a replayed
// event id, or an event matching no account.
//
// The dedupe claim and the account transition commit together. A
// failed transition rolls the claim back, so the processor's retry of
// the same event id is not mistaken for a replay.
func (r Reconciler) Apply(event *billing.Event) (bool, error) {
	if event.Type == billing.EventIgnored {
		return false, nil
	}

	applied := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		// The first delivery claims the event id row; replays find it
		// and stop here.
		dedupe := models.WebhookEvent{EventID: event.ID, Type: string(event.Type)}
		result := tx.Where("event_id = ?", event.ID).FirstOrCreate(&dedupe)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			commons.Logger.Debugf("Webhook event %s already processed, skipping", event.ID)
			return nil
		}

		var account models.Account
		var err error
		switch event.Type {
		case billing.EventCheckoutCompleted:
			if event.APIKey == "" {
				logEvent(tx, event, models.Skipped, nil, "checkout session carries no api_key metadata")
				return nil
			}
			err = tx.Where("api_key = ?", event.APIKey).First(&account).Error
		default:
			err = tx.Where("subscription_id = ?", event.SubscriptionID).First(&account).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logEvent(tx, event, models.Skipped, nil, "no matching account")
				return nil
			}
			return err
		}

		switch event.Type {
		case billing.EventCheckoutCompleted:
			subscriptionID := event.SubscriptionID
			account.Plan = models.ProPlan
			account.MaxWorkers = models.ProMaxWorkers
			account.SubscriptionID = &subscriptionID
		case billing.EventSubscriptionUpdated:
			if event.Status == billing.StatusActive {
				account.Plan = models.ProPlan
				account.MaxWorkers = models.ProMaxWorkers
			} else {
				account.Plan = models.FreePlan
				account.MaxWorkers = models.FreeMaxWorkers
			}
		case billing.EventSubscriptionDeleted:
			account.Plan = models.FreePlan
			account.MaxWorkers = models.FreeMaxWorkers
			account.SubscriptionID = nil
		}

		if err := tx.Save(&account).Error; err != nil {
			return err
		}

		logEvent(tx, event, models.Applied, &account.ID, "")
		applied = true
		return nil
	})
	return applied, err
}

func logEvent(tx *gorm.DB, event *billing.Event, status models.EventStatus, accountID *uint, description string) {
	category := models.Payment
	eventLog := models.EventLog{
		Category:  &category,
		Status:    &status,
		EventType: &event.ProviderEvent,
		AccountID: accountID,
	}
	if event.SubscriptionID != "" {
		subscriptionID := event.SubscriptionID
		eventLog.SubscriptionID = &subscriptionID
	}
	if description != "" {
		eventLog.Description = &description
	}
	if err := tx.Create(&eventLog).Error; err != nil {
		commons.Logger.Errorf("Failed to create event log: %v", err)
	}
}
