// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"

	"keymint-server/billing"
)

var billingProvider billing.Provider

// InitBilling wires the payment provider used by the billing and
// registration handlers. Called once from main.
func InitBilling(provider billing.Provider) {
	billingProvider = provider
}

func getBillingProvider() (billing.Provider, error) {
	if billingProvider == nil {
		return nil, errors.New("billing provider is not configured")
	}
	return billingProvider, nil
}
