// SPDX-License-Identifier: GPL-3.0-only

package billing

import (
	"context"
	"errors"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Status is the subscription status reported by the payment processor.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
	StatusUnpaid   Status = "unpaid"
)

// EventType is the normalized billing event kind. Provider
// implementations map their own event names onto these.
type EventType string

const (
	EventCheckoutCompleted   EventType = "checkout_completed"
	EventSubscriptionUpdated EventType = "subscription_updated"
	EventSubscriptionDeleted EventType = "subscription_deleted"
	EventIgnored             EventType = "ignored"
)

// Event is a verified, normalized webhook event. ID is the provider's
// event id and doubles as the reconciliation dedupe key.
type Event struct {
	ID             string
	Type           EventType
	ProviderEvent  string
	SubscriptionID string
	Status         Status
	APIKey         string
}

type CheckoutRequest struct {
	CustomerID string
	Email      string
	APIKey     string
}

type CheckoutSession struct {
	SessionID string
	URL       string
}

// Provider abstracts the payment processor. All payment complexity
// lives behind hosted checkout pages; the service only tracks the
// resulting subscription state.
type Provider interface {
	// CreateCustomer registers the email with the processor and returns
	// the processor's customer id. The api key travels in metadata so
	// webhook events can be mapped back to the local account.
	CreateCustomer(ctx context.Context, email, apiKey string) (string, error)

	// SubscriptionStatus returns the live status of a subscription.
	SubscriptionStatus(ctx context.Context, subscriptionID string) (Status, error)

	// CreateCheckout creates a hosted checkout session for the pro plan.
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)

	// CancelAtPeriodEnd schedules a subscription cancellation at the end
	// of the current billing period.
	CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error

	// ParseWebhook verifies the raw payload signature and returns the
	// normalized event. Unverifiable payloads return ErrInvalidSignature.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
