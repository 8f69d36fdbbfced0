// SPDX-License-Identifier: GPL-3.0-only

package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"keymint-server/commons"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

// Config holds the Stripe credentials and checkout redirect targets.
// It is built from env once at startup and passed in explicitly; there
// is no package-level Stripe state.
type Config struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string
	SuccessURL    string
	CancelURL     string
}

func ConfigFromEnv() Config {
	return Config{
		SecretKey:     commons.GetEnv("STRIPE_SECRET_KEY"),
		WebhookSecret: commons.GetEnv("STRIPE_WEBHOOK_SECRET"),
		PriceID:       commons.GetEnv("STRIPE_PRICE_ID"),
		SuccessURL:    commons.GetEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/?upgraded=true"),
		CancelURL:     commons.GetEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/"),
	}
}

// StripeProvider implements Provider on the official Stripe SDK.
type StripeProvider struct {
	sc     *client.API
	config Config
}

func NewStripeProvider(config Config) (*StripeProvider, error) {
	if config.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if config.WebhookSecret == "" {
		return nil, errors.New("stripe webhook secret is required")
	}
	if config.PriceID == "" {
		return nil, errors.New("stripe price ID is required")
	}

	sc := &client.API{}
	sc.Init(config.SecretKey, nil)

	return &StripeProvider{sc: sc, config: config}, nil
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, email, apiKey string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.AddMetadata("api_key", apiKey)

	customer, err := p.sc.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}
	return customer.ID, nil
}

func (p *StripeProvider) SubscriptionStatus(ctx context.Context, subscriptionID string) (Status, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	subscription, err := p.sc.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve subscription: %w", err)
	}
	return Status(subscription.Status), nil
}

func (p *StripeProvider) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.config.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.config.SuccessURL),
		CancelURL:  stripe.String(p.config.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("api_key", req.APIKey)

	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else {
		params.CustomerEmail = stripe.String(req.Email)
	}

	session, err := p.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &CheckoutSession{SessionID: session.ID, URL: session.URL}, nil
}

func (p *StripeProvider) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	}
	params.Context = ctx

	if _, err := p.sc.Subscriptions.Update(subscriptionID, params); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return nil
}

func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*Event, error) {
	// IgnoreAPIVersionMismatch: the signature check is the authenticity
	// gate; the handful of fields read below are stable across versions.
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.config.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	switch string(event.Type) {
	case "checkout.session.completed":
		var session struct {
			Subscription string            `json:"subscription"`
			Metadata     map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session payload: %w", err)
		}
		return &Event{
			ID:             event.ID,
			Type:           EventCheckoutCompleted,
			ProviderEvent:  string(event.Type),
			SubscriptionID: session.Subscription,
			APIKey:         session.Metadata["api_key"],
		}, nil
	case "customer.subscription.updated", "customer.subscription.deleted":
		var subscription struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			return nil, fmt.Errorf("failed to parse subscription payload: %w", err)
		}
		eventType := EventSubscriptionUpdated
		if string(event.Type) == "customer.subscription.deleted" {
			eventType = EventSubscriptionDeleted
		}
		return &Event{
			ID:             event.ID,
			Type:           eventType,
			ProviderEvent:  string(event.Type),
			SubscriptionID: subscription.ID,
			Status:         Status(subscription.Status),
		}, nil
	default:
		return &Event{ID: event.ID, Type: EventIgnored, ProviderEvent: string(event.Type)}, nil
	}
}

// ErrorMessage extracts the processor's human-readable message from an
// error for 500 passthrough. Non-Stripe errors get a generic message
// instead of a stringified error object.
func ErrorMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return "Payment processor error: " + stripeErr.Msg
	}
	return "Payment processor error"
}
