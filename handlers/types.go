// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email address to register
	// required: true
	Email string `json:"email" example:"user@example.com"`
}

// swagger:model RegisterResponse
type RegisterResponse struct {
	// API key issued for this account.
	// It should be stored securely by the client and sent in the
	// X-API-Key header on subsequent requests.
	APIKey string `json:"api_key" example:"mk_jkdfkjdfkdfjkdlklklkllklklklkl"`
	// Current plan of the account
	Plan string `json:"plan" example:"trial"`
	// Unix timestamp of when the trial ends
	TrialEnds int64 `json:"trial_ends,omitempty" example:"1735689600"`
	// Set when the email was already registered and the existing
	// record is returned instead
	ExistingUser bool `json:"existing_user,omitempty" example:"false"`
}

// swagger:model VerifyResponse
type VerifyResponse struct {
	// Whether the API key maps to an account
	Valid bool `json:"valid" example:"true"`
	// Resolved plan for the key
	Plan string `json:"plan,omitempty" example:"pro"`
	// Concurrency limit granted by the resolved plan
	MaxWorkers int `json:"max_workers,omitempty" example:"8"`
	// Email the key belongs to
	Email string `json:"email,omitempty" example:"user@example.com"`
	// Set when a live status check downgraded the account
	SubscriptionExpired bool `json:"subscription_expired,omitempty"`
	// Set when the trial window has lapsed
	TrialExpired bool `json:"trial_expired,omitempty"`
	// Set when the processor was unreachable and the cached plan was used
	Stale bool `json:"stale,omitempty"`
	// Error message for invalid keys
	Error string `json:"error,omitempty" example:"Invalid API key"`
}

// swagger:model CheckoutResponse
type CheckoutResponse struct {
	// Hosted checkout URL to redirect the user to
	URL string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_123"`
}

// swagger:model CancelResponse
type CancelResponse struct {
	// Whether the cancellation was scheduled
	Success bool `json:"success" example:"true"`
	// Message indicating the result of the operation
	Message string `json:"message" example:"Subscription will cancel at period end"`
}

// swagger:model WebhookResponse
type WebhookResponse struct {
	// Acknowledges receipt of the event
	Received bool `json:"received" example:"true"`
}

// swagger:model StatsResponse
type StatsResponse struct {
	// Total number of registered accounts
	TotalUsers int64 `json:"total_users" example:"42"`
	// Accounts on the trial plan
	TrialUsers int64 `json:"trial_users" example:"30"`
	// Accounts on the pro plan
	ProUsers int64 `json:"pro_users" example:"7"`
	// Accounts on the free plan
	FreeUsers int64 `json:"free_users" example:"5"`
}

// swagger:model HealthResponse
type HealthResponse struct {
	// Service health status
	Status string `json:"status" example:"healthy"`
}
