// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

// WebhookEvent records a processed payment-processor event. The unique
// EventID is the dedupe key: a replayed delivery finds its row here and
// applies no state change.
type WebhookEvent struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   string `gorm:"size:255;not null;uniqueIndex"`
	Type      string `gorm:"size:100;not null"`
	CreatedAt time.Time
}

func init() {
	AllModels = append(AllModels, &WebhookEvent{})
}
