// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

type StatsType string

const (
	StatsTypeSignup StatsType = "SIGNUP"
)

type Stats struct {
	ID        uint      `gorm:"primaryKey"`
	Type      StatsType `gorm:"size:50;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func init() {
	AllModels = append(AllModels, &Stats{})
}
