package model

import "time"

// Portfolio represents a portfolio from the database.
type Portfolio struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"` // base/display currency, ISO 4217
	Hidden    bool      `json:"hidden"`   // masked in overview screens
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// OverviewID identifies the synthetic "All Portfolios" aggregate. It exists
// only at the aggregation layer and is never persisted.
const OverviewID = "all"

// OverviewName is the display name of the synthetic aggregate.
const OverviewName = "All Portfolios"
