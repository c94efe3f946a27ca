package models

import (
	"time"
)

// CampaignResult is one evaluated trial as returned by the campaign API.
// Appended to the result store exactly once per successful evaluation and
// never mutated afterward.
type CampaignResult struct {
	Strategy  int    `json:"strategy" validate:"gte=0"`
	Opened    int    `json:"opened" validate:"gte=0,lte=1"`
	Timestamp string `json:"timestamp" validate:"required"`
	Timezone  string `json:"timezone" validate:"required"`

	// OccurredAt is populated from Timestamp when loading from the store.
	OccurredAt time.Time `json:"-"`
}

// RateLimitSignal carries the throttling explanation from the server.
// Ephemeral, never persisted.
type RateLimitSignal struct {
	Detail string `json:"detail"`
}
