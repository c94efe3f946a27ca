package interfaces

import (
	"context"

	"github.com/abtestlabs/campaignstack/internal/models"
)

type EvaluatorService interface {
	// Evaluate fetches one trial for the strategy and persists it on success.
	// A nil result means the call yielded no usable outcome (rate limited or
	// unclassified response); the store is untouched in that case.
	Evaluate(ctx context.Context, strategy int) (*int, error)
	GetResults(ctx context.Context) ([]models.CampaignResult, error)
}
