package interfaces

import (
	"context"
	"encoding/json"

	"github.com/abtestlabs/campaignstack/internal/enum"
	"github.com/abtestlabs/campaignstack/internal/models"
)

type CampaignService interface {
	FetchCampaign(ctx context.Context, strategy int) (*CampaignOutcome, error)
	FetchRemaining(ctx context.Context) (json.RawMessage, error)
	FetchLeaderboard(ctx context.Context) (*models.Leaderboard, error)
	LeaderboardText(ctx context.Context) (string, error)
}

// CampaignOutcome is the classified result of a campaign fetch. Exactly one
// of Result, RateLimit or Raw is populated, according to Status.
type CampaignOutcome struct {
	Status    enum.OutcomeStatus
	Result    *models.CampaignResult
	RateLimit *models.RateLimitSignal
	Raw       json.RawMessage
}
