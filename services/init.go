package services

import (
	"context"
	"io"

	"github.com/abtestlabs/campaignstack/config"
	"github.com/abtestlabs/campaignstack/interfaces"
	"github.com/abtestlabs/campaignstack/internal/logger"
	"github.com/abtestlabs/campaignstack/internal/repository"
	"github.com/abtestlabs/campaignstack/services/campaign"
	"github.com/abtestlabs/campaignstack/services/evaluator"
	"github.com/abtestlabs/campaignstack/services/identity"
)

type Services struct {
	IdentityService  interfaces.IdentityService
	CampaignService  interfaces.CampaignService
	EvaluatorService interfaces.EvaluatorService
}

// InitServices resolves the identity up front (it is immutable for the run)
// and wires the campaign client and evaluator around it.
func InitServices(ctx context.Context, cfg *config.Config, log logger.Logger, repos *repository.Repositories, in io.Reader, out io.Writer) (*Services, error) {
	identityService := identity.NewIdentityService(log, cfg.StorageConfig, in, out)

	email, err := identityService.ResolveEmail(ctx)
	if err != nil {
		return nil, err
	}

	campaignService := campaign.NewCampaignService(log, cfg.CampaignAPIConfig, email)

	services := Services{
		IdentityService:  identityService,
		CampaignService:  campaignService,
		EvaluatorService: evaluator.NewEvaluatorService(log, campaignService, repos),
	}

	return &services, nil
}
