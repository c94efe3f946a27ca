package repository

import (
	"github.com/abtestlabs/campaignstack/config"
	"github.com/abtestlabs/campaignstack/internal/logger"
)

type Repositories struct {
	CampaignResultRepository CampaignResultRepository
}

func InitRepositories(log logger.Logger, cfg *config.StorageConfig) (*Repositories, error) {
	campaignResults, err := NewCampaignResultRepository(log, cfg.ResultsFile)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		CampaignResultRepository: campaignResults,
	}, nil
}
