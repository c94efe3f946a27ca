package config

import (
	"github.com/abtestlabs/campaignstack/internal/logger"
	"github.com/abtestlabs/campaignstack/internal/tracing"
)

type CampaignAPIConfig struct {
	RootURL        string `env:"CAMPAIGN_API_URL" envDefault:"http://145.38.193.71"`
	TimeoutSeconds int    `env:"CAMPAIGN_API_TIMEOUT_SECONDS" envDefault:"30"`
}

type StorageConfig struct {
	EmailCacheFile string `env:"CAMPAIGN_EMAIL_CACHE_FILE" envDefault:".cache/email.json"`
	ResultsFile    string `env:"CAMPAIGN_RESULTS_FILE" envDefault:"data/result/campaign_results.csv"`
}

type RunnerConfig struct {
	Evaluations int `env:"CAMPAIGN_EVALUATIONS" envDefault:"5"`
	MaxStrategy int `env:"CAMPAIGN_MAX_STRATEGY" envDefault:"3"`
}

type Config struct {
	CampaignAPIConfig *CampaignAPIConfig
	StorageConfig     *StorageConfig
	RunnerConfig      *RunnerConfig
	Logger            *logger.Config
	Tracing           *tracing.JaegerConfig
}
