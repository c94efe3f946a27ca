package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/abtestlabs/campaignstack/internal/logger"
	"github.com/abtestlabs/campaignstack/internal/tracing"
)

func InitConfig() (*Config, error) {
	config := &Config{
		CampaignAPIConfig: &CampaignAPIConfig{},
		StorageConfig:     &StorageConfig{},
		RunnerConfig:      &RunnerConfig{},
		Logger:            &logger.Config{},
		Tracing:           &tracing.JaegerConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading campaignstack config: %v", err)
	}

	return config, nil
}
