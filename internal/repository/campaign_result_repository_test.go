package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abtestlabs/campaignstack/internal/logger"
	"github.com/abtestlabs/campaignstack/internal/models"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func resultsPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "result", "campaign_results.csv")
}

func TestNewCampaignResultRepository_CreatesHeaderOnlyFile(t *testing.T) {
	// Arrange
	path := resultsPath(t)

	// Act
	_, err := NewCampaignResultRepository(getLogger(), path)

	// Assert
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "strategy,opened,timestamp,timezone\n", string(content))
}

func TestAppend_OneRowPerCallInOrder(t *testing.T) {
	// Arrange
	path := resultsPath(t)
	repo, err := NewCampaignResultRepository(getLogger(), path)
	require.NoError(t, err)
	ctx := context.Background()

	results := []models.CampaignResult{
		{Strategy: 2, Opened: 1, Timestamp: "2024-01-01T00:00:00", Timezone: "UTC"},
		{Strategy: 0, Opened: 0, Timestamp: "2024-01-02T10:30:00", Timezone: "Europe/Amsterdam"},
		{Strategy: 3, Opened: 1, Timestamp: "2024-01-03T23:59:59", Timezone: "UTC"},
	}

	// Act
	for i := range results {
		require.NoError(t, repo.Append(ctx, &results[i]))
	}

	// Assert
	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i, result := range results {
		assert.Equal(t, result.Strategy, loaded[i].Strategy)
		assert.Equal(t, result.Opened, loaded[i].Opened)
		assert.Equal(t, result.Timestamp, loaded[i].Timestamp)
		assert.Equal(t, result.Timezone, loaded[i].Timezone)
	}
	assert.Equal(t, time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC), loaded[1].OccurredAt)
}

func TestNewCampaignResultRepository_ReinitializationIsIdempotent(t *testing.T) {
	// Arrange
	path := resultsPath(t)
	repo, err := NewCampaignResultRepository(getLogger(), path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, &models.CampaignResult{
		Strategy: 1, Opened: 0, Timestamp: "2024-01-01T00:00:00", Timezone: "UTC",
	}))

	// Act
	reopened, err := NewCampaignResultRepository(getLogger(), path)

	// Assert
	require.NoError(t, err)
	loaded, err := reopened.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "strategy,opened,timestamp,timezone\n1,0,2024-01-01T00:00:00,UTC\n", string(content))
}

func TestLoadAll_MissingFileReturnsEmpty(t *testing.T) {
	// Arrange
	path := resultsPath(t)
	repo, err := NewCampaignResultRepository(getLogger(), path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	// Act
	loaded, err := repo.LoadAll(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadAll_HeaderOnlyReturnsEmpty(t *testing.T) {
	// Arrange
	repo, err := NewCampaignResultRepository(getLogger(), resultsPath(t))
	require.NoError(t, err)

	// Act
	loaded, err := repo.LoadAll(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
