package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abtestlabs/campaignstack/config"
	er "github.com/abtestlabs/campaignstack/internal/errors"
	"github.com/abtestlabs/campaignstack/internal/logger"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestResolveEmail_FromCache(t *testing.T) {
	// Arrange
	cacheFile := filepath.Join(t.TempDir(), "email.json")
	require.NoError(t, os.WriteFile(cacheFile, []byte(`{"email":"a@b.com"}`), 0o644))
	out := &bytes.Buffer{}
	service := NewIdentityService(getLogger(), &config.StorageConfig{EmailCacheFile: cacheFile}, strings.NewReader(""), out)

	// Act
	email, err := service.ResolveEmail(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
	assert.Empty(t, out.String(), "cached identity must not prompt")
}

func TestResolveEmail_PromptsAndCaches(t *testing.T) {
	// Arrange
	cacheFile := filepath.Join(t.TempDir(), ".cache", "email.json")
	out := &bytes.Buffer{}
	service := NewIdentityService(getLogger(), &config.StorageConfig{EmailCacheFile: cacheFile}, strings.NewReader("user@example.com\n"), out)

	// Act
	email, err := service.ResolveEmail(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
	assert.Contains(t, out.String(), "Please enter your email address: ")

	data, err := os.ReadFile(cacheFile)
	require.NoError(t, err)
	var cache map[string]string
	require.NoError(t, json.Unmarshal(data, &cache))
	assert.Equal(t, "user@example.com", cache["email"])
}

func TestResolveEmail_RejectsMissingAtSign(t *testing.T) {
	// Arrange
	cacheFile := filepath.Join(t.TempDir(), "email.json")
	service := NewIdentityService(getLogger(), &config.StorageConfig{EmailCacheFile: cacheFile}, strings.NewReader("notanemail\n"), &bytes.Buffer{})

	// Act
	email, err := service.ResolveEmail(context.Background())

	// Assert
	assert.ErrorIs(t, err, er.ErrInvalidEmail)
	assert.Empty(t, email)
	assert.NoFileExists(t, cacheFile)
}

func TestResolveEmail_RejectsEmptyInput(t *testing.T) {
	service := NewIdentityService(getLogger(), &config.StorageConfig{EmailCacheFile: filepath.Join(t.TempDir(), "email.json")}, strings.NewReader("\n"), &bytes.Buffer{})

	email, err := service.ResolveEmail(context.Background())

	assert.ErrorIs(t, err, er.ErrInvalidEmail)
	assert.Empty(t, email)
}

func TestResolveEmail_CacheWriteFailureIsNonFatal(t *testing.T) {
	// Arrange: the cache parent "directory" is a regular file, so the write
	// cannot succeed.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cacheFile := filepath.Join(blocker, "email.json")
	service := NewIdentityService(getLogger(), &config.StorageConfig{EmailCacheFile: cacheFile}, strings.NewReader("user@example.com\n"), &bytes.Buffer{})

	// Act
	email, err := service.ResolveEmail(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestResolveEmail_CorruptCacheFallsBackToPrompt(t *testing.T) {
	// Arrange
	cacheFile := filepath.Join(t.TempDir(), "email.json")
	require.NoError(t, os.WriteFile(cacheFile, []byte("not json"), 0o644))
	service := NewIdentityService(getLogger(), &config.StorageConfig{EmailCacheFile: cacheFile}, strings.NewReader("user@example.com\n"), &bytes.Buffer{})

	// Act
	email, err := service.ResolveEmail(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}
