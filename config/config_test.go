package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultHashtags, cfg.Hashtags)
	assert.Equal(t, uint64(1000), cfg.Filter.MinViewCount)
	assert.Equal(t, uint64(50), cfg.Filter.MinLikeCount)
	assert.Equal(t, int64(50), cfg.Search.MaxResultsPerHashtag)
	assert.Equal(t, "date", cfg.Search.Order)
	assert.Equal(t, 400, cfg.Summary.MaxChars)
	assert.Equal(t, "ja", cfg.Summary.Language)
	assert.Equal(t, "ja", cfg.Transcript.Language)
	assert.Equal(t, 10000, cfg.Summary.TranscriptMaxChars)
	assert.Equal(t, ProviderGemini, cfg.Summary.Provider)
	assert.Equal(t, StorageDynamoDB, cfg.Storage.Backend)
	assert.Equal(t, "youtube-summary-dev", cfg.Storage.TableName)
	assert.Equal(t, "videoId-index", cfg.Storage.VideoIDIndex)
	assert.Equal(t, "youtube-summary/youtube-api-key", cfg.Secrets.YouTubeSecret)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HASHTAGS", `["Go", "Rust"]`)
	t.Setenv("MIN_VIEW_COUNT", "10")
	t.Setenv("MIN_LIKE_COUNT", "2")
	t.Setenv("SUMMARY_LANGUAGE", "en")
	t.Setenv("SUMMARY_PROVIDER", "Bedrock")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test-summaries.db")
	t.Setenv("SUMMARY_TIMEOUT", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Rust"}, cfg.Hashtags)
	assert.Equal(t, uint64(10), cfg.Filter.MinViewCount)
	assert.Equal(t, uint64(2), cfg.Filter.MinLikeCount)
	assert.Equal(t, "en", cfg.Summary.Language)
	assert.Equal(t, "en", cfg.Transcript.Language)
	assert.Equal(t, ProviderBedrock, cfg.Summary.Provider)
	assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Timeouts.Summary)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.HasHashtag("Go"))
	assert.False(t, cfg.HasHashtag("Java"))
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("HASHTAGS", `not json`)
	t.Setenv("MIN_VIEW_COUNT", "-5")
	t.Setenv("SEARCH_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultHashtags, cfg.Hashtags)
	assert.Equal(t, uint64(1000), cfg.Filter.MinViewCount)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.Search)
}

func TestLoadEmptyHashtagListFallsBack(t *testing.T) {
	t.Setenv("HASHTAGS", `["  ", ""]`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultHashtags, cfg.Hashtags)
}

func TestLoadRejectsUnknownBackends(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"storage", "STORAGE_BACKEND", "postgres"},
		{"provider", "SUMMARY_PROVIDER", "llama"},
		{"secrets", "SECRETS_SOURCE", "vault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadOutOfRangeValuesFallBack(t *testing.T) {
	t.Setenv("MAX_RESULTS_PER_HASHTAG", "100")
	t.Setenv("SEARCH_TIMEOUT", "0s")
	t.Setenv("STORAGE_TIMEOUT", "-1s")
	t.Setenv("TRANSCRIPT_MAX_CHARS", "-5")
	t.Setenv("SUMMARY_MAX_CHARS", "0")
	t.Setenv("CAPTION_REQUEST_INTERVAL", "-2s")
	t.Setenv("DYNAMODB_TABLE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(50), cfg.Search.MaxResultsPerHashtag)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.Search)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Storage)
	assert.Equal(t, 10000, cfg.Summary.TranscriptMaxChars)
	assert.Equal(t, 400, cfg.Summary.MaxChars)
	assert.Equal(t, time.Second, cfg.Transcript.RequestInterval)
	assert.Equal(t, "youtube-summary-dev", cfg.Storage.TableName)
}

func TestLoadClampsNonPositiveMaxResults(t *testing.T) {
	t.Setenv("MAX_RESULTS_PER_HASHTAG", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(50), cfg.Search.MaxResultsPerHashtag)
}

func TestLoadKeepsZeroCaptionInterval(t *testing.T) {
	t.Setenv("CAPTION_REQUEST_INTERVAL", "0s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Transcript.RequestInterval)
}
