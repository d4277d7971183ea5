package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var DefaultHashtags = []string{"プログラミング", "エンジニア", "Python"}

const (
	StorageDynamoDB = "dynamodb"
	StorageSQLite   = "sqlite"

	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"
	ProviderOpenAI  = "openai"

	SecretsManager = "secretsmanager"
	SecretsEnv     = "env"
)

type Config struct {
	LocalRun bool
	Debug    bool
	LogLevel string
	LogDir   string
	Version  string

	// Hashtags is loaded once per process and never mutated.
	Hashtags []string

	Filter     FilterConfig
	Search     SearchConfig
	Transcript TranscriptConfig
	Summary    SummaryConfig
	Secrets    SecretsConfig
	Storage    StorageConfig
	Timeouts   TimeoutConfig
	Report     ReportConfig
	Server     ServerConfig
}

type FilterConfig struct {
	MinViewCount uint64
	MinLikeCount uint64
}

type SearchConfig struct {
	MaxResultsPerHashtag int64
	Order                string
}

type TranscriptConfig struct {
	Language        string
	RequestInterval time.Duration
	BaseURL         string
}

type SummaryConfig struct {
	Provider           string
	Model              string
	MaxChars           int
	Language           string
	TranscriptMaxChars int
	MaxTokens          int
	BedrockRegion      string
	// OpenAIBaseURL points the openai provider at a compatible endpoint.
	OpenAIBaseURL      string
}

type SecretsConfig struct {
	Source        string
	YouTubeSecret string
	GeminiSecret  string
	OpenAISecret  string
}

type StorageConfig struct {
	Backend      string
	Region       string
	TableName    string
	VideoIDIndex string
	Endpoint     string
	SQLitePath   string
}

type TimeoutConfig struct {
	Search     time.Duration
	Transcript time.Duration
	Summary    time.Duration
	Storage    time.Duration
}

type ReportConfig struct {
	Bucket    string
	Prefix    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	RateLimitRPM    int
}

// LoadDotEnv reads a .env file into the environment when one exists. Local runs only.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		logrus.WithError(err).Debug("No .env file loaded, using process environment")
	}
}

// Load reads configuration from environment variables, falling back to defaults.
func Load() (*Config, error) {
	summaryLanguage := GetEnv("SUMMARY_LANGUAGE", "ja")
	region := GetEnv("AWS_REGION", "ap-northeast-1")

	cfg := &Config{
		LocalRun: getEnvAsBool("LOCAL_RUN", false),
		Debug:    getEnvAsBool("DEBUG", false),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		LogDir:   GetEnv("LOG_DIR", ""),
		Version:  GetEnv("VERSION", "1.0.0"),

		Hashtags: getEnvAsJSONStrings("HASHTAGS", DefaultHashtags),

		Filter: FilterConfig{
			MinViewCount: getEnvAsUint64("MIN_VIEW_COUNT", 1000),
			MinLikeCount: getEnvAsUint64("MIN_LIKE_COUNT", 50),
		},

		Search: SearchConfig{
			MaxResultsPerHashtag: int64(getEnvAsInt("MAX_RESULTS_PER_HASHTAG", 50)),
			Order:                GetEnv("SEARCH_ORDER", "date"),
		},

		Transcript: TranscriptConfig{
			Language:        GetEnv("TRANSCRIPT_LANGUAGE", summaryLanguage),
			RequestInterval: getEnvAsDuration("CAPTION_REQUEST_INTERVAL", time.Second),
			BaseURL:         GetEnv("CAPTION_BASE_URL", "https://www.youtube.com"),
		},

		Summary: SummaryConfig{
			Provider:           strings.ToLower(GetEnv("SUMMARY_PROVIDER", ProviderGemini)),
			Model:              GetEnv("SUMMARY_MODEL", ""),
			MaxChars:           getEnvAsInt("SUMMARY_MAX_CHARS", 400),
			Language:           summaryLanguage,
			TranscriptMaxChars: getEnvAsInt("TRANSCRIPT_MAX_CHARS", 10000),
			MaxTokens:          getEnvAsInt("SUMMARY_MAX_TOKENS", 1024),
			BedrockRegion:      GetEnv("BEDROCK_REGION", "us-east-1"),
			OpenAIBaseURL:      GetEnv("OPENAI_BASE_URL", ""),
		},

		Secrets: SecretsConfig{
			Source:        strings.ToLower(GetEnv("SECRETS_SOURCE", SecretsManager)),
			YouTubeSecret: GetEnv("YOUTUBE_API_SECRET", "youtube-summary/youtube-api-key"),
			GeminiSecret:  GetEnv("GEMINI_API_SECRET", "youtube-summary/gemini-api-key"),
			OpenAISecret:  GetEnv("OPENAI_API_SECRET", "youtube-summary/openai-api-key"),
		},

		Storage: StorageConfig{
			Backend:      strings.ToLower(GetEnv("STORAGE_BACKEND", StorageDynamoDB)),
			Region:       region,
			TableName:    GetEnv("DYNAMODB_TABLE", "youtube-summary-dev"),
			VideoIDIndex: GetEnv("DYNAMODB_VIDEO_INDEX", "videoId-index"),
			Endpoint:     GetEnv("DYNAMODB_ENDPOINT", ""),
			SQLitePath:   GetEnv("SQLITE_PATH", "./data/summaries.db"),
		},

		Timeouts: TimeoutConfig{
			Search:     getEnvAsDuration("SEARCH_TIMEOUT", 30*time.Second),
			Transcript: getEnvAsDuration("TRANSCRIPT_TIMEOUT", 30*time.Second),
			Summary:    getEnvAsDuration("SUMMARY_TIMEOUT", 60*time.Second),
			Storage:    getEnvAsDuration("STORAGE_TIMEOUT", 10*time.Second),
		},

		Report: ReportConfig{
			Bucket:    GetEnv("REPORT_BUCKET", ""),
			Prefix:    GetEnv("REPORT_PREFIX", "runs"),
			Endpoint:  GetEnv("REPORT_ENDPOINT", ""),
			Region:    GetEnv("REPORT_REGION", region),
			AccessKey: GetEnv("REPORT_ACCESS_KEY", ""),
			SecretKey: GetEnv("REPORT_SECRET_KEY", ""),
		},

		Server: ServerConfig{
			Port:            GetEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitRPM:    getEnvAsInt("RATE_LIMIT_RPM", 120),
		},
	}

	cfg.applyBounds()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// maxSearchResults is the largest page the YouTube search endpoint returns.
const maxSearchResults = 50

// applyBounds replaces well-formed but unusable values with their defaults.
func (c *Config) applyBounds() {
	switch {
	case c.Search.MaxResultsPerHashtag <= 0:
		warnInvalid("MAX_RESULTS_PER_HASHTAG", c.Search.MaxResultsPerHashtag, maxSearchResults, "Out of range, using default")
		c.Search.MaxResultsPerHashtag = maxSearchResults
	case c.Search.MaxResultsPerHashtag > maxSearchResults:
		warnInvalid("MAX_RESULTS_PER_HASHTAG", c.Search.MaxResultsPerHashtag, maxSearchResults, "Above API maximum, clamping")
		c.Search.MaxResultsPerHashtag = maxSearchResults
	}

	positiveInt("SUMMARY_MAX_CHARS", &c.Summary.MaxChars, 400)
	positiveInt("TRANSCRIPT_MAX_CHARS", &c.Summary.TranscriptMaxChars, 10000)
	positiveInt("SUMMARY_MAX_TOKENS", &c.Summary.MaxTokens, 1024)

	positiveDuration("SEARCH_TIMEOUT", &c.Timeouts.Search, 30*time.Second)
	positiveDuration("TRANSCRIPT_TIMEOUT", &c.Timeouts.Transcript, 30*time.Second)
	positiveDuration("SUMMARY_TIMEOUT", &c.Timeouts.Summary, 60*time.Second)
	positiveDuration("STORAGE_TIMEOUT", &c.Timeouts.Storage, 10*time.Second)
	positiveDuration("READ_TIMEOUT", &c.Server.ReadTimeout, 15*time.Second)
	positiveDuration("WRITE_TIMEOUT", &c.Server.WriteTimeout, 15*time.Second)
	positiveDuration("IDLE_TIMEOUT", &c.Server.IdleTimeout, 60*time.Second)
	positiveDuration("SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout, 30*time.Second)

	// Zero disables caption pacing.
	if c.Transcript.RequestInterval < 0 {
		warnInvalid("CAPTION_REQUEST_INTERVAL", c.Transcript.RequestInterval, time.Second, "Out of range, using default")
		c.Transcript.RequestInterval = time.Second
	}

	if c.Storage.TableName == "" {
		warnInvalid("DYNAMODB_TABLE", "", "youtube-summary-dev", "Empty value, using default")
		c.Storage.TableName = "youtube-summary-dev"
	}
	if c.Storage.SQLitePath == "" {
		warnInvalid("SQLITE_PATH", "", "./data/summaries.db", "Empty value, using default")
		c.Storage.SQLitePath = "./data/summaries.db"
	}
}

func positiveInt(key string, value *int, defaultValue int) {
	if *value <= 0 {
		warnInvalid(key, *value, defaultValue, "Out of range, using default")
		*value = defaultValue
	}
}

func positiveDuration(key string, value *time.Duration, defaultValue time.Duration) {
	if *value <= 0 {
		warnInvalid(key, *value, defaultValue, "Out of range, using default")
		*value = defaultValue
	}
}

// Validate rejects settings that have no usable fallback.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageDynamoDB, StorageSQLite:
	default:
		return errors.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Summary.Provider {
	case ProviderGemini, ProviderBedrock, ProviderOpenAI:
	default:
		return errors.Errorf("unknown summary provider %q", c.Summary.Provider)
	}

	switch c.Secrets.Source {
	case SecretsManager, SecretsEnv:
	default:
		return errors.Errorf("unknown secrets source %q", c.Secrets.Source)
	}

	return nil
}

// HasHashtag reports whether tag is one of the configured hashtags.
func (c *Config) HasHashtag(tag string) bool {
	for _, h := range c.Hashtags {
		if h == tag {
			return true
		}
	}
	return false
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		warnInvalid(key, value, defaultValue, "Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		warnInvalid(key, value, defaultValue, "Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return intValue
		}
		warnInvalid(key, value, defaultValue, "Invalid unsigned integer, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		warnInvalid(key, value, defaultValue, "Invalid boolean, using default")
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			return strings.Split(value, ",")
		}
	}
	return defaultValue
}

// getEnvAsJSONStrings parses a JSON array of strings. Malformed or empty input falls back.
func getEnvAsJSONStrings(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var parsed []string
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		warnInvalid(key, value, defaultValue, "Invalid JSON string array, using default")
		return defaultValue
	}

	out := make([]string, 0, len(parsed))
	for _, s := range parsed {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		warnInvalid(key, value, defaultValue, "Empty list, using default")
		return defaultValue
	}
	return out
}

func warnInvalid(key string, value, defaultValue interface{}, msg string) {
	logrus.WithFields(logrus.Fields{
		"key":          key,
		"value":        value,
		"defaultValue": defaultValue,
	}).Warn(msg)
}
