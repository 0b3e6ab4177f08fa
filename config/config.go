package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "sjsage522/shoetracker/pkg/errors"
)

// Price locale conventions for separator handling.
const (
	// LocaleEU treats '.' as thousands separator and ',' as decimal separator
	LocaleEU = "eu"
	// LocaleUS treats ',' as thousands separator and '.' as decimal separator
	LocaleUS = "us"
)

// Config represents the application configuration
type Config struct {
	// Gemini configuration
	GeminiAPIKey  string
	GeminiTimeout time.Duration

	// Tracked items and history files
	TrackedItemsFile string
	PriceHistoryFile string

	// Pacing and fetch configuration
	CheckDelay     time.Duration
	FetchTimeout   time.Duration
	FetchBlockTime time.Duration

	// Extraction configuration
	PriceLocale     string
	MaxContentChars int

	// Optional memcache fetch gate
	MemcacheAddr string

	// Optional Redis alert stream
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Email notification (SES)
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	EmailFrom          string
	EmailTo            []string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	checkDelay, _ := strconv.Atoi(getEnv("CHECK_DELAY_SECONDS", "30"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "20"))
	fetchBlock, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "300"))
	geminiTimeout, _ := strconv.Atoi(getEnv("GEMINI_TIMEOUT_SECONDS", "60"))
	maxContent, _ := strconv.Atoi(getEnv("MAX_CONTENT_CHARS", "120000"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "500"))

	return Config{
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiTimeout:        time.Duration(geminiTimeout) * time.Second,
		TrackedItemsFile:     getEnv("TRACKED_ITEMS_FILE", "tracked_urls.json"),
		PriceHistoryFile:     getEnv("PRICE_HISTORY_FILE", "price_history.json"),
		CheckDelay:           time.Duration(checkDelay) * time.Second,
		FetchTimeout:         time.Duration(fetchTimeout) * time.Second,
		FetchBlockTime:       time.Duration(fetchBlock) * time.Second,
		PriceLocale:          getEnv("PRICE_LOCALE", LocaleEU),
		MaxContentChars:      maxContent,
		MemcacheAddr:         os.Getenv("MEMCACHE_ADDR"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "price_alerts"),
		RedisStreamMaxLength: redisMaxLen,
		AWSAccessKeyID:       os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:            getEnv("AWS_REGION", "us-east-1"),
		EmailFrom:            os.Getenv("EMAIL_FROM"),
		EmailTo:              splitEmails(os.Getenv("EMAIL_TO")),
		Environment:          getEnv("SHOETRACKER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return apperrors.NewConfiguration("GEMINI_API_KEY is not set", nil)
	}
	if c.PriceLocale != LocaleEU && c.PriceLocale != LocaleUS {
		return apperrors.NewConfiguration("PRICE_LOCALE must be 'eu' or 'us', got '"+c.PriceLocale+"'", nil)
	}
	if c.CheckDelay < 0 {
		return apperrors.NewConfiguration("CHECK_DELAY_SECONDS must not be negative", nil)
	}
	return nil
}

// EmailConfigured returns true when all SES settings required for
// sending alert mail are present.
func (c Config) EmailConfigured() bool {
	return c.AWSAccessKeyID != "" &&
		c.AWSSecretAccessKey != "" &&
		c.EmailFrom != "" &&
		len(c.EmailTo) > 0
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitEmails splits a comma-separated recipient list, dropping empty entries
func splitEmails(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
