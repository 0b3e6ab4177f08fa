package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "tracked_urls.json", config.TrackedItemsFile)
	assert.Equal(t, "price_history.json", config.PriceHistoryFile)
	assert.Equal(t, 30*time.Second, config.CheckDelay)
	assert.Equal(t, 20*time.Second, config.FetchTimeout)
	assert.Equal(t, 60*time.Second, config.GeminiTimeout)
	assert.Equal(t, LocaleEU, config.PriceLocale)
	assert.Equal(t, "us-east-1", config.AWSRegion)
	assert.Equal(t, "price_alerts", config.RedisStream)

	// Test with environment variables
	os.Setenv("TRACKED_ITEMS_FILE", "items.json")
	os.Setenv("CHECK_DELAY_SECONDS", "5")
	os.Setenv("PRICE_LOCALE", "us")
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("EMAIL_TO", "a@example.com, b@example.com,")

	config = LoadConfig()
	assert.Equal(t, "items.json", config.TrackedItemsFile)
	assert.Equal(t, 5*time.Second, config.CheckDelay)
	assert.Equal(t, LocaleUS, config.PriceLocale)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 2, config.RedisDB)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, config.EmailTo)

	// Clean up
	os.Unsetenv("TRACKED_ITEMS_FILE")
	os.Unsetenv("CHECK_DELAY_SECONDS")
	os.Unsetenv("PRICE_LOCALE")
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("EMAIL_TO")
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.GeminiAPIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.GeminiAPIKey = "test-key"
	assert.NoError(t, cfg.Validate())

	cfg.PriceLocale = "fr"
	assert.Error(t, cfg.Validate())
}

func TestEmailConfigured(t *testing.T) {
	cfg := Config{
		AWSAccessKeyID:     "id",
		AWSSecretAccessKey: "secret",
		EmailFrom:          "from@example.com",
		EmailTo:            []string{"to@example.com"},
	}
	assert.True(t, cfg.EmailConfigured())

	cfg.EmailTo = nil
	assert.False(t, cfg.EmailConfigured())
}
