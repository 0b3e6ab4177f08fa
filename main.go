package main

import (
	"context"

	"sjsage522/shoetracker/config"
	"sjsage522/shoetracker/internal/extractor"
	"sjsage522/shoetracker/internal/fetcher"
	"sjsage522/shoetracker/internal/gemini"
	"sjsage522/shoetracker/logger"
	"sjsage522/shoetracker/services/cache"
	"sjsage522/shoetracker/services/history"
	"sjsage522/shoetracker/services/notifier"
	"sjsage522/shoetracker/services/publisher"
	"sjsage522/shoetracker/services/tracker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Load tracked items; any problem here aborts before checking anything
	settings, items, err := config.LoadItems(cfg.TrackedItemsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load tracked items")
	}
	if len(items) == 0 {
		log.Warn().Str("file", cfg.TrackedItemsFile).Msg("No items tracked, nothing to do")
		return
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("model", settings.Model).
		Int("items", len(items)).
		Dur("check_delay", cfg.CheckDelay).
		Msg("Starting price check")

	ctx := context.Background()

	// Initialize services
	services := initializeServices(ctx, cfg)
	defer services.Cleanup()

	deps := tracker.Deps{
		Fetcher:   fetcher.New(cfg.FetchTimeout, services.Gate),
		Extractor: extractor.New(services.Gemini, settings.Model, cfg.PriceLocale, cfg.MaxContentChars),
		History:   services.History,
		Notifier:  services.Notifier,
		Publisher: services.Publisher,
	}

	// Run once; per-item failures are recorded, not fatal, so a completed
	// run always exits 0
	t := tracker.New(ctx, settings, items, deps, cfg.CheckDelay)
	t.Run()
}

// Services holds all the initialized services
type Services struct {
	Gate      *cache.Gate
	Gemini    *gemini.Client
	History   history.Store
	Notifier  notifier.Notifier
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices initializes all required services. Optional
// collaborators (memcache gate, Redis stream, SES mail) are enabled only
// when configured; their absence is soft-disabled mode, not an error.
func initializeServices(ctx context.Context, cfg config.Config) *Services {
	services := &Services{}

	if cfg.MemcacheAddr != "" {
		services.Gate = cache.NewGate(cache.NewMemcacheService(cfg.MemcacheAddr), cfg.FetchBlockTime)
		logger.Info("Fetch gate enabled via Memcache at %s", cfg.MemcacheAddr)
	}

	services.Gemini = gemini.New(cfg.GeminiAPIKey, gemini.WithTimeout(cfg.GeminiTimeout))

	services.History = history.NewFileStore(cfg.PriceHistoryFile)

	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLength)
		logger.Info("Alert stream enabled via Redis at %s (stream: %s)", cfg.RedisAddr, cfg.RedisStream)
	} else {
		services.Publisher = publisher.Noop{}
	}

	if cfg.EmailConfigured() {
		sesNotifier, err := notifier.NewSESNotifier(ctx, cfg)
		if err != nil {
			logger.Warn("Failed to configure SES, email disabled: %v", err)
			services.Notifier = notifier.Noop{}
		} else {
			services.Notifier = sesNotifier
			logger.Info("Email notification enabled via SES (%s)", cfg.AWSRegion)
		}
	} else {
		services.Notifier = notifier.Noop{}
		logger.Info("Email not configured, notifications disabled")
	}

	return services
}
