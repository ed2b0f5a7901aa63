package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"gacha/bot"
	"gacha/config"
	"gacha/debugapi"
	"gacha/enrichment"
	"gacha/events"
	"gacha/service"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// services bundles everything the chat and debug surfaces depend on
type services struct {
	ledger     service.LedgerService
	gacha      service.GachaService
	collection service.CollectionService
	close      func()
}

func newServices(ctx context.Context, cfg *config.Config) (*services, error) {
	eventBus := events.NewBus()
	subscribeAuditLog(eventBus)

	uowFactory, closeStorage, err := openStorage(ctx, cfg, eventBus)
	if err != nil {
		return nil, err
	}

	enricher := enrichment.NewClient(cfg.ImageAPIURL, cfg.WordAPIURL, &http.Client{Timeout: cfg.EnrichmentTimeout})
	ledger := service.NewLedgerService(uowFactory)

	return &services{
		ledger:     ledger,
		gacha:      service.NewGachaService(uowFactory, ledger, enricher, service.NewLockedSource(time.Now().UnixNano()), cfg.EnrichmentTimeout),
		collection: service.NewCollectionService(uowFactory, cfg.ScopeRollListing),
		close:      closeStorage,
	}, nil
}

// SetupLogging configures logrus from LOG_LEVEL and ENVIRONMENT
func SetupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, falling back to info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	SetupLogging(cfg)
	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"storage":     cfg.StorageDriver,
	}).Info("Starting gacha bot...")

	if err := cfg.RequireDiscord(); err != nil {
		return err
	}

	svc, err := newServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.close()

	botConfig := bot.Config{
		Token:          cfg.DiscordToken,
		CommandPrefix:  cfg.CommandPrefix,
		CommandTimeout: cfg.CommandTimeout,
	}
	discordBot, err := bot.New(botConfig, svc.ledger, svc.gacha, svc.collection)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	g, gctx := errgroup.WithContext(ctx)

	if cfg.DebugAPIAddr != "" {
		server := debugapi.NewServer(cfg.DebugAPIAddr, svc.ledger, svc.collection)
		g.Go(func() error {
			log.WithField("addr", cfg.DebugAPIAddr).Info("Debug API listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("debug API: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	log.WithField("prefix", cfg.CommandPrefix).Info("Bot is running")
	<-gctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Shutdown completed")
	return nil
}
