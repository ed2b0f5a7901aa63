package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gacha/events"
	"gacha/models"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RollCost is the price of a single roll in munny
const RollCost int64 = 100

// DefaultRollName is used when no display name could be fetched
const DefaultRollName = "DEFAULT NAME"

// DefaultEnrichmentTimeout bounds both enrichment calls together
const DefaultEnrichmentTimeout = 5 * time.Second

type gachaService struct {
	uowFactory        UnitOfWorkFactory
	ledger            LedgerService
	enricher          Enricher
	rng               RandomSource
	enrichmentTimeout time.Duration
}

// NewGachaService creates a new gacha service
func NewGachaService(uowFactory UnitOfWorkFactory, ledger LedgerService, enricher Enricher, rng RandomSource, enrichmentTimeout time.Duration) GachaService {
	if enrichmentTimeout <= 0 {
		enrichmentTimeout = DefaultEnrichmentTimeout
	}
	return &gachaService{
		uowFactory:        uowFactory,
		ledger:            ledger,
		enricher:          enricher,
		rng:               rng,
		enrichmentTimeout: enrichmentTimeout,
	}
}

func (s *gachaService) Roll(ctx context.Context, ownerID string, guildID string) (*models.RollResult, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	// Charge first; a refused deduction must not compute or store anything
	newBalance, err := s.ledger.TryDeduct(ctx, ownerID, RollCost, models.TransactionTypeRoll, map[string]any{
		"guild_id": guildID,
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to charge roll: %w", err)
	}

	outcome := ComputeRoll(s.rng)

	// No transaction is open while the enrichment calls are in flight
	enrichment := s.enrich(ctx)

	roll := models.NewRoll(ownerID, guildID, outcome, enrichment)
	if err := s.store(ctx, roll); err != nil {
		log.WithFields(log.Fields{
			"ownerID":    ownerID,
			"guildID":    guildID,
			"rollCost":   RollCost,
			"newBalance": newBalance,
			"error":      err,
		}).Error("Roll was charged but could not be stored")
		return nil, err
	}

	return &models.RollResult{
		Roll:       roll,
		NewBalance: newBalance,
		Degraded:   roll.ImageURL == "",
	}, nil
}

// enrich fetches the image and the name concurrently. Failures fall back to
// an empty image and DefaultRollName and are never returned.
func (s *gachaService) enrich(ctx context.Context) models.Enrichment {
	enrichCtx, cancel := context.WithTimeout(ctx, s.enrichmentTimeout)
	defer cancel()

	enrichment := models.Enrichment{Name: DefaultRollName}
	if s.enricher == nil {
		return enrichment
	}

	var g errgroup.Group
	g.Go(func() error {
		url, err := s.enricher.FetchDisplayImage(enrichCtx)
		if err != nil {
			log.WithError(err).Warn("Failed to fetch roll image")
			return nil
		}
		enrichment.ImageURL = url
		return nil
	})
	var name string
	g.Go(func() error {
		n, err := s.enricher.FetchDisplayName(enrichCtx)
		if err != nil {
			log.WithError(err).Warn("Failed to fetch roll name")
			return nil
		}
		name = n
		return nil
	})
	_ = g.Wait()

	if name != "" {
		enrichment.Name = name
	}
	return enrichment
}

func (s *gachaService) store(ctx context.Context, roll *models.Roll) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	id, err := uow.RollRepository().Insert(ctx, roll)
	if err != nil {
		return fmt.Errorf("failed to insert roll: %w", err)
	}
	roll.ID = id

	uow.EventBus().Publish(events.RollCreatedEvent{
		RollID:  roll.ID,
		OwnerID: roll.OwnerID,
		GuildID: roll.GuildID,
		Rarity:  roll.Rarity,
		Element: roll.Element,
		Name:    roll.Name,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
