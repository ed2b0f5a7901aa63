package service

import (
	"context"
	"fmt"
	"strings"

	"gacha/models"
)

type collectionService struct {
	uowFactory   UnitOfWorkFactory
	scopeByGuild bool
}

// NewCollectionService creates a new collection service. When scopeByGuild
// is set, ListMine only returns rolls made in the requesting guild.
func NewCollectionService(uowFactory UnitOfWorkFactory, scopeByGuild bool) CollectionService {
	return &collectionService{
		uowFactory:   uowFactory,
		scopeByGuild: scopeByGuild,
	}
}

func (s *collectionService) ListMine(ctx context.Context, ownerID string, guildID string) ([]*models.Roll, error) {
	if !s.scopeByGuild {
		guildID = ""
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rolls, err := uow.RollRepository().ListByOwner(ctx, ownerID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rolls: %w", err)
	}
	return rolls, nil
}

func (s *collectionService) Search(ctx context.Context, query string) ([]*models.Roll, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rolls, err := uow.RollRepository().Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search rolls: %w", err)
	}
	return rolls, nil
}

func (s *collectionService) GetRoll(ctx context.Context, id int64) (*models.Roll, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	roll, err := uow.RollRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get roll: %w", err)
	}
	return roll, nil
}
