package repository

import (
	"context"
	"errors"
	"fmt"

	"gacha/database"
	"gacha/models"
	"gacha/service"

	"github.com/jackc/pgx/v5"
)

const rollColumns = `id, owner_id, guild_id, rarity, image_url, name, element, attack, defense, speed, created_at`

// RollRepository implements the RollRepository interface on Postgres
type RollRepository struct {
	q queryable
}

// NewRollRepository creates a new roll repository
func NewRollRepository(db *database.DB) *RollRepository {
	return &RollRepository{q: db.Pool}
}

// newRollRepositoryWithTx creates a new roll repository with a transaction
func newRollRepositoryWithTx(tx queryable) *RollRepository {
	return &RollRepository{q: tx}
}

// Insert persists a roll and fills in its id and creation time
func (r *RollRepository) Insert(ctx context.Context, roll *models.Roll) (int64, error) {
	if roll.OwnerID == "" {
		return 0, fmt.Errorf("roll owner is required")
	}

	query := `
		INSERT INTO rolls (owner_id, guild_id, rarity, image_url, name, element, attack, defense, speed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		roll.OwnerID,
		roll.GuildID,
		roll.Rarity,
		roll.ImageURL,
		roll.Name,
		roll.Element.String(),
		roll.Attack,
		roll.Defense,
		roll.Speed,
	).Scan(&roll.ID, &roll.CreatedAt)
	if err != nil {
		return 0, service.NewStorageError("insert roll", fmt.Errorf("owner %s: %w", roll.OwnerID, err))
	}

	return roll.ID, nil
}

// GetByID returns a roll or nil when it does not exist
func (r *RollRepository) GetByID(ctx context.Context, id int64) (*models.Roll, error) {
	query := `SELECT ` + rollColumns + ` FROM rolls WHERE id = $1`

	roll, err := scanRoll(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, service.NewStorageError("get roll", fmt.Errorf("roll %d: %w", id, err))
	}
	return roll, nil
}

// ListByOwner returns the owner's rolls in insertion order
func (r *RollRepository) ListByOwner(ctx context.Context, ownerID string, guildID string) ([]*models.Roll, error) {
	query := `
		SELECT ` + rollColumns + `
		FROM rolls
		WHERE owner_id = $1 AND ($2 = '' OR guild_id = $2)
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, ownerID, guildID)
	if err != nil {
		return nil, service.NewStorageError("list rolls", fmt.Errorf("owner %s: %w", ownerID, err))
	}
	return collectRolls(rows, "list rolls")
}

// Search matches name, element and id as case-insensitive substrings
func (r *RollRepository) Search(ctx context.Context, pattern string) ([]*models.Roll, error) {
	if pattern == "" {
		return nil, nil
	}

	query := `
		SELECT ` + rollColumns + `
		FROM rolls
		WHERE LOWER(name) LIKE $1 ESCAPE '\'
		   OR LOWER(element) LIKE $1 ESCAPE '\'
		   OR CAST(id AS TEXT) LIKE $1 ESCAPE '\'
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, LikeContains(pattern))
	if err != nil {
		return nil, service.NewStorageError("search rolls", fmt.Errorf("pattern %q: %w", pattern, err))
	}
	return collectRolls(rows, "search rolls")
}

func scanRoll(row pgx.Row) (*models.Roll, error) {
	var roll models.Roll
	var element string
	err := row.Scan(
		&roll.ID,
		&roll.OwnerID,
		&roll.GuildID,
		&roll.Rarity,
		&roll.ImageURL,
		&roll.Name,
		&element,
		&roll.Attack,
		&roll.Defense,
		&roll.Speed,
		&roll.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	roll.Element, err = models.ParseElement(element)
	if err != nil {
		return nil, fmt.Errorf("roll %d: %w", roll.ID, err)
	}
	return &roll, nil
}

func collectRolls(rows pgx.Rows, op string) ([]*models.Roll, error) {
	defer rows.Close()

	rolls := []*models.Roll{}
	for rows.Next() {
		roll, err := scanRoll(rows)
		if err != nil {
			return nil, service.NewStorageError(op, err)
		}
		rolls = append(rolls, roll)
	}
	if err := rows.Err(); err != nil {
		return nil, service.NewStorageError(op, err)
	}
	return rolls, nil
}
