package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gacha/models"
	"gacha/repository"
	"gacha/service"
)

const rollColumns = `id, owner_id, guild_id, rarity, image_url, name, element, attack, defense, speed, created_at`

// RollRepository implements the RollRepository interface on SQLite
type RollRepository struct {
	q queryable
}

// NewRollRepository creates a new roll repository
func NewRollRepository(db *sql.DB) *RollRepository {
	return &RollRepository{q: db}
}

func newRollRepositoryWithTx(tx queryable) *RollRepository {
	return &RollRepository{q: tx}
}

// Insert persists a roll and fills in its id and creation time
func (r *RollRepository) Insert(ctx context.Context, roll *models.Roll) (int64, error) {
	if roll.OwnerID == "" {
		return 0, fmt.Errorf("roll owner is required")
	}

	createdAt := toMillis(time.Now())
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO rolls (owner_id, guild_id, rarity, image_url, name, element, attack, defense, speed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		roll.OwnerID,
		roll.GuildID,
		roll.Rarity,
		roll.ImageURL,
		roll.Name,
		roll.Element.String(),
		roll.Attack,
		roll.Defense,
		roll.Speed,
		createdAt,
	)
	if err != nil {
		return 0, service.NewStorageError("insert roll", fmt.Errorf("owner %s: %w", roll.OwnerID, err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, service.NewStorageError("insert roll", err)
	}
	roll.ID = id
	roll.CreatedAt = fromMillis(createdAt)
	return id, nil
}

// GetByID returns a roll or nil when it does not exist
func (r *RollRepository) GetByID(ctx context.Context, id int64) (*models.Roll, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+rollColumns+` FROM rolls WHERE id = ?`, id)
	roll, err := scanRoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, service.NewStorageError("get roll", fmt.Errorf("roll %d: %w", id, err))
	}
	return roll, nil
}

// ListByOwner returns the owner's rolls in insertion order
func (r *RollRepository) ListByOwner(ctx context.Context, ownerID string, guildID string) ([]*models.Roll, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+rollColumns+`
		FROM rolls
		WHERE owner_id = ? AND (? = '' OR guild_id = ?)
		ORDER BY id
	`, ownerID, guildID, guildID)
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

	like := repository.LikeContains(pattern)
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+rollColumns+`
		FROM rolls
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		   OR LOWER(element) LIKE ? ESCAPE '\'
		   OR CAST(id AS TEXT) LIKE ? ESCAPE '\'
		ORDER BY id
	`, like, like, like)
	if err != nil {
		return nil, service.NewStorageError("search rolls", fmt.Errorf("pattern %q: %w", pattern, err))
	}
	return collectRolls(rows, "search rolls")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoll(row rowScanner) (*models.Roll, error) {
	var roll models.Roll
	var element string
	var createdAt int64
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
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	roll.CreatedAt = fromMillis(createdAt)

	roll.Element, err = models.ParseElement(element)
	if err != nil {
		return nil, fmt.Errorf("roll %d: %w", roll.ID, err)
	}
	return &roll, nil
}

func collectRolls(rows *sql.Rows, op string) ([]*models.Roll, error) {
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
