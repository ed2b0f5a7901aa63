package models

import (
	"time"
)

// Valid rarity tiers, lowest first
var RarityTiers = []int{1, 2, 3, 4, 5, 6, 7, 10}

// Stat bounds for attack, defense and speed
const (
	MinStat = 1
	MaxStat = 100
)

// RollOutcome is the random part of a roll, before enrichment
type RollOutcome struct {
	Rarity  int
	Element Element
	Attack  int
	Defense int
	Speed   int
}

// Roll is a persisted collectible. Rolls are immutable once inserted.
type Roll struct {
	ID        int64     `db:"id"`
	OwnerID   string    `db:"owner_id"`
	GuildID   string    `db:"guild_id"`
	Rarity    int       `db:"rarity"`
	ImageURL  string    `db:"image_url"`
	Name      string    `db:"name"`
	Element   Element   `db:"element"`
	Attack    int       `db:"attack"`
	Defense   int       `db:"defense"`
	Speed     int       `db:"speed"`
	CreatedAt time.Time `db:"created_at"`
}

// NewRoll builds an unsaved roll from an outcome and its display data
func NewRoll(ownerID, guildID string, outcome RollOutcome, enrichment Enrichment) *Roll {
	return &Roll{
		OwnerID:  ownerID,
		GuildID:  guildID,
		Rarity:   outcome.Rarity,
		ImageURL: enrichment.ImageURL,
		Name:     enrichment.Name,
		Element:  outcome.Element,
		Attack:   outcome.Attack,
		Defense:  outcome.Defense,
		Speed:    outcome.Speed,
	}
}

// Enrichment is the cosmetic data fetched for a roll
type Enrichment struct {
	ImageURL string
	Name     string
}

// RollResult is returned to the command layer after a paid roll
type RollResult struct {
	Roll       *Roll
	NewBalance int64
	// Degraded is set when no image could be fetched for the roll
	Degraded bool
}
