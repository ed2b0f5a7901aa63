package service

import (
	"math/rand"
	"sync"

	"gacha/models"
)

// RandomSource is the subset of *rand.Rand the roll engine needs
type RandomSource interface {
	// Intn returns a uniform int in [0, n)
	Intn(n int) int
}

// rarityTable maps the upper bound of each draw range to its tier
var rarityTable = []struct {
	maxDraw int
	rarity  int
}{
	{40, 1},
	{65, 2},
	{80, 3},
	{90, 4},
	{95, 5},
	{98, 6},
	{99, 7},
	{100, 10},
}

// RarityForDraw maps a draw in [1,100] to its rarity tier
func RarityForDraw(draw int) int {
	for _, tier := range rarityTable {
		if draw <= tier.maxDraw {
			return tier.rarity
		}
	}
	return rarityTable[len(rarityTable)-1].rarity
}

// ComputeRoll draws a rarity, three stats and an element. All draws are
// independent and the function has no side effects beyond consuming rng.
func ComputeRoll(rng RandomSource) models.RollOutcome {
	draw := rng.Intn(100) + 1
	return models.RollOutcome{
		Rarity:  RarityForDraw(draw),
		Attack:  drawStat(rng),
		Defense: drawStat(rng),
		Speed:   drawStat(rng),
		Element: models.Elements[rng.Intn(len(models.Elements))],
	}
}

func drawStat(rng RandomSource) int {
	return rng.Intn(models.MaxStat-models.MinStat+1) + models.MinStat
}

// lockedSource makes a *rand.Rand safe for concurrent commands
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedSource returns a goroutine-safe RandomSource seeded with seed
func NewLockedSource(seed int64) RandomSource {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
