// Command rollsim simulates many rolls and compares the observed rarity,
// element and stat distributions with the expected ones.
package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"gacha/models"
	"gacha/service"
)

func main() {
	trials := flag.Int("n", 100000, "number of rolls to simulate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	tolerance := flag.Float64("tolerance", 0.01, "allowed absolute deviation per tier")
	flag.Parse()

	fmt.Printf("=== Roll Distribution Analysis (n=%d, seed=%d) ===\n\n", *trials, *seed)

	rng := service.NewLockedSource(*seed)
	rarities := make(map[int]int)
	elements := make(map[models.Element]int)
	var statSum, statMin, statMax = 0, models.MaxStat, models.MinStat

	for i := 0; i < *trials; i++ {
		outcome := service.ComputeRoll(rng)
		rarities[outcome.Rarity]++
		elements[outcome.Element]++
		for _, stat := range []int{outcome.Attack, outcome.Defense, outcome.Speed} {
			statSum += stat
			statMin = min(statMin, stat)
			statMax = max(statMax, stat)
		}
	}

	fmt.Println("Rarity tiers:")
	failed := false
	for _, tier := range models.RarityTiers {
		expected := expectedRarity(tier)
		observed := float64(rarities[tier]) / float64(*trials)
		deviation := observed - expected

		status := "✓ PASS"
		if math.Abs(deviation) > *tolerance {
			status = "✗ FAIL"
			failed = true
		}
		fmt.Printf("  %2d★ | expected %6.2f%% | observed %6.2f%% | deviation %+.2f%% %s\n",
			tier, expected*100, observed*100, deviation*100, status)
	}

	fmt.Println("\nElements:")
	for _, e := range models.Elements {
		observed := float64(elements[e]) / float64(*trials)
		fmt.Printf("  %-5s | observed %6.2f%% | expected %6.2f%%\n", e, observed*100, 100.0/float64(len(models.Elements)))
	}

	fmt.Println("\nStats:")
	fmt.Printf("  min %d | max %d | mean %.2f (expected %.2f)\n",
		statMin, statMax, float64(statSum)/float64(3**trials), float64(models.MinStat+models.MaxStat)/2)

	if failed {
		fmt.Println("\nSome tiers deviate beyond tolerance")
	}
}

// expectedRarity returns the share of draws in [1,100] that land on tier
func expectedRarity(tier int) float64 {
	hits := 0
	for draw := 1; draw <= 100; draw++ {
		if service.RarityForDraw(draw) == tier {
			hits++
		}
	}
	return float64(hits) / 100
}
