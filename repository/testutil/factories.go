package testutil

import (
	"fmt"
	"time"

	"gacha/models"
)

// CreateTestRoll creates an unsaved roll with valid default stats
func CreateTestRoll(ownerID string, guildID string, name string) *models.Roll {
	return &models.Roll{
		OwnerID:  ownerID,
		GuildID:  guildID,
		Rarity:   3,
		ImageURL: fmt.Sprintf("https://img.example/%s.png", ownerID),
		Name:     name,
		Element:  models.ElementWater,
		Attack:   10,
		Defense:  20,
		Speed:    30,
	}
}

// CreateTestRollWithElement creates an unsaved roll with a specific element
func CreateTestRollWithElement(ownerID string, name string, element models.Element) *models.Roll {
	roll := CreateTestRoll(ownerID, "guild-1", name)
	roll.Element = element
	return roll
}

// CreateTestBalanceHistory creates a test balance history entry
func CreateTestBalanceHistory(userID string, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   500,
		BalanceAfter:    400,
		ChangeAmount:    -100,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}
