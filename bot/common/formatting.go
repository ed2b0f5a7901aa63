package common

import (
	"fmt"
	"strings"

	"gacha/models"
)

// FormatStats renders the attack, defense and speed lines
func FormatStats(attack, defense, speed int) string {
	return fmt.Sprintf("**ATK:** %d\n**DEF:** %d\n**SPD:** %d", attack, defense, speed)
}

// FormatRollSummary renders the "I'm a ..." description used for stored rolls
func FormatRollSummary(roll *models.Roll) string {
	return fmt.Sprintf("I'm a **%d★** **%s** type with..\n", roll.Rarity, roll.Element.Emoji()) +
		FormatStats(roll.Attack, roll.Defense, roll.Speed)
}

// FormatRollResult renders the description of a fresh roll
func FormatRollResult(roll *models.Roll) string {
	return fmt.Sprintf("You rolled a \n **%d**★ **%s** type **\"%s\"** !!\n", roll.Rarity, roll.Element.Emoji(), roll.Name) +
		"     it has...\n\n" +
		FormatStats(roll.Attack, roll.Defense, roll.Speed)
}

// FormatOwner renders an embed footer
func FormatOwner(displayName string) string {
	return "owned by " + displayName
}

// UpperName returns the roll name as shown in listings
func UpperName(name string) string {
	return strings.ToUpper(name)
}
