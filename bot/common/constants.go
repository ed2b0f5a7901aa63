package common

// Embed colors
const (
	ColorGold  = 0xF1C40F // roll results
	ColorGreen = 0x2ECC71 // own collection
	ColorBlue  = 0x3498DB // search results
)

// Discord allows at most 10 embeds per message
const MaxEmbedsPerMessage = 10

// User-facing messages
const (
	MessageGuildOnly         = "This command can only be used in a server."
	MessageInsufficientFunds = "You do not have enough munny to roll. You need at least 100 munny."
	MessageNoImage           = "Sorry, I couldn't fetch an image right now."
	MessageNoRolls           = "You don't have any roll history."
	MessageNoResults         = "No results found for your query."
	MessageMissingQuery      = "Please provide a query parameter."
	MessageSomethingWrong    = "Sorry, something went wrong. Please try again later."
)
