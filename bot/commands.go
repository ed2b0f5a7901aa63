package bot

import (
	"gacha/bot/common"
	"gacha/bot/features/balance"
	"gacha/bot/features/collection"
	"gacha/bot/features/gacha"
	"gacha/bot/features/greeting"
	"gacha/service"
)

// Command keywords
const (
	CommandHello   = "hello"
	CommandRoll    = "roll"
	CommandMyRolls = "myrolls"
	CommandQuery   = "query"
	CommandBalance = "balance"
	CommandHelp    = "help"
)

// commandInfos is the help listing, in display order
var commandInfos = []greeting.CommandInfo{
	{Usage: CommandHello, Description: "Say hello"},
	{Usage: CommandRoll, Description: "Spend 100 munny on a roll"},
	{Usage: CommandMyRolls, Description: "Show the rolls you own"},
	{Usage: CommandQuery + " <text>", Description: "Search all rolls by name, element or id"},
	{Usage: CommandBalance, Description: "Show your munny balance"},
	{Usage: CommandHelp, Description: "Show this list"},
}

// registerCommands builds the keyword table for the dispatcher
func registerCommands(prefix string, ledgerService service.LedgerService, gachaService service.GachaService, collectionService service.CollectionService, members common.MemberResolver) map[string]common.Handler {
	greetingFeature := greeting.New(prefix, commandInfos)
	balanceFeature := balance.New(ledgerService)
	gachaFeature := gacha.New(gachaService)
	collectionFeature := collection.New(collectionService, members)

	return map[string]common.Handler{
		CommandHello:   greetingFeature.HandleHello,
		CommandHelp:    greetingFeature.HandleHelp,
		CommandRoll:    gachaFeature.HandleRoll,
		CommandMyRolls: collectionFeature.HandleMyRolls,
		CommandQuery:   collectionFeature.HandleQuery,
		CommandBalance: balanceFeature.HandleBalance,
	}
}
