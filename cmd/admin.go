package cmd

import (
	"context"
	"fmt"
	"strconv"

	"gacha/config"
	"gacha/database"

	log "github.com/sirupsen/logrus"
)

// Migrate runs a migrate subcommand (up, down [steps], status) against the configured backend
func Migrate(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: gacha migrate [up|down|status] [args...]")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	SetupLogging(cfg)
	target := migrationTarget(cfg)

	switch args[0] {
	case "up":
		return database.MigrateUp(target)
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(target, steps)
	case "status":
		return database.MigrateStatus(target)
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}

// SetBalance overwrites a user's balance from the command line
func SetBalance(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: gacha set-balance <user-id> <amount>")
	}
	userID := args[0]
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	SetupLogging(cfg)

	svc, err := newServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.close()

	if err := svc.ledger.SetBalance(ctx, userID, amount, map[string]any{"source": "cli"}); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"user_id": userID,
		"balance": amount,
	}).Info("Balance updated")
	return nil
}
