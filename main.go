package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gacha/cmd"

	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := cmd.Migrate(os.Args[2:]); err != nil {
				log.Fatalf("Migration error: %v", err)
			}
			return
		case "set-balance":
			if err := cmd.SetBalance(ctx, os.Args[2:]); err != nil {
				log.Fatalf("set-balance error: %v", err)
			}
			return
		}
	}

	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
