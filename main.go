package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"users-api/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("users-api: %v", err)
	}
}
