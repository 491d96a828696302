package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"medfollow-client/internal/config"
	"medfollow-client/internal/console"
	"medfollow-client/pkg/events"
	pktNats "medfollow-client/pkg/nats"
)

// carewatch tails the follow-up journal on NATS so care staff see escalations
// and call requests as they happen.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		log.Fatal("NATS_URL is required")
	}

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe(ctx, pktNats.SubjectPrefix+".>", "carewatch", func(_ context.Context, e events.Event) error {
		console.PrintEvent(os.Stdout, e)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	<-ctx.Done()
}
