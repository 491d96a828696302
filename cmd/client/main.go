package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"medfollow-client/internal/bootstrap"
	"medfollow-client/internal/config"
	"medfollow-client/internal/server"
	"medfollow-client/internal/tracer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing, "medfollow-client")
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Unable to bootstrap client: %v", err)
	}
	defer container.Close()

	// 4. Start Background Loops
	if err := container.Start(ctx); err != nil {
		log.Fatalf("Unable to start client: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
