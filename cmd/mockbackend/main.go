package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medfollow-client/internal/mockbackend"
	"medfollow-client/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("MOCK_ADDR")
	if addr == "" {
		addr = ":5000"
	}

	sysLogger := logger.NewZapLogger("logs/mockbackend.log", false)
	defer sysLogger.Sync()

	srv := &http.Server{
		Addr:              addr,
		Handler:           mockbackend.NewHandler(sysLogger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Mock decision service listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Mock decision service failed: %v", err)
	}
}
