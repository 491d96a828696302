package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"medfollow-client/internal/bootstrap"
	"medfollow-client/internal/config"
	"medfollow-client/internal/console"
	"medfollow-client/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	screen := console.NewRenderer(os.Stdout)
	container, err := bootstrap.NewContainer(ctx, cfg, bootstrap.Options{
		Renderer:   screen,
		SpeechSink: screen,
		Logger:     logger.NewIsolatedLogger(cfg.App.LogFilePath),
	})
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}
	defer container.Close()

	if err := container.Start(ctx); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	fmt.Println(console.Help)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if err := handle(ctx, container, line); err != nil {
				if errors.Is(err, console.ErrQuit) {
					return
				}
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}

func handle(ctx context.Context, c *bootstrap.Container, line string) error {
	cmd, err := console.Parse(line)
	if err != nil {
		return err
	}
	if cmd.Help {
		fmt.Println(console.Help)
		return nil
	}
	if cmd.Audio != "" {
		if c.Recognizer == nil {
			return errors.New("voice input needs STT_URL")
		}
		audio, err := os.ReadFile(cmd.Audio)
		if err != nil {
			return err
		}
		return c.Recognizer.Submit(audio)
	}
	for _, a := range cmd.Actions {
		if err := c.Orchestrator.Dispatch(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
