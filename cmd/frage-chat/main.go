// Command frage-chat is an interactive terminal chat that streams replies
// from an OpenAI-compatible backend.
//
// Configuration is layered: frage.yaml (or --config / FRAGE_CONFIG), then
// FRAGE_* environment variables, with OPENAI_API_KEY as the credential
// fallback. See the config package for the full list.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/frage-dev/frage/pkg/chat"
	"github.com/frage-dev/frage/pkg/client"
	"github.com/frage-dev/frage/pkg/config"
	"github.com/frage-dev/frage/pkg/modelid"
)

func main() {
	if err := run(); err != nil {
		slog.Error("chat failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (default: discover)")
	model := flag.String("model", "", "model ID, overrides config")
	system := flag.String("system", "", "system prompt, overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg.Logging)

	if *model != "" {
		cfg.Chat.Model = *model
	}
	if *system != "" {
		cfg.Chat.System = *system
	}

	c, err := cfg.Client()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("chat session starting", "model", cfg.Chat.Model, "base_url", cfg.API.BaseURL)
	fmt.Println("frage chat. Empty line or Ctrl-D quits.")

	var history []chat.Message
	if cfg.Chat.System != "" {
		history = append(history, chat.Message{Role: chat.RoleSystem, Content: cfg.Chat.System})
	}

	stdin := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !stdin.Scan() {
			fmt.Println()
			return stdin.Err()
		}
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			return nil
		}

		history = append(history, chat.Message{Role: chat.RoleUser, Content: line})
		reply, err := streamReply(ctx, cfg, c, history)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		history = append(history, chat.Message{Role: chat.RoleAssistant, Content: reply})
	}
}

// streamReply sends the conversation so far and prints the streamed answer
// as it arrives, returning the assembled text for the history.
func streamReply(ctx context.Context, cfg *config.Config, c *client.Client, history []chat.Message) (string, error) {
	stream, err := chat.CreateStream(ctx, c, &chat.Request{
		Model:       modelid.Parse(cfg.Chat.Model),
		Messages:    history,
		Temperature: cfg.Chat.Temperature,
	})
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var reply strings.Builder
	for stream.Next() {
		for _, choice := range stream.Current().Choices {
			if choice.Delta.Content == nil {
				continue
			}
			fmt.Print(*choice.Delta.Content)
			reply.WriteString(*choice.Delta.Content)
		}
	}
	fmt.Println()
	if err := stream.Err(); err != nil {
		return "", err
	}
	return reply.String(), nil
}

// setupLogging installs the process-wide slog handler per config.
func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
