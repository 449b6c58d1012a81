// Command frage-models lists the models the configured backend serves, or
// shows one model in detail.
//
// Usage:
//
//	frage-models            list all models
//	frage-models gpt-4o     show one model
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/frage-dev/frage/pkg/client"
	"github.com/frage-dev/frage/pkg/config"
	"github.com/frage-dev/frage/pkg/models"
)

func main() {
	if err := run(); err != nil {
		slog.Error("listing models failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (default: discover)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	c, err := cfg.Client()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if id := flag.Arg(0); id != "" {
		return showModel(ctx, c, id)
	}
	return listModels(ctx, c)
}

func listModels(ctx context.Context, c *client.Client) error {
	list, err := models.List(ctx, c)
	if err != nil {
		return err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOWNED BY\tCREATED")
	for _, m := range list {
		created := ""
		if m.Created > 0 {
			created = time.Unix(m.Created, 0).UTC().Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.OwnedBy, created)
	}
	return w.Flush()
}

func showModel(ctx context.Context, c *client.Client, id string) error {
	m, err := models.Retrieve(ctx, c, id)
	if err != nil {
		return err
	}
	fmt.Printf("ID:       %s\n", m.ID)
	fmt.Printf("Owned by: %s\n", m.OwnedBy)
	if m.Created > 0 {
		fmt.Printf("Created:  %s\n", time.Unix(m.Created, 0).UTC().Format(time.RFC3339))
	}
	return nil
}
