package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/chirino/opa-trino-bridge/internal/cmd/check"
	"github.com/chirino/opa-trino-bridge/internal/cmd/servepdp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "opabridgectl",
		Usage: "Reference tooling for the OPA/Trino access-control bridge",
		Commands: []*cli.Command{
			servepdp.Command(),
			check.Command(),
		},
	}
	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
