// Package servepdp implements the opabridgectl serve-reference-pdp
// sub-command: it starts the reference policy decision point (internal/refpdp)
// as a standalone HTTP server, for local development against the bridge.
// The BDD scenario suite does not use it; it starts the reference PDP
// in-process.
package servepdp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/chirino/opa-trino-bridge/internal/refpdp"
)

// Command returns the serve-reference-pdp sub-command.
func Command() *cli.Command {
	var port int
	var policyDir string
	var singlePath, batchPath string

	return &cli.Command{
		Name:  "serve-reference-pdp",
		Usage: "Start the reference Rego-evaluated policy decision point",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "port",
				Category:    "Server:",
				Sources:     cli.EnvVars("OPABRIDGECTL_PORT"),
				Destination: &port,
				Value:       8282,
				Usage:       "HTTP port to listen on",
			},
			&cli.StringFlag{
				Name:        "policy-dir",
				Category:    "Server:",
				Sources:     cli.EnvVars("OPABRIDGECTL_POLICY_DIR"),
				Destination: &policyDir,
				Usage:       "Directory containing decision.rego/filter.rego; built-in defaults used if unset",
			},
			&cli.StringFlag{
				Name:        "single-path",
				Category:    "Server:",
				Sources:     cli.EnvVars("OPABRIDGECTL_SINGLE_PATH"),
				Destination: &singlePath,
				Value:       "/v1/decision",
				Usage:       "HTTP path for the single-decision endpoint",
			},
			&cli.StringFlag{
				Name:        "batch-path",
				Category:    "Server:",
				Sources:     cli.EnvVars("OPABRIDGECTL_BATCH_PATH"),
				Destination: &batchPath,
				Value:       "/v1/filter",
				Usage:       "HTTP path for the batch filter endpoint",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			engine, err := refpdp.NewEngine(ctx, policyDir)
			if err != nil {
				return fmt.Errorf("load policy: %w", err)
			}
			srv := refpdp.NewServer(engine, singlePath, batchPath)

			addr := fmt.Sprintf(":%d", port)
			log.Info("reference PDP listening", "addr", addr, "single", singlePath, "batch", batchPath)
			httpServer := &http.Server{Addr: addr, Handler: srv.Router}

			go func() {
				<-ctx.Done()
				_ = httpServer.Close()
			}()

			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}
