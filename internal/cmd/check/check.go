// Package check implements the opabridgectl check sub-command: it builds
// a bridge from the same opa.* configuration keys the host engine would
// supply, issues one ExecuteQuery decision against it, and reports the
// verdict — a quick way for an operator to validate a PDP deployment
// before wiring it into the host engine.
package check

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
	"github.com/chirino/opa-trino-bridge/internal/bridge/factory"
)

// Command returns the check sub-command.
func Command() *cli.Command {
	var policyURI, batchedURI, user string

	return &cli.Command{
		Name:  "check",
		Usage: "Probe a configured policy decision point with a sample ExecuteQuery decision",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "policy-uri",
				Category:    "Policy:",
				Sources:     cli.EnvVars("OPABRIDGECTL_POLICY_URI"),
				Destination: &policyURI,
				Required:    true,
				Usage:       "Single-decision PDP endpoint (opa.policy.uri)",
			},
			&cli.StringFlag{
				Name:        "batched-policy-uri",
				Category:    "Policy:",
				Sources:     cli.EnvVars("OPABRIDGECTL_BATCHED_POLICY_URI"),
				Destination: &batchedURI,
				Usage:       "Batch-decision PDP endpoint (opa.policy.batched-uri)",
			},
			&cli.StringFlag{
				Name:        "user",
				Category:    "Policy:",
				Destination: &user,
				Value:       "opabridgectl-probe",
				Usage:       "User name to carry in the probe's identity",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := map[string]string{
				"opa.policy.uri":         policyURI,
				"opa.policy.batched-uri": batchedURI,
				"opa.log-requests":       "true",
				"opa.log-responses":      "true",
			}
			control, err := factory.New(cfg)
			if err != nil {
				return fmt.Errorf("build bridge: %w", err)
			}

			qc := bridge.NewQueryContext(bridge.NewFullIdentity(user, nil, nil, nil, nil), "")
			err = control.CanExecuteQuery(ctx, qc)
			if err != nil {
				log.Warn("probe denied", "user", user, "reason", err)
				return err
			}
			log.Info("probe allowed", "user", user)
			return nil
		},
	}
}
