// Package refpdp is a reference policy decision point for the bridge:
// a Rego-evaluated engine plus a small HTTP server exposing it at the
// single-decision and batch URIs the bridge expects. It exists for
// local development and the BDD scenario suite, not as a production
// policy authoring tool.
package refpdp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/open-policy-agent/opa/rego"
)

// PolicyBundle holds the Rego source for the two queries the engine
// evaluates: a single allow/deny decision and a batch filter decision.
type PolicyBundle struct {
	Decision string `json:"decision"`
	Filter   string `json:"filter"`
}

// Default built-in Rego policy (used when no policy directory is configured).
// It allows everything except DropTable and DropSchema, a deliberately
// small default meant to make the bundled scenarios and BDD features
// exercise both allow and deny paths without any external policy file.
const defaultDecisionRego = `
package bridge.decision

import future.keywords.if

default result = false

result if {
    not denied_operation[input.input.action.operation]
}

denied_operation := {"DropTable", "DropSchema"}
`

// The filter policy mirrors the decision policy's denylist: it returns
// the indices of every candidate whose operation is not in the denylist
// (the operation is fixed across all candidates in a filter call, so
// this reduces to "allow everything, or allow nothing").
const defaultFilterRego = `
package bridge.filter

import future.keywords.if

default result = []

result = [i | some i; input.input.action.filterResources[i]] if {
    not denied_operation[input.input.action.operation]
}

denied_operation := {"DropTable", "DropSchema"}
`

// Engine evaluates the decision and filter Rego queries. It is safe for
// concurrent use; Reload/ReplaceBundle swap the prepared queries under a
// lock so in-flight evaluations always see a consistent pair.
type Engine struct {
	mu       sync.RWMutex
	decision *rego.PreparedEvalQuery
	filter   *rego.PreparedEvalQuery
	bundle   PolicyBundle
}

// NewEngine builds an Engine. If policyDir is non-empty, decision.rego
// and filter.rego are loaded from it; otherwise the built-in defaults
// are used.
func NewEngine(ctx context.Context, policyDir string) (*Engine, error) {
	e := &Engine{}
	if err := e.load(ctx, policyDir); err != nil {
		return nil, err
	}
	return e, nil
}

func regoSource(policyDir, filename, fallback string) string {
	if policyDir == "" {
		return fallback
	}
	data, err := os.ReadFile(filepath.Join(policyDir, filename))
	if err != nil {
		log.Warn("policy file not found, using built-in default", "file", filename, "err", err)
		return fallback
	}
	return string(data)
}

func (e *Engine) load(ctx context.Context, policyDir string) error {
	decisionSrc := regoSource(policyDir, "decision.rego", defaultDecisionRego)
	filterSrc := regoSource(policyDir, "filter.rego", defaultFilterRego)

	decision, err := prepareQuery(ctx, decisionSrc, "data.bridge.decision.result")
	if err != nil {
		return fmt.Errorf("refpdp: compile decision policy: %w", err)
	}
	filter, err := prepareQuery(ctx, filterSrc, "data.bridge.filter.result")
	if err != nil {
		return fmt.Errorf("refpdp: compile filter policy: %w", err)
	}

	e.mu.Lock()
	e.decision = decision
	e.filter = filter
	e.bundle = PolicyBundle{Decision: decisionSrc, Filter: filterSrc}
	e.mu.Unlock()
	return nil
}

// Reload re-reads decision.rego/filter.rego from policyDir.
func (e *Engine) Reload(ctx context.Context, policyDir string) error {
	return e.load(ctx, policyDir)
}

// Bundle returns the currently active policy sources.
func (e *Engine) Bundle() PolicyBundle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bundle
}

// ReplaceBundle validates and hot-swaps the policy sources.
func (e *Engine) ReplaceBundle(ctx context.Context, bundle PolicyBundle) error {
	decisionSrc := strings.TrimSpace(bundle.Decision)
	filterSrc := strings.TrimSpace(bundle.Filter)
	if decisionSrc == "" || filterSrc == "" {
		return fmt.Errorf("refpdp: decision and filter policies are required")
	}

	decision, err := prepareQuery(ctx, decisionSrc, "data.bridge.decision.result")
	if err != nil {
		return fmt.Errorf("refpdp: compile decision policy: %w", err)
	}
	filter, err := prepareQuery(ctx, filterSrc, "data.bridge.filter.result")
	if err != nil {
		return fmt.Errorf("refpdp: compile filter policy: %w", err)
	}

	e.mu.Lock()
	e.decision = decision
	e.filter = filter
	e.bundle = PolicyBundle{Decision: decisionSrc, Filter: filterSrc}
	e.mu.Unlock()
	return nil
}

func prepareQuery(ctx context.Context, src, query string) (*rego.PreparedEvalQuery, error) {
	r := rego.New(
		rego.Query(query),
		rego.Module("policy.rego", src),
	)
	pq, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}
	return &pq, nil
}

// Decide evaluates the decision policy against a raw input document
// (already unmarshaled into a generic map) and returns the boolean
// verdict.
func (e *Engine) Decide(ctx context.Context, input map[string]any) (bool, error) {
	e.mu.RLock()
	q := *e.decision
	e.mu.RUnlock()

	results, err := q.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("refpdp decision eval: %w", err)
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, nil
	}
	allow, _ := results[0].Expressions[0].Value.(bool)
	return allow, nil
}

// Filter evaluates the filter policy against a raw batch input document
// and returns the surviving candidate indices.
func (e *Engine) Filter(ctx context.Context, input map[string]any) ([]int, error) {
	e.mu.RLock()
	q := *e.filter
	e.mu.RUnlock()

	results, err := q.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("refpdp filter eval: %w", err)
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return nil, nil
	}
	raw, ok := results[0].Expressions[0].Value.([]any)
	if !ok {
		return nil, nil
	}
	idx := make([]int, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				continue
			}
			idx = append(idx, int(i))
		case float64:
			idx = append(idx, int(n))
		}
	}
	return idx, nil
}
