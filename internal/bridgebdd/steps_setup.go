package bridgebdd

import (
	"context"
	"strings"

	"github.com/cucumber/godog"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
	"github.com/chirino/opa-trino-bridge/internal/bridge/factory"
	"github.com/chirino/opa-trino-bridge/internal/hostspi"
	"github.com/chirino/opa-trino-bridge/internal/refpdp"
	"github.com/chirino/opa-trino-bridge/internal/testutil/cucumber"
)

func init() {
	cucumber.StepModules = append(cucumber.StepModules, func(ctx *godog.ScenarioContext, s *cucumber.TestScenario) {
		b := &bridgeSteps{s: s, allowPermissionManagement: true}

		ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
			env := b.env()
			return ctx, env.engine.Reload(ctx, "")
		})

		ctx.Step(`^batch decisions are enabled$`, b.batchDecisionsAreEnabled)
		ctx.Step(`^permission management operations are disabled$`, b.permissionManagementIsDisabled)
		ctx.Step(`^the policy denies operation "([^"]*)"$`, b.policyDeniesOperation)
		ctx.Step(`^the user is "([^"]*)"$`, b.theUserIs)
		ctx.Step(`^the user is "([^"]*)" with groups "([^"]*)"$`, b.theUserIsWithGroups)

		registerSingleDecisionSteps(ctx, b)
		registerFilterSteps(ctx, b)
	})
}

// bridgeSteps carries the mutable state of a single scenario: the
// accumulated configuration flags, the built control once a user has
// been established, and the outcome of the most recent callback. A
// fresh instance is created per scenario by InitializeScenario.
type bridgeSteps struct {
	s *cucumber.TestScenario

	allowPermissionManagement bool
	batchEnabled              bool
	control                   hostspi.SystemAccessControl
	identity                  bridge.FullIdentity

	lastErr           error
	survivingCatalogs []string
	survivingSchemas  []string
	survivingTables   []string
	survivingColumns  []string
}

func (b *bridgeSteps) env() *bridgeEnvironment {
	return b.s.Suite.Context.(*bridgeEnvironment)
}

func (b *bridgeSteps) batchDecisionsAreEnabled() error {
	b.batchEnabled = true
	return nil
}

func (b *bridgeSteps) permissionManagementIsDisabled() error {
	b.allowPermissionManagement = false
	return nil
}

// policyDeniesOperation replaces the reference PDP's policy bundle with
// one that denies exactly the named operation and allows everything
// else, for scenarios needing a denylist outside the built-in default.
func (b *bridgeSteps) policyDeniesOperation(operation string) error {
	decision := "package bridge.decision\n\nimport future.keywords.if\n\ndefault result = false\n\nresult if {\n\tinput.input.action.operation != \"" + operation + "\"\n}\n"
	filter := "package bridge.filter\n\nimport future.keywords.if\n\ndefault result = []\n\nresult = [i | some i; input.input.action.filterResources[i]] if {\n\tinput.input.action.operation != \"" + operation + "\"\n}\n"
	return b.env().engine.ReplaceBundle(context.Background(), refpdp.PolicyBundle{Decision: decision, Filter: filter})
}

func (b *bridgeSteps) theUserIs(user string) error {
	return b.establishUser(user, nil)
}

func (b *bridgeSteps) theUserIsWithGroups(user, groupsCSV string) error {
	groups := splitCSV(groupsCSV)
	return b.establishUser(user, groups)
}

func (b *bridgeSteps) establishUser(user string, groups []string) error {
	b.identity = bridge.NewFullIdentity(user, groups, nil, nil, nil)

	cfg := map[string]string{
		"opa.policy.uri": b.env().singleURI(),
		"opa.allow-permission-management-operations": boolString(b.allowPermissionManagement),
	}
	if b.batchEnabled {
		cfg["opa.policy.batched-uri"] = b.env().batchURI()
	}

	control, err := factory.New(cfg)
	if err != nil {
		return err
	}
	b.control = control
	return nil
}

func (b *bridgeSteps) qc() bridge.QueryContext {
	return bridge.NewQueryContext(b.identity, "")
}

func splitCSV(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
