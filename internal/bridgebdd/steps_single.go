package bridgebdd

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/chirino/opa-trino-bridge/internal/bridge/bridgeerr"
)

// registerSingleDecisionSteps wires every non-batch callback the
// scenarios drive, plus the Then steps asserting the resulting verdict.
func registerSingleDecisionSteps(ctx *godog.ScenarioContext, b *bridgeSteps) {
	ctx.Step(`^the user attempts to execute a query$`, b.attemptsExecuteQuery)
	ctx.Step(`^the user attempts to select columns "([^"]*)" from catalog "([^"]*)" schema "([^"]*)" table "([^"]*)"$`, b.attemptsSelectFromColumns)
	ctx.Step(`^the user attempts to drop table in catalog "([^"]*)" schema "([^"]*)" table "([^"]*)"$`, b.attemptsDropTable)
	ctx.Step(`^the user attempts to drop schema in catalog "([^"]*)" schema "([^"]*)"$`, b.attemptsDropSchema)
	ctx.Step(`^the user attempts to rename schema in catalog "([^"]*)" schema "([^"]*)" to "([^"]*)"$`, b.attemptsRenameSchema)
	ctx.Step(`^the user attempts to create a role named "([^"]*)"$`, b.attemptsCreateRole)
	ctx.Step(`^the user attempts to show the current roles$`, b.attemptsShowCurrentRoles)

	ctx.Step(`^access should be allowed$`, b.accessShouldBeAllowed)
	ctx.Step(`^access should be denied$`, b.accessShouldBeDenied)
	ctx.Step(`^the denial reason should mention "([^"]*)"$`, b.denialReasonShouldMention)
}

func (b *bridgeSteps) attemptsExecuteQuery() error {
	b.lastErr = b.control.CanExecuteQuery(context.Background(), b.qc())
	return nil
}

func (b *bridgeSteps) attemptsSelectFromColumns(columnsCSV, catalog, schema, table string) error {
	columns := splitCSV(columnsCSV)
	b.lastErr = b.control.CanSelectFromColumns(context.Background(), b.qc(), catalog, schema, table, columns)
	return nil
}

func (b *bridgeSteps) attemptsDropTable(catalog, schema, table string) error {
	b.lastErr = b.control.CanDropTable(context.Background(), b.qc(), catalog, schema, table)
	return nil
}

func (b *bridgeSteps) attemptsDropSchema(catalog, schema string) error {
	b.lastErr = b.control.CanDropSchema(context.Background(), b.qc(), catalog, schema)
	return nil
}

func (b *bridgeSteps) attemptsRenameSchema(catalog, schema, newSchema string) error {
	b.lastErr = b.control.CanRenameSchema(context.Background(), b.qc(), catalog, schema, newSchema)
	return nil
}

func (b *bridgeSteps) attemptsCreateRole(role string) error {
	b.lastErr = b.control.CanCreateRole(context.Background(), b.qc(), role, nil)
	return nil
}

func (b *bridgeSteps) attemptsShowCurrentRoles() error {
	b.lastErr = b.control.CanShowCurrentRoles(context.Background(), b.qc())
	return nil
}

func (b *bridgeSteps) accessShouldBeAllowed() error {
	if b.lastErr != nil {
		return fmt.Errorf("expected access to be allowed, but it was denied: %v", b.lastErr)
	}
	return nil
}

func (b *bridgeSteps) accessShouldBeDenied() error {
	if b.lastErr == nil {
		return fmt.Errorf("expected access to be denied, but it was allowed")
	}
	var denied *bridgeerr.AccessDenied
	if !asAccessDenied(b.lastErr, &denied) {
		return fmt.Errorf("expected an AccessDenied error, got: %v", b.lastErr)
	}
	return nil
}

func (b *bridgeSteps) denialReasonShouldMention(text string) error {
	if b.lastErr == nil {
		return fmt.Errorf("expected a denial, but access was allowed")
	}
	if !containsFold(b.lastErr.Error(), text) {
		return fmt.Errorf("expected denial reason to mention %q, got: %v", text, b.lastErr)
	}
	return nil
}
