package bridgebdd

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// registerFilterSteps wires the filter-shaped callbacks (fan-out under
// the single authorizer, one batch call under the batch authorizer) and
// the Then steps asserting which candidates survived.
func registerFilterSteps(ctx *godog.ScenarioContext, b *bridgeSteps) {
	ctx.Step(`^the user attempts to filter catalogs "([^"]*)"$`, b.attemptsFilterCatalogs)
	ctx.Step(`^the user attempts to filter schemas "([^"]*)" in catalog "([^"]*)"$`, b.attemptsFilterSchemas)
	ctx.Step(`^the user attempts to filter tables "([^"]*)" in catalog "([^"]*)" schema "([^"]*)"$`, b.attemptsFilterTables)
	ctx.Step(`^the user attempts to filter columns "([^"]*)" from catalog "([^"]*)" schema "([^"]*)" table "([^"]*)"$`, b.attemptsFilterColumns)

	ctx.Step(`^the surviving catalogs should be "([^"]*)"$`, b.survivingCatalogsShouldBe)
	ctx.Step(`^the surviving schemas should be "([^"]*)"$`, b.survivingSchemasShouldBe)
	ctx.Step(`^the surviving tables should be "([^"]*)"$`, b.survivingTablesShouldBe)
	ctx.Step(`^the surviving columns should be "([^"]*)"$`, b.survivingColumnsShouldBe)
}

func (b *bridgeSteps) attemptsFilterCatalogs(candidatesCSV string) error {
	result, err := b.control.FilterCatalogs(context.Background(), b.qc(), splitCSV(candidatesCSV))
	if err != nil {
		return err
	}
	b.survivingCatalogs = result
	return nil
}

func (b *bridgeSteps) attemptsFilterSchemas(candidatesCSV, catalog string) error {
	result, err := b.control.FilterSchemas(context.Background(), b.qc(), catalog, splitCSV(candidatesCSV))
	if err != nil {
		return err
	}
	b.survivingSchemas = result
	return nil
}

func (b *bridgeSteps) attemptsFilterTables(candidatesCSV, catalog, schema string) error {
	result, err := b.control.FilterTables(context.Background(), b.qc(), catalog, schema, splitCSV(candidatesCSV))
	if err != nil {
		return err
	}
	b.survivingTables = result
	return nil
}

func (b *bridgeSteps) attemptsFilterColumns(candidatesCSV, catalog, schema, table string) error {
	result, err := b.control.FilterColumns(context.Background(), b.qc(), catalog, schema, table, splitCSV(candidatesCSV))
	if err != nil {
		return err
	}
	b.survivingColumns = result
	return nil
}

func (b *bridgeSteps) survivingCatalogsShouldBe(expectedCSV string) error {
	return matchSurvivors(b.survivingCatalogs, expectedCSV)
}

func (b *bridgeSteps) survivingSchemasShouldBe(expectedCSV string) error {
	return matchSurvivors(b.survivingSchemas, expectedCSV)
}

func (b *bridgeSteps) survivingTablesShouldBe(expectedCSV string) error {
	return matchSurvivors(b.survivingTables, expectedCSV)
}

func (b *bridgeSteps) survivingColumnsShouldBe(expectedCSV string) error {
	return matchSurvivors(b.survivingColumns, expectedCSV)
}

func matchSurvivors(actual []string, expectedCSV string) error {
	expected := splitCSV(expectedCSV)
	if len(expected) != len(actual) {
		return fmt.Errorf("expected survivors %v, got %v", expected, actual)
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return fmt.Errorf("expected survivors %v, got %v", expected, actual)
		}
	}
	return nil
}
