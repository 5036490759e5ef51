package authorizer

import (
	"context"
	"time"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
	"github.com/chirino/opa-trino-bridge/internal/bridge/pdpclient"
	"github.com/chirino/opa-trino-bridge/internal/bridgemetrics"
)

// BatchAuthorizer embeds a SingleAuthorizer for every non-filter callback
// and overrides the filter callbacks to issue a single batched PDP call
// instead of a fan-out.
type BatchAuthorizer struct {
	*SingleAuthorizer
	client   *pdpclient.Client
	batchURI string
}

// NewBatchAuthorizer builds a BatchAuthorizer. single handles every
// callback this type does not override.
func NewBatchAuthorizer(single *SingleAuthorizer, client *pdpclient.Client, batchURI string) *BatchAuthorizer {
	return &BatchAuthorizer{SingleAuthorizer: single, client: client, batchURI: batchURI}
}

// batchFilter sends one batch PDP call for operation against resources
// and returns the indices it allowed, in ascending order. An empty
// resources list returns immediately with no HTTP traffic.
func (a *BatchAuthorizer) batchFilter(ctx context.Context, qc bridge.QueryContext, operation string, resources []bridge.Resource) ([]int, error) {
	bridgemetrics.ObserveFilterCandidates(operation, len(resources))
	if len(resources) == 0 {
		return nil, nil
	}
	doc := bridge.NewBatchInputDocument(operation, qc, resources)
	start := time.Now()
	decision, err := a.client.DecideBatch(ctx, a.batchURI, doc)
	if err != nil {
		bridgemetrics.ObserveError(operation, errorKind(err))
		return nil, err
	}
	idx, err := decision.Indices(len(resources))
	if err != nil {
		bridgemetrics.ObserveError(operation, errorKind(err))
		return nil, err
	}
	bridgemetrics.ObserveDecision(operation, len(idx) == len(resources), time.Since(start))
	return idx, nil
}

func (a *BatchAuthorizer) FilterViewQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owners []bridge.MinimalIdentity) ([]bridge.MinimalIdentity, error) {
	resources := make([]bridge.Resource, len(owners))
	for i, o := range owners {
		resources[i] = bridge.UserResourceFromIdentity(o)
	}
	idx, err := a.batchFilter(ctx, qc, bridge.OpFilterViewQueryOwnedBy, resources)
	if err != nil {
		return nil, err
	}
	out := make([]bridge.MinimalIdentity, len(idx))
	for j, i := range idx {
		out[j] = owners[i]
	}
	return out, nil
}

func (a *BatchAuthorizer) FilterCatalogs(ctx context.Context, qc bridge.QueryContext, catalogs []string) ([]string, error) {
	resources := make([]bridge.Resource, len(catalogs))
	for i, c := range catalogs {
		resources[i] = bridge.CatalogR(c)
	}
	idx, err := a.batchFilter(ctx, qc, bridge.OpFilterCatalogs, resources)
	if err != nil {
		return nil, err
	}
	return pickStrings(catalogs, idx), nil
}

func (a *BatchAuthorizer) FilterSchemas(ctx context.Context, qc bridge.QueryContext, catalog string, schemas []string) ([]string, error) {
	resources := make([]bridge.Resource, len(schemas))
	for i, s := range schemas {
		resources[i] = bridge.SchemaR(catalog, s, nil)
	}
	idx, err := a.batchFilter(ctx, qc, bridge.OpFilterSchemas, resources)
	if err != nil {
		return nil, err
	}
	return pickStrings(schemas, idx), nil
}

func (a *BatchAuthorizer) FilterTables(ctx context.Context, qc bridge.QueryContext, catalog, schema string, tables []string) ([]string, error) {
	resources := make([]bridge.Resource, len(tables))
	for i, t := range tables {
		resources[i] = bridge.TableR(catalog, schema, t, nil, nil)
	}
	idx, err := a.batchFilter(ctx, qc, bridge.OpFilterTables, resources)
	if err != nil {
		return nil, err
	}
	return pickStrings(tables, idx), nil
}

func (a *BatchAuthorizer) FilterFunctions(ctx context.Context, qc bridge.QueryContext, catalog, schema string, functions []string) ([]string, error) {
	resources := make([]bridge.Resource, len(functions))
	for i, f := range functions {
		resources[i] = bridge.FunctionR(catalog, schema, f, "")
	}
	idx, err := a.batchFilter(ctx, qc, bridge.OpFilterFunctions, resources)
	if err != nil {
		return nil, err
	}
	return pickStrings(functions, idx), nil
}

// FilterColumns is the one special case in batch mode: the host passes a
// single table carrying the full candidate column list, not one
// resource per column. The bridge still sends a one-element
// filterResources list, and the returned indices address the columns
// list inside that single element.
func (a *BatchAuthorizer) FilterColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) ([]string, error) {
	bridgemetrics.ObserveFilterCandidates(bridge.OpFilterColumns, len(columns))
	if len(columns) == 0 {
		return nil, nil
	}
	resource := bridge.TableR(catalog, schema, table, columns, nil)
	doc := bridge.NewBatchInputDocument(bridge.OpFilterColumns, qc, []bridge.Resource{resource})
	decision, err := a.client.DecideBatch(ctx, a.batchURI, doc)
	if err != nil {
		bridgemetrics.ObserveError(bridge.OpFilterColumns, errorKind(err))
		return nil, err
	}
	idx, err := decision.Indices(len(columns))
	if err != nil {
		return nil, err
	}
	return pickStrings(columns, idx), nil
}
