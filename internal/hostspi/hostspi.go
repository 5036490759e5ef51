// Package hostspi is the capability surface the factory returns to the
// host engine: one method per access-control callback, grouped the way
// the operation catalog groups them by resource shape. A host loads the
// bridge as an in-process library and calls these methods directly; no
// network or file I/O crosses this boundary.
package hostspi

import (
	"context"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
)

// SystemAccessControl is the full capability set the factory wires up
// and hands back to the host. Every method either returns an error (deny
// with the specific reason, or nil for allow) or, for filter-style
// calls, the allowed subsequence of its input.
type SystemAccessControl interface {
	CanImpersonateUser(ctx context.Context, qc bridge.QueryContext, target bridge.MinimalIdentity) error
	CanExecuteQuery(ctx context.Context, qc bridge.QueryContext) error
	CanViewQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owner bridge.MinimalIdentity) error
	FilterViewQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owners []bridge.MinimalIdentity) ([]bridge.MinimalIdentity, error)
	CanKillQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owner bridge.MinimalIdentity) error

	CanReadSystemInformation(ctx context.Context, qc bridge.QueryContext) error
	CanWriteSystemInformation(ctx context.Context, qc bridge.QueryContext) error
	CanSetSystemSessionProperty(ctx context.Context, qc bridge.QueryContext, property string) error

	CanAccessCatalog(ctx context.Context, qc bridge.QueryContext, catalog string) bool
	CanCreateCatalog(ctx context.Context, qc bridge.QueryContext, catalog string) error
	CanDropCatalog(ctx context.Context, qc bridge.QueryContext, catalog string) error
	FilterCatalogs(ctx context.Context, qc bridge.QueryContext, catalogs []string) ([]string, error)

	CanCreateSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema string, properties bridge.Properties) error
	CanDropSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error
	CanRenameSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema, newSchema string) error
	CanSetSchemaAuthorization(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal) error
	CanShowSchemas(ctx context.Context, qc bridge.QueryContext, catalog string) error
	FilterSchemas(ctx context.Context, qc bridge.QueryContext, catalog string, schemas []string) ([]string, error)
	CanShowCreateSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error

	CanCreateTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, properties bridge.Properties) error
	CanDropTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanRenameTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table, newSchema, newTable string) error
	CanSetTableAuthorization(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal) error
	CanSetTableComment(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanSetViewComment(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error
	CanSetColumnComment(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanShowTables(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error
	FilterTables(ctx context.Context, qc bridge.QueryContext, catalog, schema string, tables []string) ([]string, error)
	CanShowCreateTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanAddColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanAlterColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanDropColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanRenameColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanSetTableProperties(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, properties bridge.Properties) error
	CanInsertIntoTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanDeleteFromTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanTruncateTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error
	CanUpdateTableColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) error
	CanSelectFromColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) error
	CanCreateViewWithSelectFromColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) error
	FilterColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) ([]string, error)
	ShowColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error

	CanCreateView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error
	CanDropView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error
	CanRenameView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view, newSchema, newView string) error
	CanSetViewAuthorization(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string, grantee bridge.Principal) error
	CanCreateMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string, properties bridge.Properties) error
	CanRefreshMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error
	CanDropMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error
	CanRenameMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view, newSchema, newView string) error
	CanSetMaterializedViewProperties(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string, properties bridge.Properties) error

	CanExecuteFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error
	CanCreateFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error
	CanDropFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error
	CanCreateViewWithExecuteFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error
	CanExecuteProcedure(ctx context.Context, qc bridge.QueryContext, catalog, schema, procedure string) error
	CanExecuteTableProcedure(ctx context.Context, qc bridge.QueryContext, catalog, schema, table, procedure string) error
	CanGrantExecuteFunctionPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string, grantee bridge.Principal, grantOption bool) error
	FilterFunctions(ctx context.Context, qc bridge.QueryContext, catalog, schema string, functions []string) ([]string, error)
	CanShowFunctions(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error

	CanShowRoles(ctx context.Context, qc bridge.QueryContext) error
	CanShowCurrentRoles(ctx context.Context, qc bridge.QueryContext) error
	CanShowRoleGrants(ctx context.Context, qc bridge.QueryContext) error
	CanShowRoleAuthorizationDescriptors(ctx context.Context, qc bridge.QueryContext) error
	CanCreateRole(ctx context.Context, qc bridge.QueryContext, role string, grantor *bridge.Principal) error
	CanDropRole(ctx context.Context, qc bridge.QueryContext, role string) error
	CanGrantRoles(ctx context.Context, qc bridge.QueryContext, roles []string, grantees []bridge.Principal, adminOption bool, grantor *bridge.Principal) error
	CanRevokeRoles(ctx context.Context, qc bridge.QueryContext, roles []string, grantees []bridge.Principal, adminOption bool, grantor *bridge.Principal) error
	CanSetRole(ctx context.Context, qc bridge.QueryContext, role string) error

	CanSetCatalogSessionProperty(ctx context.Context, qc bridge.QueryContext, catalog, property string) error

	CanGrantSchemaPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal, privilege string, grantOption bool) error
	CanDenySchemaPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal, privilege string) error
	CanRevokeSchemaPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal, privilege string, grantOption bool) error
	CanGrantTablePrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal, privilege string, grantOption bool) error
	CanDenyTablePrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal, privilege string) error
	CanRevokeTablePrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal, privilege string, grantOption bool) error

	// Close releases what the implementation itself holds. Idempotent. The
	// authorizers in this module hold nothing of their own and always
	// return nil: the shared HTTP client is not closed and stays owned by
	// whoever built it.
	Close() error
}
