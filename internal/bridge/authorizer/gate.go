package authorizer

import (
	"context"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
	"github.com/chirino/opa-trino-bridge/internal/bridge/bridgeerr"
	"github.com/chirino/opa-trino-bridge/internal/hostspi"
)

// Gate wraps a hostspi.SystemAccessControl and intercepts the fixed set
// of permission-management operations: when allowManagement is false
// every one of them unconditionally denies; when true every one
// unconditionally allows. Neither outcome issues any PDP request. Three
// role-inspection callbacks always allow regardless of the flag.
type Gate struct {
	delegate        hostspi.SystemAccessControl
	allowManagement bool
}

// NewGate builds a Gate wrapping delegate.
func NewGate(delegate hostspi.SystemAccessControl, allowManagement bool) *Gate {
	return &Gate{delegate: delegate, allowManagement: allowManagement}
}

func (g *Gate) gated(operation string) error {
	if g.allowManagement {
		return nil
	}
	return &bridgeerr.AccessDenied{Operation: operation, Reason: "permission management operations are disabled"}
}

func (g *Gate) CanGrantSchemaPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal, privilege string, grantOption bool) error {
	return g.gated(bridge.OpGrantSchemaPrivilege)
}

func (g *Gate) CanDenySchemaPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal, privilege string) error {
	return g.gated(bridge.OpDenySchemaPrivilege)
}

func (g *Gate) CanRevokeSchemaPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal, privilege string, grantOption bool) error {
	return g.gated(bridge.OpRevokeSchemaPrivilege)
}

func (g *Gate) CanGrantTablePrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal, privilege string, grantOption bool) error {
	return g.gated(bridge.OpGrantTablePrivilege)
}

func (g *Gate) CanDenyTablePrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal, privilege string) error {
	return g.gated(bridge.OpDenyTablePrivilege)
}

func (g *Gate) CanRevokeTablePrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal, privilege string, grantOption bool) error {
	return g.gated(bridge.OpRevokeTablePrivilege)
}

func (g *Gate) CanCreateRole(ctx context.Context, qc bridge.QueryContext, role string, grantor *bridge.Principal) error {
	return g.gated(bridge.OpCreateRole)
}

func (g *Gate) CanDropRole(ctx context.Context, qc bridge.QueryContext, role string) error {
	return g.gated(bridge.OpDropRole)
}

func (g *Gate) CanGrantRoles(ctx context.Context, qc bridge.QueryContext, roles []string, grantees []bridge.Principal, adminOption bool, grantor *bridge.Principal) error {
	return g.gated(bridge.OpGrantRoles)
}

func (g *Gate) CanRevokeRoles(ctx context.Context, qc bridge.QueryContext, roles []string, grantees []bridge.Principal, adminOption bool, grantor *bridge.Principal) error {
	return g.gated(bridge.OpRevokeRoles)
}

// ShowRoles, ShowCurrentRoles, and ShowRoleGrants are always allowed,
// independent of both the gate flag and the PDP.
func (g *Gate) CanShowRoles(ctx context.Context, qc bridge.QueryContext) error {
	return nil
}

func (g *Gate) CanShowCurrentRoles(ctx context.Context, qc bridge.QueryContext) error {
	return nil
}

func (g *Gate) CanShowRoleGrants(ctx context.Context, qc bridge.QueryContext) error {
	return nil
}

// Every other method delegates unchanged.

func (g *Gate) CanImpersonateUser(ctx context.Context, qc bridge.QueryContext, target bridge.MinimalIdentity) error {
	return g.delegate.CanImpersonateUser(ctx, qc, target)
}
func (g *Gate) CanExecuteQuery(ctx context.Context, qc bridge.QueryContext) error {
	return g.delegate.CanExecuteQuery(ctx, qc)
}
func (g *Gate) CanViewQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owner bridge.MinimalIdentity) error {
	return g.delegate.CanViewQueryOwnedBy(ctx, qc, owner)
}
func (g *Gate) FilterViewQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owners []bridge.MinimalIdentity) ([]bridge.MinimalIdentity, error) {
	return g.delegate.FilterViewQueryOwnedBy(ctx, qc, owners)
}
func (g *Gate) CanKillQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owner bridge.MinimalIdentity) error {
	return g.delegate.CanKillQueryOwnedBy(ctx, qc, owner)
}
func (g *Gate) CanReadSystemInformation(ctx context.Context, qc bridge.QueryContext) error {
	return g.delegate.CanReadSystemInformation(ctx, qc)
}
func (g *Gate) CanWriteSystemInformation(ctx context.Context, qc bridge.QueryContext) error {
	return g.delegate.CanWriteSystemInformation(ctx, qc)
}
func (g *Gate) CanSetSystemSessionProperty(ctx context.Context, qc bridge.QueryContext, property string) error {
	return g.delegate.CanSetSystemSessionProperty(ctx, qc, property)
}
func (g *Gate) CanAccessCatalog(ctx context.Context, qc bridge.QueryContext, catalog string) bool {
	return g.delegate.CanAccessCatalog(ctx, qc, catalog)
}
func (g *Gate) CanCreateCatalog(ctx context.Context, qc bridge.QueryContext, catalog string) error {
	return g.delegate.CanCreateCatalog(ctx, qc, catalog)
}
func (g *Gate) CanDropCatalog(ctx context.Context, qc bridge.QueryContext, catalog string) error {
	return g.delegate.CanDropCatalog(ctx, qc, catalog)
}
func (g *Gate) FilterCatalogs(ctx context.Context, qc bridge.QueryContext, catalogs []string) ([]string, error) {
	return g.delegate.FilterCatalogs(ctx, qc, catalogs)
}
func (g *Gate) CanCreateSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema string, properties bridge.Properties) error {
	return g.delegate.CanCreateSchema(ctx, qc, catalog, schema, properties)
}
func (g *Gate) CanDropSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error {
	return g.delegate.CanDropSchema(ctx, qc, catalog, schema)
}
func (g *Gate) CanRenameSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema, newSchema string) error {
	return g.delegate.CanRenameSchema(ctx, qc, catalog, schema, newSchema)
}
func (g *Gate) CanSetSchemaAuthorization(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal) error {
	return g.delegate.CanSetSchemaAuthorization(ctx, qc, catalog, schema, grantee)
}
func (g *Gate) CanShowSchemas(ctx context.Context, qc bridge.QueryContext, catalog string) error {
	return g.delegate.CanShowSchemas(ctx, qc, catalog)
}
func (g *Gate) FilterSchemas(ctx context.Context, qc bridge.QueryContext, catalog string, schemas []string) ([]string, error) {
	return g.delegate.FilterSchemas(ctx, qc, catalog, schemas)
}
func (g *Gate) CanShowCreateSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error {
	return g.delegate.CanShowCreateSchema(ctx, qc, catalog, schema)
}
func (g *Gate) CanCreateTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, properties bridge.Properties) error {
	return g.delegate.CanCreateTable(ctx, qc, catalog, schema, table, properties)
}
func (g *Gate) CanDropTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanDropTable(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanRenameTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table, newSchema, newTable string) error {
	return g.delegate.CanRenameTable(ctx, qc, catalog, schema, table, newSchema, newTable)
}
func (g *Gate) CanSetTableAuthorization(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal) error {
	return g.delegate.CanSetTableAuthorization(ctx, qc, catalog, schema, table, grantee)
}
func (g *Gate) CanSetTableComment(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanSetTableComment(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanSetViewComment(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	return g.delegate.CanSetViewComment(ctx, qc, catalog, schema, view)
}
func (g *Gate) CanSetColumnComment(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanSetColumnComment(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanShowTables(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error {
	return g.delegate.CanShowTables(ctx, qc, catalog, schema)
}
func (g *Gate) FilterTables(ctx context.Context, qc bridge.QueryContext, catalog, schema string, tables []string) ([]string, error) {
	return g.delegate.FilterTables(ctx, qc, catalog, schema, tables)
}
func (g *Gate) CanShowCreateTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanShowCreateTable(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanAddColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanAddColumn(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanAlterColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanAlterColumn(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanDropColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanDropColumn(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanRenameColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanRenameColumn(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanSetTableProperties(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, properties bridge.Properties) error {
	return g.delegate.CanSetTableProperties(ctx, qc, catalog, schema, table, properties)
}
func (g *Gate) CanInsertIntoTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanInsertIntoTable(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanDeleteFromTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanDeleteFromTable(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanTruncateTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.CanTruncateTable(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanUpdateTableColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) error {
	return g.delegate.CanUpdateTableColumns(ctx, qc, catalog, schema, table, columns)
}
func (g *Gate) CanSelectFromColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) error {
	return g.delegate.CanSelectFromColumns(ctx, qc, catalog, schema, table, columns)
}
func (g *Gate) CanCreateViewWithSelectFromColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) error {
	return g.delegate.CanCreateViewWithSelectFromColumns(ctx, qc, catalog, schema, table, columns)
}
func (g *Gate) FilterColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) ([]string, error) {
	return g.delegate.FilterColumns(ctx, qc, catalog, schema, table, columns)
}
func (g *Gate) ShowColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	return g.delegate.ShowColumns(ctx, qc, catalog, schema, table)
}
func (g *Gate) CanCreateView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	return g.delegate.CanCreateView(ctx, qc, catalog, schema, view)
}
func (g *Gate) CanDropView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	return g.delegate.CanDropView(ctx, qc, catalog, schema, view)
}
func (g *Gate) CanRenameView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view, newSchema, newView string) error {
	return g.delegate.CanRenameView(ctx, qc, catalog, schema, view, newSchema, newView)
}
func (g *Gate) CanSetViewAuthorization(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string, grantee bridge.Principal) error {
	return g.delegate.CanSetViewAuthorization(ctx, qc, catalog, schema, view, grantee)
}
func (g *Gate) CanCreateMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string, properties bridge.Properties) error {
	return g.delegate.CanCreateMaterializedView(ctx, qc, catalog, schema, view, properties)
}
func (g *Gate) CanRefreshMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	return g.delegate.CanRefreshMaterializedView(ctx, qc, catalog, schema, view)
}
func (g *Gate) CanDropMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	return g.delegate.CanDropMaterializedView(ctx, qc, catalog, schema, view)
}
func (g *Gate) CanRenameMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view, newSchema, newView string) error {
	return g.delegate.CanRenameMaterializedView(ctx, qc, catalog, schema, view, newSchema, newView)
}
func (g *Gate) CanSetMaterializedViewProperties(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string, properties bridge.Properties) error {
	return g.delegate.CanSetMaterializedViewProperties(ctx, qc, catalog, schema, view, properties)
}
func (g *Gate) CanExecuteFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error {
	return g.delegate.CanExecuteFunction(ctx, qc, catalog, schema, function)
}
func (g *Gate) CanCreateFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error {
	return g.delegate.CanCreateFunction(ctx, qc, catalog, schema, function)
}
func (g *Gate) CanDropFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error {
	return g.delegate.CanDropFunction(ctx, qc, catalog, schema, function)
}
func (g *Gate) CanCreateViewWithExecuteFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error {
	return g.delegate.CanCreateViewWithExecuteFunction(ctx, qc, catalog, schema, function)
}
func (g *Gate) CanExecuteProcedure(ctx context.Context, qc bridge.QueryContext, catalog, schema, procedure string) error {
	return g.delegate.CanExecuteProcedure(ctx, qc, catalog, schema, procedure)
}
func (g *Gate) CanExecuteTableProcedure(ctx context.Context, qc bridge.QueryContext, catalog, schema, table, procedure string) error {
	return g.delegate.CanExecuteTableProcedure(ctx, qc, catalog, schema, table, procedure)
}
func (g *Gate) CanGrantExecuteFunctionPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string, grantee bridge.Principal, grantOption bool) error {
	return g.delegate.CanGrantExecuteFunctionPrivilege(ctx, qc, catalog, schema, function, grantee, grantOption)
}
func (g *Gate) FilterFunctions(ctx context.Context, qc bridge.QueryContext, catalog, schema string, functions []string) ([]string, error) {
	return g.delegate.FilterFunctions(ctx, qc, catalog, schema, functions)
}
func (g *Gate) CanShowFunctions(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error {
	return g.delegate.CanShowFunctions(ctx, qc, catalog, schema)
}
func (g *Gate) CanShowRoleAuthorizationDescriptors(ctx context.Context, qc bridge.QueryContext) error {
	return g.delegate.CanShowRoleAuthorizationDescriptors(ctx, qc)
}
func (g *Gate) CanSetRole(ctx context.Context, qc bridge.QueryContext, role string) error {
	return g.delegate.CanSetRole(ctx, qc, role)
}
func (g *Gate) CanSetCatalogSessionProperty(ctx context.Context, qc bridge.QueryContext, catalog, property string) error {
	return g.delegate.CanSetCatalogSessionProperty(ctx, qc, catalog, property)
}

func (g *Gate) Close() error {
	return g.delegate.Close()
}
