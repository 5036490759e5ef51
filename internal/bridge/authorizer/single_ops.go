package authorizer

import (
	"context"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
)

func (a *SingleAuthorizer) CanImpersonateUser(ctx context.Context, qc bridge.QueryContext, target bridge.MinimalIdentity) error {
	r := bridge.UserResourceFromIdentity(target)
	return a.decide(ctx, qc, bridge.OpImpersonateUser, bridge.NewAction("", &r), "cannot impersonate user "+target.User)
}

func (a *SingleAuthorizer) CanExecuteQuery(ctx context.Context, qc bridge.QueryContext) error {
	return a.decide(ctx, qc, bridge.OpExecuteQuery, bridge.NewAction("", nil), "cannot execute query")
}

func (a *SingleAuthorizer) CanViewQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owner bridge.MinimalIdentity) error {
	r := bridge.UserResourceFromIdentity(owner)
	return a.decide(ctx, qc, bridge.OpViewQueryOwnedBy, bridge.NewAction("", &r), "cannot view query owned by "+owner.User)
}

func (a *SingleAuthorizer) FilterViewQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owners []bridge.MinimalIdentity) ([]bridge.MinimalIdentity, error) {
	idx, err := a.fanOutFilter(ctx, qc, bridge.OpFilterViewQueryOwnedBy, len(owners), func(i int) bridge.Resource {
		return bridge.UserResourceFromIdentity(owners[i])
	})
	if err != nil {
		return nil, err
	}
	out := make([]bridge.MinimalIdentity, len(idx))
	for j, i := range idx {
		out[j] = owners[i]
	}
	return out, nil
}

func (a *SingleAuthorizer) CanKillQueryOwnedBy(ctx context.Context, qc bridge.QueryContext, owner bridge.MinimalIdentity) error {
	r := bridge.UserResourceFromIdentity(owner)
	return a.decide(ctx, qc, bridge.OpKillQueryOwnedBy, bridge.NewAction("", &r), "cannot kill query owned by "+owner.User)
}

func (a *SingleAuthorizer) CanReadSystemInformation(ctx context.Context, qc bridge.QueryContext) error {
	return a.decide(ctx, qc, bridge.OpReadSystemInformation, bridge.NewAction("", nil), "cannot read system information")
}

func (a *SingleAuthorizer) CanWriteSystemInformation(ctx context.Context, qc bridge.QueryContext) error {
	return a.decide(ctx, qc, bridge.OpWriteSystemInformation, bridge.NewAction("", nil), "cannot write system information")
}

func (a *SingleAuthorizer) CanSetSystemSessionProperty(ctx context.Context, qc bridge.QueryContext, property string) error {
	r := bridge.SystemSessionPropertyR(property)
	return a.decide(ctx, qc, bridge.OpSetSystemSessionProperty, bridge.NewAction("", &r), "cannot set system session property "+property)
}

func (a *SingleAuthorizer) CanAccessCatalog(ctx context.Context, qc bridge.QueryContext, catalog string) bool {
	r := bridge.CatalogR(catalog)
	return a.decideBool(ctx, qc, bridge.OpAccessCatalog, bridge.NewAction("", &r))
}

func (a *SingleAuthorizer) CanCreateCatalog(ctx context.Context, qc bridge.QueryContext, catalog string) error {
	r := bridge.CatalogR(catalog)
	return a.decide(ctx, qc, bridge.OpCreateCatalog, bridge.NewAction("", &r), "cannot create catalog "+catalog)
}

func (a *SingleAuthorizer) CanDropCatalog(ctx context.Context, qc bridge.QueryContext, catalog string) error {
	r := bridge.CatalogR(catalog)
	return a.decide(ctx, qc, bridge.OpDropCatalog, bridge.NewAction("", &r), "cannot drop catalog "+catalog)
}

func (a *SingleAuthorizer) FilterCatalogs(ctx context.Context, qc bridge.QueryContext, catalogs []string) ([]string, error) {
	idx, err := a.fanOutFilter(ctx, qc, bridge.OpFilterCatalogs, len(catalogs), func(i int) bridge.Resource {
		return bridge.CatalogR(catalogs[i])
	})
	if err != nil {
		return nil, err
	}
	return pickStrings(catalogs, idx), nil
}

func (a *SingleAuthorizer) CanCreateSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema string, properties bridge.Properties) error {
	r := bridge.SchemaR(catalog, schema, properties)
	return a.decide(ctx, qc, bridge.OpCreateSchema, bridge.NewAction("", &r), "cannot create schema "+schema)
}

func (a *SingleAuthorizer) CanDropSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error {
	r := bridge.SchemaR(catalog, schema, nil)
	return a.decide(ctx, qc, bridge.OpDropSchema, bridge.NewAction("", &r), "cannot drop schema "+schema)
}

func (a *SingleAuthorizer) CanRenameSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema, newSchema string) error {
	r := bridge.SchemaR(catalog, schema, nil)
	target := bridge.SchemaR(catalog, newSchema, nil)
	action := bridge.NewAction("", &r)
	action.TargetResource = &target
	return a.decide(ctx, qc, bridge.OpRenameSchema, action, "cannot rename schema "+schema)
}

func (a *SingleAuthorizer) CanSetSchemaAuthorization(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal) error {
	r := bridge.SchemaR(catalog, schema, nil)
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	return a.decide(ctx, qc, bridge.OpSetSchemaAuthorization, action, "cannot set authorization on schema "+schema)
}

func (a *SingleAuthorizer) CanShowSchemas(ctx context.Context, qc bridge.QueryContext, catalog string) error {
	r := bridge.CatalogR(catalog)
	return a.decide(ctx, qc, bridge.OpShowSchemas, bridge.NewAction("", &r), "cannot show schemas")
}

func (a *SingleAuthorizer) FilterSchemas(ctx context.Context, qc bridge.QueryContext, catalog string, schemas []string) ([]string, error) {
	idx, err := a.fanOutFilter(ctx, qc, bridge.OpFilterSchemas, len(schemas), func(i int) bridge.Resource {
		return bridge.SchemaR(catalog, schemas[i], nil)
	})
	if err != nil {
		return nil, err
	}
	return pickStrings(schemas, idx), nil
}

func (a *SingleAuthorizer) CanShowCreateSchema(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error {
	r := bridge.SchemaR(catalog, schema, nil)
	return a.decide(ctx, qc, bridge.OpShowCreateSchema, bridge.NewAction("", &r), "cannot show create schema "+schema)
}

func (a *SingleAuthorizer) CanCreateTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, properties bridge.Properties) error {
	r := bridge.TableR(catalog, schema, table, nil, properties)
	return a.decide(ctx, qc, bridge.OpCreateTable, bridge.NewAction("", &r), "cannot create table "+table)
}

func (a *SingleAuthorizer) CanDropTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpDropTable, bridge.NewAction("", &r), "cannot drop table "+table)
}

func (a *SingleAuthorizer) CanRenameTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table, newSchema, newTable string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	target := bridge.TableR(catalog, newSchema, newTable, nil, nil)
	action := bridge.NewAction("", &r)
	action.TargetResource = &target
	return a.decide(ctx, qc, bridge.OpRenameTable, action, "cannot rename table "+table)
}

func (a *SingleAuthorizer) CanSetTableAuthorization(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	return a.decide(ctx, qc, bridge.OpSetTableAuthorization, action, "cannot set authorization on table "+table)
}

func (a *SingleAuthorizer) CanSetTableComment(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpSetTableComment, bridge.NewAction("", &r), "cannot comment table "+table)
}

func (a *SingleAuthorizer) CanSetViewComment(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	r := bridge.ViewR(catalog, schema, view, nil, nil)
	return a.decide(ctx, qc, bridge.OpSetViewComment, bridge.NewAction("", &r), "cannot comment view "+view)
}

func (a *SingleAuthorizer) CanSetColumnComment(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpSetColumnComment, bridge.NewAction("", &r), "cannot comment column on table "+table)
}

func (a *SingleAuthorizer) CanShowTables(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error {
	r := bridge.SchemaR(catalog, schema, nil)
	return a.decide(ctx, qc, bridge.OpShowTables, bridge.NewAction("", &r), "cannot show tables")
}

func (a *SingleAuthorizer) FilterTables(ctx context.Context, qc bridge.QueryContext, catalog, schema string, tables []string) ([]string, error) {
	idx, err := a.fanOutFilter(ctx, qc, bridge.OpFilterTables, len(tables), func(i int) bridge.Resource {
		return bridge.TableR(catalog, schema, tables[i], nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return pickStrings(tables, idx), nil
}

func (a *SingleAuthorizer) CanShowCreateTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpShowCreateTable, bridge.NewAction("", &r), "cannot show create table "+table)
}

func (a *SingleAuthorizer) CanAddColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpAddColumn, bridge.NewAction("", &r), "cannot add a column to table "+table)
}

func (a *SingleAuthorizer) CanAlterColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpAlterColumn, bridge.NewAction("", &r), "cannot alter a column in table "+table)
}

func (a *SingleAuthorizer) CanDropColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpDropColumn, bridge.NewAction("", &r), "cannot drop a column from table "+table)
}

func (a *SingleAuthorizer) CanRenameColumn(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpRenameColumn, bridge.NewAction("", &r), "cannot rename a column in table "+table)
}

func (a *SingleAuthorizer) CanSetTableProperties(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, properties bridge.Properties) error {
	r := bridge.TableR(catalog, schema, table, nil, properties)
	return a.decide(ctx, qc, bridge.OpSetTableProperties, bridge.NewAction("", &r), "cannot set properties on table "+table)
}

func (a *SingleAuthorizer) CanInsertIntoTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpInsertIntoTable, bridge.NewAction("", &r), "cannot insert into table "+table)
}

func (a *SingleAuthorizer) CanDeleteFromTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpDeleteFromTable, bridge.NewAction("", &r), "cannot delete from table "+table)
}

func (a *SingleAuthorizer) CanTruncateTable(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpTruncateTable, bridge.NewAction("", &r), "cannot truncate table "+table)
}

func (a *SingleAuthorizer) CanUpdateTableColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) error {
	r := bridge.TableR(catalog, schema, table, columns, nil)
	return a.decide(ctx, qc, bridge.OpUpdateTableColumns, bridge.NewAction("", &r), "cannot update columns in table "+table)
}

func (a *SingleAuthorizer) CanSelectFromColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) error {
	r := bridge.TableR(catalog, schema, table, columns, nil)
	return a.decide(ctx, qc, bridge.OpSelectFromColumns, bridge.NewAction("", &r), "cannot select from columns "+joinColumns(columns)+" in table "+table)
}

func (a *SingleAuthorizer) CanCreateViewWithSelectFromColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) error {
	r := bridge.TableR(catalog, schema, table, columns, nil)
	return a.decide(ctx, qc, bridge.OpCreateViewWithSelectFromColumns, bridge.NewAction("", &r), "cannot create view selecting from table "+table)
}

func (a *SingleAuthorizer) FilterColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, columns []string) ([]string, error) {
	idx, err := a.fanOutFilter(ctx, qc, bridge.OpFilterColumns, len(columns), func(i int) bridge.Resource {
		return bridge.TableR(catalog, schema, table, []string{columns[i]}, nil)
	})
	if err != nil {
		return nil, err
	}
	return pickStrings(columns, idx), nil
}

func (a *SingleAuthorizer) ShowColumns(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	return a.decide(ctx, qc, bridge.OpShowColumns, bridge.NewAction("", &r), "cannot show columns of table "+table)
}

func (a *SingleAuthorizer) CanCreateView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	r := bridge.ViewR(catalog, schema, view, nil, nil)
	return a.decide(ctx, qc, bridge.OpCreateView, bridge.NewAction("", &r), "cannot create view "+view)
}

func (a *SingleAuthorizer) CanDropView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	r := bridge.ViewR(catalog, schema, view, nil, nil)
	return a.decide(ctx, qc, bridge.OpDropView, bridge.NewAction("", &r), "cannot drop view "+view)
}

func (a *SingleAuthorizer) CanRenameView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view, newSchema, newView string) error {
	r := bridge.ViewR(catalog, schema, view, nil, nil)
	target := bridge.ViewR(catalog, newSchema, newView, nil, nil)
	action := bridge.NewAction("", &r)
	action.TargetResource = &target
	return a.decide(ctx, qc, bridge.OpRenameView, action, "cannot rename view "+view)
}

func (a *SingleAuthorizer) CanSetViewAuthorization(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string, grantee bridge.Principal) error {
	r := bridge.ViewR(catalog, schema, view, nil, nil)
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	return a.decide(ctx, qc, bridge.OpSetViewAuthorization, action, "cannot set authorization on view "+view)
}

func (a *SingleAuthorizer) CanCreateMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string, properties bridge.Properties) error {
	r := bridge.ViewR(catalog, schema, view, nil, properties)
	return a.decide(ctx, qc, bridge.OpCreateMaterializedView, bridge.NewAction("", &r), "cannot create materialized view "+view)
}

func (a *SingleAuthorizer) CanRefreshMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	r := bridge.ViewR(catalog, schema, view, nil, nil)
	return a.decide(ctx, qc, bridge.OpRefreshMaterializedView, bridge.NewAction("", &r), "cannot refresh materialized view "+view)
}

func (a *SingleAuthorizer) CanDropMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string) error {
	r := bridge.ViewR(catalog, schema, view, nil, nil)
	return a.decide(ctx, qc, bridge.OpDropMaterializedView, bridge.NewAction("", &r), "cannot drop materialized view "+view)
}

func (a *SingleAuthorizer) CanRenameMaterializedView(ctx context.Context, qc bridge.QueryContext, catalog, schema, view, newSchema, newView string) error {
	r := bridge.ViewR(catalog, schema, view, nil, nil)
	target := bridge.ViewR(catalog, newSchema, newView, nil, nil)
	action := bridge.NewAction("", &r)
	action.TargetResource = &target
	return a.decide(ctx, qc, bridge.OpRenameMaterializedView, action, "cannot rename materialized view "+view)
}

func (a *SingleAuthorizer) CanSetMaterializedViewProperties(ctx context.Context, qc bridge.QueryContext, catalog, schema, view string, properties bridge.Properties) error {
	r := bridge.ViewR(catalog, schema, view, nil, properties)
	return a.decide(ctx, qc, bridge.OpSetMaterializedViewProperties, bridge.NewAction("", &r), "cannot set properties on materialized view "+view)
}

func (a *SingleAuthorizer) CanExecuteFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error {
	r := bridge.FunctionR(catalog, schema, function, "")
	return a.decide(ctx, qc, bridge.OpExecuteFunction, bridge.NewAction("", &r), "cannot execute function "+function)
}

func (a *SingleAuthorizer) CanCreateFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error {
	r := bridge.FunctionR(catalog, schema, function, "")
	return a.decide(ctx, qc, bridge.OpCreateFunction, bridge.NewAction("", &r), "cannot create function "+function)
}

func (a *SingleAuthorizer) CanDropFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error {
	r := bridge.FunctionR(catalog, schema, function, "")
	return a.decide(ctx, qc, bridge.OpDropFunction, bridge.NewAction("", &r), "cannot drop function "+function)
}

func (a *SingleAuthorizer) CanCreateViewWithExecuteFunction(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string) error {
	r := bridge.FunctionR(catalog, schema, function, "")
	return a.decide(ctx, qc, bridge.OpCreateViewWithExecuteFunction, bridge.NewAction("", &r), "cannot create view executing function "+function)
}

func (a *SingleAuthorizer) CanExecuteProcedure(ctx context.Context, qc bridge.QueryContext, catalog, schema, procedure string) error {
	r := bridge.FunctionR(catalog, schema, procedure, "")
	return a.decide(ctx, qc, bridge.OpExecuteProcedure, bridge.NewAction("", &r), "cannot execute procedure "+procedure)
}

func (a *SingleAuthorizer) CanExecuteTableProcedure(ctx context.Context, qc bridge.QueryContext, catalog, schema, table, procedure string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	fn := bridge.FunctionR(catalog, schema, procedure, "")
	action := bridge.NewAction("", &r)
	action.TargetResource = &fn
	return a.decide(ctx, qc, bridge.OpExecuteTableProcedure, action, "cannot execute table procedure "+procedure)
}

func (a *SingleAuthorizer) CanGrantExecuteFunctionPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, function string, grantee bridge.Principal, grantOption bool) error {
	r := bridge.FunctionR(catalog, schema, function, "")
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	action.GrantOption = &grantOption
	return a.decide(ctx, qc, bridge.OpGrantExecuteFunctionPrivilege, action, "cannot grant execute privilege on function "+function)
}

func (a *SingleAuthorizer) FilterFunctions(ctx context.Context, qc bridge.QueryContext, catalog, schema string, functions []string) ([]string, error) {
	idx, err := a.fanOutFilter(ctx, qc, bridge.OpFilterFunctions, len(functions), func(i int) bridge.Resource {
		return bridge.FunctionR(catalog, schema, functions[i], "")
	})
	if err != nil {
		return nil, err
	}
	return pickStrings(functions, idx), nil
}

func (a *SingleAuthorizer) CanShowFunctions(ctx context.Context, qc bridge.QueryContext, catalog, schema string) error {
	r := bridge.SchemaR(catalog, schema, nil)
	return a.decide(ctx, qc, bridge.OpShowFunctions, bridge.NewAction("", &r), "cannot show functions")
}

func (a *SingleAuthorizer) CanShowRoles(ctx context.Context, qc bridge.QueryContext) error {
	return a.decide(ctx, qc, bridge.OpShowRoles, bridge.NewAction("", nil), "cannot show roles")
}

func (a *SingleAuthorizer) CanShowCurrentRoles(ctx context.Context, qc bridge.QueryContext) error {
	return a.decide(ctx, qc, bridge.OpShowCurrentRoles, bridge.NewAction("", nil), "cannot show current roles")
}

func (a *SingleAuthorizer) CanShowRoleGrants(ctx context.Context, qc bridge.QueryContext) error {
	return a.decide(ctx, qc, bridge.OpShowRoleGrants, bridge.NewAction("", nil), "cannot show role grants")
}

func (a *SingleAuthorizer) CanShowRoleAuthorizationDescriptors(ctx context.Context, qc bridge.QueryContext) error {
	return a.decide(ctx, qc, bridge.OpShowRoleAuthorizationDescriptors, bridge.NewAction("", nil), "cannot show role authorization descriptors")
}

func (a *SingleAuthorizer) CanCreateRole(ctx context.Context, qc bridge.QueryContext, role string, grantor *bridge.Principal) error {
	r := bridge.RoleR(role)
	action := bridge.NewAction("", &r)
	action.Grantor = grantor
	return a.decide(ctx, qc, bridge.OpCreateRole, action, "cannot create role "+role)
}

func (a *SingleAuthorizer) CanDropRole(ctx context.Context, qc bridge.QueryContext, role string) error {
	r := bridge.RoleR(role)
	return a.decide(ctx, qc, bridge.OpDropRole, bridge.NewAction("", &r), "cannot drop role "+role)
}

func (a *SingleAuthorizer) CanGrantRoles(ctx context.Context, qc bridge.QueryContext, roles []string, grantees []bridge.Principal, adminOption bool, grantor *bridge.Principal) error {
	r := bridge.RolesR(roles)
	action := bridge.NewAction("", &r)
	action.GrantOption = &adminOption
	action.Grantor = grantor
	if len(grantees) > 0 {
		action.Grantee = &grantees[0]
	}
	return a.decide(ctx, qc, bridge.OpGrantRoles, action, "cannot grant roles")
}

func (a *SingleAuthorizer) CanRevokeRoles(ctx context.Context, qc bridge.QueryContext, roles []string, grantees []bridge.Principal, adminOption bool, grantor *bridge.Principal) error {
	r := bridge.RolesR(roles)
	action := bridge.NewAction("", &r)
	action.GrantOption = &adminOption
	action.Grantor = grantor
	if len(grantees) > 0 {
		action.Grantee = &grantees[0]
	}
	return a.decide(ctx, qc, bridge.OpRevokeRoles, action, "cannot revoke roles")
}

func (a *SingleAuthorizer) CanSetRole(ctx context.Context, qc bridge.QueryContext, role string) error {
	r := bridge.RoleR(role)
	return a.decide(ctx, qc, bridge.OpSetRole, bridge.NewAction("", &r), "cannot set role "+role)
}

func (a *SingleAuthorizer) CanSetCatalogSessionProperty(ctx context.Context, qc bridge.QueryContext, catalog, property string) error {
	r := bridge.CatalogSessionPropertyR(catalog, property)
	return a.decide(ctx, qc, bridge.OpSetCatalogSessionProperty, bridge.NewAction("", &r), "cannot set catalog session property "+property)
}

func (a *SingleAuthorizer) CanGrantSchemaPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal, privilege string, grantOption bool) error {
	r := bridge.SchemaR(catalog, schema, nil)
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	action.Privilege = privilege
	action.GrantOption = &grantOption
	return a.decide(ctx, qc, bridge.OpGrantSchemaPrivilege, action, "cannot grant privilege on schema "+schema)
}

func (a *SingleAuthorizer) CanDenySchemaPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal, privilege string) error {
	r := bridge.SchemaR(catalog, schema, nil)
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	action.Privilege = privilege
	return a.decide(ctx, qc, bridge.OpDenySchemaPrivilege, action, "cannot deny privilege on schema "+schema)
}

func (a *SingleAuthorizer) CanRevokeSchemaPrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema string, grantee bridge.Principal, privilege string, grantOption bool) error {
	r := bridge.SchemaR(catalog, schema, nil)
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	action.Privilege = privilege
	action.GrantOption = &grantOption
	return a.decide(ctx, qc, bridge.OpRevokeSchemaPrivilege, action, "cannot revoke privilege on schema "+schema)
}

func (a *SingleAuthorizer) CanGrantTablePrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal, privilege string, grantOption bool) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	action.Privilege = privilege
	action.GrantOption = &grantOption
	return a.decide(ctx, qc, bridge.OpGrantTablePrivilege, action, "cannot grant privilege on table "+table)
}

func (a *SingleAuthorizer) CanDenyTablePrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal, privilege string) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	action.Privilege = privilege
	return a.decide(ctx, qc, bridge.OpDenyTablePrivilege, action, "cannot deny privilege on table "+table)
}

func (a *SingleAuthorizer) CanRevokeTablePrivilege(ctx context.Context, qc bridge.QueryContext, catalog, schema, table string, grantee bridge.Principal, privilege string, grantOption bool) error {
	r := bridge.TableR(catalog, schema, table, nil, nil)
	action := bridge.NewAction("", &r)
	action.Grantee = &grantee
	action.Privilege = privilege
	action.GrantOption = &grantOption
	return a.decide(ctx, qc, bridge.OpRevokeTablePrivilege, action, "cannot revoke privilege on table "+table)
}

func pickStrings(values []string, idx []int) []string {
	out := make([]string, len(idx))
	for j, i := range idx {
		out[j] = values[i]
	}
	return out
}

func joinColumns(columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
