package bridge

// Operation names every access-control callback the host engine can
// invoke. These are the literal values carried in Action.Operation; each
// authorizer method passes its own constant to the shared decision or
// filter helper, with no lookup table in between. The catalog matches the
// host's SPI one-to-one;
// a handful (ExecuteProcedure, ExecuteTableProcedure, SetRole) are not
// named in the distilled operation table but exist on every real host
// implementation and are carried here as supplemented operations.
const (
	// No resource.
	OpExecuteQuery                     = "ExecuteQuery"
	OpReadSystemInformation            = "ReadSystemInformation"
	OpWriteSystemInformation           = "WriteSystemInformation"
	OpShowRoles                        = "ShowRoles"
	OpShowCurrentRoles                 = "ShowCurrentRoles"
	OpShowRoleGrants                   = "ShowRoleGrants"
	OpShowRoleAuthorizationDescriptors = "ShowRoleAuthorizationDescriptors"

	// user resource.
	OpImpersonateUser        = "ImpersonateUser"
	OpViewQueryOwnedBy       = "ViewQueryOwnedBy"
	OpKillQueryOwnedBy       = "KillQueryOwnedBy"
	OpFilterViewQueryOwnedBy = "FilterViewQueryOwnedBy"

	// catalog resource.
	OpAccessCatalog  = "AccessCatalog"
	OpCreateCatalog  = "CreateCatalog"
	OpDropCatalog    = "DropCatalog"
	OpFilterCatalogs = "FilterCatalogs"
	OpShowSchemas    = "ShowSchemas"

	// schema resource.
	OpCreateSchema           = "CreateSchema"
	OpDropSchema             = "DropSchema"
	OpShowCreateSchema       = "ShowCreateSchema"
	OpShowTables             = "ShowTables"
	OpShowFunctions          = "ShowFunctions"
	OpFilterSchemas          = "FilterSchemas"
	OpRenameSchema           = "RenameSchema"
	OpSetSchemaAuthorization = "SetSchemaAuthorization"

	// table resource.
	OpShowCreateTable                 = "ShowCreateTable"
	OpCreateTable                     = "CreateTable"
	OpDropTable                       = "DropTable"
	OpSetTableComment                 = "SetTableComment"
	OpSetViewComment                  = "SetViewComment"
	OpSetColumnComment                = "SetColumnComment"
	OpShowColumns                     = "ShowColumns"
	OpAddColumn                       = "AddColumn"
	OpDropColumn                      = "DropColumn"
	OpAlterColumn                     = "AlterColumn"
	OpRenameColumn                    = "RenameColumn"
	OpSetTableProperties              = "SetTableProperties"
	OpInsertIntoTable                 = "InsertIntoTable"
	OpDeleteFromTable                 = "DeleteFromTable"
	OpTruncateTable                   = "TruncateTable"
	OpUpdateTableColumns              = "UpdateTableColumns"
	OpSelectFromColumns               = "SelectFromColumns"
	OpCreateViewWithSelectFromColumns = "CreateViewWithSelectFromColumns"
	OpFilterTables                    = "FilterTables"
	OpFilterColumns                   = "FilterColumns"
	OpRenameTable                     = "RenameTable"
	OpSetTableAuthorization           = "SetTableAuthorization"

	// view resource.
	OpCreateView                    = "CreateView"
	OpDropView                      = "DropView"
	OpCreateMaterializedView        = "CreateMaterializedView"
	OpDropMaterializedView          = "DropMaterializedView"
	OpRefreshMaterializedView       = "RefreshMaterializedView"
	OpSetMaterializedViewProperties = "SetMaterializedViewProperties"
	OpRenameView                    = "RenameView"
	OpRenameMaterializedView        = "RenameMaterializedView"
	OpSetViewAuthorization          = "SetViewAuthorization"

	// function resource.
	OpExecuteFunction               = "ExecuteFunction"
	OpCreateFunction                = "CreateFunction"
	OpDropFunction                  = "DropFunction"
	OpCreateViewWithExecuteFunction = "CreateViewWithExecuteFunction"
	OpExecuteProcedure              = "ExecuteProcedure"
	OpExecuteTableProcedure         = "ExecuteTableProcedure"
	OpGrantExecuteFunctionPrivilege = "GrantExecuteFunctionPrivilege"
	OpFilterFunctions               = "FilterFunctions"

	// role resource.
	OpCreateRole  = "CreateRole"
	OpDropRole    = "DropRole"
	OpGrantRoles  = "GrantRoles"
	OpRevokeRoles = "RevokeRoles"
	OpSetRole     = "SetRole"

	// session property resources.
	OpSetSystemSessionProperty  = "SetSystemSessionProperty"
	OpSetCatalogSessionProperty = "SetCatalogSessionProperty"

	// privilege operations (schema/table resource + grantee).
	OpGrantSchemaPrivilege  = "GrantSchemaPrivilege"
	OpDenySchemaPrivilege   = "DenySchemaPrivilege"
	OpRevokeSchemaPrivilege = "RevokeSchemaPrivilege"
	OpGrantTablePrivilege   = "GrantTablePrivilege"
	OpDenyTablePrivilege    = "DenyTablePrivilege"
	OpRevokeTablePrivilege  = "RevokeTablePrivilege"
)

// filterOperations are the batch-shaped callbacks: the host passes an
// ordered list of candidate resources and expects back the index list of
// resources that survive. The batch authorizer issues one PDP call for
// these; every other operation is a single yes/no decision.
var filterOperations = map[string]bool{
	OpFilterViewQueryOwnedBy: true,
	OpFilterCatalogs:         true,
	OpFilterSchemas:          true,
	OpFilterTables:           true,
	OpFilterColumns:          true,
	OpFilterFunctions:        true,
}

// IsFilterOperation reports whether operation is handled as a batch filter
// rather than a single allow/deny decision.
func IsFilterOperation(operation string) bool {
	return filterOperations[operation]
}

// Action names the operation being authorized, together with the
// resource(s) and ancillary references it carries. Only the fields a
// given operation uses are populated; every other field stays nil and is
// omitted from the wire document.
type Action struct {
	Operation      string     `json:"operation"`
	Resource       *Resource  `json:"resource,omitempty"`
	TargetResource *Resource  `json:"targetResource,omitempty"`
	Grantee        *Principal `json:"grantee,omitempty"`
	Grantor        *Principal `json:"grantor,omitempty"`
	GrantOption    *bool      `json:"grantOption,omitempty"`
	Privilege      string     `json:"privilege,omitempty"`
}

// NewAction builds an Action for operations that carry a single resource
// and nothing else. Pass a nil resource for operations that carry none.
func NewAction(operation string, resource *Resource) Action {
	return Action{Operation: operation, Resource: resource}
}

// Input is the body of an InputDocument: the action under evaluation plus
// the request-scoped context it was issued in.
type Input struct {
	Action  Action       `json:"action"`
	Context QueryContext `json:"context"`
}

// InputDocument is the full JSON payload the bridge POSTs to the decision
// point for a single (non-batch) authorization callback.
type InputDocument struct {
	Input Input `json:"input"`
}

// NewInputDocument builds an InputDocument from an action and context.
func NewInputDocument(action Action, queryContext QueryContext) InputDocument {
	return InputDocument{Input: Input{Action: action, Context: queryContext}}
}

// BatchInput is the body of a BatchInputDocument: like Input, but the
// resource is replaced by an ordered candidate list to be filtered.
type BatchInput struct {
	Action  BatchAction  `json:"action"`
	Context QueryContext `json:"context"`
}

// BatchAction is Action without a singular resource — filter operations
// authorize a whole candidate list in one call instead of one resource at
// a time. FilterResources is the ordered candidate list; its ordering
// defines the meaning of the indices the decision point returns.
type BatchAction struct {
	Operation       string     `json:"operation"`
	FilterResources []Resource `json:"filterResources"`
}

// BatchInputDocument is the full JSON payload the bridge POSTs to the
// decision point for a filter-shaped callback.
type BatchInputDocument struct {
	Input BatchInput `json:"input"`
}

// NewBatchInputDocument builds a BatchInputDocument from an operation
// name, context, and the ordered candidate resources to filter.
func NewBatchInputDocument(operation string, queryContext QueryContext, candidates []Resource) BatchInputDocument {
	return BatchInputDocument{Input: BatchInput{
		Action:  BatchAction{Operation: operation, FilterResources: candidates},
		Context: queryContext,
	}}
}
