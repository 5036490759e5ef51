package bridge

import "encoding/json"

// FunctionKind distinguishes scalar/aggregate/window/table functions where
// the host engine's callback cares about the distinction (GrantExecuteFunctionPrivilege
// and friends).
type FunctionKind string

const (
	FunctionKindScalar    FunctionKind = "SCALAR"
	FunctionKindAggregate FunctionKind = "AGGREGATE"
	FunctionKindWindow    FunctionKind = "WINDOW"
	FunctionKindTable     FunctionKind = "TABLE"
)

// PropertyValue is a table/schema/materialized-view property value. An
// absent property is simply not present as a map key, while an explicit
// engine-side null is represented by PropertyValue{Value: nil}, which
// marshals to JSON null rather than being dropped.
type PropertyValue struct {
	Value any
}

// MarshalJSON emits the wrapped value verbatim, including nil as JSON null.
func (p PropertyValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value)
}

// UnmarshalJSON accepts any JSON value, including null.
func (p *PropertyValue) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &p.Value)
}

// Properties is a flat map of property name to value, used by schema,
// table, and materialized-view resources. Keys are preserved verbatim;
// an explicit engine-side null is preserved as JSON null (PropertyValue
// marshals nil through), never silently dropped.
type Properties map[string]PropertyValue

// UserResource names a user for impersonation, query-ownership
// (ViewQueryOwnedBy/KillQueryOwnedBy) and FilterViewQueryOwnedBy
// callbacks. It always uses the minimal identity shape; the older
// convention of sending the full identity shape for target users is not
// emitted by any callback. Grantees are Principal values, not users.
type UserResource struct {
	User   string   `json:"user"`
	Groups []string `json:"groups"`
}

// CatalogResource names a catalog.
type CatalogResource struct {
	Name string `json:"name"`
}

// SchemaResource names a schema, optionally carrying its properties (for
// CreateSchema).
type SchemaResource struct {
	CatalogName string     `json:"catalogName"`
	SchemaName  string     `json:"schemaName"`
	Properties  Properties `json:"properties,omitempty"`
}

// TableResource names a table or view. Serialized under the JSON key
// "table" or "view" depending on which field of Resource holds it — the
// struct itself is shape-identical; the distinction is carried by
// Resource's field selection (Resource.View vs Resource.Table), not by a
// runtime flag on this type.
type TableResource struct {
	CatalogName string     `json:"catalogName"`
	SchemaName  string     `json:"schemaName"`
	TableName   string     `json:"tableName"`
	Columns     []string   `json:"columns,omitempty"`
	Properties  Properties `json:"properties,omitempty"`
}

// FunctionResource names a function, optionally scoped to a catalog/schema
// and tagged with its kind.
type FunctionResource struct {
	CatalogName  string       `json:"catalogName,omitempty"`
	SchemaName   string       `json:"schemaName,omitempty"`
	FunctionName string       `json:"functionName"`
	FunctionKind FunctionKind `json:"functionKind,omitempty"`
}

// RoleResource names a single role.
type RoleResource struct {
	Name string `json:"name"`
}

// RolesResource names a set of roles (GrantRoles/RevokeRoles).
type RolesResource struct {
	Roles []RoleResource `json:"roles"`
}

// SystemSessionPropertyResource names a system-wide session property.
type SystemSessionPropertyResource struct {
	Name string `json:"name"`
}

// CatalogSessionPropertyResource names a session property scoped to a catalog.
type CatalogSessionPropertyResource struct {
	CatalogName  string `json:"catalogName"`
	PropertyName string `json:"propertyName"`
}

// Resource is a sum type: exactly the populated variant for a given
// action appears on the wire; every other field is omitted by
// encoding/json's omitempty (all fields here are pointers so a nil one
// vanishes from the JSON object entirely).
type Resource struct {
	User                   *UserResource                   `json:"user,omitempty"`
	Catalog                *CatalogResource                `json:"catalog,omitempty"`
	Schema                 *SchemaResource                 `json:"schema,omitempty"`
	Table                  *TableResource                  `json:"table,omitempty"`
	View                   *TableResource                  `json:"view,omitempty"`
	Function               *FunctionResource               `json:"function,omitempty"`
	Role                   *RoleResource                   `json:"role,omitempty"`
	Roles                  *RolesResource                  `json:"roles,omitempty"`
	SystemSessionProperty  *SystemSessionPropertyResource  `json:"systemSessionProperty,omitempty"`
	CatalogSessionProperty *CatalogSessionPropertyResource `json:"catalogSessionProperty,omitempty"`
}

// UserResourceFromIdentity builds a user Resource from a MinimalIdentity,
// normalizing a nil Groups to an empty slice.
func UserResourceFromIdentity(id MinimalIdentity) Resource {
	groups := id.Groups
	if groups == nil {
		groups = []string{}
	}
	return Resource{User: &UserResource{User: id.User, Groups: groups}}
}

// CatalogR builds a catalog Resource.
func CatalogR(name string) Resource {
	return Resource{Catalog: &CatalogResource{Name: name}}
}

// SchemaR builds a schema Resource, optionally with properties.
func SchemaR(catalog, schema string, properties Properties) Resource {
	return Resource{Schema: &SchemaResource{CatalogName: catalog, SchemaName: schema, Properties: properties}}
}

// TableR builds a table Resource.
func TableR(catalog, schema, table string, columns []string, properties Properties) Resource {
	return Resource{Table: &TableResource{
		CatalogName: catalog,
		SchemaName:  schema,
		TableName:   table,
		Columns:     columns,
		Properties:  properties,
	}}
}

// ViewR builds a view Resource — serialized under the "view" key even
// though it shares TableResource's shape (materialized views use this too).
func ViewR(catalog, schema, view string, columns []string, properties Properties) Resource {
	return Resource{View: &TableResource{
		CatalogName: catalog,
		SchemaName:  schema,
		TableName:   view,
		Columns:     columns,
		Properties:  properties,
	}}
}

// FunctionR builds a function Resource.
func FunctionR(catalog, schema, name string, kind FunctionKind) Resource {
	return Resource{Function: &FunctionResource{
		CatalogName:  catalog,
		SchemaName:   schema,
		FunctionName: name,
		FunctionKind: kind,
	}}
}

// RoleR builds a single-role Resource.
func RoleR(name string) Resource {
	return Resource{Role: &RoleResource{Name: name}}
}

// RolesR builds a multi-role Resource.
func RolesR(names []string) Resource {
	roles := make([]RoleResource, len(names))
	for i, n := range names {
		roles[i] = RoleResource{Name: n}
	}
	return Resource{Roles: &RolesResource{Roles: roles}}
}

// SystemSessionPropertyR builds a systemSessionProperty Resource.
func SystemSessionPropertyR(name string) Resource {
	return Resource{SystemSessionProperty: &SystemSessionPropertyResource{Name: name}}
}

// CatalogSessionPropertyR builds a catalogSessionProperty Resource.
func CatalogSessionPropertyR(catalog, property string) Resource {
	return Resource{CatalogSessionProperty: &CatalogSessionPropertyResource{CatalogName: catalog, PropertyName: property}}
}

// Principal is a grantor or grantee reference: a named user or role.
type Principal struct {
	Name string        `json:"name"`
	Type PrincipalType `json:"type"`
}

// PrincipalType is the kind of principal a Grant/grantor refers to.
type PrincipalType string

const (
	PrincipalUser PrincipalType = "USER"
	PrincipalRole PrincipalType = "ROLE"
)

// Grant groups grantee principals with a grant option and privilege.
// The Grant/Deny/Revoke-*Privilege callbacks do not use it: they set
// Action.Grantee, Action.GrantOption and Action.Privilege directly.
// GrantOption is a *bool so "no grant-option concept" (nil) is
// distinguishable from an explicit false.
type Grant struct {
	Principals  []Principal `json:"principals"`
	GrantOption *bool       `json:"grantOption,omitempty"`
	Privilege   string      `json:"privilege,omitempty"`
}

// BoolPtr is a small helper for building a *bool grant-option value inline.
func BoolPtr(b bool) *bool { return &b }
