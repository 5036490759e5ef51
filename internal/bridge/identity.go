// Package bridge holds the canonical input-document schema the access
// control bridge builds for every authorization callback: identities,
// resources, actions, and the decisions the policy decision point (PDP)
// returns for them. Every type here is a pure data shape; nothing in
// this package performs I/O.
package bridge

// SelectedRole is the role a session has activated within a catalog,
// mirroring the host engine's per-catalog role selection.
type SelectedRole struct {
	Type string `json:"type"`
	Role string `json:"role,omitempty"`
}

// MinimalIdentity is the trimmed caller shape used wherever a resource
// names a user rather than describing the acting caller: the user
// resources of impersonation, query-ownership and FilterViewQueryOwnedBy
// callbacks. Grant/deny/revoke grantees are Principal values instead. It
// carries only what a policy needs to match a user, never the acting
// session's roles or credentials.
type MinimalIdentity struct {
	User   string   `json:"user"`
	Groups []string `json:"groups"`
}

// NewMinimalIdentity builds a MinimalIdentity, normalizing a nil group set
// to an empty (non-nil) slice so it serializes as "groups": [] rather than
// being omitted. Empty-but-present collections stay visible to the policy
// author instead of silently vanishing from the document.
func NewMinimalIdentity(user string, groups []string) MinimalIdentity {
	if groups == nil {
		groups = []string{}
	}
	return MinimalIdentity{User: user, Groups: groups}
}

// FullIdentity is the acting caller's complete identity, used only for
// InputDocument.Input.Context.Identity. It is never used for a grantee,
// target user, or any other resource-shaped reference to a user — see
// DESIGN.md's "Identity shape split" decision.
type FullIdentity struct {
	User             string                  `json:"user"`
	Groups           []string                `json:"groups"`
	EnabledRoles     []string                `json:"enabledRoles"`
	CatalogRoles     map[string]SelectedRole `json:"catalogRoles,omitempty"`
	ExtraCredentials map[string]string       `json:"extraCredentials,omitempty"`
}

// NewFullIdentity builds a FullIdentity, normalizing nil slices the same
// way NewMinimalIdentity does.
func NewFullIdentity(user string, groups, enabledRoles []string, catalogRoles map[string]SelectedRole, extraCredentials map[string]string) FullIdentity {
	if groups == nil {
		groups = []string{}
	}
	if enabledRoles == nil {
		enabledRoles = []string{}
	}
	return FullIdentity{
		User:             user,
		Groups:           groups,
		EnabledRoles:     enabledRoles,
		CatalogRoles:     catalogRoles,
		ExtraCredentials: extraCredentials,
	}
}

// Minimal projects a FullIdentity down to the MinimalIdentity shape, used
// when the acting caller also needs to appear as a plain user reference.
func (f FullIdentity) Minimal() MinimalIdentity {
	return NewMinimalIdentity(f.User, f.Groups)
}

const unknownSoftwareVersion = "UNKNOWN"

// QueryContext is the request-scoped context every InputDocument carries:
// the caller's full identity and the host engine's software version.
type QueryContext struct {
	Identity      FullIdentity  `json:"identity"`
	SoftwareStack SoftwareStack `json:"softwareStack"`
}

// SoftwareStack names the host engine version. TrinoVersion defaults to
// "UNKNOWN" when the host does not supply one.
type SoftwareStack struct {
	TrinoVersion string `json:"trinoVersion"`
}

// NewQueryContext builds a QueryContext, defaulting an empty trinoVersion
// to the UNKNOWN sentinel.
func NewQueryContext(identity FullIdentity, trinoVersion string) QueryContext {
	if trinoVersion == "" {
		trinoVersion = unknownSoftwareVersion
	}
	return QueryContext{
		Identity:      identity,
		SoftwareStack: SoftwareStack{TrinoVersion: trinoVersion},
	}
}
