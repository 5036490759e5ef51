package authorizer

import "github.com/chirino/opa-trino-bridge/internal/hostspi"

var (
	_ hostspi.SystemAccessControl = (*SingleAuthorizer)(nil)
	_ hostspi.SystemAccessControl = (*BatchAuthorizer)(nil)
	_ hostspi.SystemAccessControl = (*Gate)(nil)
)
