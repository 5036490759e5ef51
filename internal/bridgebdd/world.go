// Package bridgebdd drives the bridge end to end through godog feature
// files: each scenario builds a hostspi.SystemAccessControl via the
// factory against an in-process reference PDP (internal/refpdp) and
// asserts the allow/deny/filter outcome the policy produces.
package bridgebdd

import (
	"github.com/chirino/opa-trino-bridge/internal/refpdp"
)

// bridgeEnvironment is shared by every scenario of one feature-file run:
// the reference PDP's base URL and the engine behind it, so a step can
// reset or replace its policy bundle between scenarios.
type bridgeEnvironment struct {
	pdpURL string
	engine *refpdp.Engine
}

func (e *bridgeEnvironment) singleURI() string {
	return e.pdpURL + "/v1/decision"
}

func (e *bridgeEnvironment) batchURI() string {
	return e.pdpURL + "/v1/filter"
}
