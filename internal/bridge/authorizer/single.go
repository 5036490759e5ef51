// Package authorizer implements the Single-Decision Authorizer (one PDP
// call per callback, parallel fan-out for filter callbacks with no batch
// URI configured) and the Batch Authorizer (one PDP call per filter
// callback, using the ordered filterResources shape). Both satisfy
// hostspi.SystemAccessControl.
package authorizer

import (
	"context"
	"sync"
	"time"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
	"github.com/chirino/opa-trino-bridge/internal/bridge/bridgeerr"
	"github.com/chirino/opa-trino-bridge/internal/bridge/pdpclient"
	"github.com/chirino/opa-trino-bridge/internal/bridgemetrics"
)

// SingleAuthorizer implements every access-control callback as exactly
// one PDP call (the canonical template), and filter callbacks as a
// parallel fan-out of one call per candidate against the single-decision
// URI.
type SingleAuthorizer struct {
	client    *pdpclient.Client
	singleURI string
}

// NewSingleAuthorizer builds a SingleAuthorizer.
func NewSingleAuthorizer(client *pdpclient.Client, singleURI string) *SingleAuthorizer {
	return &SingleAuthorizer{client: client, singleURI: singleURI}
}

// Close releases nothing on its own; the shared *http.Client inside
// client is owned by whoever constructed it.
func (a *SingleAuthorizer) Close() error { return nil }

// decide runs the canonical template for a single-resource, error-or-nil
// callback: build the action, call the PDP, translate a denial into an
// AccessDenied carrying reason.
func (a *SingleAuthorizer) decide(ctx context.Context, qc bridge.QueryContext, operation string, action bridge.Action, reason string) error {
	action.Operation = operation
	doc := bridge.NewInputDocument(action, qc)
	start := time.Now()
	decision, err := a.client.DecideSingle(ctx, a.singleURI, doc)
	if err != nil {
		bridgemetrics.ObserveError(operation, errorKind(err))
		return err
	}
	bridgemetrics.ObserveDecision(operation, decision.Allowed(), time.Since(start))
	if !decision.Allowed() {
		return &bridgeerr.AccessDenied{Operation: operation, Reason: reason}
	}
	return nil
}

// decideBool runs the canonical template for a capability-style callback
// that returns a boolean instead of throwing. A PDP error denies rather
// than allows — the binding invariant is that no failure ever turns into
// an allow, never that every failure is surfaced identically.
func (a *SingleAuthorizer) decideBool(ctx context.Context, qc bridge.QueryContext, operation string, action bridge.Action) bool {
	action.Operation = operation
	doc := bridge.NewInputDocument(action, qc)
	start := time.Now()
	decision, err := a.client.DecideSingle(ctx, a.singleURI, doc)
	if err != nil {
		bridgemetrics.ObserveError(operation, errorKind(err))
		return false
	}
	bridgemetrics.ObserveDecision(operation, decision.Allowed(), time.Since(start))
	return decision.Allowed()
}

// fanOutFilter issues one DecideSingle call per candidate in [0, n),
// concurrently, and returns the indices whose verdict was true, in
// ascending (hence input) order. Any non-denial error aborts the whole
// call with that error; an empty input makes no HTTP calls at all.
func (a *SingleAuthorizer) fanOutFilter(ctx context.Context, qc bridge.QueryContext, filterOp string, n int, resourceAt func(i int) bridge.Resource) ([]int, error) {
	bridgemetrics.ObserveFilterCandidates(filterOp, n)
	if n == 0 {
		return nil, nil
	}

	allowed := make([]bool, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			r := resourceAt(i)
			action := bridge.NewAction(filterOp, &r)
			doc := bridge.NewInputDocument(action, qc)
			decision, err := a.client.DecideSingle(ctx, a.singleURI, doc)
			if err != nil {
				bridgemetrics.ObserveError(filterOp, errorKind(err))
				errs[i] = err
				return
			}
			allowed[i] = decision.Allowed()
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	idx := make([]int, 0, n)
	for i, ok := range allowed {
		if ok {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

// errorKind maps a bridge error to the label bridgemetrics groups it
// under. An error kind not recognized here (never expected, since the
// client only ever returns one of the bridgeerr kinds) reports "unknown"
// rather than panicking.
func errorKind(err error) string {
	switch err.(type) {
	case *bridgeerr.QueryFailed:
		return "query_failed"
	case *bridgeerr.PolicyNotFound:
		return "policy_not_found"
	case *bridgeerr.PdpServerError:
		return "pdp_server_error"
	case *bridgeerr.SerializeFailed:
		return "serialize_failed"
	case *bridgeerr.DeserializeFailed:
		return "deserialize_failed"
	case *bridgeerr.InternalInvariant:
		return "internal_invariant"
	default:
		return "unknown"
	}
}
