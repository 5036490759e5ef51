// Package bridgeerr holds the bridge's error taxonomy: small structs
// implementing error, one per failure kind, so callers can use errors.As
// to recover the kind-specific detail instead of matching on strings.
package bridgeerr

import "fmt"

// AccessDenied indicates the policy decision point returned false, or an
// absent result, for a callback. Operation and Reason preserve the
// host's specific diagnostic subtype (e.g. "cannot select from columns")
// so the surfaced message stays meaningful to the query's author.
type AccessDenied struct {
	Operation string
	Reason    string
}

func (e *AccessDenied) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("access denied for %s: %s", e.Operation, e.Reason)
	}
	return fmt.Sprintf("access denied for %s", e.Operation)
}

// QueryFailed indicates a transport-layer failure reaching the PDP: the
// request could not be sent or no response was received (network error,
// context cancellation, client timeout).
type QueryFailed struct {
	PolicyURI string
	Cause     error
}

func (e *QueryFailed) Error() string {
	return fmt.Sprintf("querying policy decision point at %s failed: %v", e.PolicyURI, e.Cause)
}

func (e *QueryFailed) Unwrap() error { return e.Cause }

// PolicyNotFound indicates the PDP responded 404: the configured policy
// path does not exist at that endpoint.
type PolicyNotFound struct {
	PolicyURI string
}

func (e *PolicyNotFound) Error() string {
	return fmt.Sprintf("policy not found at %s", e.PolicyURI)
}

// PdpServerError indicates the PDP responded with a status other than
// 200 or 404. StatusCode and Body are carried verbatim for diagnostics.
type PdpServerError struct {
	PolicyURI  string
	StatusCode int
	Body       string
}

func (e *PdpServerError) Error() string {
	return fmt.Sprintf("policy decision point at %s returned status %d: %s", e.PolicyURI, e.StatusCode, e.Body)
}

// SerializeFailed indicates the bridge could not encode an outgoing
// InputDocument/BatchInputDocument as JSON.
type SerializeFailed struct {
	Cause error
}

func (e *SerializeFailed) Error() string {
	return fmt.Sprintf("failed to serialize request: %v", e.Cause)
}

func (e *SerializeFailed) Unwrap() error { return e.Cause }

// DeserializeFailed indicates a malformed response body (status 200 but
// invalid JSON, or — for batch decisions — an index outside the
// candidate range).
type DeserializeFailed struct {
	Cause error
}

func (e *DeserializeFailed) Error() string {
	return fmt.Sprintf("failed to deserialize response: %v", e.Cause)
}

func (e *DeserializeFailed) Unwrap() error { return e.Cause }

// InternalInvariant indicates a programming error inside the bridge
// itself — a condition the bridge's own construction should have made
// impossible, such as an Action built with both Resource and a batch
// candidate list populated.
type InternalInvariant struct {
	Message string
}

func (e *InternalInvariant) Error() string {
	return fmt.Sprintf("internal invariant violation: %s", e.Message)
}
