package bridge

import (
	"fmt"

	"github.com/chirino/opa-trino-bridge/internal/bridge/bridgeerr"
)

// SingleDecision is the response shape for every non-filter authorization
// callback: a plain allow/deny verdict. The decision point may omit
// "result" to mean deny (treated identically to an explicit false by the
// client), but always returns a JSON object.
type SingleDecision struct {
	Result     bool   `json:"result"`
	DecisionID string `json:"decision_id,omitempty"`
}

// Allowed reports whether this decision permits the action.
func (d SingleDecision) Allowed() bool {
	return d.Result
}

// BatchDecision is the response shape for filter-shaped callbacks: the
// zero-based indices, in any order, of the filterResources entries from
// the request that the caller is permitted to see.
type BatchDecision struct {
	Result     []int  `json:"result"`
	DecisionID string `json:"decision_id,omitempty"`
}

// Indices validates this decision's surviving indices against a
// candidate count n, returning them deduplicated and in ascending
// order. An index outside [0, n) is a deserialization failure and
// aborts the whole filter rather than being silently dropped; a
// duplicate index is idempotent.
func (d BatchDecision) Indices(n int) ([]int, error) {
	seen := make(map[int]bool, len(d.Result))
	for _, idx := range d.Result {
		if idx < 0 || idx >= n {
			return nil, &bridgeerr.DeserializeFailed{
				Cause: fmt.Errorf("batch decision index %d out of range [0, %d)", idx, n),
			}
		}
		seen[idx] = true
	}
	out := make([]int, 0, len(seen))
	for i := 0; i < n; i++ {
		if seen[i] {
			out = append(out, i)
		}
	}
	return out, nil
}

// Filter applies this decision's surviving indices against candidates,
// returning the subsequence that was allowed, in the original candidate
// order.
func (d BatchDecision) Filter(candidates []Resource) ([]Resource, error) {
	idx, err := d.Indices(len(candidates))
	if err != nil {
		return nil, err
	}
	out := make([]Resource, len(idx))
	for j, i := range idx {
		out[j] = candidates[i]
	}
	return out, nil
}
