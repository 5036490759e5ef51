package refpdp

import (
	"context"
	"fmt"
	"testing"

	"github.com/open-policy-agent/opa/rego"
)

const defaultPolicyAssertionsRego = `
package bridge.tests

import future.keywords.if

test_allow_select if {
	data.bridge.decision.result with input as {
		"input": {
			"action": {"operation": "SelectFromColumns"},
			"context": {"identity": {"user": "alice"}}
		}
	}
}

test_deny_drop_table if {
	not data.bridge.decision.result with input as {
		"input": {
			"action": {"operation": "DropTable"},
			"context": {"identity": {"user": "alice"}}
		}
	}
}

test_deny_drop_schema if {
	not data.bridge.decision.result with input as {
		"input": {
			"action": {"operation": "DropSchema"},
			"context": {"identity": {"user": "alice"}}
		}
	}
}

test_filter_allows_all_for_permitted_operation if {
	data.bridge.filter.result with input as {
		"input": {
			"action": {"operation": "FilterCatalogs", "filterResources": [{"catalog": {"name": "a"}}, {"catalog": {"name": "b"}}]},
			"context": {"identity": {"user": "alice"}}
		}
	} == [0, 1]
}

test_filter_denies_all_for_denied_operation if {
	count(data.bridge.filter.result with input as {
		"input": {
			"action": {"operation": "DropTable", "filterResources": [{"table": {"tableName": "t1"}}]},
			"context": {"identity": {"user": "alice"}}
		}
	}) == 0
}
`

func TestDefaultPoliciesRegoAssertions(t *testing.T) {
	modules := map[string]string{
		"decision.rego": defaultDecisionRego,
		"filter.rego":   defaultFilterRego,
		"tests.rego":    defaultPolicyAssertionsRego,
	}
	testRules := []string{
		"test_allow_select",
		"test_deny_drop_table",
		"test_deny_drop_schema",
		"test_filter_allows_all_for_permitted_operation",
		"test_filter_denies_all_for_denied_operation",
	}

	for _, rule := range testRules {
		t.Run(rule, func(t *testing.T) {
			query := fmt.Sprintf("data.bridge.tests.%s", rule)
			if !evalRegoBoolean(t, modules, query) {
				t.Fatalf("rego assertion failed: %s", query)
			}
		})
	}
}

func evalRegoBoolean(t *testing.T, modules map[string]string, query string) bool {
	t.Helper()
	opts := []func(*rego.Rego){rego.Query(query)}
	for name, src := range modules {
		opts = append(opts, rego.Module(name, src))
	}

	r := rego.New(opts...)
	results, err := r.Eval(context.Background())
	if err != nil {
		t.Fatalf("eval %s: %v", query, err)
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		t.Fatalf("eval %s: no result", query)
	}
	v, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		t.Fatalf("eval %s: expected bool, got %T", query, results[0].Expressions[0].Value)
	}
	return v
}
