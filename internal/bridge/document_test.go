package bridge

import (
	"encoding/json"
	"testing"

	"github.com/chirino/opa-trino-bridge/internal/bridge/bridgeerr"
	"github.com/stretchr/testify/require"
)

func TestNewMinimalIdentity_NilGroupsSerializeAsEmptyArray(t *testing.T) {
	id := NewMinimalIdentity("alice", nil)
	data, err := json.Marshal(id)
	require.NoError(t, err)
	require.JSONEq(t, `{"user":"alice","groups":[]}`, string(data))
}

func TestNewFullIdentity_NilSlicesNormalized(t *testing.T) {
	id := NewFullIdentity("bob", nil, nil, nil, nil)
	require.Equal(t, []string{}, id.Groups)
	require.Equal(t, []string{}, id.EnabledRoles)
}

func TestFullIdentity_Minimal(t *testing.T) {
	id := NewFullIdentity("carol", []string{"analysts"}, []string{"admin"}, nil, nil)
	min := id.Minimal()
	require.Equal(t, MinimalIdentity{User: "carol", Groups: []string{"analysts"}}, min)
}

func TestNewQueryContext_DefaultsUnknownVersion(t *testing.T) {
	qc := NewQueryContext(NewFullIdentity("dave", nil, nil, nil, nil), "")
	require.Equal(t, "UNKNOWN", qc.SoftwareStack.TrinoVersion)
}

func TestNewQueryContext_PreservesSuppliedVersion(t *testing.T) {
	qc := NewQueryContext(NewFullIdentity("dave", nil, nil, nil, nil), "466")
	require.Equal(t, "466", qc.SoftwareStack.TrinoVersion)
}

func TestResource_OnlyPopulatedVariantSerializes(t *testing.T) {
	r := TableR("hive", "analytics", "orders", []string{"id", "total"}, nil)
	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{"table":{"catalogName":"hive","schemaName":"analytics","tableName":"orders","columns":["id","total"]}}`, string(data))
}

func TestViewR_SerializesUnderViewKeyNotTable(t *testing.T) {
	r := ViewR("hive", "analytics", "order_totals", nil, nil)
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var asMap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &asMap))
	require.Contains(t, asMap, "view")
	require.NotContains(t, asMap, "table")
}

func TestProperties_ExplicitNullPreserved(t *testing.T) {
	props := Properties{"format": PropertyValue{Value: nil}, "bucketed": PropertyValue{Value: true}}
	r := SchemaR("hive", "analytics", props)
	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{"schema":{"catalogName":"hive","schemaName":"analytics","properties":{"format":null,"bucketed":true}}}`, string(data))
}

func TestGrant_GrantOptionNilVsExplicitFalse(t *testing.T) {
	withNil := Grant{Principals: []Principal{{Name: "alice", Type: PrincipalUser}}}
	data, err := json.Marshal(withNil)
	require.NoError(t, err)
	require.JSONEq(t, `{"principals":[{"name":"alice","type":"USER"}]}`, string(data))

	withFalse := Grant{Principals: []Principal{{Name: "alice", Type: PrincipalUser}}, GrantOption: BoolPtr(false)}
	data, err = json.Marshal(withFalse)
	require.NoError(t, err)
	require.JSONEq(t, `{"principals":[{"name":"alice","type":"USER"}],"grantOption":false}`, string(data))
}

func TestIsFilterOperation(t *testing.T) {
	require.True(t, IsFilterOperation(OpFilterTables))
	require.True(t, IsFilterOperation(OpFilterColumns))
	require.False(t, IsFilterOperation(OpCreateTable))
	require.False(t, IsFilterOperation(OpSelectFromColumns))
}

func TestNewInputDocument_RoundTrip(t *testing.T) {
	identity := NewFullIdentity("alice", []string{"eng"}, []string{"admin"}, nil, nil)
	qc := NewQueryContext(identity, "466")
	action := NewAction(OpCreateTable, ptrResource(TableR("hive", "analytics", "orders", nil, nil)))
	doc := NewInputDocument(action, qc)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded InputDocument
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, OpCreateTable, decoded.Input.Action.Operation)
	require.Equal(t, "alice", decoded.Input.Context.Identity.User)
	require.NotNil(t, decoded.Input.Action.Resource)
	require.Equal(t, "orders", decoded.Input.Action.Resource.Table.TableName)
}

func TestNewBatchInputDocument_FilterResourcesOrderedList(t *testing.T) {
	candidates := []Resource{
		TableR("hive", "analytics", "orders", nil, nil),
		TableR("hive", "analytics", "customers", nil, nil),
	}
	doc := NewBatchInputDocument(OpFilterTables, NewQueryContext(NewFullIdentity("alice", nil, nil, nil, nil), ""), candidates)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded BatchInputDocument
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, OpFilterTables, decoded.Input.Action.Operation)
	require.Len(t, decoded.Input.Action.FilterResources, 2)
	require.Equal(t, "orders", decoded.Input.Action.FilterResources[0].Table.TableName)
}

func TestSingleDecision_Allowed(t *testing.T) {
	var allow SingleDecision
	require.NoError(t, json.Unmarshal([]byte(`{"result":true}`), &allow))
	require.True(t, allow.Allowed())

	var deny SingleDecision
	require.NoError(t, json.Unmarshal([]byte(`{}`), &deny))
	require.False(t, deny.Allowed())
}

func TestBatchDecision_FilterPreservesCandidateOrder(t *testing.T) {
	candidates := []Resource{
		TableR("hive", "a", "t1", nil, nil),
		TableR("hive", "a", "t2", nil, nil),
		TableR("hive", "a", "t3", nil, nil),
	}
	decision := BatchDecision{Result: []int{2, 0}}

	filtered, err := decision.Filter(candidates)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	require.Equal(t, "t1", filtered[0].Table.TableName)
	require.Equal(t, "t3", filtered[1].Table.TableName)
}

func TestBatchDecision_Filter_OutOfRangeIndexAborts(t *testing.T) {
	candidates := []Resource{TableR("hive", "a", "t1", nil, nil)}
	decision := BatchDecision{Result: []int{0, 5}}

	_, err := decision.Filter(candidates)
	require.Error(t, err)
	var deserr *bridgeerr.DeserializeFailed
	require.ErrorAs(t, err, &deserr)
}

func TestBatchDecision_Filter_DuplicateIndexIdempotent(t *testing.T) {
	candidates := []Resource{TableR("hive", "a", "t1", nil, nil), TableR("hive", "a", "t2", nil, nil)}
	decision := BatchDecision{Result: []int{0, 0}}

	filtered, err := decision.Filter(candidates)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
}

func ptrResource(r Resource) *Resource {
	return &r
}
