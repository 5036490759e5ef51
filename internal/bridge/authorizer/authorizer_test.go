package authorizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
	"github.com/chirino/opa-trino-bridge/internal/bridge/bridgeerr"
	"github.com/chirino/opa-trino-bridge/internal/bridge/pdpclient"
)

func testQC() bridge.QueryContext {
	return bridge.NewQueryContext(bridge.NewFullIdentity("alice", nil, nil, nil, nil), "")
}

func fixedVerdictServer(t *testing.T, result string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(result))
	}))
}

// Scenario 1: table select allow, request body matches the canonical template.
func TestScenario1_SelectFromColumns_AllowAndRequestShape(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		capturedBody = body
		w.Write([]byte(`{"result": true}`))
	}))
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	err := single.CanSelectFromColumns(context.Background(), testQC(), "cat", "sch", "tbl", []string{"c1", "c2"})
	require.NoError(t, err)

	var doc bridge.InputDocument
	require.NoError(t, json.Unmarshal(capturedBody, &doc))
	require.Equal(t, bridge.OpSelectFromColumns, doc.Input.Action.Operation)
	require.Equal(t, "cat", doc.Input.Action.Resource.Table.CatalogName)
	require.Equal(t, "sch", doc.Input.Action.Resource.Table.SchemaName)
	require.Equal(t, "tbl", doc.Input.Action.Resource.Table.TableName)
	require.Equal(t, []string{"c1", "c2"}, doc.Input.Action.Resource.Table.Columns)
}

// Scenario 2: schema rename deny, request carries resource+targetResource.
func TestScenario2_RenameSchema_DenyAndRequestShape(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		capturedBody = body
		w.Write([]byte(`{"result": false}`))
	}))
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	err := single.CanRenameSchema(context.Background(), testQC(), "cat", "s1", "s2")
	require.Error(t, err)
	var denied *bridgeerr.AccessDenied
	require.ErrorAs(t, err, &denied)
	require.Equal(t, bridge.OpRenameSchema, denied.Operation)

	var doc bridge.InputDocument
	require.NoError(t, json.Unmarshal(capturedBody, &doc))
	require.Equal(t, bridge.OpRenameSchema, doc.Input.Action.Operation)
	require.Equal(t, "s1", doc.Input.Action.Resource.Schema.SchemaName)
	require.Equal(t, "s2", doc.Input.Action.TargetResource.Schema.SchemaName)
}

// Scenario 3: catalog filter via fan-out, single-decision mode.
func TestScenario3_FilterCatalogs_FanOut(t *testing.T) {
	var callCount int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&callCount, 1)
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		var doc bridge.InputDocument
		json.Unmarshal(body, &doc)
		allow := doc.Input.Action.Resource != nil && doc.Input.Action.Resource.Catalog != nil && doc.Input.Action.Resource.Catalog.Name == "c2"
		if allow {
			w.Write([]byte(`{"result": true}`))
		} else {
			w.Write([]byte(`{"result": false}`))
		}
	}))
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	result, err := single.FilterCatalogs(context.Background(), testQC(), []string{"c1", "c2", "c3"})
	require.NoError(t, err)
	require.Equal(t, []string{"c2"}, result)
	require.Equal(t, int64(3), atomic.LoadInt64(&callCount))
}

// Scenario 4: schema filter via a single batch call.
func TestScenario4_FilterSchemas_Batch(t *testing.T) {
	var callCount int64
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&callCount, 1)
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		capturedBody = body
		w.Write([]byte(`{"result": [0, 2]}`))
	}))
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, "http://unused.invalid")
	batch := NewBatchAuthorizer(single, client, srv.URL)

	result, err := batch.FilterSchemas(context.Background(), testQC(), "mycat", []string{"s1", "s2", "s3"})
	require.NoError(t, err)
	require.Equal(t, []string{"s1", "s3"}, result)
	require.Equal(t, int64(1), atomic.LoadInt64(&callCount))

	var doc bridge.BatchInputDocument
	require.NoError(t, json.Unmarshal(capturedBody, &doc))
	require.Len(t, doc.Input.Action.FilterResources, 3)
	require.Equal(t, "mycat", doc.Input.Action.FilterResources[0].Schema.CatalogName)
	require.Equal(t, "s1", doc.Input.Action.FilterResources[0].Schema.SchemaName)
}

// Scenario 5: column filter batch special case, single element carries full column list.
func TestScenario5_FilterColumns_BatchSpecialCase(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		capturedBody = body
		w.Write([]byte(`{"result": [1]}`))
	}))
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, "http://unused.invalid")
	batch := NewBatchAuthorizer(single, client, srv.URL)

	result, err := batch.FilterColumns(context.Background(), testQC(), "cat", "sch", "tbl", []string{"c1", "c2", "c3"})
	require.NoError(t, err)
	require.Equal(t, []string{"c2"}, result)

	var doc bridge.BatchInputDocument
	require.NoError(t, json.Unmarshal(capturedBody, &doc))
	require.Len(t, doc.Input.Action.FilterResources, 1)
	require.Equal(t, []string{"c1", "c2", "c3"}, doc.Input.Action.FilterResources[0].Table.Columns)
}

// Scenario 6: permission gate off denies without HTTP traffic; on allows without HTTP traffic.
func TestScenario6_PermissionGate(t *testing.T) {
	var callCount int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&callCount, 1)
		w.Write([]byte(`{"result": true}`))
	}))
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	gateOff := NewGate(single, false)
	err := gateOff.CanGrantSchemaPrivilege(context.Background(), testQC(), "cat", "sch", bridge.Principal{Name: "bob", Type: bridge.PrincipalUser}, "SELECT", false)
	require.Error(t, err)
	var denied *bridgeerr.AccessDenied
	require.ErrorAs(t, err, &denied)
	require.Equal(t, int64(0), atomic.LoadInt64(&callCount))

	gateOn := NewGate(single, true)
	err = gateOn.CanGrantSchemaPrivilege(context.Background(), testQC(), "cat", "sch", bridge.Principal{Name: "bob", Type: bridge.PrincipalUser}, "SELECT", false)
	require.NoError(t, err)
	require.Equal(t, int64(0), atomic.LoadInt64(&callCount))
}

func TestGate_RoleInspectionAlwaysAllowed(t *testing.T) {
	single := NewSingleAuthorizer(pdpclient.NewClient(nil, false, false), "http://unused.invalid")
	gate := NewGate(single, false)

	require.NoError(t, gate.CanShowRoles(context.Background(), testQC()))
	require.NoError(t, gate.CanShowCurrentRoles(context.Background(), testQC()))
	require.NoError(t, gate.CanShowRoleGrants(context.Background(), testQC()))
}

func TestDenialByAbsence(t *testing.T) {
	srv := fixedVerdictServer(t, `{}`)
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	err := single.CanExecuteQuery(context.Background(), testQC())
	require.Error(t, err)
	var denied *bridgeerr.AccessDenied
	require.ErrorAs(t, err, &denied)
}

func TestAllowByTrue_CapabilityReturnsBoolean(t *testing.T) {
	srv := fixedVerdictServer(t, `{"result": true}`)
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	require.True(t, single.CanAccessCatalog(context.Background(), testQC(), "hive"))
}

func TestFilterLaws_EmptyInputMakesNoHTTPCalls(t *testing.T) {
	var callCount int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&callCount, 1)
		w.Write([]byte(`{"result": true}`))
	}))
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	result, err := single.FilterCatalogs(context.Background(), testQC(), nil)
	require.NoError(t, err)
	require.Empty(t, result)
	require.Equal(t, int64(0), atomic.LoadInt64(&callCount))
}

func TestFilterLaws_PermitAllYieldsFullSet(t *testing.T) {
	srv := fixedVerdictServer(t, `{"result": true}`)
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	result, err := single.FilterCatalogs(context.Background(), testQC(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b", "c"}, result)
}

func TestFilterLaws_DenyAllYieldsEmptySet(t *testing.T) {
	srv := fixedVerdictServer(t, `{"result": false}`)
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	result, err := single.FilterCatalogs(context.Background(), testQC(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestFanOutFilter_NonDenialErrorAbortsWholeFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	_, err := single.FilterCatalogs(context.Background(), testQC(), []string{"a", "b"})
	require.Error(t, err)
	var serverErr *bridgeerr.PdpServerError
	require.ErrorAs(t, err, &serverErr)
}

func TestIdentityPropagation(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		capturedBody = body
		w.Write([]byte(`{"result": true}`))
	}))
	defer srv.Close()

	client := pdpclient.NewClient(nil, false, false)
	single := NewSingleAuthorizer(client, srv.URL)

	qc := bridge.NewQueryContext(bridge.NewFullIdentity("carol", nil, nil, nil, nil), "")
	require.NoError(t, single.CanExecuteQuery(context.Background(), qc))

	var doc bridge.InputDocument
	require.NoError(t, json.Unmarshal(capturedBody, &doc))
	require.Equal(t, "carol", doc.Input.Context.Identity.User)
}
