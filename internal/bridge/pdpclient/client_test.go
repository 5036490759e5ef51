package pdpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
	"github.com/chirino/opa-trino-bridge/internal/bridge/bridgeerr"
)

func testDoc() bridge.InputDocument {
	identity := bridge.NewFullIdentity("alice", nil, nil, nil, nil)
	qc := bridge.NewQueryContext(identity, "")
	r := bridge.CatalogR("hive")
	return bridge.NewInputDocument(bridge.NewAction(bridge.OpAccessCatalog, &r), qc)
}

func TestDecideSingle_200_Allow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": true}`))
	}))
	defer srv.Close()

	client := NewClient(nil, false, false)
	decision, err := client.DecideSingle(context.Background(), srv.URL, testDoc())
	require.NoError(t, err)
	require.True(t, decision.Allowed())
}

func TestDecideSingle_200_EmptyBodyDeniesByAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(nil, false, false)
	decision, err := client.DecideSingle(context.Background(), srv.URL, testDoc())
	require.NoError(t, err)
	require.False(t, decision.Allowed())
}

func TestDecideSingle_UnknownFieldsTolerated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": true, "decision_id": "abc-123", "extra": {"nested": 1}}`))
	}))
	defer srv.Close()

	client := NewClient(nil, false, false)
	decision, err := client.DecideSingle(context.Background(), srv.URL, testDoc())
	require.NoError(t, err)
	require.True(t, decision.Allowed())
	require.Equal(t, "abc-123", decision.DecisionID)
}

func TestDecideSingle_404_PolicyNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(nil, false, false)
	_, err := client.DecideSingle(context.Background(), srv.URL, testDoc())
	require.Error(t, err)
	var notFound *bridgeerr.PolicyNotFound
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, srv.URL, notFound.PolicyURI)
}

func TestDecideSingle_500_PdpServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewClient(nil, false, false)
	_, err := client.DecideSingle(context.Background(), srv.URL, testDoc())
	require.Error(t, err)
	var serverErr *bridgeerr.PdpServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	require.Equal(t, "boom", serverErr.Body)
}

func TestDecideSingle_400_PdpServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(nil, false, false)
	_, err := client.DecideSingle(context.Background(), srv.URL, testDoc())
	require.Error(t, err)
	var serverErr *bridgeerr.PdpServerError
	require.ErrorAs(t, err, &serverErr)
}

func TestDecideSingle_MalformedJSON_DeserializeFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(nil, false, false)
	_, err := client.DecideSingle(context.Background(), srv.URL, testDoc())
	require.Error(t, err)
	var deserr *bridgeerr.DeserializeFailed
	require.ErrorAs(t, err, &deserr)
}

func TestDecideSingle_TransportFailure_QueryFailed(t *testing.T) {
	client := NewClient(nil, false, false)
	_, err := client.DecideSingle(context.Background(), "http://127.0.0.1:1/unreachable", testDoc())
	require.Error(t, err)
	var queryErr *bridgeerr.QueryFailed
	require.ErrorAs(t, err, &queryErr)
}

func TestDecideBatch_200_ParsesResultIndices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": [0, 2]}`))
	}))
	defer srv.Close()

	client := NewClient(nil, false, false)
	candidates := []bridge.Resource{
		bridge.TableR("hive", "a", "t1", nil, nil),
		bridge.TableR("hive", "a", "t2", nil, nil),
		bridge.TableR("hive", "a", "t3", nil, nil),
	}
	doc := bridge.NewBatchInputDocument(bridge.OpFilterTables, bridge.NewQueryContext(bridge.NewFullIdentity("alice", nil, nil, nil, nil), ""), candidates)

	decision, err := client.DecideBatch(context.Background(), srv.URL, doc)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, decision.Result)
}

func TestDecideBatch_AbsentResultIsEmptySet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(nil, false, false)
	doc := bridge.NewBatchInputDocument(bridge.OpFilterTables, bridge.NewQueryContext(bridge.NewFullIdentity("alice", nil, nil, nil, nil), ""), nil)

	decision, err := client.DecideBatch(context.Background(), srv.URL, doc)
	require.NoError(t, err)
	require.Empty(t, decision.Result)
}
