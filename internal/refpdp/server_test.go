package refpdp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServer_DecisionEndpoint(t *testing.T) {
	engine, err := NewEngine(context.Background(), "")
	require.NoError(t, err)
	srv := NewServer(engine, "/v1/decision", "/v1/filter")

	body := []byte(`{"input": {"action": {"operation": "SelectFromColumns"}, "context": {"identity": {"user": "alice"}}}}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/decision", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, true, resp["result"])
}

func TestServer_DecisionEndpoint_DeniesDropTable(t *testing.T) {
	engine, err := NewEngine(context.Background(), "")
	require.NoError(t, err)
	srv := NewServer(engine, "/v1/decision", "/v1/filter")

	body := []byte(`{"input": {"action": {"operation": "DropTable"}, "context": {"identity": {"user": "alice"}}}}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/decision", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, false, resp["result"])
}

func TestServer_FilterEndpoint(t *testing.T) {
	engine, err := NewEngine(context.Background(), "")
	require.NoError(t, err)
	srv := NewServer(engine, "/v1/decision", "/v1/filter")

	body := []byte(`{"input": {"action": {"operation": "FilterCatalogs", "filterResources": [{"catalog": {"name": "a"}}, {"catalog": {"name": "b"}}]}, "context": {"identity": {"user": "alice"}}}}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/filter", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Result []int `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []int{0, 1}, resp.Result)
}

func TestServer_BundleRoundTrip(t *testing.T) {
	engine, err := NewEngine(context.Background(), "")
	require.NoError(t, err)
	srv := NewServer(engine, "/v1/decision", "/v1/filter")

	getReq := httptest.NewRequest(http.MethodGet, "/v1/bundle", nil)
	getRec := httptest.NewRecorder()
	srv.Router.ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	var bundle PolicyBundle
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &bundle))
	require.NotEmpty(t, bundle.Decision)
	require.NotEmpty(t, bundle.Filter)

	putBody, err := json.Marshal(bundle)
	require.NoError(t, err)
	putReq := httptest.NewRequest(http.MethodPut, "/v1/bundle", bytes.NewReader(putBody))
	putReq.Header.Set("Content-Type", "application/json")
	putRec := httptest.NewRecorder()
	srv.Router.ServeHTTP(putRec, putReq)
	require.Equal(t, http.StatusOK, putRec.Code)
}
