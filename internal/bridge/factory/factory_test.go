package factory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
)

func TestFromMap_MissingPolicyURIIsFatal(t *testing.T) {
	_, err := FromMap(map[string]string{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "opa.policy.uri")
}

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"opa.policy.uri": "http://pdp.example/v1/data/trino",
	})
	require.NoError(t, err)
	require.Equal(t, "http://pdp.example/v1/data/trino", cfg.PolicyURI)
	require.Empty(t, cfg.BatchedPolicyURI)
	require.False(t, cfg.LogRequests)
	require.False(t, cfg.LogResponses)
	require.False(t, cfg.AllowPermissionManagement)
}

func TestFromMap_AllKeys(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"opa.policy.uri":                             "http://pdp.example/single",
		"opa.policy.batched-uri":                     "http://pdp.example/batch",
		"opa.log-requests":                           "true",
		"opa.log-responses":                          "true",
		"opa.allow-permission-management-operations": "true",
		"opa.http-client.timeout":                    "5s",
		"opa.http-client.max-idle-conns":             "42",
		"opa.http-client.tls-insecure-skip-verify":   "true",
		"opa.http-client.proxy-url":                  "http://proxy.example:8080",
	})
	require.NoError(t, err)
	require.Equal(t, "http://pdp.example/batch", cfg.BatchedPolicyURI)
	require.True(t, cfg.LogRequests)
	require.True(t, cfg.LogResponses)
	require.True(t, cfg.AllowPermissionManagement)
	require.Equal(t, 5*time.Second, cfg.HTTPClientTimeout)
	require.Equal(t, 42, cfg.HTTPClientMaxIdleConns)
	require.True(t, cfg.HTTPClientTLSInsecureSkip)
	require.Equal(t, "http://proxy.example:8080", cfg.HTTPClientProxyURL)
}

func TestFromMap_MalformedPolicyURIIsFatal(t *testing.T) {
	_, err := FromMap(map[string]string{"opa.policy.uri": "not a url"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "opa.policy.uri")

	_, err = FromMap(map[string]string{"opa.policy.uri": "ftp://pdp.example/single"})
	require.Error(t, err)
}

func TestFromMap_MalformedBatchedPolicyURIIsFatal(t *testing.T) {
	_, err := FromMap(map[string]string{
		"opa.policy.uri":          "http://pdp.example/single",
		"opa.policy.batched-uri": "not a url",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "opa.policy.batched-uri")
}

func TestFromMap_InvalidBoolIsRejected(t *testing.T) {
	_, err := FromMap(map[string]string{
		"opa.policy.uri":    "http://pdp.example/single",
		"opa.log-requests": "not-a-bool",
	})
	require.Error(t, err)
}

func TestNew_SelectsSingleWhenNoBatchURI(t *testing.T) {
	var singleCalls int64
	single := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&singleCalls, 1)
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	defer single.Close()

	control, err := New(map[string]string{
		"opa.policy.uri": single.URL,
	})
	require.NoError(t, err)
	require.NotNil(t, control)

	qc := bridge.NewQueryContext(bridge.NewFullIdentity("alice", nil, nil, nil, nil), "")
	kept, err := control.FilterCatalogs(context.Background(), qc, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, kept)
	require.Equal(t, int64(2), atomic.LoadInt64(&singleCalls))
}

func TestNew_SelectsBatchWhenBatchURIConfigured(t *testing.T) {
	var singleCalls, batchCalls int64
	single := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&singleCalls, 1)
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	defer single.Close()
	batch := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&batchCalls, 1)
		_, _ = w.Write([]byte(`{"result": [0, 1]}`))
	}))
	defer batch.Close()

	control, err := New(map[string]string{
		"opa.policy.uri":          single.URL,
		"opa.policy.batched-uri": batch.URL,
	})
	require.NoError(t, err)
	require.NotNil(t, control)

	qc := bridge.NewQueryContext(bridge.NewFullIdentity("alice", nil, nil, nil, nil), "")
	kept, err := control.FilterCatalogs(context.Background(), qc, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, kept)
	require.Equal(t, int64(1), atomic.LoadInt64(&batchCalls))
	require.Equal(t, int64(0), atomic.LoadInt64(&singleCalls))
}

func TestNew_MissingPolicyURIFails(t *testing.T) {
	_, err := New(map[string]string{})
	require.Error(t, err)
}
