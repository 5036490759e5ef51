// Package factory builds a hostspi.SystemAccessControl from configuration:
// it constructs the HTTP decision client, picks the single-decision or
// batch authorizer depending on whether a batch URI is configured, and
// wraps the result with the permission-management gate.
package factory

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chirino/opa-trino-bridge/internal/bridge/authorizer"
	"github.com/chirino/opa-trino-bridge/internal/bridge/pdpclient"
	"github.com/chirino/opa-trino-bridge/internal/hostspi"
)

// Config is the resolved shape of the opa.* configuration keys.
type Config struct {
	PolicyURI                 string
	BatchedPolicyURI          string
	LogRequests               bool
	LogResponses              bool
	AllowPermissionManagement bool
	HTTPClientTimeout         time.Duration
	HTTPClientMaxIdleConns    int
	HTTPClientTLSInsecureSkip bool
	HTTPClientProxyURL        string
}

const (
	keyPolicyURI                 = "opa.policy.uri"
	keyBatchedPolicyURI          = "opa.policy.batched-uri"
	keyLogRequests               = "opa.log-requests"
	keyLogResponses              = "opa.log-responses"
	keyAllowPermissionManagement = "opa.allow-permission-management-operations"
	keyHTTPClientTimeout         = "opa.http-client.timeout"
	keyHTTPClientMaxIdleConns    = "opa.http-client.max-idle-conns"
	keyHTTPClientTLSInsecureSkip = "opa.http-client.tls-insecure-skip-verify"
	keyHTTPClientProxyURL        = "opa.http-client.proxy-url"
)

// FromMap parses the opa.* configuration keys out of a flat
// map[string]string, the shape the host engine hands plugin
// configuration in as. A missing opa.policy.uri is a fatal startup
// error.
func FromMap(m map[string]string) (Config, error) {
	cfg := Config{}

	cfg.PolicyURI = strings.TrimSpace(m[keyPolicyURI])
	if cfg.PolicyURI == "" {
		return Config{}, fmt.Errorf("%s is required", keyPolicyURI)
	}
	if err := validatePolicyURI(keyPolicyURI, cfg.PolicyURI); err != nil {
		return Config{}, err
	}
	cfg.BatchedPolicyURI = strings.TrimSpace(m[keyBatchedPolicyURI])
	if cfg.BatchedPolicyURI != "" {
		if err := validatePolicyURI(keyBatchedPolicyURI, cfg.BatchedPolicyURI); err != nil {
			return Config{}, err
		}
	}

	if err := applyBool(m, keyLogRequests, &cfg.LogRequests); err != nil {
		return Config{}, err
	}
	if err := applyBool(m, keyLogResponses, &cfg.LogResponses); err != nil {
		return Config{}, err
	}
	if err := applyBool(m, keyAllowPermissionManagement, &cfg.AllowPermissionManagement); err != nil {
		return Config{}, err
	}
	if err := applyDuration(m, keyHTTPClientTimeout, &cfg.HTTPClientTimeout); err != nil {
		return Config{}, err
	}
	if err := applyInt(m, keyHTTPClientMaxIdleConns, &cfg.HTTPClientMaxIdleConns); err != nil {
		return Config{}, err
	}
	if err := applyBool(m, keyHTTPClientTLSInsecureSkip, &cfg.HTTPClientTLSInsecureSkip); err != nil {
		return Config{}, err
	}
	cfg.HTTPClientProxyURL = strings.TrimSpace(m[keyHTTPClientProxyURL])

	return cfg, nil
}

// validatePolicyURI rejects anything that isn't a well-formed absolute
// http(s) URL at startup, rather than letting a typo surface later as an
// opaque connection failure on the first callback.
func validatePolicyURI(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s: %q is not an absolute http(s) URL", key, raw)
	}
	return nil
}

func applyBool(m map[string]string, key string, dest *bool) error {
	raw := strings.TrimSpace(m[key])
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dest = v
	return nil
}

func applyInt(m map[string]string, key string, dest *int) error {
	raw := strings.TrimSpace(m[key])
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dest = v
	return nil
}

func applyDuration(m map[string]string, key string, dest *time.Duration) error {
	raw := strings.TrimSpace(m[key])
	if raw == "" {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dest = v
	return nil
}

// New builds a hostspi.SystemAccessControl from a flat configuration map:
// resolve config, construct the shared HTTP client, pick the single or
// batch authorizer, wrap it with the permission-management gate.
func New(m map[string]string) (hostspi.SystemAccessControl, error) {
	cfg, err := FromMap(m)
	if err != nil {
		return nil, err
	}

	httpClient, err := pdpclient.NewHTTPClient(pdpclient.HTTPClientOptions{
		Timeout:               cfg.HTTPClientTimeout,
		MaxIdleConns:          cfg.HTTPClientMaxIdleConns,
		TLSInsecureSkipVerify: cfg.HTTPClientTLSInsecureSkip,
		ProxyURL:              cfg.HTTPClientProxyURL,
	})
	if err != nil {
		return nil, err
	}

	client := pdpclient.NewClient(httpClient, cfg.LogRequests, cfg.LogResponses)
	single := authorizer.NewSingleAuthorizer(client, cfg.PolicyURI)

	var delegate hostspi.SystemAccessControl = single
	if cfg.BatchedPolicyURI != "" {
		delegate = authorizer.NewBatchAuthorizer(single, client, cfg.BatchedPolicyURI)
	}

	return authorizer.NewGate(delegate, cfg.AllowPermissionManagement), nil
}
