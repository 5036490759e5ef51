// Package pdpclient is the HTTP decision client: it sends one POST per
// authorization call and returns a typed decision, interpreting only the
// transport status code and JSON shape. It never looks at decision
// content — whether a verdict is an allow or a deny is the authorizer's
// concern, not this package's.
package pdpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chirino/opa-trino-bridge/internal/bridge"
	"github.com/chirino/opa-trino-bridge/internal/bridge/bridgeerr"
)

// HTTPClientOptions configures the shared *http.Client every Client call
// runs through. Zero value means "use net/http's defaults".
type HTTPClientOptions struct {
	Timeout               time.Duration
	MaxIdleConns          int
	TLSInsecureSkipVerify bool
	ProxyURL              string
}

// NewHTTPClient builds an *http.Client from opts, ready to pass to
// NewClient. A zero-value HTTPClientOptions yields a client equivalent
// to http.DefaultClient, keeping net/http's default transport settings
// (including its idle-connection limit of 100).
func NewHTTPClient(opts HTTPClientOptions) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.MaxIdleConns > 0 {
		transport.MaxIdleConns = opts.MaxIdleConns
	}
	if opts.TLSInsecureSkipVerify {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
	}
	if opts.ProxyURL != "" {
		proxyURL, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("opa.http-client.proxy-url: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	return &http.Client{Transport: transport, Timeout: opts.Timeout}, nil
}

// Client is the HTTP decision client. A single Client is shared across
// every callback the authorizer dispatches; it holds no per-call state.
type Client struct {
	httpClient   *http.Client
	logRequests  bool
	logResponses bool
}

// NewClient builds a Client. httpClient may be nil, in which case
// http.DefaultClient is used.
func NewClient(httpClient *http.Client, logRequests, logResponses bool) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, logRequests: logRequests, logResponses: logResponses}
}

// DecideSingle POSTs an InputDocument to uri and parses the response as a
// SingleDecision.
func (c *Client) DecideSingle(ctx context.Context, uri string, doc bridge.InputDocument) (bridge.SingleDecision, error) {
	var decision bridge.SingleDecision
	err := c.post(ctx, uri, doc, &decision)
	return decision, err
}

// DecideBatch POSTs a BatchInputDocument to uri and parses the response
// as a BatchDecision.
func (c *Client) DecideBatch(ctx context.Context, uri string, doc bridge.BatchInputDocument) (bridge.BatchDecision, error) {
	var decision bridge.BatchDecision
	err := c.post(ctx, uri, doc, &decision)
	return decision, err
}

func (c *Client) post(ctx context.Context, uri string, body any, out any) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return &bridgeerr.SerializeFailed{Cause: err}
	}

	if c.logRequests {
		log.Debug("opa bridge: sending policy request", "uri", uri, "body", string(reqBody))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(reqBody))
	if err != nil {
		return &bridgeerr.QueryFailed{PolicyURI: uri, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &bridgeerr.QueryFailed{PolicyURI: uri, Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &bridgeerr.QueryFailed{PolicyURI: uri, Cause: fmt.Errorf("reading response body: %w", err)}
	}

	if c.logResponses {
		log.Debug("opa bridge: received policy response", "uri", uri, "status", resp.StatusCode, "body", string(respBody))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.Unmarshal(respBody, out); err != nil {
			return &bridgeerr.DeserializeFailed{Cause: err}
		}
		if c.logRequests || c.logResponses {
			if id := decisionID(out); id != "" {
				log.Debug("opa bridge: decision correlation id", "uri", uri, "decision_id", id)
			}
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &bridgeerr.PolicyNotFound{PolicyURI: uri}
	default:
		return &bridgeerr.PdpServerError{PolicyURI: uri, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
}

// decisionID extracts the decision point's correlation id from a decoded
// decision, if the concrete type carries one. Returns "" otherwise.
func decisionID(out any) string {
	switch d := out.(type) {
	case *bridge.SingleDecision:
		return d.DecisionID
	case *bridge.BatchDecision:
		return d.DecisionID
	default:
		return ""
	}
}
