// Package httpclient provides the HTTP transport used to reach the
// directory server's RPC endpoint. It handles TLS verification toggling,
// session cookies, and non-2xx status translation. The package requires a
// Configurator implementation for endpoint details.
package httpclient

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"

	"github.com/rs/zerolog/log"
)

// EndpointPath is the fixed path of the RPC endpoint on the server.
const EndpointPath = "jsonrpc.php"

// Configurator defines the interface for providing endpoint configuration.
type Configurator interface {
	GetServerURL() string
	GetClientTag() string
	VerifyCert() bool
}

// HTTPError represents a transport-level failure: a non-2xx status from the
// server, carrying the raw response body.
type HTTPError struct {
	StatusCode int    // HTTP status code of the error
	Message    string // response body or status text
}

// Error implements the error interface for HTTPError.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// HTTPClient posts RPC envelopes to the server endpoint. The server keeps a
// PHP session cookie alongside the RPC session identifier, so the client
// carries a cookie jar for the lifetime of the instance.
type HTTPClient struct {
	config     Configurator
	httpClient *http.Client
}

// NewClient creates a new HTTP client using the provided configuration.
// Certificate verification is disabled when the Configurator says so.
func NewClient(config Configurator) *HTTPClient {
	jar, _ := cookiejar.New(nil)
	httpClient := &http.Client{Jar: jar}

	if !config.VerifyCert() {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return &HTTPClient{
		config:     config,
		httpClient: httpClient,
	}
}

// Post sends a serialized RPC envelope to the endpoint and returns the raw
// response body. Non-2xx statuses are returned as *HTTPError.
func (c *HTTPClient) Post(body []byte) ([]byte, error) {
	u, err := url.Parse(c.config.GetServerURL())
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %v", err)
	}
	u.Path = path.Join(u.Path, EndpointPath)

	req, err := http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().Int("status", resp.StatusCode).Str("url", u.String()).Msg("rpc endpoint returned error status")
		msg := string(respBody)
		if msg == "" {
			msg = resp.Status
		}
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	return respBody, nil
}
