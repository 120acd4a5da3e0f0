package cli

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request headers carrying the signer's public key and signature, matching
// the server's signature middleware.
const (
	headerSigner    = "X-Gridledger-Signer"
	headerSignature = "X-Gridledger-Signature"
)

// Client is an HTTP client for the API. Mutating requests are signed with
// the local ed25519 key over the raw request body.
type Client struct {
	baseURL    string
	key        ed25519.PrivateKey
	httpClient *http.Client
}

// NewClient creates a new API client. key may be nil for read-only use.
func NewClient(baseURL string, key ed25519.PrivateKey) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		key:     key,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Signer returns the hex public key of the loaded signing key
func (c *Client) Signer() (string, error) {
	if c.key == nil {
		return "", fmt.Errorf("no signing key loaded; run 'gridledger key generate' first")
	}
	pub := c.key.Public().(ed25519.PublicKey)
	return hex.EncodeToString(pub), nil
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do performs an HTTP request, signing it when sign is true
func (c *Client) Do(method, path string, body, result any, sign bool) error {
	url := c.baseURL + path

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = data
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if sign {
		signer, err := c.Signer()
		if err != nil {
			return err
		}
		sig := ed25519.Sign(c.key, payload)
		req.Header.Set(headerSigner, signer)
		req.Header.Set(headerSignature, hex.EncodeToString(sig))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs an unsigned GET request
func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result, false)
}

// Post performs a signed POST request
func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, body, result, true)
}

// Put performs a signed PUT request
func (c *Client) Put(path string, body, result any) error {
	return c.Do(http.MethodPut, path, body, result, true)
}

// Delete performs a signed DELETE request
func (c *Client) Delete(path string, result any) error {
	return c.Do(http.MethodDelete, path, nil, result, true)
}
