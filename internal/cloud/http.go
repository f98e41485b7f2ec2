package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultRequestTimeout = 15 * time.Second

// HTTPClient is the REST implementation of APIClient.
type HTTPClient struct {
	baseURL string
	apiKey  string
	token   string
	client  *http.Client
	logger  Logger
}

// NewHTTPClient creates a REST client for the vendor API.
//
// Parameters:
//   - baseURL: API root, without trailing slash
//   - apiKey: Vendor-issued application key, sent as x-api-key
//   - token: OAuth access token, sent as Authorization bearer
//   - timeout: Per-request timeout (0 uses the 15s default)
func NewHTTPClient(baseURL, apiKey, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the client.
func (c *HTTPClient) SetLogger(logger Logger) {
	c.logger = logger
}

// ListAppliances returns the account's appliances.
func (c *HTTPClient) ListAppliances(ctx context.Context) ([]ApplianceSummary, error) {
	var summaries []ApplianceSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/appliances", nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetApplianceState fetches the full state document for one appliance.
func (c *HTTPClient) GetApplianceState(ctx context.Context, applianceID string) (map[string]any, error) {
	var state map[string]any
	path := "/api/v1/appliances/" + applianceID + "/state"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &state); err != nil {
		return nil, err
	}
	return state, nil
}

// GetApplianceCapabilities fetches the live capability document.
func (c *HTTPClient) GetApplianceCapabilities(ctx context.Context, applianceID string) (map[string]any, error) {
	var caps map[string]any
	path := "/api/v1/appliances/" + applianceID + "/capabilities"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &caps); err != nil {
		return nil, err
	}
	if caps == nil {
		caps = map[string]any{}
	}
	return caps, nil
}

// GetApplianceInfo fetches the static identity record.
func (c *HTTPClient) GetApplianceInfo(ctx context.Context, applianceID string) (*ApplianceInfo, error) {
	var info ApplianceInfo
	path := "/api/v1/appliances/" + applianceID + "/info"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ExecuteCommand sends a command payload to one appliance.
func (c *HTTPClient) ExecuteCommand(ctx context.Context, applianceID string, command map[string]any) error {
	path := "/api/v1/appliances/" + applianceID + "/command"
	return c.doJSON(ctx, http.MethodPut, path, command, nil)
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s: status %d: %s",
			ErrRequestFailed, method, path, resp.StatusCode, string(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
