package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-jobify-backend/internal/domain"
)

// ApplicationHTTPClient implements domain.ApplicationGateway against a
// remote deployment of the application service. Used when the interview
// engine runs in its own process; a single-binary deployment wires the local
// adapter instead.
type ApplicationHTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewApplicationClient builds a gateway client against the application service.
func NewApplicationClient(baseURL string, timeout time.Duration) *ApplicationHTTPClient {
	return &ApplicationHTTPClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type applicationEnvelope struct {
	Data domain.ApplicationDetails `json:"data"`
}

// GetApplicationByID fetches an application across the service boundary.
func (c *ApplicationHTTPClient) GetApplicationByID(ctx context.Context, id string) (*domain.ApplicationDetails, error) {
	url := fmt.Sprintf("%s/v1/applications/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create application request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send application request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("application service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope applicationEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode application response: %w", err)
	}
	return &envelope.Data, nil
}

type statusUpdateRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

// UpdateApplicationStatus pushes a status change through the application
// service's public status endpoint.
func (c *ApplicationHTTPClient) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	body, err := json.Marshal(statusUpdateRequest{Status: status})
	if err != nil {
		return fmt.Errorf("encode status update: %w", err)
	}

	url := fmt.Sprintf("%s/v1/applications/%s/status", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create status update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send status update request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status update returned status %d", resp.StatusCode)
	}
	return nil
}
