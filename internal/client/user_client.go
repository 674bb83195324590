// Package client holds the HTTP collaborator clients for the services this
// core depends on but does not own. Every existence check reports a
// tri-state Presence; collapsing Absent and Unreachable into one outcome is
// the caller's policy, not the client's.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-jobify-backend/internal/domain"
)

// UserHTTPClient talks to the user (auth) service.
type UserHTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewUserClient builds a client against the user service. timeout bounds
// every call; a timed-out check reports PresenceUnreachable.
func NewUserClient(baseURL string, timeout time.Duration) *UserHTTPClient {
	return &UserHTTPClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ValidateJobSeekerExists checks the user service for a job seeker id.
func (c *UserHTTPClient) ValidateJobSeekerExists(ctx context.Context, jobSeekerID int64) (domain.Presence, error) {
	url := fmt.Sprintf("%s/api/users/%d/exists", c.baseURL, jobSeekerID)
	return checkExists(ctx, c.httpClient, url)
}

// GetUserDetails fetches display details for a user. Callers treat failure
// as "no details", never as an operation failure.
func (c *UserHTTPClient) GetUserDetails(ctx context.Context, userID string) (*domain.UserDetails, error) {
	url := fmt.Sprintf("%s/api/users/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create user details request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send user details request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	var details domain.UserDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("decode user details response: %w", err)
	}
	return &details, nil
}

// checkExists performs a GET against an .../exists endpoint returning a bare
// JSON boolean. Network failure, timeout, or an unexpected status all map to
// PresenceUnreachable with the cause attached.
func checkExists(ctx context.Context, hc *http.Client, url string) (domain.Presence, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.PresenceUnreachable, fmt.Errorf("create existence request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return domain.PresenceUnreachable, fmt.Errorf("send existence request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.PresenceAbsent, nil
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.PresenceUnreachable, fmt.Errorf("existence check returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var exists bool
	if err := json.NewDecoder(resp.Body).Decode(&exists); err != nil {
		return domain.PresenceUnreachable, fmt.Errorf("decode existence response: %w", err)
	}
	if !exists {
		return domain.PresenceAbsent, nil
	}
	return domain.PresenceExists, nil
}
