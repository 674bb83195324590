package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-jobify-backend/internal/domain"
)

// JobOfferHTTPClient talks to the job-offer service.
type JobOfferHTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewJobOfferClient builds a client against the job-offer service.
func NewJobOfferClient(baseURL string, timeout time.Duration) *JobOfferHTTPClient {
	return &JobOfferHTTPClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ValidateJobOfferExists checks the job-offer service for an offer id.
func (c *JobOfferHTTPClient) ValidateJobOfferExists(ctx context.Context, jobOfferID int64) (domain.Presence, error) {
	url := fmt.Sprintf("%s/api/joboffers/%d/exists", c.baseURL, jobOfferID)
	return checkExists(ctx, c.httpClient, url)
}
