// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package fetch provides the HTTP GET helper used for schema and codelist
// downloads. Every request is attempted exactly once: a template built from
// a partially fetched standard is worse than no template, so failures abort
// the run instead of being retried.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "rdls-spreadsheet-template/dev"
)

// Client wraps an http.Client with the defaults used by the generator.
type Client struct {
	UserAgent  string
	HTTPClient *http.Client
}

// New creates a Client with the default timeout and User-Agent.
func New() *Client {
	return &Client{
		UserAgent:  defaultUserAgent,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Get fetches url and returns the response body.
// Any transport error or non-2xx status is returned as an error.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}
	return body, nil
}
