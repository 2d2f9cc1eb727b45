// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package codelist fetches the open codelists published alongside the RDLS
// schema and extracts their codes.
package codelist

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/fetch"
)

// codeColumn is the header of the column holding the codes.
const codeColumn = "Code"

// Client resolves open codelist names against the schema's base URL:
// <schema-base>/codelists/open/<name>.
type Client struct {
	baseURL string
	fetcher *fetch.Client
}

// NewClient derives the codelist base URL from the schema URL by dropping
// its final path segment.
func NewClient(schemaURL string) (*Client, error) {
	u, err := url.Parse(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("parsing schema URL: %w", err)
	}
	u.Path = path.Dir(u.Path)
	u.RawQuery = ""
	u.Fragment = ""
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		fetcher: fetch.New(),
	}, nil
}

// URL returns the full URL an open codelist is fetched from.
func (c *Client) URL(name string) string {
	return c.baseURL + "/codelists/open/" + name
}

// Codes fetches an open codelist CSV and returns its "Code" column, one
// entry per data row, in file order.
func (c *Client) Codes(ctx context.Context, name string) ([]string, error) {
	body, err := c.fetcher.Get(ctx, c.URL(name))
	if err != nil {
		return nil, fmt.Errorf("codelist %s: %w", name, err)
	}
	codes, err := parseCodes(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("codelist %s: %w", name, err)
	}
	return codes, nil
}

func parseCodes(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	codeIdx := -1
	for i, name := range header {
		if name == codeColumn {
			codeIdx = i
			break
		}
	}
	if codeIdx < 0 {
		return nil, fmt.Errorf("no %q column in header %v", codeColumn, header)
	}

	var codes []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if codeIdx >= len(record) {
			continue
		}
		codes = append(codes, record[codeIdx])
	}
	return codes, nil
}
