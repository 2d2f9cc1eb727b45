// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package codelist_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/codelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLDerivation(t *testing.T) {
	tests := []struct {
		name      string
		schemaURL string
		want      string
	}{
		{
			"published schema",
			"https://rdl-standard.readthedocs.io/en/dev/rdls_schema.json",
			"https://rdl-standard.readthedocs.io/en/dev/codelists/open/country.csv",
		},
		{
			"schema at root",
			"https://example.com/schema.json",
			"https://example.com/codelists/open/country.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := codelist.NewClient(tt.schemaURL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.URL("country.csv"))
		})
	}
}

func TestCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/codelists/open/hazard_type.csv", r.URL.Path)
		_, _ = w.Write([]byte("Code,Title,Description\nflood,Flood,Water.\nstorm,Storm,Wind.\n"))
	}))
	defer srv.Close()

	c, err := codelist.NewClient(srv.URL + "/rdls_schema.json")
	require.NoError(t, err)

	codes, err := c.Codes(context.Background(), "hazard_type.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"flood", "storm"}, codes)
}

func TestCodesColumnPosition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Title,Code\nFlood,flood\n"))
	}))
	defer srv.Close()

	c, err := codelist.NewClient(srv.URL + "/rdls_schema.json")
	require.NoError(t, err)

	codes, err := c.Codes(context.Background(), "x.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"flood"}, codes, "Code column is found by header name, not position")
}

func TestCodesMissingColumn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Name,Title\na,A\n"))
	}))
	defer srv.Close()

	c, err := codelist.NewClient(srv.URL + "/rdls_schema.json")
	require.NoError(t, err)

	_, err = c.Codes(context.Background(), "x.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code")
}

func TestCodesFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := codelist.NewClient(srv.URL + "/rdls_schema.json")
	require.NoError(t, err)

	_, err = c.Codes(context.Background(), "x.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.csv")
}
