// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package mapping_test

import (
	"testing"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/mapping"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain column", "id", "id"},
		{"single index", "resources/0/id", "resources/id"},
		{"nested indices", "hazard_event_sets/0/events/0/id", "hazard_event_sets/events/id"},
		{"all indices collapse to one key", "a/0/b", "a/b"},
		{"index-like segment kept", "a/10/b", "a/10/b"},
		{"segment containing zero kept", "a/f0/b", "a/f0/b"},
		{"trailing index", "tags/0", "tags"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapping.Normalize(tt.path))
		})
	}
}
