// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package template_test

import (
	"testing"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/template"
	"github.com/stretchr/testify/assert"
)

func TestOrder(t *testing.T) {
	priority := []string{"datasets", "resources", "hazard_event_sets", "links"}

	tests := []struct {
		name         string
		found        []string
		wantOrdered  []string
		wantUnlisted []string
	}{
		{
			name:        "priority order wins over discovery order",
			found:       []string{"links", "datasets", "resources"},
			wantOrdered: []string{"datasets", "resources", "links"},
		},
		{
			name:        "absent priority sheets dropped",
			found:       []string{"datasets"},
			wantOrdered: []string{"datasets"},
		},
		{
			name:         "unlisted sheets appended in discovery order",
			found:        []string{"zebra", "datasets", "alpha"},
			wantOrdered:  []string{"datasets", "zebra", "alpha"},
			wantUnlisted: []string{"zebra", "alpha"},
		},
		{
			name:         "nothing listed",
			found:        []string{"b", "a"},
			wantOrdered:  []string{"b", "a"},
			wantUnlisted: []string{"b", "a"},
		},
		{
			name: "empty input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ordered, unlisted := template.Order(tt.found, priority)
			assert.Equal(t, tt.wantOrdered, ordered)
			assert.Equal(t, tt.wantUnlisted, unlisted)
		})
	}
}
