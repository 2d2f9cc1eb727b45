// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package jschema_test

import (
	"testing"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/jschema"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeyOrder(t *testing.T) {
	data := []byte(`{
		"properties": {
			"z": {"type": "string"},
			"a": {"type": "object", "properties": {"y": {}, "x": {}}},
			"m": {"type": "array", "items": {"properties": {"c": {}, "b": {}}}}
		}
	}`)

	keyOrder, err := jschema.ExtractKeyOrder(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, keyOrder["properties"])
	assert.Equal(t, []string{"y", "x"}, keyOrder["properties.a.properties"])
	assert.Equal(t, []string{"c", "b"}, keyOrder["properties.m.items.properties"])
}

func TestOrderedKeys(t *testing.T) {
	props := map[string]*jsonschema.Schema{
		"a": {},
		"b": {},
		"c": {},
	}

	t.Run("captured order", func(t *testing.T) {
		keyOrder := map[string][]string{"properties": {"c", "a", "b"}}
		assert.Equal(t, []string{"c", "a", "b"}, jschema.OrderedKeys(keyOrder, "properties", props))
	})

	t.Run("stale captured names skipped", func(t *testing.T) {
		keyOrder := map[string][]string{"properties": {"c", "removed", "a", "b"}}
		assert.Equal(t, []string{"c", "a", "b"}, jschema.OrderedKeys(keyOrder, "properties", props))
	})

	t.Run("uncaptured path sorts", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, jschema.OrderedKeys(nil, "properties", props))
	})
}
