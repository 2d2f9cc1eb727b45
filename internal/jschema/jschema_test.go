// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package jschema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/jschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "string"},
		"hazard": {"type": "object", "properties": {"b": {"type": "string"}, "a": {"type": "string"}}},
		"loss": {"type": "object", "properties": {"x": {"type": "string"}}}
	},
	"$defs": {
		"Classification": {
			"type": "object",
			"properties": {
				"scheme": {"type": "string", "codelist": "classification_scheme.csv"}
			}
		}
	}
}`

func TestParseKeyOrder(t *testing.T) {
	_, keyOrder, err := jschema.Parse([]byte(sampleSchema))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "hazard", "loss"}, keyOrder["properties"])
	assert.Equal(t, []string{"b", "a"}, keyOrder["properties.hazard.properties"],
		"declaration order must survive, not alphabetical order")
	assert.Equal(t, []string{"scheme"}, keyOrder["$defs.Classification.properties"])
}

func TestParseInvalidJSON(t *testing.T) {
	_, _, err := jschema.Parse([]byte("{not json"))
	assert.Error(t, err)
}

func TestCodelist(t *testing.T) {
	schema, _, err := jschema.Parse([]byte(sampleSchema))
	require.NoError(t, err)

	scheme := jschema.DefProperty(schema, "Classification", "scheme")
	require.NotNil(t, scheme)
	assert.Equal(t, "classification_scheme.csv", jschema.Codelist(scheme))

	assert.Empty(t, jschema.Codelist(schema.Properties["id"]))
	assert.Empty(t, jschema.Codelist(nil))
}

func TestSetCodelist(t *testing.T) {
	schema, _, err := jschema.Parse([]byte(sampleSchema))
	require.NoError(t, err)

	field := schema.Properties["id"]
	jschema.SetCodelist(field, "ids.csv")
	assert.Equal(t, "ids.csv", jschema.Codelist(field))

	// Overwrite an existing annotation.
	scheme := jschema.DefProperty(schema, "Classification", "scheme")
	jschema.SetCodelist(scheme, "other.csv")
	assert.Equal(t, "other.csv", jschema.Codelist(scheme))
}

func TestPatchClassificationScheme(t *testing.T) {
	t.Run("binds the scheme codelist", func(t *testing.T) {
		// The published schema ships without the annotation.
		schema, _, err := jschema.Parse([]byte(`{
			"type": "object",
			"$defs": {
				"Classification": {
					"type": "object",
					"properties": {"scheme": {"type": "string"}}
				}
			}
		}`))
		require.NoError(t, err)

		jschema.PatchClassificationScheme(schema)

		scheme := jschema.DefProperty(schema, "Classification", "scheme")
		require.NotNil(t, scheme)
		assert.Equal(t, "classification_scheme.csv", jschema.Codelist(scheme))
	})

	t.Run("no-op without the def", func(t *testing.T) {
		schema, _, err := jschema.Parse([]byte(`{"type": "object", "properties": {"id": {"type": "string"}}}`))
		require.NoError(t, err)

		assert.NotPanics(t, func() { jschema.PatchClassificationScheme(schema) })
	})
}

func TestDefPropertyMissing(t *testing.T) {
	schema, _, err := jschema.Parse([]byte(sampleSchema))
	require.NoError(t, err)

	assert.Nil(t, jschema.DefProperty(schema, "Nope", "scheme"))
	assert.Nil(t, jschema.DefProperty(schema, "Classification", "nope"))
}

func TestPruneComponents(t *testing.T) {
	components := []string{"hazard", "loss"}

	t.Run("keep one", func(t *testing.T) {
		schema, _, err := jschema.Parse([]byte(sampleSchema))
		require.NoError(t, err)

		jschema.PruneComponents(schema, components, "hazard")
		assert.Contains(t, schema.Properties, "hazard")
		assert.NotContains(t, schema.Properties, "loss")
		assert.Contains(t, schema.Properties, "id", "non-component properties stay")
	})

	t.Run("keep all", func(t *testing.T) {
		schema, _, err := jschema.Parse([]byte(sampleSchema))
		require.NoError(t, err)

		jschema.PruneComponents(schema, components, "")
		assert.Contains(t, schema.Properties, "hazard")
		assert.Contains(t, schema.Properties, "loss")
	})
}

func TestWriteFile(t *testing.T) {
	schema, _, err := jschema.Parse([]byte(sampleSchema))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, jschema.WriteFile(path, schema))

	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	// Round-trips through Parse.
	reparsed, _, err := jschema.Parse(data)
	require.NoError(t, err)
	assert.Contains(t, reparsed.Properties, "hazard")
}
