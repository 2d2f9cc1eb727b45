// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package jschema provides RDLS JSON Schema parsing, annotation access, and
// component pruning.
package jschema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
)

// codelistKeyword is the custom RDLS annotation binding a field to a
// controlled vocabulary file.
const codelistKeyword = "codelist"

// Parse unmarshals raw schema JSON and extracts the key order of all
// "properties" objects. The jsonschema type stores properties in a map, so
// original declaration order is only recoverable from the raw bytes.
func Parse(data []byte) (*jsonschema.Schema, map[string][]string, error) {
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, nil, fmt.Errorf("parsing schema: %w", err)
	}
	keyOrder, err := ExtractKeyOrder(data)
	if err != nil {
		return nil, nil, fmt.Errorf("extracting key order: %w", err)
	}
	return &schema, keyOrder, nil
}

// Codelist returns the codelist annotation of a schema node, or "" if the
// node carries none.
func Codelist(s *jsonschema.Schema) string {
	if s == nil || s.Extra == nil {
		return ""
	}
	if name, ok := s.Extra[codelistKeyword].(string); ok {
		return name
	}
	return ""
}

// SetCodelist sets the codelist annotation on a schema node.
func SetCodelist(s *jsonschema.Schema, name string) {
	if s.Extra == nil {
		s.Extra = make(map[string]any)
	}
	s.Extra[codelistKeyword] = name
}

// DefProperty returns the schema node at $defs/<defName>/properties/<propName>,
// or nil if any step is missing.
func DefProperty(root *jsonschema.Schema, defName, propName string) *jsonschema.Schema {
	def, ok := root.Defs[defName]
	if !ok || def == nil {
		return nil
	}
	return def.Properties[propName]
}

// classificationSchemeCodelist is the vocabulary for classification schemes.
const classificationSchemeCodelist = "classification_scheme.csv"

// PatchClassificationScheme binds the Classification $def's scheme property
// to its codelist. The published schema does not carry the annotation yet;
// can be removed once https://github.com/GFDRR/rdl-standard/pull/181 is
// merged.
func PatchClassificationScheme(root *jsonschema.Schema) {
	if prop := DefProperty(root, "Classification", "scheme"); prop != nil {
		SetCodelist(prop, classificationSchemeCodelist)
	}
}

// PruneComponents deletes every component property from the root except keep.
// With keep == "" the schema is left untouched (full template).
func PruneComponents(root *jsonschema.Schema, components []string, keep string) {
	if keep == "" {
		return
	}
	for _, comp := range components {
		if comp != keep {
			delete(root.Properties, comp)
		}
	}
}

// WriteFile writes the schema as indented JSON, the form flatten-tool reads.
func WriteFile(path string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing schema: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
