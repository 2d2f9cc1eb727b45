// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package mapping derives the flattened field-metadata table from the RDLS
// schema: one entry per field path, carrying the header-block values and the
// codelist binding for every column flatten-tool can emit.
package mapping

import (
	"fmt"
	"strings"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/jschema"
	"github.com/google/jsonschema-go/jsonschema"
)

// enumPrefix marks an inline enumeration in the Values column.
const enumPrefix = "Enum: "

// Field is the schema-derived metadata for one field path.
type Field struct {
	// Path is the normalized field path: "/"-joined property names with no
	// array index segments.
	Path        string
	Title       string
	Description string

	// MinOccurs is "1" when the parent schema lists the property as
	// required, "0" otherwise.
	MinOccurs string
	// MaxOccurs is "n" for array fields, "1" otherwise.
	MaxOccurs string

	// Type is the JSON Schema type (string, number, integer, boolean,
	// array, object).
	Type string

	// Values describes the permissible values: "Enum: a, b, c" for
	// enumerations, the schema format otherwise ("date", "geojson", ...),
	// "" when neither applies.
	Values string

	// Codelist is the controlled-vocabulary file bound to the field, or "".
	Codelist string
}

// Required reports whether the field's minimum cardinality is 1.
func (f Field) Required() bool {
	return f.MinOccurs == "1"
}

// InlineCodes returns the enumeration codes embedded in Values, in source
// order, and whether Values carries an inline enumeration at all.
func (f Field) InlineCodes() ([]string, bool) {
	rest, ok := strings.CutPrefix(f.Values, enumPrefix)
	if !ok {
		return nil, false
	}
	return strings.Split(rest, ", "), true
}

// Table resolves flattened column paths to field metadata.
type Table struct {
	fields map[string]Field
	order  []string
}

// Lookup resolves a flattened column path, normalizing away array index
// segments first. A miss means flatten-tool emitted a column the schema walk
// never produced, which is a fatal schema/tool mismatch.
func (t *Table) Lookup(columnPath string) (Field, error) {
	key := Normalize(columnPath)
	field, ok := t.fields[key]
	if !ok {
		return Field{}, fmt.Errorf("no schema field for column %q (looked up %q)", columnPath, key)
	}
	return field, nil
}

// Fields returns all entries in schema declaration order.
func (t *Table) Fields() []Field {
	fields := make([]Field, 0, len(t.order))
	for _, path := range t.order {
		fields = append(fields, t.fields[path])
	}
	return fields
}

// Len returns the number of distinct field paths.
func (t *Table) Len() int {
	return len(t.fields)
}

// Build walks the schema and produces the metadata table. Properties are
// visited in document order, $refs are followed into $defs, and arrays
// recurse into their item schema without adding a path segment.
func Build(root *jsonschema.Schema, keyOrder map[string][]string) (*Table, error) {
	b := &builder{
		root:     root,
		keyOrder: keyOrder,
		table: &Table{
			fields: make(map[string]Field),
		},
	}
	if err := b.walkObject(root, nil, "", make(map[*jsonschema.Schema]bool)); err != nil {
		return nil, err
	}
	return b.table, nil
}

type builder struct {
	root     *jsonschema.Schema
	keyOrder map[string][]string
	table    *Table
}

func (b *builder) walkObject(s *jsonschema.Schema, path []string, docPath string, onStack map[*jsonschema.Schema]bool) error {
	if onStack[s] {
		return nil
	}
	onStack[s] = true
	defer delete(onStack, s)

	for _, name := range jschema.OrderedKeys(b.keyOrder, propsPath(docPath), s.Properties) {
		prop := s.Properties[name]
		if prop == nil {
			continue
		}
		required := false
		for _, req := range s.Required {
			if req == name {
				required = true
				break
			}
		}
		propDoc := propsPath(docPath) + "." + name
		if err := b.addField(prop, append(path, name), propDoc, required, onStack); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addField(prop *jsonschema.Schema, path []string, docPath string, required bool, onStack map[*jsonschema.Schema]bool) error {
	fieldPath := strings.Join(path, "/")

	resolved, resolvedDoc, err := b.deref(prop, docPath)
	if err != nil {
		return fmt.Errorf("field %s: %w", fieldPath, err)
	}

	typ := resolved.Type
	if typ == "" && len(resolved.Properties) > 0 {
		typ = "object"
	}

	var items *jsonschema.Schema
	itemsDoc := ""
	if typ == "array" && resolved.Items != nil {
		items, itemsDoc, err = b.deref(resolved.Items, resolvedDoc+".items")
		if err != nil {
			return fmt.Errorf("field %s: %w", fieldPath, err)
		}
	}

	field := Field{
		Path:        fieldPath,
		Title:       firstNonEmpty(prop.Title, resolved.Title),
		Description: firstNonEmpty(prop.Description, resolved.Description),
		MinOccurs:   "0",
		MaxOccurs:   "1",
		Type:        typ,
		Values:      valuesFor(resolved, items),
		Codelist:    firstNonEmpty(jschema.Codelist(prop), jschema.Codelist(resolved), jschema.Codelist(items)),
	}
	if required {
		field.MinOccurs = "1"
	}
	if typ == "array" {
		field.MaxOccurs = "n"
	}

	// First definition wins: repeated paths (e.g. through shared $defs
	// reached twice) must stay stable within a run.
	if _, exists := b.table.fields[fieldPath]; !exists {
		b.table.fields[fieldPath] = field
		b.table.order = append(b.table.order, fieldPath)
	}

	if typ == "object" {
		return b.walkObject(resolved, path, resolvedDoc, onStack)
	}
	if items != nil && (items.Type == "object" || len(items.Properties) > 0) {
		return b.walkObject(items, path, itemsDoc, onStack)
	}
	return nil
}

// deref follows $ref chains into $defs. Only internal "#/$defs/..." refs
// exist in the RDLS schema; anything else is an error.
func (b *builder) deref(s *jsonschema.Schema, docPath string) (*jsonschema.Schema, string, error) {
	for depth := 0; s.Ref != ""; depth++ {
		if depth > 20 {
			return nil, "", fmt.Errorf("$ref chain too deep at %q", s.Ref)
		}
		name, ok := strings.CutPrefix(s.Ref, "#/$defs/")
		if !ok {
			return nil, "", fmt.Errorf("unsupported $ref %q", s.Ref)
		}
		target, ok := b.root.Defs[name]
		if !ok || target == nil {
			return nil, "", fmt.Errorf("unresolved $ref %q", s.Ref)
		}
		s = target
		docPath = "$defs." + name
	}
	return s, docPath, nil
}

// valuesFor renders the permissible-values column. Enumerations win over
// formats; arrays take both from their item schema.
func valuesFor(s, items *jsonschema.Schema) string {
	enum := s.Enum
	format := s.Format
	if items != nil {
		if len(enum) == 0 {
			enum = items.Enum
		}
		if format == "" {
			format = items.Format
		}
	}

	if len(enum) > 0 {
		codes := make([]string, len(enum))
		for i, v := range enum {
			codes[i] = fmt.Sprint(v)
		}
		return enumPrefix + strings.Join(codes, ", ")
	}
	return format
}

func propsPath(docPath string) string {
	if docPath == "" {
		return "properties"
	}
	return docPath + ".properties"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
