// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/flatten"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/mapping"
)

// Builder resolves flatten-tool output into a workbook model.
type Builder struct {
	// Metadata is the schema-derived field metadata table.
	Metadata *mapping.Table
	// Priority is the configured sheet order.
	Priority []string
	// InputRows is the number of data-entry rows per sheet.
	InputRows int
	// FetchCodes resolves open codelists. Only called for codelist-bound
	// columns without an inline enumeration.
	FetchCodes FetchCodesFunc
	// WKT switches geometry columns to well-known-text entry.
	WKT bool
}

// Build resolves every (sheet, column) pair of the flatten-tool output. A
// column whose normalized path has no schema metadata aborts the build: it
// means the schema and the flattening tool disagree.
func (b *Builder) Build(ctx context.Context, found []flatten.Sheet) (*Template, error) {
	byName := make(map[string]flatten.Sheet, len(found))
	names := make([]string, 0, len(found))
	for _, sheet := range found {
		byName[sheet.Name] = sheet
		names = append(names, sheet.Name)
	}

	orderedNames, unlisted := Order(names, b.Priority)
	sheets := make([]flatten.Sheet, 0, len(orderedNames))
	for _, name := range orderedNames {
		sheets = append(sheets, byName[name])
	}

	out := &Template{Fields: b.Metadata.Fields()}
	for _, name := range unlisted {
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"found new sheet %q: it will be added to the end of the workbook; add it to the configured sheet order to fix its position", name))
	}

	m := &materializer{fetch: b.FetchCodes}
	for i, sheet := range sheets {
		resolved := Sheet{Name: sheet.Name, Columns: make([]Column, 0, len(sheet.Columns))}
		for _, path := range sheet.Columns {
			column, err := b.resolveColumn(ctx, m, sheets, i, path)
			if err != nil {
				return nil, fmt.Errorf("sheet %s: %w", sheet.Name, err)
			}
			resolved.Columns = append(resolved.Columns, column)
		}
		out.Sheets = append(out.Sheets, resolved)
	}
	out.Enums = m.enums
	return out, nil
}

func (b *Builder) resolveColumn(ctx context.Context, m *materializer, sheets []flatten.Sheet, current int, path string) (Column, error) {
	meta, err := b.Metadata.Lookup(path)
	if err != nil {
		return Column{}, err
	}

	wkt := b.WKT && isGeometry(path, meta)

	column := Column{
		Path:   path,
		Meta:   meta,
		Format: formatFor(meta, wkt),
	}

	// Identifier columns repeated from an earlier sheet become dropdowns
	// over that sheet's entries. Codelists and date rules take precedence
	// when both apply.
	crossOwner := ""
	if ref, owner, ok := CrossSheetRange(sheets, current, path, len(HeaderRows), b.InputRows); ok {
		crossOwner = owner
		column.Validation = &Validation{
			Type:        ValidationList,
			SourceRange: ref,
			Severity:    SeverityStop,
			Title:       "Unknown identifier",
			Message:     fmt.Sprintf("Select an identifier entered on the %s sheet.", owner),
		}
	}
	if meta.Codelist != "" {
		validation, err := m.materialize(ctx, path, meta)
		if err != nil {
			return Column{}, err
		}
		column.Validation = validation
	} else if meta.Values == "date" {
		column.Validation = &Validation{
			Type:     ValidationDate,
			Severity: SeverityStop,
			Title:    "Invalid date",
			Message:  "Enter a date in YYYY-MM-DD format.",
		}
	}

	column.Header = headerValues(path, meta, guidanceFor(meta, column, crossOwner, wkt))
	return column, nil
}

// headerValues renders the header-block cell values, aligned with HeaderRows.
func headerValues(path string, meta mapping.Field, guidance string) []string {
	required := ""
	if meta.Required() {
		required = "Required"
	}
	return []string{
		path,
		meta.Title,
		meta.Description,
		required,
		meta.Type,
		meta.Values,
		meta.Codelist,
		guidance,
	}
}

// formatFor picks the input format class. Strings, arrays and objects are
// forced to text so identifiers like "01000" survive entry; geometry
// columns under --wkt are text as well.
func formatFor(meta mapping.Field, wkt bool) InputFormat {
	if wkt {
		return FormatText
	}
	switch {
	case meta.Values == "date":
		return FormatDate
	case meta.Type == "number":
		return FormatNumber
	case meta.Type == "string" || meta.Type == "array" || meta.Type == "object":
		return FormatText
	default:
		return FormatPlain
	}
}

func guidanceFor(meta mapping.Field, column Column, crossOwner string, wkt bool) string {
	switch {
	case wkt:
		return "Enter the geometry as a well-known text (WKT) string."
	case column.Validation != nil && column.Validation.Type == ValidationList && crossOwner != "" && meta.Codelist == "":
		return fmt.Sprintf("Select an identifier entered on the %s sheet.", crossOwner)
	case meta.Codelist != "" && meta.Type == "array":
		return "Select codes from the dropdown; separate multiple codes with a semicolon."
	case meta.Codelist != "":
		return "Select a code from the dropdown."
	case meta.Values == "date":
		return "Enter dates as YYYY-MM-DD."
	case meta.Type == "array":
		return "Separate multiple values with a semicolon."
	case meta.Type == "number":
		return "Enter a number."
	case meta.Type == "integer":
		return "Enter a whole number."
	case meta.Type == "boolean":
		return "Enter TRUE or FALSE."
	default:
		return ""
	}
}

// isGeometry reports whether a column holds a GeoJSON geometry object,
// either by a trailing geometry path segment or by the field's geojson
// format.
func isGeometry(path string, meta mapping.Field) bool {
	if meta.Values == "geojson" {
		return true
	}
	segments := strings.Split(mapping.Normalize(path), "/")
	return segments[len(segments)-1] == "geometry"
}
