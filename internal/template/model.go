// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package template resolves what every cell of the workbook should carry:
// per-column header metadata, input format class, and validation directives
// (cross-sheet identifier references and codelist dropdowns). It is
// emitter-independent; internal/workbook renders the result.
package template

import "github.com/GFDRR/rdls-spreadsheet-template/internal/mapping"

// HeaderRows lists the metadata rows written above the data-entry rows of
// every sheet, in order.
var HeaderRows = []string{
	"path",
	"title",
	"description",
	"required",
	"type",
	"values",
	"codelist",
	"guidance",
}

// EnumSheetName is the lookup sheet holding one column per materialized
// codelist.
const EnumSheetName = "# Enums"

// InputFormat classifies how input cells of a column are formatted.
type InputFormat string

const (
	FormatPlain  InputFormat = "plain"
	FormatText   InputFormat = "text"
	FormatDate   InputFormat = "date"
	FormatNumber InputFormat = "number"
)

// Severity controls how a validation rule reacts to an invalid entry.
type Severity string

const (
	// SeverityStop rejects the entry.
	SeverityStop Severity = "stop"
	// SeverityWarning flags the entry but lets it stand. Used for array
	// fields (several codes in one cell) and open codelists (legitimate
	// values outside the published list).
	SeverityWarning Severity = "warning"
)

// ValidationType is the kind of data validation attached to a column.
type ValidationType string

const (
	ValidationList ValidationType = "list"
	ValidationDate ValidationType = "date"
)

// Validation is a resolved data-validation directive for a column's input
// rows.
type Validation struct {
	Type ValidationType
	// SourceRange is the workbook range listing the permitted values.
	// Only set for ValidationList.
	SourceRange string
	Severity    Severity
	Title       string
	Message     string
}

// Column is one fully resolved workbook column.
type Column struct {
	// Path is the flattened column path as emitted by flatten-tool,
	// array indices included.
	Path string
	// Meta is the schema-derived field metadata.
	Meta mapping.Field
	// Header holds the values of the header-block rows, aligned with
	// HeaderRows.
	Header []string
	// Format is the input format class of the data-entry cells.
	Format InputFormat
	// Validation is the optional validation directive.
	Validation *Validation
}

// Sheet is one resolved entity sheet.
type Sheet struct {
	Name    string
	Columns []Column
}

// EnumColumn is one materialized codelist on the enum lookup sheet. Its
// position in the slice is its column slot; slots are assigned strictly
// increasing and never reused within a run.
type EnumColumn struct {
	Path  string
	Codes []string
}

// Template is the fully resolved workbook model handed to the emitter.
type Template struct {
	Sheets []Sheet
	Enums  []EnumColumn
	// Fields is the full metadata table in schema declaration order, for
	// the README field reference.
	Fields []mapping.Field
	// Warnings are non-fatal diagnostics gathered while resolving.
	Warnings []string
}
