// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package template

import (
	"context"
	"fmt"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/mapping"
	"github.com/xuri/excelize/v2"
)

// FetchCodesFunc resolves an open codelist file name to its codes.
type FetchCodesFunc func(ctx context.Context, name string) ([]string, error)

// materializer assigns codelist-bound columns their slots on the enum
// lookup sheet. Slots grow strictly and are never reused, so two distinct
// codelist columns always get non-overlapping ranges.
type materializer struct {
	fetch FetchCodesFunc
	enums []EnumColumn
}

// materialize resolves the code set for a codelist-bound column, records it
// under the next slot, and returns the list validation referencing it.
func (m *materializer) materialize(ctx context.Context, path string, meta mapping.Field) (*Validation, error) {
	codes, inline := meta.InlineCodes()
	if !inline {
		if m.fetch == nil {
			return nil, fmt.Errorf("column %s: no fetcher for open codelist %s", path, meta.Codelist)
		}
		var err error
		codes, err = m.fetch(ctx, meta.Codelist)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", path, err)
		}
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("column %s: codelist %s has no codes", path, meta.Codelist)
	}

	slot := len(m.enums)
	m.enums = append(m.enums, EnumColumn{Path: path, Codes: codes})

	name, err := excelize.ColumnNumberToName(slot + 1)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", path, err)
	}
	// Row 1 holds the column path; codes start at row 2.
	source := fmt.Sprintf("'%s'!$%s$2:$%s$%d", EnumSheetName, name, name, len(codes)+1)

	severity := SeverityWarning
	message := fmt.Sprintf("The value should come from the open %s codelist.", meta.Codelist)
	if inline && meta.Type != "array" {
		severity = SeverityStop
		message = fmt.Sprintf("Select a code from the %s codelist.", meta.Codelist)
	} else if meta.Type == "array" {
		message = fmt.Sprintf("Enter one or more codes from the %s codelist, separated by semicolons.", meta.Codelist)
	}

	return &Validation{
		Type:        ValidationList,
		SourceRange: source,
		Severity:    severity,
		Title:       "Invalid code",
		Message:     message,
	}, nil
}
