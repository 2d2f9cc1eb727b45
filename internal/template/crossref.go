// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package template

import (
	"fmt"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/flatten"
	"github.com/xuri/excelize/v2"
)

// CrossSheetRange scans the sheets strictly before index current for one
// whose column list contains the exact path; the first match in sheet order
// wins. It returns the input-row range of that column (data columns start at
// workbook column B, after the header label column) and the owning sheet
// name. No earlier match means the column is a plain input column.
func CrossSheetRange(sheets []flatten.Sheet, current int, path string, headerRows, inputRows int) (ref, owner string, ok bool) {
	for i := 0; i < current; i++ {
		for j, column := range sheets[i].Columns {
			if column != path {
				continue
			}
			name, err := excelize.ColumnNumberToName(j + 2)
			if err != nil {
				return "", "", false
			}
			first := headerRows + 1
			last := headerRows + inputRows
			ref = fmt.Sprintf("%s!$%s$%d:$%s$%d", sheets[i].Name, name, first, name, last)
			return ref, sheets[i].Name, true
		}
	}
	return "", "", false
}
