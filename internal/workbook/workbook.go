// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package workbook renders a resolved template model into a formatted xlsx
// file: entity sheets with a styled header block and validated input rows,
// plus the hidden Meta and enum lookup sheets and a README.
package workbook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/template"
	"github.com/xuri/excelize/v2"
)

const (
	metaSheetName   = "Meta"
	readmeSheetName = "README"

	labelColumnWidth = 11
	minColumnWidth   = 16
)

// Writer emits a Template as an xlsx workbook.
type Writer struct {
	// Title is the workbook title shown on the README sheet.
	Title string
	// DocsURL links the README to the standard's documentation.
	DocsURL string
	// Palette maps sheet-name prefixes to tab colours.
	Palette map[string]string
	// TruncationLength is the sheet-name length limit applied before
	// palette prefix matching, mirroring flatten-tool's truncation.
	TruncationLength int
	// InputRows is the number of data-entry rows below the header block.
	InputRows int
}

type styles struct {
	path   int
	header int
	last   int
	label  int
	text   int
	date   int
	number int
	title  int
}

// Write renders tpl and saves the workbook at path. The first entity sheet
// is left active.
func (w *Writer) Write(tpl *template.Template, path string) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("registering styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", readmeSheetName); err != nil {
		return err
	}
	if err := w.writeReadme(f, st, tpl); err != nil {
		return fmt.Errorf("sheet %s: %w", readmeSheetName, err)
	}

	for _, sheet := range tpl.Sheets {
		if err := w.writeSheet(f, st, sheet); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet.Name, err)
		}
	}

	if err := writeEnums(f, tpl.Enums); err != nil {
		return fmt.Errorf("sheet %s: %w", template.EnumSheetName, err)
	}
	if err := writeMeta(f); err != nil {
		return fmt.Errorf("sheet %s: %w", metaSheetName, err)
	}

	if len(tpl.Sheets) > 0 {
		idx, err := f.GetSheetIndex(tpl.Sheets[0].Name)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func newStyles(f *excelize.File) (*styles, error) {
	fill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"EFEFEF"}}
	wrap := &excelize.Alignment{WrapText: true, Vertical: "top"}

	var st styles
	var err error

	if st.path, err = f.NewStyle(&excelize.Style{
		Fill:      fill,
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: wrap,
	}); err != nil {
		return nil, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Fill:      fill,
		Font:      &excelize.Font{Size: 8},
		Alignment: wrap,
	}); err != nil {
		return nil, err
	}
	// The bottom header row gets a border separating it from the input rows.
	if st.last, err = f.NewStyle(&excelize.Style{
		Fill:      fill,
		Font:      &excelize.Font{Size: 8, Italic: true},
		Alignment: wrap,
		Border: []excelize.Border{
			{Type: "bottom", Style: 2, Color: "666666"},
		},
	}); err != nil {
		return nil, err
	}
	if st.label, err = f.NewStyle(&excelize.Style{
		Fill: fill,
		Font: &excelize.Font{Bold: true, Size: 8},
	}); err != nil {
		return nil, err
	}

	// Input cells carry a number format per column class. Text keeps
	// leading zeroes in identifiers intact.
	text := "@"
	if st.text, err = f.NewStyle(&excelize.Style{CustomNumFmt: &text}); err != nil {
		return nil, err
	}
	date := "yyyy-mm-dd"
	if st.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &date}); err != nil {
		return nil, err
	}
	number := "#,##0.00"
	if st.number, err = f.NewStyle(&excelize.Style{CustomNumFmt: &number}); err != nil {
		return nil, err
	}

	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return nil, err
	}
	return &st, nil
}

func (st *styles) forFormat(format template.InputFormat) (int, bool) {
	switch format {
	case template.FormatText:
		return st.text, true
	case template.FormatDate:
		return st.date, true
	case template.FormatNumber:
		return st.number, true
	default:
		return 0, false
	}
}

func (w *Writer) writeSheet(f *excelize.File, st *styles, sheet template.Sheet) error {
	if _, err := f.NewSheet(sheet.Name); err != nil {
		return err
	}
	if color, ok := w.tabColor(sheet.Name); ok {
		if err := f.SetSheetProps(sheet.Name, &excelize.SheetPropsOptions{TabColorRGB: &color}); err != nil {
			return err
		}
	}

	headerRows := len(template.HeaderRows)
	firstInput := headerRows + 1
	lastInput := headerRows + w.InputRows

	// Column A labels the header block.
	for i, label := range template.HeaderRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, "# "+label); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet.Name, "A", "A", labelColumnWidth); err != nil {
		return err
	}

	for j, column := range sheet.Columns {
		name, err := excelize.ColumnNumberToName(j + 2)
		if err != nil {
			return err
		}
		for i, value := range column.Header {
			if value == "" {
				continue
			}
			if err := f.SetCellValue(sheet.Name, fmt.Sprintf("%s%d", name, i+1), value); err != nil {
				return err
			}
		}

		width := float64(len(column.Path))
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if err := f.SetColWidth(sheet.Name, name, name, width); err != nil {
			return err
		}

		if styleID, ok := st.forFormat(column.Format); ok {
			first := fmt.Sprintf("%s%d", name, firstInput)
			last := fmt.Sprintf("%s%d", name, lastInput)
			if err := f.SetCellStyle(sheet.Name, first, last, styleID); err != nil {
				return err
			}
		}

		if column.Validation != nil {
			if err := addValidation(f, sheet.Name, name, firstInput, lastInput, column.Validation); err != nil {
				return fmt.Errorf("column %s: %w", column.Path, err)
			}
		}
	}

	if err := styleHeaderBlock(f, st, sheet.Name, len(sheet.Columns)); err != nil {
		return err
	}

	// Taller rows for the prose header lines.
	for _, row := range []int{3, 6, 8} {
		if err := f.SetRowHeight(sheet.Name, row, 30); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

func styleHeaderBlock(f *excelize.File, st *styles, sheet string, columns int) error {
	lastCol, err := excelize.ColumnNumberToName(columns + 1)
	if err != nil {
		return err
	}
	headerRows := len(template.HeaderRows)

	if err := f.SetCellStyle(sheet, "A1", "A"+fmt.Sprint(headerRows), st.label); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "B1", lastCol+"1", st.path); err != nil {
		return err
	}
	if headerRows > 2 {
		if err := f.SetCellStyle(sheet, "B2", fmt.Sprintf("%s%d", lastCol, headerRows-1), st.header); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("B%d", headerRows), fmt.Sprintf("%s%d", lastCol, headerRows), st.last)
}

func addValidation(f *excelize.File, sheet, column string, firstRow, lastRow int, v *template.Validation) error {
	dv := excelize.NewDataValidation(true)
	dv.SetSqref(fmt.Sprintf("%s%d:%s%d", column, firstRow, column, lastRow))

	switch v.Type {
	case template.ValidationList:
		dv.SetSqrefDropList(v.SourceRange)
	case template.ValidationDate:
		if err := dv.SetRange("DATE(1900,1,1)", "DATE(9999,12,31)",
			excelize.DataValidationTypeDate, excelize.DataValidationOperatorBetween); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown validation type %q", v.Type)
	}

	style := excelize.DataValidationErrorStyleStop
	if v.Severity == template.SeverityWarning {
		style = excelize.DataValidationErrorStyleWarning
	}
	dv.SetError(style, v.Title, v.Message)

	return f.AddDataValidation(sheet, dv)
}

// tabColor picks the palette colour whose truncated key prefixes the sheet
// name. The longest matching key wins; lookup order is deterministic.
func (w *Writer) tabColor(sheet string) (string, bool) {
	keys := make([]string, 0, len(w.Palette))
	for key := range w.Palette {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		prefix := key
		if w.TruncationLength > 0 && len(prefix) > w.TruncationLength {
			prefix = prefix[:w.TruncationLength]
		}
		if strings.HasPrefix(sheet, prefix) {
			return strings.TrimPrefix(w.Palette[key], "#"), true
		}
	}
	return "", false
}

// writeEnums fills the hidden codelist lookup sheet: one column per slot,
// the column path on row 1 and the codes below.
func writeEnums(f *excelize.File, enums []template.EnumColumn) error {
	if _, err := f.NewSheet(template.EnumSheetName); err != nil {
		return err
	}
	for slot, enum := range enums {
		name, err := excelize.ColumnNumberToName(slot + 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(template.EnumSheetName, name+"1", enum.Path); err != nil {
			return err
		}
		for i, code := range enum.Codes {
			if err := f.SetCellValue(template.EnumSheetName, fmt.Sprintf("%s%d", name, i+2), code); err != nil {
				return err
			}
		}
	}
	return f.SetSheetVisible(template.EnumSheetName, false)
}

// writeMeta emits the hidden configuration sheet flatten-tool reads back
// when unflattening a filled-in template: a single row of config strings on
// its metadata tab.
func writeMeta(f *excelize.File) error {
	if _, err := f.NewSheet(metaSheetName); err != nil {
		return err
	}
	row := []string{
		"#",
		fmt.Sprintf("HeaderRows %d", len(template.HeaderRows)),
		"hashComments",
	}
	for j, value := range row {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(metaSheetName, cell, value); err != nil {
			return err
		}
	}
	return f.SetSheetVisible(metaSheetName, false)
}

func (w *Writer) writeReadme(f *excelize.File, st *styles, tpl *template.Template) error {
	if err := f.SetCellValue(readmeSheetName, "A1", w.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(readmeSheetName, "A1", "A1", st.title); err != nil {
		return err
	}

	hints := []string{
		"Enter one record per row, starting below the grey header block.",
		"Leave the header rows untouched: they are read back when the workbook is converted to JSON.",
		"Separate multiple values in a single cell with a semicolon.",
		"Enter dates as YYYY-MM-DD.",
		"Columns with a dropdown accept the codes listed for them; a warning dropdown also accepts free text.",
	}
	if w.DocsURL != "" {
		hints = append(hints, "Documentation: "+w.DocsURL)
	}
	row := 3
	for _, hint := range hints {
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(readmeSheetName, cell, hint); err != nil {
			return err
		}
		row++
	}

	// Field reference.
	row += 2
	columns := []string{"Path", "Title", "Description", "Required", "Type", "Values", "Codelist"}
	for j, label := range columns {
		cell, err := excelize.CoordinatesToCellName(j+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(readmeSheetName, cell, label); err != nil {
			return err
		}
		if err := f.SetCellStyle(readmeSheetName, cell, cell, st.label); err != nil {
			return err
		}
	}
	for _, field := range tpl.Fields {
		row++
		required := ""
		if field.Required() {
			required = "Required"
		}
		values := []any{field.Path, field.Title, field.Description, required, field.Type, field.Values, field.Codelist}
		for j, value := range values {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(readmeSheetName, cell, value); err != nil {
				return err
			}
		}
	}

	return f.SetColWidth(readmeSheetName, "A", "A", 60)
}
