package export

import (
	"fmt"
	"regexp"

	"github.com/xuri/excelize/v2"

	"github.com/nivesolutions/ics-converter/app/convert"
)

// XLSX caps sheet names at 31 characters.
const maxSheetNameLen = 31

var unsafeSheetChars = regexp.MustCompile(`[^0-9A-Za-z_]`)

// WorkbookExporter renders one XLSX workbook with a sheet per source file,
// each holding the per-file column set.
type WorkbookExporter struct{}

func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{}
}

func (e *WorkbookExporter) Run(result convert.Result) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	used := make(map[string]bool)

	for i, file := range result.Files {
		name := e.sheetName(file.Name, i, used)
		used[name] = true

		if _, err := wb.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		header := make([]interface{}, len(perFileHeader))
		for c, col := range perFileHeader {
			header[c] = col
		}
		if err := wb.SetSheetRow(name, "A1", &header); err != nil {
			return nil, fmt.Errorf("failed to write header for sheet %s: %w", name, err)
		}

		for r, ev := range file.Events {
			record := newRow(file.Name, ev).record(false)
			cells := make([]interface{}, len(record))
			for c, v := range record {
				cells[c] = v
			}
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := wb.SetSheetRow(name, cell, &cells); err != nil {
				return nil, fmt.Errorf("failed to write row for sheet %s: %w", name, err)
			}
		}
	}

	// Drop the implicit default sheet once real sheets exist. A run with no
	// parsed files keeps it, since a workbook cannot be empty.
	if len(result.Files) > 0 && !used["Sheet1"] {
		if err := wb.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// sheetName sanitizes and truncates a source file name into a legal, unused
// sheet name, falling back to a generated one when the sanitized form is
// empty or already taken.
func (e *WorkbookExporter) sheetName(fileName string, index int, used map[string]bool) string {
	name := fileName
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen]
	}
	name = unsafeSheetChars.ReplaceAllString(name, "_")

	if name == "" || used[name] {
		return fmt.Sprintf("sheet_%d", index+1)
	}
	return name
}
