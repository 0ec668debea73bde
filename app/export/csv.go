package export

import (
	"bytes"
	"encoding/csv"

	"github.com/nivesolutions/ics-converter/app/convert"
)

// CSVExporter produces the combined tabular export: one row per event across
// every file, with a leading file column.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Run returns the combined CSV, or nil when the run produced zero events.
// The nil result is the "no data" signal callers use to disable the
// download; it is distinct from a header-only CSV.
func (e *CSVExporter) Run(result convert.Result) []byte {
	rows := Rows(result)
	if len(rows) == 0 {
		return nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(combinedHeader)
	for _, row := range rows {
		w.Write(row.record(true))
	}
	w.Flush()

	return buf.Bytes()
}

// fileCSV renders one file's events as a header-plus-rows table without the
// file column. Used by the archive exporter; always includes the header even
// for zero events.
func fileCSV(file convert.ParsedFile) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(perFileHeader)
	for _, ev := range file.Events {
		w.Write(newRow(file.Name, ev).record(false))
	}
	w.Flush()

	return buf.Bytes()
}
