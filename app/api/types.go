package api

import (
	"github.com/nivesolutions/ics-converter/app/convert"
	"github.com/nivesolutions/ics-converter/app/export"
)

type ConverterInterface interface {
	Run(req convert.Request) convert.Result
}

var _ ConverterInterface = (*convert.Converter)(nil)

type Handler struct {
	converter ConverterInterface
	csv       *export.CSVExporter
	archive   *export.ArchiveExporter
	workbook  *export.WorkbookExporter
	json      *export.JSONExporter
}

// ConvertSummary is the response body of POST /convert: what the run parsed,
// what failed, and a bounded preview of the combined table.
type ConvertSummary struct {
	FilesProcessed int                 `json:"files_processed"`
	TotalEvents    int                 `json:"total_events"`
	Errors         []convert.FileError `json:"errors"`
	Preview        []export.Row        `json:"preview"`
}
