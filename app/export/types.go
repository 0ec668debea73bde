package export

import (
	"github.com/nivesolutions/ics-converter/app/convert"
	"github.com/nivesolutions/ics-converter/app/ics"
)

// Row is the tabular projection of one event shared by the CSV, archive, and
// workbook exporters. Field order and naming must stay identical across the
// three so their outputs are interchangeable.
type Row struct {
	File        string `json:"file"`
	UID         string `json:"uid"`
	Summary     string `json:"summary"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Location    string `json:"location"`
	Description string `json:"description"`
	RRule       string `json:"rrule"`
}

var combinedHeader = []string{"file", "uid", "summary", "start", "end", "location", "description", "rrule"}

// perFileHeader omits the file column; it is implicit in per-file outputs.
var perFileHeader = combinedHeader[1:]

func newRow(file string, ev ics.Event) Row {
	return Row{
		File:        file,
		UID:         ev.UID,
		Summary:     ev.Summary,
		Start:       ev.DTStartISO,
		End:         ev.DTEndISO,
		Location:    ev.Location,
		Description: ev.Description,
		RRule:       ev.RRule,
	}
}

func (r Row) record(withFile bool) []string {
	rec := []string{r.UID, r.Summary, r.Start, r.End, r.Location, r.Description, r.RRule}
	if withFile {
		rec = append([]string{r.File}, rec...)
	}
	return rec
}

// Rows flattens a conversion result into one Row per event across all files,
// preserving file order and event order within each file.
func Rows(result convert.Result) []Row {
	rows := make([]Row, 0, result.TotalEvents)
	for _, file := range result.Files {
		for _, ev := range file.Events {
			rows = append(rows, newRow(file.Name, ev))
		}
	}
	return rows
}
