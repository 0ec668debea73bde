package convert

import (
	"github.com/nivesolutions/ics-converter/app/ics"
)

// InputFile is one named byte buffer handed to a conversion run.
type InputFile struct {
	Name string
	Data []byte
}

// Request carries everything a single conversion run needs. Runs share no
// state; a Request is consumed once and discarded.
type Request struct {
	Files []InputFile

	// ExpandRecurrences is accepted for interface compatibility but not
	// acted upon; recurrence expansion is out of scope.
	ExpandRecurrences bool

	// Strict promotes the parser's lenient fallbacks (colon-less lines,
	// unterminated blocks, unparseable dates) into per-file errors.
	Strict bool
}

// ParsedFile associates a source file name with its events in source order.
type ParsedFile struct {
	Name   string
	Events []ics.Event
}

// FileError records one failed input. The file contributes zero events but
// never aborts the run.
type FileError struct {
	Name    string `json:"file"`
	Message string `json:"message"`
}

// Result is the aggregated output of one conversion run. Files holds only
// inputs that parsed; failures are listed in Errors.
type Result struct {
	Files       []ParsedFile
	Errors      []FileError
	TotalEvents int
}
