package convert

import (
	"bytes"
	"fmt"
	"log/slog"

	"golang.org/x/text/encoding/unicode"

	"github.com/nivesolutions/ics-converter/app/ics"
)

// Converter turns a set of uploaded ICS files into an aggregated event
// table. Each file is processed independently and sequentially; one file's
// failure is recorded and the run continues with the rest.
type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

func (c *Converter) Run(req Request) Result {
	parser := ics.NewParser()
	if req.Strict {
		parser = ics.NewStrictParser()
	}

	result := Result{
		Files:  make([]ParsedFile, 0, len(req.Files)),
		Errors: make([]FileError, 0),
	}

	for _, file := range req.Files {
		text, err := decode(file.Data)
		if err != nil {
			slog.Error("Failed to decode input file", "file", file.Name, "error", err)
			result.Errors = append(result.Errors, FileError{Name: file.Name, Message: err.Error()})
			continue
		}

		events, err := parser.Run(text)
		if err != nil {
			slog.Error("Failed to parse input file", "file", file.Name, "error", err)
			result.Errors = append(result.Errors, FileError{Name: file.Name, Message: err.Error()})
			continue
		}

		result.Files = append(result.Files, ParsedFile{Name: file.Name, Events: events})
		result.TotalEvents += len(events)
	}

	slog.Debug("Conversion run completed",
		"files", len(result.Files), "events", result.TotalEvents, "errors", len(result.Errors))

	return result
}

// decode turns raw upload bytes into text, best effort: a leading BOM is
// stripped and invalid UTF-8 sequences are replaced rather than rejected.
// Data containing NUL bytes is refused outright as binary.
func decode(data []byte) (string, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return "", fmt.Errorf("not a text file: contains NUL bytes")
	}

	text, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}

	return string(text), nil
}
