package export

import (
	"encoding/json"
	"fmt"

	"github.com/nivesolutions/ics-converter/app/convert"
	"github.com/nivesolutions/ics-converter/app/ics"
)

// fileEvent is one event tagged with its source file, used by the combined
// JSON form.
type fileEvent struct {
	ics.Event
	File string `json:"file"`
}

// JSONExporter serializes the parsed event set as indented JSON, either as a
// flat event list (combined) or grouped by source file.
type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Run(result convert.Result, perFile bool) ([]byte, error) {
	var payload interface{}

	if perFile {
		grouped := make(map[string][]ics.Event, len(result.Files))
		for _, file := range result.Files {
			grouped[file.Name] = file.Events
		}
		payload = grouped
	} else {
		flat := make([]fileEvent, 0, result.TotalEvents)
		for _, file := range result.Files {
			for _, ev := range file.Events {
				flat = append(flat, fileEvent{Event: ev, File: file.Name})
			}
		}
		payload = flat
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize events: %w", err)
	}

	return data, nil
}
