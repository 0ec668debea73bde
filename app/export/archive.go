package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"

	"github.com/nivesolutions/ics-converter/app/convert"
)

var unsafeEntryChars = regexp.MustCompile(`[^0-9A-Za-z_.-]`)

// ArchiveExporter packages one CSV per source file into a single ZIP. Every
// input file gets an entry, header-only when it contributed zero events.
type ArchiveExporter struct{}

func NewArchiveExporter() *ArchiveExporter {
	return &ArchiveExporter{}
}

func (e *ArchiveExporter) Run(result convert.Result) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, file := range result.Files {
		name := unsafeEntryChars.ReplaceAllString(file.Name, "_") + ".csv"

		entry, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", name, err)
		}
		if _, err := entry.Write(fileCSV(file)); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}
