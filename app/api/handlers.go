package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivesolutions/ics-converter/app/cfg"
	"github.com/nivesolutions/ics-converter/app/convert"
	"github.com/nivesolutions/ics-converter/app/export"
)

// previewLimit bounds the number of rows returned in the convert summary.
const previewLimit = 200

func NewHandler(converter ConverterInterface) *Handler {
	return &Handler{
		converter: converter,
		csv:       export.NewCSVExporter(),
		archive:   export.NewArchiveExporter(),
		workbook:  export.NewWorkbookExporter(),
		json:      export.NewJSONExporter(),
	}
}

// Convert runs a conversion and returns a JSON summary with a row preview.
func (h *Handler) Convert(c *gin.Context) {
	result, ok := h.runConversion(c)
	if !ok {
		return
	}

	rows := export.Rows(result)
	if len(rows) > previewLimit {
		rows = rows[:previewLimit]
	}

	c.JSON(http.StatusOK, ConvertSummary{
		FilesProcessed: len(result.Files),
		TotalEvents:    result.TotalEvents,
		Errors:         result.Errors,
		Preview:        rows,
	})
}

// ConvertCSV returns the combined CSV. A run with zero events answers
// 204 No Content so the client can tell "no data" apart from an empty table.
func (h *Handler) ConvertCSV(c *gin.Context) {
	result, ok := h.runConversion(c)
	if !ok {
		return
	}

	data := h.csv.Run(result)
	if data == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=events_combined.csv`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ConvertArchive returns the per-file CSVs packaged as a ZIP. The archive is
// produced even when every file parsed to zero events.
func (h *Handler) ConvertArchive(c *gin.Context) {
	result, ok := h.runConversion(c)
	if !ok {
		return
	}

	data, err := h.archive.Run(result)
	if err != nil {
		slog.Error("Archive export failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=events_individual_csvs.zip`)
	c.Data(http.StatusOK, "application/zip", data)
}

// ConvertWorkbook returns the XLSX workbook, one sheet per input file.
func (h *Handler) ConvertWorkbook(c *gin.Context) {
	result, ok := h.runConversion(c)
	if !ok {
		return
	}

	data, err := h.workbook.Run(result)
	if err != nil {
		slog.Error("Workbook export failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=events_workbook.xlsx`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ConvertJSON returns the structured export; ?mode=per-file groups events by
// source file, anything else yields the flat combined list.
func (h *Handler) ConvertJSON(c *gin.Context) {
	result, ok := h.runConversion(c)
	if !ok {
		return
	}

	perFile := c.DefaultQuery("mode", "combined") == "per-file"

	data, err := h.json.Run(result, perFile)
	if err != nil {
		slog.Error("JSON export failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=events.json`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": cfg.Get().Version,
	})
}

// runConversion reads the multipart upload, applies the file-count cap, and
// executes the run. It writes the error response itself and reports success
// through the second return value.
func (h *Handler) runConversion(c *gin.Context) (convert.Result, bool) {
	req, truncated, err := h.parseUpload(c)
	if err != nil {
		slog.Error("Upload rejected", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return convert.Result{}, false
	}

	if truncated {
		c.Header("X-Files-Truncated", "true")
	}

	return h.converter.Run(req), true
}

// parseUpload extracts the uploaded files and run flags from the multipart
// form. Files beyond the configured maximum are dropped, not an error.
func (h *Handler) parseUpload(c *gin.Context) (convert.Request, bool, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return convert.Request{}, false, fmt.Errorf("invalid multipart form: %w", err)
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		return convert.Request{}, false, fmt.Errorf("no files uploaded")
	}

	maxFiles := cfg.Get().MaxFiles
	truncated := false
	if len(uploads) > maxFiles {
		slog.Debug("Upload truncated", "uploaded", len(uploads), "max", maxFiles)
		uploads = uploads[:maxFiles]
		truncated = true
	}

	req := convert.Request{
		Files:             make([]convert.InputFile, 0, len(uploads)),
		ExpandRecurrences: c.PostForm("expand_rrules") == "true",
		Strict:            c.PostForm("strict") == "true",
	}

	for _, upload := range uploads {
		f, err := upload.Open()
		if err != nil {
			return convert.Request{}, false, fmt.Errorf("failed to open upload %s: %w", upload.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return convert.Request{}, false, fmt.Errorf("failed to read upload %s: %w", upload.Filename, err)
		}

		req.Files = append(req.Files, convert.InputFile{Name: upload.Filename, Data: data})
	}

	return req, truncated, nil
}
