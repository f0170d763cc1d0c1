package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/erazemk/stockroom/internal/importer"
	"github.com/erazemk/stockroom/internal/model"
)

// ImportHandler handles spreadsheet preview, apply and template download.
type ImportHandler struct {
	DB             *sql.DB
	MaxUploadBytes int64
}

type applyResponse struct {
	Written int `json:"written"`
	Skipped int `json:"skipped"`
}

var templateContentTypes = map[string]string{
	importer.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	importer.FormatCSV:  "text/csv; charset=utf-8",
}

// Preview handles POST /api/import/preview. It parses the uploaded "file"
// field and returns the validated rows without touching the catalog.
func (h *ImportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		jsonError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer file.Close()

	rows, err := importer.Parse(file, header.Filename)
	if err != nil {
		slog.Warn("import preview failed", "file", header.Filename, "error", err)
		errorResponse(w, r, err)
		return
	}
	if rows == nil {
		rows = []model.ImportRow{}
	}

	slog.Info("import previewed",
		"file", header.Filename, "rows", len(rows), "valid", len(model.ValidRows(rows)))
	jsonResponse(w, http.StatusOK, rows)
}

// Apply handles POST /api/import. Rows marked invalid are skipped; the rest
// are checked again and upserted by SKU in one transaction.
func (h *ImportHandler) Apply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	var rows []model.ImportRow
	if err := decodeJSON(r, &rows); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	for i, row := range rows {
		if !row.IsValid {
			continue
		}
		if err := row.Fields().Check(); err != nil {
			var fe *model.FieldError
			errors.As(err, &fe)
			errorResponse(w, r, &model.FieldError{
				Field:   fe.Field,
				Message: fmt.Sprintf("row %d (%s): %s", i+1, row.SKU, fe.Message),
			})
			return
		}
	}

	valid := model.ValidRows(rows)
	written, err := importer.Reconcile(r.Context(), h.DB, valid)
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	slog.Info("import applied",
		"written", written, "skipped", len(rows)-len(valid), "by", GetClaims(r.Context()).Username)
	jsonResponse(w, http.StatusOK, applyResponse{Written: written, Skipped: len(rows) - len(valid)})
}

// Template handles GET /api/import/template?format=xlsx|csv.
func (h *ImportHandler) Template(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = importer.FormatXLSX
	}
	contentType, ok := templateContentTypes[format]
	if !ok {
		jsonError(w, http.StatusBadRequest, "format must be xlsx or csv")
		return
	}

	var buf bytes.Buffer
	if err := importer.WriteTemplate(&buf, format); err != nil {
		errorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", importer.TemplateFilename(format)))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
