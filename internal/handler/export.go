package handler

// export.go implements GET /export.
// Returns every workflow and assistant as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/flowdeck/internal/api"
	"github.com/pkordes/flowdeck/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"kind", "id", "name", "version", "status", "owner",
	"description", "trigger", "model", "tags", "created_at", "updated_at",
}

// GetExport implements GET /export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid format for parameter format", errBadRequest), "export")
		return
	}
	f := derefString(format)
	if f != "" && f != "json" && f != "csv" {
		writeError(w, r, fmt.Errorf("%w: format must be one of: json csv", domain.ErrValidation), "export")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, r, err, "export")
		return
	}

	if f == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the wire rows.
func buildJSONRows(rows []domain.ExportRow) []api.ExportRow {
	out := make([]api.ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.ExportRow{
			Kind:        r.Kind,
			ID:          r.ID,
			Name:        r.Name,
			Version:     r.Version,
			Status:      r.Status,
			Owner:       r.Owner,
			Description: r.Description,
			Trigger:     r.Trigger,
			Model:       r.Model,
			Tags:        r.Tags,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return out
}

// writeCSV encodes rows as CSV.
// Tags within a row are pipe-separated ("|") to keep each entity on a single CSV line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(csvRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="flowdeck-export.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
}

// csvRecord encodes a domain.ExportRow as a flat string slice.
func csvRecord(r domain.ExportRow) []string {
	return []string{
		string(r.Kind),
		r.ID,
		r.Name,
		r.Version,
		string(r.Status),
		r.Owner,
		r.Description,
		r.Trigger,
		r.Model,
		strings.Join(r.Tags, "|"),
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	}
}

// formatTime returns the RFC3339 representation of t, or "" for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
