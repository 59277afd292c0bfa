package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"kakeibo/internal/export"
	"kakeibo/internal/metrics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExport renders the (optionally filtered) current snapshot as a
// downloadable tabular document.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	filter, msg, ok := parseFilter(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	items := filter.Apply(s.store.Snapshot())

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "csv"
	}
	stamp := time.Now().Format("20060102150405")

	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	switch format {
	case "csv":
		data, err = export.CSV(items)
		contentType = "text/csv; charset=utf-8"
		filename = "entries_" + stamp + ".csv"
	case "xlsx":
		data, err = export.XLSX(items)
		contentType = xlsxContentType
		filename = "entries_" + stamp + ".xlsx"
	default:
		writeError(w, http.StatusBadRequest, "unsupported export format")
		return
	}

	if err != nil {
		slog.ErrorContext(r.Context(), "Export render error", "error", err, "format", format, "rows", len(items))
		metrics.IncExport(format, metrics.ResultError)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	metrics.IncExport(format, metrics.ResultSuccess)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename=`+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
