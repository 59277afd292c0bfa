package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"kakeibo/internal/core"
)

// writeJSON renders v with the given status. Encoding failures are
// logged, not surfaced; headers are already written at that point.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode error", "error", err)
	}
}

// writeError renders a uniform error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// requireMethod enforces the allowed methods, answering 405 otherwise.
func requireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// clientIP extracts the caller address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// sanitizeInput trims whitespace and strips control characters except
// tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseFilter builds the query-engine filter from URL parameters.
// Malformed dates are reported back by field name.
func parseFilter(r *http.Request) (core.Filter, string, bool) {
	q := r.URL.Query()
	var f core.Filter

	if v := strings.TrimSpace(q.Get("date_from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, "date_from must be in YYYY-MM-DD format", false
		}
		f.From = d
	}
	if v := strings.TrimSpace(q.Get("date_to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, "date_to must be in YYYY-MM-DD format", false
		}
		f.To = d
	}
	f.Category = sanitizeInput(q.Get("category"))

	return f, "", true
}
