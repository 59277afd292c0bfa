package http

import (
	"net/http"
	"strings"

	"kakeibo/internal/core"
)

type monthSummaryResponse struct {
	YearMonth    string               `json:"year_month"`
	TotalEntries int                  `json:"total_entries"`
	TotalAmount  int64                `json:"total_amount"`
	Categories   []core.CategoryShare `json:"categories"`
}

// handleSummaryAll aggregates every month present in the data, each
// bucketed by the receipt's own date.
func (s *Server) handleSummaryAll(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	summary := s.cachedSummary("all", "")
	writeJSON(w, http.StatusOK, map[string]core.MonthlySummary{"months": summary})
}

// handleSummaryMonth aggregates a single YYYY-MM taken from the path.
func (s *Server) handleSummaryMonth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	ym, err := core.ParseYearMonth(strings.TrimPrefix(r.URL.Path, "/summary/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year_month must be in YYYY-MM format")
		return
	}

	summary := s.cachedSummary("month:"+ym, ym)

	resp := monthSummaryResponse{
		YearMonth:  ym,
		Categories: []core.CategoryShare{},
	}
	if mt := summary[ym]; mt != nil {
		resp.TotalEntries = mt.Count
		resp.TotalAmount = mt.Total
		resp.Categories = mt.Shares()
	}
	writeJSON(w, http.StatusOK, resp)
}

// cachedSummary returns the summary for key, recomputing from a fresh
// snapshot on miss.
func (s *Server) cachedSummary(key, yearMonth string) core.MonthlySummary {
	if cached, ok := s.summaryCache.Get(key); ok {
		return cached
	}
	summary := core.Summarize(s.store.Snapshot(), yearMonth)
	s.summaryCache.Set(key, summary)
	return summary
}
