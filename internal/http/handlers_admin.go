package http

import (
	"errors"
	"net/http"
	"strconv"

	"kakeibo/internal/core"
	"kakeibo/internal/metrics"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"data_count": s.store.Count(),
	})
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleSeedSample inserts the fixed demo fixture.
func (s *Server) handleSeedSample(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	inserted := s.store.Seed()
	metrics.AddCreated(len(inserted))
	s.invalidateSummaries()

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"added":  len(inserted),
		"total":  s.store.Count(),
	})
}

// handleClear erases the whole ledger, but only with ?confirm=true.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	removed, err := s.store.Clear(confirm)
	if err != nil {
		if errors.Is(err, core.ErrConfirmationRequired) {
			writeError(w, http.StatusBadRequest, "confirmation required: add ?confirm=true")
			return
		}
		writeError(w, http.StatusInternalServerError, "clear failed")
		return
	}

	metrics.AddCleared(removed)
	s.invalidateSummaries()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"cleared": removed,
	})
}
