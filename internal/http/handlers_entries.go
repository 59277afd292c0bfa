package http

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"kakeibo/internal/core"
	"kakeibo/internal/metrics"
)

// entryPayload is one item of a bulk insert request. Amount stays raw
// so numeric and quoted values go through the same normalization.
type entryPayload struct {
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
}

// rejectionReport is the per-item failure entry of an insert response.
type rejectionReport struct {
	Index int    `json:"index"`
	Field string `json:"field"`
	Value string `json:"value"`
	Error string `json:"error"`
}

type insertResponse struct {
	Status   string            `json:"status"`
	Created  int               `json:"created"`
	Entries  []core.Receipt    `json:"entries"`
	Rejected []rejectionReport `json:"rejected"`
}

type entriesResponse struct {
	Total       int              `json:"total"`
	TotalAmount int64            `json:"total_amount"`
	Categories  map[string]int64 `json:"categories"`
	Entries     []core.Receipt   `json:"entries"`
}

// handleRoot redirects browsers to the listing and aliases POST / to
// the bulk insert.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		http.Redirect(w, r, "/entries", http.StatusTemporaryRedirect)
	case http.MethodPost:
		s.handleCreateEntries(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleEntries dispatches the overlapping /entries route shape to the
// distinct list and insert operations.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListEntries(w, r)
	case http.MethodPost:
		s.handleCreateEntries(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateEntries(w http.ResponseWriter, r *http.Request) {
	var payload []entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON array of entries")
		return
	}

	raws := make([]core.RawReceipt, len(payload))
	for i, p := range payload {
		raws[i] = core.RawReceipt{
			Date:        sanitizeInput(p.Date),
			Category:    sanitizeInput(p.Category),
			Description: sanitizeInput(p.Description),
			Amount:      amountText(p.Amount),
		}
	}

	s.insertAndRespond(w, r, raws)
}

// handleUploadCSV accepts a CSV document (raw body or multipart "file"
// part) whose header names the entry fields, and feeds the rows through
// the same bulk insert path as the JSON route.
func (s *Server) handleUploadCSV(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "multipart upload requires a 'file' part")
			return
		}
		defer file.Close()
		src = file
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed CSV payload")
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusBadRequest, "empty CSV payload")
		return
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	raws := make([]core.RawReceipt, 0, len(records)-1)
	for _, row := range records[1:] {
		raws = append(raws, core.RawReceipt{
			Date:        sanitizeInput(field(row, "date")),
			Category:    sanitizeInput(field(row, "category")),
			Description: sanitizeInput(field(row, "description")),
			Amount:      sanitizeInput(field(row, "amount")),
		})
	}

	s.insertAndRespond(w, r, raws)
}

// insertAndRespond runs the partial-success bulk insert and reports
// accepted records and per-item rejections.
func (s *Server) insertAndRespond(w http.ResponseWriter, _ *http.Request, raws []core.RawReceipt) {
	inserted, rejected := s.store.InsertMany(raws)

	metrics.AddCreated(len(inserted))
	reports := make([]rejectionReport, 0, len(rejected))
	for _, rej := range rejected {
		metrics.IncRejected(rej.Err.Field)
		reports = append(reports, rejectionReport{
			Index: rej.Index,
			Field: rej.Err.Field,
			Value: rej.Err.Value,
			Error: rej.Err.Err.Error(),
		})
	}

	if len(inserted) > 0 {
		s.invalidateSummaries()
	}

	resp := insertResponse{
		Status:   "success",
		Created:  len(inserted),
		Entries:  inserted,
		Rejected: reports,
	}
	status := http.StatusOK
	switch {
	case len(raws) > 0 && len(inserted) == 0:
		resp.Status = "error"
		status = http.StatusUnprocessableEntity
	case len(rejected) > 0:
		resp.Status = "partial"
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	filter, msg, ok := parseFilter(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	items := filter.Apply(s.store.Snapshot())
	writeJSON(w, http.StatusOK, entriesResponse{
		Total:       len(items),
		TotalAmount: core.TotalAmount(items),
		Categories:  core.CategoryTotals(items),
		Entries:     items,
	})
}

// amountText renders a raw JSON amount as the textual numeral the
// validator expects, whether it arrived quoted or bare.
func amountText(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return ""
	}
	if text[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return text
		}
		return strings.TrimSpace(s)
	}
	return text
}
