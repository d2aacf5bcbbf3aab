package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/matcatalog/tag-matching/internal/matcher"
	"github.com/matcatalog/tag-matching/internal/tags"
)

// DecisionHandler accepts matching-decision records from the catalog UI.
type DecisionHandler struct {
	Service *matcher.Service
}

// Record queues a decision log entry. The write is fire-and-forget, so the
// response is 202 regardless of whether the store accepts it.
func (h *DecisionHandler) Record(w http.ResponseWriter, r *http.Request) {
	var entry tags.DecisionLogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.Service.LogDecision(entry)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}
