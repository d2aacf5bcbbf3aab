package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/matcatalog/tag-matching/internal/matcher"
)

// AdminHandler serves the health and cache administration endpoints.
type AdminHandler struct {
	Service *matcher.Service
}

// Health is a plain liveness probe.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// BackingHealth probes the tag store's backing operations.
func (h *AdminHandler) BackingHealth(w http.ResponseWriter, r *http.Request) {
	result := h.Service.ValidateBackingFunctions(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if !result.IsValid {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(result)
}

// CacheStats reports the category cache contents.
func (h *AdminHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.CacheStats())
}

// CacheClear drops every cached category tag list.
func (h *AdminHandler) CacheClear(w http.ResponseWriter, r *http.Request) {
	h.Service.ClearCache()
	writeJSON(w, map[string]string{"status": "cleared"})
}
