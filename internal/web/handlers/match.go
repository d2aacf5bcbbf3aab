package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/matcatalog/tag-matching/internal/matcher"
	"github.com/matcatalog/tag-matching/internal/tags"
)

// MatchHandler serves the matching endpoints.
type MatchHandler struct {
	Service *matcher.Service
}

// optionsPayload overlays caller-supplied option fields onto the defaults,
// so partial JSON bodies behave like the documented defaults.
type optionsPayload struct {
	MinConfidence         *float64 `json:"min_confidence"`
	EnableFuzzyMatching   *bool    `json:"enable_fuzzy_matching"`
	EnableSynonymMatching *bool    `json:"enable_synonym_matching"`
	MaxResults            *int     `json:"max_results"`
}

func (p *optionsPayload) toOptions() tags.MatchingOptions {
	opts := tags.DefaultOptions()
	if p == nil {
		return opts
	}
	if p.MinConfidence != nil {
		opts.MinConfidence = *p.MinConfidence
	}
	if p.EnableFuzzyMatching != nil {
		opts.EnableFuzzyMatching = *p.EnableFuzzyMatching
	}
	if p.EnableSynonymMatching != nil {
		opts.EnableSynonymMatching = *p.EnableSynonymMatching
	}
	if p.MaxResults != nil {
		opts.MaxResults = *p.MaxResults
	}
	return opts
}

type matchRequest struct {
	Text     string          `json:"text"`
	Category string          `json:"category"`
	Options  *optionsPayload `json:"options"`
}

type matchResponse struct {
	Category string             `json:"category"`
	Results  []tags.MatchResult `json:"results"`
}

// Match resolves extracted text against a single category.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	results, err := h.Service.FindMatchingTags(r.Context(), req.Text, req.Category, req.Options.toOptions())
	if err != nil {
		http.Error(w, "Matching failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, matchResponse{Category: req.Category, Results: results})
}

type batchMatchRequest struct {
	Text       string          `json:"text"`
	Categories []string        `json:"categories"`
	Options    *optionsPayload `json:"options"`
}

type batchMatchResponse struct {
	Results map[string][]tags.MatchResult `json:"results"`
}

// MatchBatch resolves extracted text against several categories at once. An
// empty category list scans the default category set.
func (h *MatchHandler) MatchBatch(w http.ResponseWriter, r *http.Request) {
	var req batchMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	results, err := h.Service.FindTagsForAllCategories(r.Context(), req.Text, req.Categories, req.Options.toOptions())
	if err != nil {
		http.Error(w, "Matching failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, batchMatchResponse{Results: results})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
