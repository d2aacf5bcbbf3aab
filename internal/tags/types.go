// Package tags defines the data model shared by the tag matching engine and
// the external tag store.
package tags

import "context"

// Matching methods reported on a MatchResult.
const (
	MethodExact   = "exact"
	MethodSynonym = "synonym"
	MethodFuzzy   = "fuzzy"
	MethodNLP     = "nlp"
)

// Confidence scores assigned by the local cascade.
const (
	ExactConfidence   = 1.0
	SynonymConfidence = 0.95
)

// DefaultCategories is the category set scanned when a caller does not name
// its own.
var DefaultCategories = []string{
	"colors",
	"material_types",
	"finishes",
	"collections",
	"technical_specs",
}

// Tag is a canonical taxonomy entry. Tags are owned by the external tag
// store and read-only to the engine.
type Tag struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	NormalizedName string   `json:"normalized_name"`
	Synonyms       []string `json:"synonyms"`
	// ConfidenceThreshold is a per-tag acceptance floor carried by the store
	// schema. The local cascade applies only the call-level MinConfidence;
	// this field is consulted by the remote matching procedure.
	ConfidenceThreshold float64 `json:"confidence_threshold"`
}

// MatchResult is one ranked candidate produced by a match attempt.
type MatchResult struct {
	TagID           string  `json:"tag_id"`
	TagName         string  `json:"tag_name"`
	ConfidenceScore float64 `json:"confidence_score"`
	MatchingMethod  string  `json:"matching_method"`
}

// MatchingOptions tune a single matching call. The engine honors options
// exactly as given: a MinConfidence of 0 accepts every fuzzy candidate and a
// MaxResults of 0 applies no result cap. The zero value therefore means
// exact-only matching with no cap; callers wanting the documented defaults
// start from DefaultOptions. The HTTP and CLI surfaces overlay
// caller-supplied fields onto DefaultOptions, so partial inputs there behave
// like the defaults.
type MatchingOptions struct {
	MinConfidence         float64 `json:"min_confidence"`
	EnableFuzzyMatching   bool    `json:"enable_fuzzy_matching"`
	EnableSynonymMatching bool    `json:"enable_synonym_matching"`
	MaxResults            int     `json:"max_results"`
}

// DefaultOptions returns the documented option defaults.
func DefaultOptions() MatchingOptions {
	return MatchingOptions{
		MinConfidence:         0.7,
		EnableFuzzyMatching:   true,
		EnableSynonymMatching: true,
		MaxResults:            5,
	}
}

// DecisionLogEntry is the write-once record of one matching decision, sent
// to the store for downstream analytics.
type DecisionLogEntry struct {
	MaterialID      *string  `json:"material_id,omitempty"`
	ExtractedText   string   `json:"extracted_text"`
	MatchedTagID    *string  `json:"matched_tag_id,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	MatchingMethod  string   `json:"matching_method"`
	CategoryName    string   `json:"category_name"`
}

// ValidationResult reports reachability of the store's backing operations.
type ValidationResult struct {
	IsValid          bool     `json:"is_valid"`
	MissingFunctions []string `json:"missing_functions"`
	Errors           []string `json:"errors"`
}

// Store is the engine's view of the external tag store.
type Store interface {
	// ListTags returns the full tag list for a category.
	ListTags(ctx context.Context, category string) ([]Tag, error)

	// MatchTags invokes the server-side matching procedure. It may return an
	// empty result set; both empty and error defer matching to the local
	// cascade.
	MatchTags(ctx context.Context, text, category string, minConfidence float64) ([]MatchResult, error)

	// AppendDecisionLog records a matching decision and returns its id.
	AppendDecisionLog(ctx context.Context, entry DecisionLogEntry) (int64, error)
}
