package matcher

import (
	"context"
	"fmt"

	"github.com/matcatalog/tag-matching/internal/tags"
)

// ValidateBackingFunctions probes the three store operations the engine
// depends on and reports which are unreachable. It is meant for operational
// tooling; the matching path never calls it.
func (s *Service) ValidateBackingFunctions(ctx context.Context) tags.ValidationResult {
	result := tags.ValidationResult{
		IsValid:          true,
		MissingFunctions: []string{},
		Errors:           []string{},
	}

	probeCategory := tags.DefaultCategories[0]

	if _, err := s.store.MatchTags(ctx, "health check probe", probeCategory, 0.99); err != nil {
		result.IsValid = false
		result.MissingFunctions = append(result.MissingFunctions, "match_tags")
		result.Errors = append(result.Errors, fmt.Sprintf("match_tags: %v", err))
	}

	if _, err := s.store.ListTags(ctx, probeCategory); err != nil {
		result.IsValid = false
		result.MissingFunctions = append(result.MissingFunctions, "list_tags")
		result.Errors = append(result.Errors, fmt.Sprintf("list_tags: %v", err))
	}

	probe := tags.DecisionLogEntry{
		ExtractedText:  "health check probe",
		MatchingMethod: tags.MethodExact,
		CategoryName:   "health_check",
	}
	if _, err := s.store.AppendDecisionLog(ctx, probe); err != nil {
		result.IsValid = false
		result.MissingFunctions = append(result.MissingFunctions, "append_decision_log")
		result.Errors = append(result.Errors, fmt.Sprintf("append_decision_log: %v", err))
	}

	return result
}
