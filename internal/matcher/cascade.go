package matcher

import (
	"sort"

	"github.com/matcatalog/tag-matching/internal/normalize"
	"github.com/matcatalog/tag-matching/internal/similarity"
	"github.com/matcatalog/tag-matching/internal/tags"
)

// MatchLocally runs the exact -> synonym -> fuzzy cascade over a category's
// tag set. Each tag contributes at most one result: an exact hit on the
// normalized name wins outright, a synonym hit skips the fuzzy stage, and a
// fuzzy score is kept only at or above the confidence floor. Results are
// ranked by confidence descending; truncation to MaxResults happens in the
// caller.
func MatchLocally(normalizedText string, tagSet []tags.Tag, opts tags.MatchingOptions) []tags.MatchResult {
	results := make([]tags.MatchResult, 0, len(tagSet))

	for _, tag := range tagSet {
		if tag.NormalizedName == normalizedText {
			results = append(results, tags.MatchResult{
				TagID:           tag.ID,
				TagName:         tag.Name,
				ConfidenceScore: tags.ExactConfidence,
				MatchingMethod:  tags.MethodExact,
			})
			continue
		}

		if opts.EnableSynonymMatching && len(tag.Synonyms) > 0 {
			if matchesSynonym(normalizedText, tag.Synonyms) {
				results = append(results, tags.MatchResult{
					TagID:           tag.ID,
					TagName:         tag.Name,
					ConfidenceScore: tags.SynonymConfidence,
					MatchingMethod:  tags.MethodSynonym,
				})
				continue
			}
		}

		if opts.EnableFuzzyMatching {
			score := similarity.Score(normalizedText, tag.NormalizedName)
			if score >= opts.MinConfidence {
				results = append(results, tags.MatchResult{
					TagID:           tag.ID,
					TagName:         tag.Name,
					ConfidenceScore: score,
					MatchingMethod:  tags.MethodFuzzy,
				})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ConfidenceScore > results[j].ConfidenceScore
	})

	return results
}

func matchesSynonym(normalizedText string, synonyms []string) bool {
	for _, syn := range synonyms {
		if normalize.Text(syn) == normalizedText {
			return true
		}
	}
	return false
}
