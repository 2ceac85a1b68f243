package domain

import (
	"math"
	"sort"
)

// MatchRecommendations rank catalog items by tag overlap with the learner profile.
// Items with no overlap are excluded. The percentage is the share of profile tags
// the item covers, rounded, never below 1 so a matching item never shows 0%.
// Ties keep catalog order.
func MatchRecommendations(profile LearnerProfile, catalog []ContentItem) []Recommendation {
	profileTags := toSet(profile.Tags)
	if len(profileTags) == 0 {
		return []Recommendation{}
	}

	results := []Recommendation{}
	for _, item := range catalog {
		matching := countMatching(item.Tags, profileTags)
		if matching == 0 {
			continue
		}

		pct := int(math.Round(float64(matching) * 100 / float64(len(profileTags))))
		if pct < 1 {
			pct = 1
		}
		if pct > 100 {
			pct = 100
		}

		results = append(results, Recommendation{
			Item:            item,
			MatchPercentage: pct,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})
	return results
}

// MatchSimilar rank catalog items by raw matching-tag count against the given tags.
// Items from preferredSubjectID win ties ahead of the count ordering, excludeID is
// always skipped, and the result is cut to limit when limit > 0.
func MatchSimilar(excludeID string, tags []string, preferredSubjectID string, catalog []ContentItem, limit int) []SimilarItem {
	tagSet := toSet(tags)
	if len(tagSet) == 0 {
		return []SimilarItem{}
	}

	results := []SimilarItem{}
	for _, item := range catalog {
		if item.ID == excludeID {
			continue
		}
		matching := countMatching(item.Tags, tagSet)
		if matching == 0 {
			continue
		}
		results = append(results, SimilarItem{
			Item:             item,
			MatchingTagCount: matching,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		iPreferred := results[i].Item.SubjectID == preferredSubjectID
		jPreferred := results[j].Item.SubjectID == preferredSubjectID
		if iPreferred != jPreferred {
			return iPreferred
		}
		return results[i].MatchingTagCount > results[j].MatchingTagCount
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// countMatching count distinct item tags present in the set
func countMatching(itemTags []string, set map[string]struct{}) int {
	seen := make(map[string]struct{}, len(itemTags))
	count := 0
	for _, t := range itemTags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			count++
		}
	}
	return count
}
