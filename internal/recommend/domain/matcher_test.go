package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRecommendations(t *testing.T) {
	catalog := []ContentItem{
		{ID: "v1", Name: "intro", Tags: []string{"visual", "kinesthetic"}, SubjectID: "math"},
		{ID: "v2", Name: "drills", Tags: []string{"auditory"}, SubjectID: "math"},
		{ID: "v3", Name: "essay", Tags: []string{"reading"}, SubjectID: "english"},
	}

	t.Run("empty profile returns empty list", func(t *testing.T) {
		recs := MatchRecommendations(LearnerProfile{UserID: "u1"}, catalog)
		assert.Empty(t, recs)
		assert.NotNil(t, recs)
	})

	t.Run("empty catalog returns empty list", func(t *testing.T) {
		recs := MatchRecommendations(LearnerProfile{UserID: "u1", Tags: []string{"visual"}}, nil)
		assert.Empty(t, recs)
	})

	t.Run("items with no overlap are excluded", func(t *testing.T) {
		profile := LearnerProfile{UserID: "u1", Tags: []string{"visual"}}
		recs := MatchRecommendations(profile, catalog)

		assert.Len(t, recs, 1)
		assert.Equal(t, "v1", recs[0].Item.ID)
	})

	t.Run("percentage is the covered share of profile tags", func(t *testing.T) {
		// one of two profile tags matches -> 50
		profile := LearnerProfile{UserID: "u1", Tags: []string{"visual", "auditory"}}
		recs := MatchRecommendations(profile, catalog)

		assert.Len(t, recs, 2)
		for _, rec := range recs {
			assert.Equal(t, 50, rec.MatchPercentage)
		}
	})

	t.Run("full overlap gives 100", func(t *testing.T) {
		profile := LearnerProfile{UserID: "u1", Tags: []string{"visual", "kinesthetic"}}
		recs := MatchRecommendations(profile, catalog)

		assert.Equal(t, "v1", recs[0].Item.ID)
		assert.Equal(t, 100, recs[0].MatchPercentage)
	})

	t.Run("matching item never rounds down to zero", func(t *testing.T) {
		tags := make([]string, 0, 250)
		for i := 0; i < 250; i++ {
			tags = append(tags, fmt.Sprintf("tag-%d", i))
		}
		profile := LearnerProfile{UserID: "u1", Tags: tags}
		wideCatalog := []ContentItem{{ID: "v1", Tags: []string{"tag-0"}}}

		recs := MatchRecommendations(profile, wideCatalog)

		assert.Len(t, recs, 1)
		assert.Equal(t, 1, recs[0].MatchPercentage)
	})

	t.Run("sorted descending, ties keep catalog order", func(t *testing.T) {
		profile := LearnerProfile{UserID: "u1", Tags: []string{"visual", "auditory", "reading"}}
		ordered := []ContentItem{
			{ID: "one-tag-a", Tags: []string{"visual"}},
			{ID: "two-tags", Tags: []string{"visual", "auditory"}},
			{ID: "one-tag-b", Tags: []string{"reading"}},
		}

		recs := MatchRecommendations(profile, ordered)

		assert.Equal(t, "two-tags", recs[0].Item.ID)
		assert.Equal(t, "one-tag-a", recs[1].Item.ID)
		assert.Equal(t, "one-tag-b", recs[2].Item.ID)
	})

	t.Run("duplicate tags count once", func(t *testing.T) {
		profile := LearnerProfile{UserID: "u1", Tags: []string{"visual", "visual"}}
		dupCatalog := []ContentItem{{ID: "v1", Tags: []string{"visual", "visual"}}}

		recs := MatchRecommendations(profile, dupCatalog)

		assert.Len(t, recs, 1)
		assert.Equal(t, 100, recs[0].MatchPercentage)
	})
}

func TestMatchSimilar(t *testing.T) {
	catalog := []ContentItem{
		{ID: "self", Tags: []string{"algebra", "visual"}, SubjectID: "math"},
		{ID: "same-subject", Tags: []string{"algebra"}, SubjectID: "math"},
		{ID: "other-subject", Tags: []string{"algebra", "visual"}, SubjectID: "english"},
		{ID: "unrelated", Tags: []string{"poetry"}, SubjectID: "english"},
	}

	t.Run("excludes the item itself and non-matching items", func(t *testing.T) {
		similar := MatchSimilar("self", []string{"algebra", "visual"}, "math", catalog, 10)

		ids := make([]string, 0, len(similar))
		for _, s := range similar {
			ids = append(ids, s.Item.ID)
		}
		assert.NotContains(t, ids, "self")
		assert.NotContains(t, ids, "unrelated")
		assert.Len(t, similar, 2)
	})

	t.Run("same subject wins ahead of a higher count", func(t *testing.T) {
		similar := MatchSimilar("self", []string{"algebra", "visual"}, "math", catalog, 10)

		assert.Equal(t, "same-subject", similar[0].Item.ID)
		assert.Equal(t, 1, similar[0].MatchingTagCount)
		assert.Equal(t, "other-subject", similar[1].Item.ID)
		assert.Equal(t, 2, similar[1].MatchingTagCount)
	})

	t.Run("cut to limit", func(t *testing.T) {
		wide := make([]ContentItem, 0, 15)
		for i := 0; i < 15; i++ {
			wide = append(wide, ContentItem{ID: fmt.Sprintf("v-%d", i), Tags: []string{"algebra"}, SubjectID: "math"})
		}

		similar := MatchSimilar("self", []string{"algebra"}, "math", wide, 10)

		assert.Len(t, similar, 10)
	})

	t.Run("no tags means no matches", func(t *testing.T) {
		similar := MatchSimilar("self", nil, "math", catalog, 10)
		assert.Empty(t, similar)
	})
}
