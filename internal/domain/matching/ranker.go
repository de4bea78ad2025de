package matching

import (
	"sort"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
)

// DefaultLimit is the result size used when the caller passes no limit.
const DefaultLimit = 8

// Rank scores every recipe against p and returns the best limit results,
// highest score first. Equal scores keep their input order. A non-positive
// limit means DefaultLimit. The profile is validated once, before any
// recipe is scored; recipes are estimated in place.
func Rank(recipes []*recipe.Recipe, p preference.Profile, limit int) ([]MatchResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]MatchResult, 0, len(recipes))
	for _, r := range recipes {
		if r == nil {
			continue
		}
		results = append(results, score(r, p))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		results[i].Rank = i
	}
	return results, nil
}
