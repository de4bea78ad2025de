package matching

import (
	"testing"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RankerTestSuite struct {
	suite.Suite
	profile preference.Profile
}

func (s *RankerTestSuite) SetupTest() {
	s.profile = preference.Profile{
		Budget:  preference.BudgetLow,
		Dietary: preference.DietaryNone,
		Skill:   preference.SkillBeginner,
		Time:    preference.TimeQuick,
		Cuisine: "Italian",
	}
}

// distinctlyScored returns ten recipes whose scores against the suite
// profile are all different, in scrambled order.
func distinctlyScored() []*recipe.Recipe {
	return []*recipe.Recipe{
		buildRecipe("h", 8, 9, "Side", "French"),   // 35
		buildRecipe("j", 13, 12, "Side", "French"), // 5
		buildRecipe("a", 5, 4, "Side", "Italian"),  // 95
		buildRecipe("i", 9, 6, "Side", "French"),   // 17
		buildRecipe("d", 7, 4, "Side", "French"),   // 72
		buildRecipe("b", 5, 4, "Side", "French"),   // 85
		buildRecipe("g", 9, 4, "Side", "French"),   // 42
		buildRecipe("c", 7, 4, "Side", "Italian"),  // 82
		buildRecipe("f", 7, 6, "Side", "French"),   // 47
		buildRecipe("e", 5, 5, "Side", "French"),   // 60
	}
}

func ids(results []MatchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func (s *RankerTestSuite) TestRank_TruncatesToLimitHighestFirst() {
	results, err := Rank(distinctlyScored(), s.profile, 8)

	s.Require().NoError(err)
	s.Len(results, 8)
	s.Equal([]string{"a", "b", "c", "d", "e", "f", "g", "h"}, ids(results))
	s.Equal([]int{95, 85, 82, 72, 60, 47, 42, 35}, scores(results))
	for i, r := range results {
		s.Equal(i, r.Rank)
	}
}

func (s *RankerTestSuite) TestRank_NonPositiveLimitUsesDefault() {
	for _, limit := range []int{0, -3} {
		results, err := Rank(distinctlyScored(), s.profile, limit)

		s.Require().NoError(err)
		s.Len(results, DefaultLimit)
	}
}

func (s *RankerTestSuite) TestRank_FewerRecipesThanLimit() {
	results, err := Rank(distinctlyScored()[:3], s.profile, 8)

	s.Require().NoError(err)
	s.Equal([]string{"a", "h", "j"}, ids(results))
}

func (s *RankerTestSuite) TestRank_TiesKeepInputOrder() {
	recipes := []*recipe.Recipe{
		buildRecipe("first", 5, 4, "Side", "French"),
		buildRecipe("second", 5, 4, "Side", "French"),
		buildRecipe("best", 5, 4, "Side", "Italian"),
		buildRecipe("third", 5, 4, "Side", "French"),
	}

	results, err := Rank(recipes, s.profile, 8)

	s.Require().NoError(err)
	s.Equal([]string{"best", "first", "second", "third"}, ids(results))
}

func (s *RankerTestSuite) TestRank_EmptyInput() {
	results, err := Rank(nil, s.profile, 8)

	s.Require().NoError(err)
	s.NotNil(results)
	s.Empty(results)
}

func (s *RankerTestSuite) TestRank_SkipsNilRecipes() {
	results, err := Rank([]*recipe.Recipe{nil, buildRecipe("only", 3, 2, "Side", "Italian"), nil}, s.profile, 8)

	s.Require().NoError(err)
	s.Equal([]string{"only"}, ids(results))
}

func (s *RankerTestSuite) TestRank_InvalidProfileScoresNothing() {
	recipes := distinctlyScored()
	p := s.profile
	p.Budget = "free"

	results, err := Rank(recipes, p, 8)

	s.ErrorIs(err, preference.ErrInvalidProfile)
	s.Nil(results)
	for _, r := range recipes {
		s.False(r.IsEstimated())
	}
}

func (s *RankerTestSuite) TestRank_ResultsCarryEstimates() {
	results, err := Rank(distinctlyScored(), s.profile, 8)

	s.Require().NoError(err)
	for _, r := range results {
		s.True(r.IsEstimated(), r.ID)
		s.True(r.Difficulty.IsValid(), r.ID)
	}
}

func TestRankerTestSuite(t *testing.T) {
	suite.Run(t, new(RankerTestSuite))
}

func scores(results []MatchResult) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.MatchScore
	}
	return out
}

func TestMatchResult_Badge(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{0, "Best Match"},
		{1, "Great Choice"},
		{2, "Also Perfect"},
		{3, ""},
		{7, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchResult{Rank: tt.rank}.Badge())
	}
}

func TestMatchResult_IsIndependentOfInput(t *testing.T) {
	r := buildRecipe("orig", 3, 2, "Side", "Italian")
	p := preference.Profile{
		Budget:  preference.BudgetLow,
		Dietary: preference.DietaryNone,
		Skill:   preference.SkillBeginner,
		Time:    preference.TimeQuick,
		Cuisine: preference.CuisineAny,
	}

	result, err := Score(r, p)
	require.NoError(t, err)

	r.Ingredients[0].Name = "changed"
	*r.EstimatedCost = 999

	assert.Equal(t, "vegetable 1", result.Ingredients[0].Name)
	assert.Equal(t, 25, result.Cost())
}
