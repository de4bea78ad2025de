package matching

import (
	"fmt"
	"testing"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRecipe returns a recipe with the given ingredient and step counts.
// Generated ingredients and steps never hit meat, waiting or technique terms.
func buildRecipe(id string, ingredientCount, stepCount int, category, area string) *recipe.Recipe {
	r := &recipe.Recipe{ID: id, Name: "Recipe " + id, Category: category, Area: area}
	for i := 0; i < ingredientCount; i++ {
		r.Ingredients = append(r.Ingredients, recipe.Ingredient{Name: fmt.Sprintf("vegetable %d", i+1)})
	}
	for i := 0; i < stepCount; i++ {
		r.Instructions = append(r.Instructions, fmt.Sprintf("Stir the pot gently, step %d.", i+1))
	}
	return r
}

func baseProfile() preference.Profile {
	return preference.Profile{
		Budget:  preference.BudgetLow,
		Dietary: preference.DietaryNone,
		Skill:   preference.SkillBeginner,
		Time:    preference.TimeQuick,
		Cuisine: preference.CuisineAny,
	}
}

func pancakes() *recipe.Recipe {
	return &recipe.Recipe{
		ID:       "pancakes",
		Name:     "Pancakes",
		Category: "Dessert",
		Area:     "American",
		Ingredients: []recipe.Ingredient{
			{Name: "flour"}, {Name: "egg"}, {Name: "milk"}, {Name: "butter"}, {Name: "salt"},
		},
		Instructions: []string{
			"Whisk the flour and salt together.",
			"Beat in the egg and the milk.",
			"Melt the butter in a frying pan.",
			"Cook each pancake until golden.",
		},
	}
}

func TestScore_BeginnerQuickLowBudgetScenario(t *testing.T) {
	r := pancakes()

	result, err := Score(r, baseProfile())

	require.NoError(t, err)
	assert.Equal(t, 90, result.MatchScore)
	assert.Equal(t, []string{
		"25kr fits your budget",
		"15 min cooking time",
		"Easy difficulty for beginners",
	}, result.MatchReasons)

	// Estimates are written onto the scored recipe and carried in the result.
	require.True(t, r.IsEstimated())
	assert.Equal(t, 25, result.Cost())
	assert.Equal(t, 15, result.Minutes())
	assert.Equal(t, recipe.DifficultyEasy, result.Difficulty)
}

func TestScore_InvalidProfile(t *testing.T) {
	p := baseProfile()
	p.Skill = "chef"
	r := pancakes()

	_, err := Score(r, p)

	assert.ErrorIs(t, err, preference.ErrInvalidProfile)
	assert.False(t, r.IsEstimated(), "no scoring work before the profile is accepted")
}

func TestScore_FactorWeightsSumToMaxScore(t *testing.T) {
	total := 0
	for _, f := range factors {
		total += f.maxPoints
	}
	assert.Equal(t, MaxScore, total)
}

func TestScore_Budget(t *testing.T) {
	tests := []struct {
		name        string
		budget      preference.Budget
		ingredients int
		wantPoints  int
		wantReason  bool
	}{
		{"low fits 25", preference.BudgetLow, 5, 30, true},
		{"low fits 35", preference.BudgetLow, 8, 30, true},
		{"low misses 45", preference.BudgetLow, 12, 0, false},
		{"medium fits 35", preference.BudgetMedium, 6, 30, true},
		{"medium near 25", preference.BudgetMedium, 5, 15, false},
		{"medium misses 55", preference.BudgetMedium, 13, 0, false},
		{"high fits 55", preference.BudgetHigh, 13, 30, true},
		{"high near 35", preference.BudgetHigh, 7, 15, false},
		{"high misses 25", preference.BudgetHigh, 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildRecipe("b", tt.ingredients, 1, "Side", "Italian")
			r.Estimate()
			p := baseProfile()
			p.Budget = tt.budget

			points, reason := scoreBudget(r, p)

			assert.Equal(t, tt.wantPoints, points)
			if tt.wantReason {
				assert.Equal(t, fmt.Sprintf("%dkr fits your budget", r.Cost()), reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}

func TestScore_Time(t *testing.T) {
	tests := []struct {
		name       string
		time       preference.Time
		steps      int
		wantPoints int
		wantReason string
	}{
		{"quick fits 15", preference.TimeQuick, 4, 25, "15 min cooking time"},
		{"quick misses 25", preference.TimeQuick, 5, 0, ""},
		{"normal fits 25", preference.TimeNormal, 6, 25, "25 min cooking time"},
		{"normal fits 35", preference.TimeNormal, 9, 25, "35 min cooking time"},
		{"normal near 15", preference.TimeNormal, 2, 12, ""},
		{"relaxed fits 45", preference.TimeRelaxed, 11, 25, "45 min cooking time"},
		{"relaxed near 25", preference.TimeRelaxed, 7, 12, ""},
		{"relaxed misses 15", preference.TimeRelaxed, 1, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildRecipe("t", 3, tt.steps, "Side", "Italian")
			r.Estimate()
			p := baseProfile()
			p.Time = tt.time

			points, reason := scoreTime(r, p)

			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestScore_Skill(t *testing.T) {
	tests := []struct {
		skill      preference.Skill
		difficulty recipe.Difficulty
		wantPoints int
		wantReason string
	}{
		{preference.SkillBeginner, recipe.DifficultyEasy, 25, "Easy difficulty for beginners"},
		{preference.SkillBeginner, recipe.DifficultyMedium, 12, ""},
		{preference.SkillBeginner, recipe.DifficultyAdvanced, 0, ""},
		{preference.SkillIntermediate, recipe.DifficultyEasy, 25, "Easy difficulty for intermediates"},
		{preference.SkillIntermediate, recipe.DifficultyMedium, 25, "Medium difficulty for intermediates"},
		{preference.SkillIntermediate, recipe.DifficultyAdvanced, 12, ""},
		{preference.SkillAdvanced, recipe.DifficultyEasy, 0, ""},
		{preference.SkillAdvanced, recipe.DifficultyMedium, 25, "Medium difficulty for advanceds"},
		{preference.SkillAdvanced, recipe.DifficultyAdvanced, 25, "Advanced difficulty for advanceds"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.skill, tt.difficulty), func(t *testing.T) {
			r := &recipe.Recipe{Difficulty: tt.difficulty}
			p := baseProfile()
			p.Skill = tt.skill

			points, reason := scoreSkill(r, p)

			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestScore_Dietary(t *testing.T) {
	withChicken := buildRecipe("d1", 2, 1, "Chicken", "British")
	withChicken.Ingredients = append(withChicken.Ingredients, recipe.Ingredient{Name: "Chicken Thighs"})

	vegetarianCategoryWithFish := buildRecipe("d2", 2, 1, "Vegetarian", "British")
	vegetarianCategoryWithFish.Ingredients = append(vegetarianCategoryWithFish.Ingredients, recipe.Ingredient{Name: "fish sauce"})

	tests := []struct {
		name       string
		dietary    preference.Dietary
		recipe     *recipe.Recipe
		wantPoints int
		wantReason string
	}{
		{"vegetarian no meat", preference.DietaryVegetarian, buildRecipe("d3", 3, 1, "Side", "British"), 10, "Vegetarian-friendly"},
		{"vegetarian category wins over keywords", preference.DietaryVegetarian, vegetarianCategoryWithFish, 10, "Vegetarian-friendly"},
		{"vegetarian with meat", preference.DietaryVegetarian, withChicken, 0, ""},
		{"vegan category", preference.DietaryVegan, buildRecipe("d4", 3, 1, "Vegan", "British"), 10, "Vegan"},
		{"vegan needs vegan category", preference.DietaryVegan, buildRecipe("d5", 3, 1, "Vegetarian", "British"), 0, ""},
		{"none baseline", preference.DietaryNone, withChicken, 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProfile()
			p.Dietary = tt.dietary

			points, reason := scoreDietary(tt.recipe, p)

			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestScore_Cuisine(t *testing.T) {
	tests := []struct {
		name       string
		cuisine    string
		area       string
		wantPoints int
		wantReason string
	}{
		{"case-insensitive match", "italian", "Italian", 10, "Italian cuisine"},
		{"mismatch", "Chinese", "Italian", 0, ""},
		{"any baseline", preference.CuisineAny, "Italian", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProfile()
			p.Cuisine = tt.cuisine

			points, reason := scoreCuisine(&recipe.Recipe{Area: tt.area}, p)

			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestScore_ReasonsCappedInFactorOrder(t *testing.T) {
	p := baseProfile()
	p.Dietary = preference.DietaryVegetarian
	p.Cuisine = "Italian"

	result, err := Score(buildRecipe("all", 5, 4, "Pasta", "Italian"), p)

	require.NoError(t, err)
	assert.Equal(t, 100, result.MatchScore)
	assert.Equal(t, []string{
		"25kr fits your budget",
		"15 min cooking time",
		"Easy difficulty for beginners",
	}, result.MatchReasons)
}

func TestScore_PartialCreditEmitsNoReasons(t *testing.T) {
	p := preference.Profile{
		Budget:  preference.BudgetMedium,
		Dietary: preference.DietaryNone,
		Skill:   preference.SkillBeginner,
		Time:    preference.TimeNormal,
		Cuisine: preference.CuisineAny,
	}
	// 7 ingredients, 2 steps: cost 35 (fits), time 15 (near normal), Medium (beginner leniency).
	result, err := Score(buildRecipe("partial", 7, 2, "Side", "Thai"), p)

	require.NoError(t, err)
	assert.Equal(t, 30+12+12+5+5, result.MatchScore)
	assert.Equal(t, []string{"35kr fits your budget"}, result.MatchReasons)
}

func TestScore_BoundsAndDeterminism(t *testing.T) {
	budgets := []preference.Budget{preference.BudgetLow, preference.BudgetMedium, preference.BudgetHigh}
	dietaries := []preference.Dietary{preference.DietaryNone, preference.DietaryVegetarian, preference.DietaryVegan}
	skills := []preference.Skill{preference.SkillBeginner, preference.SkillIntermediate, preference.SkillAdvanced}
	times := []preference.Time{preference.TimeQuick, preference.TimeNormal, preference.TimeRelaxed}
	cuisines := []string{preference.CuisineAny, "Italian", "Vegan Fusion"}

	for _, ingredientCount := range []int{0, 4, 7, 10, 14, 20} {
		for _, stepCount := range []int{0, 3, 6, 9, 12} {
			for _, b := range budgets {
				for _, d := range dietaries {
					for _, s := range skills {
						for _, tm := range times {
							for _, c := range cuisines {
								p := preference.Profile{Budget: b, Dietary: d, Skill: s, Time: tm, Cuisine: c}
								first, err := Score(buildRecipe("x", ingredientCount, stepCount, "Vegan", "Italian"), p)
								require.NoError(t, err)
								second, err := Score(buildRecipe("x", ingredientCount, stepCount, "Vegan", "Italian"), p)
								require.NoError(t, err)

								assert.GreaterOrEqual(t, first.MatchScore, 0)
								assert.LessOrEqual(t, first.MatchScore, MaxScore)
								assert.LessOrEqual(t, len(first.MatchReasons), MaxReasons)
								assert.Equal(t, first, second)
							}
						}
					}
				}
			}
		}
	}
}

func TestHasMeat(t *testing.T) {
	r := &recipe.Recipe{Ingredients: []recipe.Ingredient{{Name: "Tomato"}, {Name: "Tinned TUNA"}}}
	assert.True(t, HasMeat(r))

	r.Ingredients = []recipe.Ingredient{{Name: "Tomato"}, {Name: "Basil"}}
	assert.False(t, HasMeat(r))
}
