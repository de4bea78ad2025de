package recipe

import "strings"

// waitingTerms mark steps with passive waiting time.
var waitingTerms = []string{"marinate", "refrigerate", "rest"}

// advancedTerms mark techniques that rule out the Easy band.
var advancedTerms = []string{
	"fold", "sauté", "reduce", "deglaze", "blanch",
	"zest", "julienne", "dice finely", "temper",
}

// band maps an upper bound (inclusive) to a value.
type band struct {
	max   int
	value int
}

// costBands are per-serving costs in kr by ingredient count.
var costBands = []band{{5, 25}, {8, 35}, {12, 45}}

const maxCost = 55

// timeBands are cooking minutes by instruction step count.
var timeBands = []band{{4, 15}, {7, 25}, {10, 35}}

const maxTime = 45

// EstimateCost estimates the per-serving cost from the ingredient count.
func EstimateCost(ingredientCount int) int {
	for _, b := range costBands {
		if ingredientCount <= b.max {
			return b.value
		}
	}
	return maxCost
}

// EstimateTime estimates cooking minutes from the instruction steps. A recipe
// whose steps mention passive waiting is never placed in the fastest band; it
// falls through to the next band check.
func EstimateTime(steps []string) int {
	waiting := containsAny(steps, waitingTerms)
	for i, b := range timeBands {
		if i == 0 && waiting {
			continue
		}
		if len(steps) <= b.max {
			return b.value
		}
	}
	return maxTime
}

// EstimateDifficulty classifies a recipe. Easy is checked first, then
// Medium; everything else is Advanced.
func EstimateDifficulty(ingredientCount int, steps []string) Difficulty {
	switch {
	case ingredientCount <= 6 && len(steps) <= 5 && !containsAny(steps, advancedTerms):
		return DifficultyEasy
	case ingredientCount <= 10 && len(steps) <= 8:
		return DifficultyMedium
	default:
		return DifficultyAdvanced
	}
}

// Estimate fills in EstimatedCost, EstimatedTime and Difficulty in place.
// It depends only on the ingredients and instructions, so it is idempotent.
func (r *Recipe) Estimate() {
	cost := EstimateCost(len(r.Ingredients))
	minutes := EstimateTime(r.Instructions)
	r.EstimatedCost = &cost
	r.EstimatedTime = &minutes
	r.Difficulty = EstimateDifficulty(len(r.Ingredients), r.Instructions)
}

// containsAny reports whether any step contains any term, case-insensitively.
func containsAny(steps []string, terms []string) bool {
	for _, step := range steps {
		lower := strings.ToLower(step)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}
