// Package matching scores recipes against a preference profile and ranks
// them. Everything here is pure and synchronous.
package matching

import (
	"fmt"
	"strings"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
)

const (
	// MaxScore caps the summed factor points.
	MaxScore = 100
	// MaxReasons caps the number of match reasons kept per result.
	MaxReasons = 3
	// nearMissDistance is how far below or above a tier's lower bound a
	// value may be to earn partial credit.
	nearMissDistance = 10
)

// tier is an inclusive [min, max] range.
type tier struct {
	min, max int
}

func (t tier) contains(v int) bool { return v >= t.min && v <= t.max }

// nearMin reports whether v is within nearMissDistance of the tier's lower bound.
func (t tier) nearMin(v int) bool {
	d := v - t.min
	if d < 0 {
		d = -d
	}
	return d <= nearMissDistance
}

var budgetTiers = map[preference.Budget]tier{
	preference.BudgetLow:    {0, 35},
	preference.BudgetMedium: {30, 50},
	preference.BudgetHigh:   {45, 100},
}

var timeTiers = map[preference.Time]tier{
	preference.TimeQuick:   {0, 20},
	preference.TimeNormal:  {20, 35},
	preference.TimeRelaxed: {30, 60},
}

var skillDifficulties = map[preference.Skill][]recipe.Difficulty{
	preference.SkillBeginner:     {recipe.DifficultyEasy},
	preference.SkillIntermediate: {recipe.DifficultyEasy, recipe.DifficultyMedium},
	preference.SkillAdvanced:     {recipe.DifficultyMedium, recipe.DifficultyAdvanced},
}

var meatKeywords = []string{"chicken", "beef", "pork", "lamb", "turkey", "fish", "salmon", "tuna"}

// factor is one row of the scoring rule table. evaluate returns the points
// earned and, on a full match only, a reason.
type factor struct {
	name      string
	maxPoints int
	evaluate  func(r *recipe.Recipe, p preference.Profile) (points int, reason string)
}

// factors is evaluated in order; reasons are kept in this order too.
var factors = []factor{
	{name: "budget", maxPoints: 30, evaluate: scoreBudget},
	{name: "time", maxPoints: 25, evaluate: scoreTime},
	{name: "skill", maxPoints: 25, evaluate: scoreSkill},
	{name: "dietary", maxPoints: 10, evaluate: scoreDietary},
	{name: "cuisine", maxPoints: 10, evaluate: scoreCuisine},
}

func scoreBudget(r *recipe.Recipe, p preference.Profile) (int, string) {
	t := budgetTiers[p.Budget]
	cost := r.Cost()
	switch {
	case t.contains(cost):
		return 30, fmt.Sprintf("%dkr fits your budget", cost)
	case t.nearMin(cost):
		return 15, ""
	default:
		return 0, ""
	}
}

func scoreTime(r *recipe.Recipe, p preference.Profile) (int, string) {
	t := timeTiers[p.Time]
	minutes := r.Minutes()
	switch {
	case t.contains(minutes):
		return 25, fmt.Sprintf("%d min cooking time", minutes)
	case t.nearMin(minutes):
		return 12, ""
	default:
		return 0, ""
	}
}

func scoreSkill(r *recipe.Recipe, p preference.Profile) (int, string) {
	for _, d := range skillDifficulties[p.Skill] {
		if d == r.Difficulty {
			return 25, fmt.Sprintf("%s difficulty for %ss", r.Difficulty, p.Skill)
		}
	}
	if (p.Skill == preference.SkillIntermediate && r.Difficulty == recipe.DifficultyAdvanced) ||
		(p.Skill == preference.SkillBeginner && r.Difficulty == recipe.DifficultyMedium) {
		return 12, ""
	}
	return 0, ""
}

func scoreDietary(r *recipe.Recipe, p preference.Profile) (int, string) {
	switch {
	case p.Dietary == preference.DietaryVegetarian && (r.Category == "Vegetarian" || !HasMeat(r)):
		return 10, "Vegetarian-friendly"
	case p.Dietary == preference.DietaryVegan && r.Category == "Vegan":
		return 10, "Vegan"
	case p.Dietary == preference.DietaryNone:
		return 5, ""
	default:
		return 0, ""
	}
}

func scoreCuisine(r *recipe.Recipe, p preference.Profile) (int, string) {
	switch {
	case !p.AnyCuisine() && strings.EqualFold(r.Area, p.Cuisine):
		return 10, fmt.Sprintf("%s cuisine", r.Area)
	case p.AnyCuisine():
		return 5, ""
	default:
		return 0, ""
	}
}

// HasMeat reports whether any ingredient name contains a meat keyword.
func HasMeat(r *recipe.Recipe) bool {
	for _, ing := range r.Ingredients {
		name := strings.ToLower(ing.Name)
		for _, meat := range meatKeywords {
			if strings.Contains(name, meat) {
				return true
			}
		}
	}
	return false
}

// Score validates the profile, estimates r in place and scores it.
func Score(r *recipe.Recipe, p preference.Profile) (MatchResult, error) {
	if err := p.Validate(); err != nil {
		return MatchResult{}, err
	}
	return score(r, p), nil
}

// score assumes p has been validated.
func score(r *recipe.Recipe, p preference.Profile) MatchResult {
	r.Estimate()

	total := 0
	reasons := make([]string, 0, len(factors))
	for _, f := range factors {
		points, reason := f.evaluate(r, p)
		total += points
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}
	if total > MaxScore {
		total = MaxScore
	}
	if len(reasons) > MaxReasons {
		reasons = reasons[:MaxReasons]
	}

	return MatchResult{
		Recipe:       *r.Clone(),
		MatchScore:   total,
		MatchReasons: reasons,
	}
}
