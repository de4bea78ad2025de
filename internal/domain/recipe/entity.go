// Package recipe contains the canonical recipe model together with the
// normalization of raw catalog records and the heuristic attribute estimator.
package recipe

// Recipe is the canonical, engine-owned representation of a catalog recipe.
//
// EstimatedCost, EstimatedTime and Difficulty stay unset after normalization
// and are filled in by Estimate. Once set they are a cached derived attribute;
// re-running Estimate yields the same values.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Area         string       `json:"area"`
	Image        string       `json:"image"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Tags         []string     `json:"tags"`
	Video        string       `json:"video,omitempty"`

	EstimatedCost *int       `json:"estimatedCost"`
	EstimatedTime *int       `json:"estimatedTime"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
}

// IsEstimated reports whether all three derived attributes are present.
func (r *Recipe) IsEstimated() bool {
	return r.EstimatedCost != nil && r.EstimatedTime != nil && r.Difficulty != ""
}

// Cost returns the estimated cost, or 0 when not yet estimated.
func (r *Recipe) Cost() int {
	if r.EstimatedCost == nil {
		return 0
	}
	return *r.EstimatedCost
}

// Minutes returns the estimated cooking time, or 0 when not yet estimated.
func (r *Recipe) Minutes() int {
	if r.EstimatedTime == nil {
		return 0
	}
	return *r.EstimatedTime
}

// Clone returns a deep copy so callers can estimate or mutate without
// touching a shared instance (for example one held by a cache).
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	c.Instructions = append([]string(nil), r.Instructions...)
	c.Tags = append([]string(nil), r.Tags...)
	if r.EstimatedCost != nil {
		v := *r.EstimatedCost
		c.EstimatedCost = &v
	}
	if r.EstimatedTime != nil {
		v := *r.EstimatedTime
		c.EstimatedTime = &v
	}
	return &c
}
