package recipe

// Value Objects - Immutable objects that describe aspects of the domain

// Ingredient is one ingredient line of a recipe, in catalog order.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Difficulty represents the estimated difficulty of a recipe
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyMedium   Difficulty = "Medium"
	DifficultyAdvanced Difficulty = "Advanced"
)

// IsValid reports whether d is one of the known difficulty levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

const (
	// DefaultCategory is applied when the catalog record has no category.
	DefaultCategory = "Other"
	// DefaultArea is applied when the catalog record has no area.
	DefaultArea = "International"
)
