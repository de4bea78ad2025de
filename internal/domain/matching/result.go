package matching

import "github.com/alchemorsel/matchmaker/internal/domain/recipe"

// MatchResult is an estimated recipe with its score against one profile.
type MatchResult struct {
	recipe.Recipe
	MatchScore   int      `json:"matchScore"`
	MatchReasons []string `json:"matchReasons"`
	// Rank is the 0-based position in a ranked list; zero for a lone Score.
	Rank int `json:"rank"`
}

var badges = [...]string{"Best Match", "Great Choice", "Also Perfect"}

// Badge returns the highlight label for the top three ranked positions and
// an empty string for the rest.
func (m MatchResult) Badge() string {
	if m.Rank >= 0 && m.Rank < len(badges) {
		return badges[m.Rank]
	}
	return ""
}
