// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/alchemorsel/matchmaker/internal/domain/matching"
	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
)

// MatchService defines the use cases for finding recipes that fit a profile
// This is the primary port that HTTP handlers will use
type MatchService interface {
	FindMatches(ctx context.Context, cmd FindMatchesCommand) (*MatchList, error)

	// Queries over the catalog; returned recipes are normalized and estimated
	GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error)
	SearchRecipes(ctx context.Context, term string) ([]*recipe.Recipe, error)
}

// FindMatchesCommand contains the answered quiz and the wanted result size
type FindMatchesCommand struct {
	Profile preference.Profile
	Limit   int // 0 means the configured default
}

// MatchList is a ranked set of matches
type MatchList struct {
	Matches []matching.MatchResult
	// Candidates is how many catalog recipes were scored
	Candidates int
	// Query describes the catalog query the candidates came from
	Query string
}

// SavedService defines the use cases for an owner's saved recipes and
// remembered quiz answers
type SavedService interface {
	SaveRecipe(ctx context.Context, owner string, r *recipe.Recipe) (bool, error)
	RemoveRecipe(ctx context.Context, owner, recipeID string) error
	IsSaved(ctx context.Context, owner, recipeID string) (bool, error)
	ListSaved(ctx context.Context, owner string) ([]*recipe.Recipe, error)
	ClearSaved(ctx context.Context, owner string) error

	SaveProfile(ctx context.Context, owner string, p preference.Profile) error
	GetProfile(ctx context.Context, owner string) (*preference.Profile, error)
	ClearProfile(ctx context.Context, owner string) error
}
