// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
)

// ErrCacheMiss is returned by CacheRepository.Get for absent or expired keys.
var ErrCacheMiss = errors.New("cache miss")

// CatalogSource is the external recipe catalog the candidates are drawn from.
type CatalogSource interface {
	// Filter queries return abbreviated summaries only
	FilterByCategory(ctx context.Context, category string) ([]recipe.CatalogSummary, error)
	FilterByArea(ctx context.Context, area string) ([]recipe.CatalogSummary, error)

	// Search returns full records whose name matches term; an empty term
	// returns the catalog's default listing.
	Search(ctx context.Context, term string) ([]recipe.RawCatalogRecord, error)

	// Lookup returns nil, nil when the catalog has no record with that id.
	Lookup(ctx context.Context, id string) (*recipe.RawCatalogRecord, error)
	Random(ctx context.Context) (*recipe.RawCatalogRecord, error)
}

// SavedRecipeRepository persists the recipes an owner has saved.
type SavedRecipeRepository interface {
	// Add stores r for owner and reports whether it was newly added.
	Add(ctx context.Context, owner string, r *recipe.Recipe) (bool, error)
	Remove(ctx context.Context, owner, recipeID string) error
	Exists(ctx context.Context, owner, recipeID string) (bool, error)
	// List returns the saved recipes in the order they were saved.
	List(ctx context.Context, owner string) ([]*recipe.Recipe, error)
	Clear(ctx context.Context, owner string) error
}

// ProfileRepository persists the last quiz answers per owner.
type ProfileRepository interface {
	Save(ctx context.Context, owner string, p preference.Profile) error
	// Find returns nil, nil when the owner has no stored profile.
	Find(ctx context.Context, owner string) (*preference.Profile, error)
	Delete(ctx context.Context, owner string) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
