package recipe

import "errors"

// Domain errors for recipe operations

var (
	// ErrMalformedRecord is returned when a catalog record lacks an id or a name.
	ErrMalformedRecord = errors.New("malformed catalog record")

	ErrRecipeNotFound = errors.New("recipe not found")
)
