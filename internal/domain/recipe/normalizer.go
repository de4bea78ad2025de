package recipe

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// minInstructionLength is the trimmed length a line must exceed to count as a
// real instruction step; shorter lines are headings or step numbers.
const minInstructionLength = 10

// Normalize converts one raw catalog record into a canonical Recipe.
// It returns ErrMalformedRecord when the record has no id or no name.
// Estimated attributes are left unset.
func Normalize(raw RawCatalogRecord) (*Recipe, error) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: record %s has no name", ErrMalformedRecord, id)
	}

	return &Recipe{
		ID:           id,
		Name:         name,
		Category:     withDefault(raw.Category, DefaultCategory),
		Area:         withDefault(raw.Area, DefaultArea),
		Image:        strings.TrimSpace(raw.Image),
		Ingredients:  normalizeIngredients(raw),
		Instructions: SplitInstructions(raw.Instructions),
		Tags:         splitTags(raw.Tags),
		Video:        strings.TrimSpace(raw.Video),
	}, nil
}

func normalizeIngredients(raw RawCatalogRecord) []Ingredient {
	ingredients := make([]Ingredient, 0, MaxIngredientSlots)
	for slot := 0; slot < MaxIngredientSlots; slot++ {
		name := strings.TrimSpace(raw.Ingredients[slot])
		if name == "" {
			continue
		}
		ingredients = append(ingredients, Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(raw.Measures[slot]),
		})
	}
	return ingredients
}

// SplitInstructions splits an instruction blob on LF or CRLF line breaks and
// keeps the trimmed lines longer than ten characters.
func SplitInstructions(blob string) []string {
	steps := []string{}
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) > minInstructionLength {
			steps = append(steps, line)
		}
	}
	return steps
}

func splitTags(tags string) []string {
	out := []string{}
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func withDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
