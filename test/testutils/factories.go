// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/brianvoe/gofakeit/v6"
)

// pantry holds ingredient names that hit none of the meat keywords.
var pantry = []string{
	"Flour", "Sugar", "Butter", "Milk", "Rice", "Onion", "Garlic", "Tomato",
	"Basil", "Carrot", "Potato", "Lentils", "Chickpeas", "Spinach", "Olive Oil",
	"Paprika", "Cumin", "Lemon", "Parsley", "Mushrooms",
}

// RawRecordBuilder provides a fluent interface for building catalog records
type RawRecordBuilder struct {
	faker        *gofakeit.Faker
	record       recipe.RawCatalogRecord
	ingredients  []string
	instructions []string
}

// NewRawRecordBuilder creates a builder with a random, well-formed record
// of 5 ingredients and 4 plain steps
func NewRawRecordBuilder() *RawRecordBuilder {
	return NewSeededRawRecordBuilder(time.Now().UnixNano())
}

// NewSeededRawRecordBuilder creates a builder with a reproducible record
func NewSeededRawRecordBuilder(seed int64) *RawRecordBuilder {
	faker := gofakeit.New(seed)

	rb := &RawRecordBuilder{
		faker: faker,
		record: recipe.RawCatalogRecord{
			ID:       faker.Numerify("5####"),
			Name:     faker.Dinner(),
			Category: faker.RandomString([]string{"Pasta", "Side", "Dessert", "Starter"}),
			Area:     faker.RandomString([]string{"Italian", "American", "Indian", "Chinese"}),
			Image:    faker.URL(),
			Tags:     "Easy,Weeknight",
		},
	}
	return rb.WithIngredientCount(5).WithStepCount(4)
}

// WithID sets the record id
func (rb *RawRecordBuilder) WithID(id string) *RawRecordBuilder {
	rb.record.ID = id
	return rb
}

// WithName sets the record name
func (rb *RawRecordBuilder) WithName(name string) *RawRecordBuilder {
	rb.record.Name = name
	return rb
}

// WithCategory sets the record category
func (rb *RawRecordBuilder) WithCategory(category string) *RawRecordBuilder {
	rb.record.Category = category
	return rb
}

// WithArea sets the record area
func (rb *RawRecordBuilder) WithArea(area string) *RawRecordBuilder {
	rb.record.Area = area
	return rb
}

// WithIngredients sets the ingredient names in slot order
func (rb *RawRecordBuilder) WithIngredients(names ...string) *RawRecordBuilder {
	rb.ingredients = names
	return rb
}

// WithIngredientCount fills n ingredient slots from the meat-free pantry
func (rb *RawRecordBuilder) WithIngredientCount(n int) *RawRecordBuilder {
	names := make([]string, n)
	for i := range names {
		names[i] = pantry[i%len(pantry)]
	}
	rb.ingredients = names
	return rb
}

// WithInstructions sets the instruction lines
func (rb *RawRecordBuilder) WithInstructions(lines ...string) *RawRecordBuilder {
	rb.instructions = lines
	return rb
}

// WithStepCount uses n plain steps that carry no technique or waiting terms
func (rb *RawRecordBuilder) WithStepCount(n int) *RawRecordBuilder {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Step %d: stir everything in the pan.", i+1)
	}
	rb.instructions = lines
	return rb
}

// Build returns the record
func (rb *RawRecordBuilder) Build() recipe.RawCatalogRecord {
	r := rb.record
	for i, name := range rb.ingredients {
		if i >= recipe.MaxIngredientSlots {
			break
		}
		r.Ingredients[i] = name
		r.Measures[i] = rb.faker.RandomString([]string{"1 cup", "2 tbsp", "100g", "pinch"})
	}
	r.Instructions = strings.Join(rb.instructions, "\r\n")
	return r
}

// BuildPtr returns a pointer to a freshly built record
func (rb *RawRecordBuilder) BuildPtr() *recipe.RawCatalogRecord {
	r := rb.Build()
	return &r
}

// Summary returns the filter-query summary of the record
func (rb *RawRecordBuilder) Summary() recipe.CatalogSummary {
	return recipe.CatalogSummary{ID: rb.record.ID, Name: rb.record.Name, Image: rb.record.Image}
}

// NewRecipe returns a normalized recipe for tests that start past the catalog
func NewRecipe(id string) *recipe.Recipe {
	r, err := recipe.Normalize(NewRawRecordBuilder().WithID(id).Build())
	if err != nil {
		panic(err)
	}
	return r
}

// ProfileFactory provides methods to create test profiles
type ProfileFactory struct {
	faker *gofakeit.Faker
}

// NewProfileFactory creates a new profile factory with seeded faker
func NewProfileFactory(seed int64) *ProfileFactory {
	return &ProfileFactory{faker: gofakeit.New(seed)}
}

// Profile returns a random valid profile
func (pf *ProfileFactory) Profile() preference.Profile {
	return preference.Profile{
		Budget:  preference.Budget(pf.faker.RandomString([]string{"low", "medium", "high"})),
		Dietary: preference.Dietary(pf.faker.RandomString([]string{"none", "vegetarian", "vegan"})),
		Skill:   preference.Skill(pf.faker.RandomString([]string{"beginner", "intermediate", "advanced"})),
		Time:    preference.Time(pf.faker.RandomString([]string{"quick", "normal", "relaxed"})),
		Cuisine: pf.faker.RandomString([]string{preference.CuisineAny, "Italian", "American", "Indian", "Chinese"}),
	}
}

// BeginnerProfile is the low budget, quick, beginner profile with no
// restrictions
func BeginnerProfile() preference.Profile {
	return preference.Profile{
		Budget:  preference.BudgetLow,
		Dietary: preference.DietaryNone,
		Skill:   preference.SkillBeginner,
		Time:    preference.TimeQuick,
		Cuisine: preference.CuisineAny,
	}
}
