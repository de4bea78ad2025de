// Package preference holds the five-answer preference profile a user fills in
// before recipes are ranked for them.
package preference

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProfile is returned when a profile is incomplete or holds a value
// outside its enum.
var ErrInvalidProfile = errors.New("invalid preference profile")

// Budget is the user's food budget tier
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

// Dietary is the user's dietary restriction
type Dietary string

const (
	DietaryNone       Dietary = "none"
	DietaryVegetarian Dietary = "vegetarian"
	DietaryVegan      Dietary = "vegan"
)

// Skill is the user's cooking skill
type Skill string

const (
	SkillBeginner     Skill = "beginner"
	SkillIntermediate Skill = "intermediate"
	SkillAdvanced     Skill = "advanced"
)

// Time is how much time the user wants to spend cooking
type Time string

const (
	TimeQuick   Time = "quick"
	TimeNormal  Time = "normal"
	TimeRelaxed Time = "relaxed"
)

// CuisineAny means the user has no cuisine preference.
const CuisineAny = "any"

// Profile is a fully answered preference quiz.
type Profile struct {
	Budget  Budget  `json:"budget" validate:"required,oneof=low medium high"`
	Dietary Dietary `json:"dietary" validate:"required,oneof=none vegetarian vegan"`
	Skill   Skill   `json:"skill" validate:"required,oneof=beginner intermediate advanced"`
	Time    Time    `json:"time" validate:"required,oneof=quick normal relaxed"`
	Cuisine string  `json:"cuisine" validate:"required,cuisine"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cuisine", validateCuisine)
	return v
}

// validateCuisine accepts "any" or a cuisine name made of letters and spaces.
func validateCuisine(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == CuisineAny {
		return true
	}
	if strings.TrimSpace(name) == "" || len(name) > 64 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' {
			return false
		}
	}
	return true
}

// Validate checks that every field is present and inside its enum.
// The returned error wraps ErrInvalidProfile.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			problems = append(problems, field+" is required")
			continue
		}
		problems = append(problems, fmt.Sprintf("%s has unsupported value %q", field, fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, "; "))
}

// AnyCuisine reports whether the profile accepts every cuisine.
func (p Profile) AnyCuisine() bool {
	return p.Cuisine == CuisineAny
}
