package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() Profile {
	return Profile{
		Budget:  BudgetLow,
		Dietary: DietaryNone,
		Skill:   SkillBeginner,
		Time:    TimeQuick,
		Cuisine: CuisineAny,
	}
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr string
	}{
		{"valid any cuisine", func(p *Profile) {}, ""},
		{"valid named cuisine", func(p *Profile) { p.Cuisine = "Italian" }, ""},
		{"valid two word cuisine", func(p *Profile) { p.Cuisine = "Middle Eastern" }, ""},
		{"missing budget", func(p *Profile) { p.Budget = "" }, "budget is required"},
		{"unknown budget", func(p *Profile) { p.Budget = "lavish" }, `budget has unsupported value "lavish"`},
		{"unknown dietary", func(p *Profile) { p.Dietary = "pescatarian" }, "dietary has unsupported value"},
		{"missing skill", func(p *Profile) { p.Skill = "" }, "skill is required"},
		{"unknown time", func(p *Profile) { p.Time = "instant" }, "time has unsupported value"},
		{"missing cuisine", func(p *Profile) { p.Cuisine = "" }, "cuisine is required"},
		{"blank cuisine", func(p *Profile) { p.Cuisine = "   " }, "cuisine has unsupported value"},
		{"cuisine with markup", func(p *Profile) { p.Cuisine = "<b>Thai</b>" }, "cuisine has unsupported value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			err := p.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidProfile)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfile_ValidateReportsEveryField(t *testing.T) {
	err := Profile{}.Validate()

	require.ErrorIs(t, err, ErrInvalidProfile)
	for _, field := range []string{"budget", "dietary", "skill", "time", "cuisine"} {
		assert.Contains(t, err.Error(), field+" is required")
	}
}

func TestProfile_AnyCuisine(t *testing.T) {
	p := validProfile()
	assert.True(t, p.AnyCuisine())

	p.Cuisine = "Chinese"
	assert.False(t, p.AnyCuisine())
}
