package recipe

import (
	"strconv"

	json "github.com/goccy/go-json"
)

// MaxIngredientSlots is the number of numbered ingredient/measure pairs in a
// catalog record.
const MaxIngredientSlots = 20

// RawCatalogRecord is a recipe exactly as the external catalog supplies it.
// The catalog lays ingredients out as numbered slots (strIngredient1..20,
// strMeasure1..20); they are held here in fixed arrays indexed from zero.
type RawCatalogRecord struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Image        string
	Instructions string
	Tags         string
	Video        string
	Ingredients  [MaxIngredientSlots]string
	Measures     [MaxIngredientSlots]string
}

// CatalogSummary is the abbreviated record returned by catalog filter queries.
type CatalogSummary struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Image string `json:"strMealThumb"`
}

func ingredientKey(slot int) string { return "strIngredient" + strconv.Itoa(slot) }
func measureKey(slot int) string    { return "strMeasure" + strconv.Itoa(slot) }

// UnmarshalJSON decodes the catalog wire format. Null fields decode to "".
func (r *RawCatalogRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]*string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	get := func(key string) string {
		if v := fields[key]; v != nil {
			return *v
		}
		return ""
	}

	*r = RawCatalogRecord{
		ID:           get("idMeal"),
		Name:         get("strMeal"),
		Category:     get("strCategory"),
		Area:         get("strArea"),
		Image:        get("strMealThumb"),
		Instructions: get("strInstructions"),
		Tags:         get("strTags"),
		Video:        get("strYoutube"),
	}
	for i := 0; i < MaxIngredientSlots; i++ {
		r.Ingredients[i] = get(ingredientKey(i + 1))
		r.Measures[i] = get(measureKey(i + 1))
	}
	return nil
}

// MarshalJSON encodes the record back into the catalog wire format.
func (r RawCatalogRecord) MarshalJSON() ([]byte, error) {
	fields := map[string]string{
		"idMeal":          r.ID,
		"strMeal":         r.Name,
		"strCategory":     r.Category,
		"strArea":         r.Area,
		"strMealThumb":    r.Image,
		"strInstructions": r.Instructions,
		"strTags":         r.Tags,
		"strYoutube":      r.Video,
	}
	for i := 0; i < MaxIngredientSlots; i++ {
		fields[ingredientKey(i+1)] = r.Ingredients[i]
		fields[measureKey(i+1)] = r.Measures[i]
	}
	return json.Marshal(fields)
}
