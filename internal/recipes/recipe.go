package recipes

import (
	"fmt"
	"strings"
)

// MaxIngredients is the number of strIngredientN/strMeasureN pairs a meal
// record carries.
const MaxIngredients = 20

type Recipe struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category,omitempty"`
	Area         string   `json:"area,omitempty"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	YouTube      string   `json:"youtube,omitempty"`
	Ingredients  []string `json:"ingredients"`
}

// meal is one raw record of the search response. Every value may be null.
type meal map[string]*string

func (m meal) get(key string) string {
	if v := m[key]; v != nil {
		return strings.TrimSpace(*v)
	}
	return ""
}

func (m meal) toRecipe() Recipe {
	r := Recipe{
		ID:           m.get("idMeal"),
		Name:         m.get("strMeal"),
		Category:     m.get("strCategory"),
		Area:         m.get("strArea"),
		Thumbnail:    m.get("strMealThumb"),
		Instructions: m.get("strInstructions"),
		YouTube:      m.get("strYoutube"),
		Ingredients:  m.ingredients(),
	}
	for _, tag := range strings.Split(m.get("strTags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			r.Tags = append(r.Tags, tag)
		}
	}
	return r
}

// ingredients pairs each non-blank ingredient with its measure as
// "measure ingredient", or the ingredient alone when the measure is blank.
func (m meal) ingredients() []string {
	out := make([]string, 0, MaxIngredients)
	for i := 1; i <= MaxIngredients; i++ {
		ingredient := m.get(fmt.Sprintf("strIngredient%d", i))
		if ingredient == "" {
			continue
		}
		if measure := m.get(fmt.Sprintf("strMeasure%d", i)); measure != "" {
			ingredient = measure + " " + ingredient
		}
		out = append(out, ingredient)
	}
	return out
}
