package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// IngredientSlots is the number of ingredient/measure pairs a meal record carries.
const IngredientSlots = 20

// Meal represents a single recipe record.
type Meal struct {
	ID           string
	Name         string
	Category     *string
	Area         *string
	Instructions *string
	ThumbnailURL *string
	Tags         *string // comma-separated
	VideoURL     *string
	Ingredients  [IngredientSlots]IngredientSlot
}

// IngredientSlot is one raw ingredient/measure pair. Either side may be absent.
type IngredientSlot struct {
	Ingredient *string
	Measure    *string
}

// IngredientLine is a displayable ingredient with its measure.
type IngredientLine struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure"`
}

// Category represents a meal category.
type Category struct {
	ID           string `json:"idCategory"`
	Name         string `json:"strCategory"`
	ThumbnailURL string `json:"strCategoryThumb"`
	Description  string `json:"strCategoryDescription"`
}

// AreaItem represents a cuisine/region label.
type AreaItem struct {
	Name string `json:"strArea"`
}

// IngredientLines projects the ingredient slots into display lines.
// Slots without a non-blank ingredient are skipped; slot order is kept.
func (m Meal) IngredientLines() []IngredientLine {
	lines := make([]IngredientLine, 0, IngredientSlots)
	for _, slot := range m.Ingredients {
		if slot.Ingredient == nil {
			continue
		}
		ingredient := strings.TrimSpace(*slot.Ingredient)
		if ingredient == "" {
			continue
		}
		measure := ""
		if slot.Measure != nil {
			measure = strings.TrimSpace(*slot.Measure)
		}
		lines = append(lines, IngredientLine{Ingredient: ingredient, Measure: measure})
	}
	return lines
}

var errMissingMealID = errors.New("meal record missing idMeal")

// UnmarshalJSON decodes the upstream flat record with numbered ingredient keys.
func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var decoded Meal
	var err error
	field := func(key string) *string {
		if err != nil {
			return nil
		}
		var v *string
		msg, ok := raw[key]
		if !ok {
			return nil
		}
		if uerr := json.Unmarshal(msg, &v); uerr != nil {
			err = fmt.Errorf("field %s: %w", key, uerr)
			return nil
		}
		return v
	}

	id := field("idMeal")
	if id != nil {
		decoded.ID = strings.TrimSpace(*id)
	}
	if name := field("strMeal"); name != nil {
		decoded.Name = *name
	}
	decoded.Category = field("strCategory")
	decoded.Area = field("strArea")
	decoded.Instructions = field("strInstructions")
	decoded.ThumbnailURL = field("strMealThumb")
	decoded.Tags = field("strTags")
	decoded.VideoURL = field("strYoutube")
	for i := range decoded.Ingredients {
		decoded.Ingredients[i] = IngredientSlot{
			Ingredient: field(fmt.Sprintf("strIngredient%d", i+1)),
			Measure:    field(fmt.Sprintf("strMeasure%d", i+1)),
		}
	}
	if err != nil {
		return err
	}
	if decoded.ID == "" {
		return errMissingMealID
	}

	*m = decoded
	return nil
}
