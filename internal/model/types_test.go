package model_test

import (
	"encoding/json"
	"testing"

	"mealmate/internal/model"
)

func strPtr(s string) *string { return &s }

func TestIngredientLinesSkipsBlankSlotsAndKeepsOrder(t *testing.T) {
	var meal model.Meal
	meal.ID = "1"
	meal.Ingredients[0] = model.IngredientSlot{Ingredient: strPtr("Chicken"), Measure: strPtr("1 whole")}
	meal.Ingredients[1] = model.IngredientSlot{Ingredient: strPtr(" "), Measure: strPtr("2 tbsp")}
	meal.Ingredients[2] = model.IngredientSlot{Ingredient: strPtr("Salt")}
	meal.Ingredients[3] = model.IngredientSlot{Ingredient: strPtr(""), Measure: strPtr("pinch")}
	meal.Ingredients[7] = model.IngredientSlot{Ingredient: strPtr("Pepper"), Measure: strPtr("  ")}
	meal.Ingredients[19] = model.IngredientSlot{Ingredient: strPtr("Lemon"), Measure: strPtr("1")}

	lines := meal.IngredientLines()
	want := []model.IngredientLine{
		{Ingredient: "Chicken", Measure: "1 whole"},
		{Ingredient: "Salt", Measure: ""},
		{Ingredient: "Pepper", Measure: ""},
		{Ingredient: "Lemon", Measure: "1"},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %#v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %#v want %#v", i, lines[i], want[i])
		}
	}
}

func TestIngredientLinesEmptyMeal(t *testing.T) {
	lines := model.Meal{ID: "1"}.IngredientLines()
	if lines == nil || len(lines) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", lines)
	}
}

func TestMealUnmarshalUpstreamRecord(t *testing.T) {
	payload := `{
		"idMeal": "52977",
		"strMeal": "Corba",
		"strCategory": "Side",
		"strArea": "Turkish",
		"strInstructions": "Pick through your lentils.\r\nAdd the carrots.",
		"strMealThumb": "https://www.themealdb.com/images/media/meals/58oia61564916529.jpg",
		"strTags": "Soup",
		"strYoutube": null,
		"strIngredient1": "Lentils",
		"strMeasure1": "1 cup",
		"strIngredient2": "Onion",
		"strMeasure2": null,
		"strIngredient3": "",
		"strMeasure3": " ",
		"dateModified": null
	}`

	var meal model.Meal
	if err := json.Unmarshal([]byte(payload), &meal); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if meal.ID != "52977" || meal.Name != "Corba" {
		t.Fatalf("unexpected identity: %#v", meal)
	}
	if meal.Category == nil || *meal.Category != "Side" {
		t.Fatalf("unexpected category: %v", meal.Category)
	}
	if meal.VideoURL != nil {
		t.Fatalf("expected nil video url, got %q", *meal.VideoURL)
	}
	lines := meal.IngredientLines()
	if len(lines) != 2 || lines[1] != (model.IngredientLine{Ingredient: "Onion", Measure: ""}) {
		t.Fatalf("unexpected ingredient lines: %#v", lines)
	}
}

func TestMealUnmarshalFilterRecord(t *testing.T) {
	payload := `{"strMeal":"Brown Stew Chicken","strMealThumb":"x.jpg","idMeal":"52940"}`
	var meal model.Meal
	if err := json.Unmarshal([]byte(payload), &meal); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if meal.Category != nil || meal.Instructions != nil {
		t.Fatalf("expected absent optional fields, got %#v", meal)
	}
}

func TestMealUnmarshalRequiresID(t *testing.T) {
	var meal model.Meal
	if err := json.Unmarshal([]byte(`{"strMeal":"No id"}`), &meal); err == nil {
		t.Fatal("expected error for record without idMeal")
	}
}

func TestMealUnmarshalRejectsWrongFieldType(t *testing.T) {
	var meal model.Meal
	if err := json.Unmarshal([]byte(`{"idMeal":"1","strCategory":42}`), &meal); err == nil {
		t.Fatal("expected error for non-string category")
	}
}
