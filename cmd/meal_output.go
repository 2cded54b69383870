package cmd

import (
	"fmt"
	"io"
	"strings"

	"mealmate/internal/model"
	"mealmate/internal/util"
)

type mealSummaryView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Area     string `json:"area,omitempty"`
}

type mealDetailView struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Category    string                 `json:"category,omitempty"`
	Area        string                 `json:"area,omitempty"`
	Tags        []string               `json:"tags"`
	Ingredients []model.IngredientLine `json:"ingredients"`
	Steps       []string               `json:"steps"`
	Thumbnail   string                 `json:"thumbnail,omitempty"`
	Video       string                 `json:"video,omitempty"`
}

type homeView struct {
	RandomMeal *mealDetailView  `json:"randomMeal"`
	Categories []model.Category `json:"categories"`
	Areas      []string         `json:"areas"`
}

func summarizeMeals(meals []model.Meal) []mealSummaryView {
	out := make([]mealSummaryView, 0, len(meals))
	for _, meal := range meals {
		out = append(out, mealSummaryView{
			ID:       meal.ID,
			Name:     meal.Name,
			Category: util.OptionalValue(meal.Category),
			Area:     util.OptionalValue(meal.Area),
		})
	}
	return out
}

func detailView(meal model.Meal) mealDetailView {
	return mealDetailView{
		ID:          meal.ID,
		Name:        meal.Name,
		Category:    util.OptionalValue(meal.Category),
		Area:        util.OptionalValue(meal.Area),
		Tags:        util.SplitTags(util.OptionalValue(meal.Tags)),
		Ingredients: meal.IngredientLines(),
		Steps:       util.SplitSteps(util.OptionalValue(meal.Instructions)),
		Thumbnail:   util.OptionalValue(meal.ThumbnailURL),
		Video:       util.OptionalValue(meal.VideoURL),
	}
}

func areaNames(areas []model.AreaItem) []string {
	out := make([]string, 0, len(areas))
	for _, area := range areas {
		out = append(out, area.Name)
	}
	return out
}

func renderMealList(w io.Writer, meals []model.Meal, emptyMessage string) {
	if len(meals) == 0 {
		fmt.Fprintln(w, emptyMessage)
		return
	}
	rows := make([][]string, 0, len(meals))
	for _, meal := range meals {
		rows = append(rows, []string{
			meal.ID,
			util.TruncateString(meal.Name, 48),
			util.FormatOptional(meal.Category),
			util.FormatOptional(meal.Area),
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"ID", "Meal", "Category", "Area"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
	fmt.Fprintln(w, util.FormatCount(len(meals), "meal", "meals"))
}

func renderMealDetail(w io.Writer, meal model.Meal) {
	view := detailView(meal)
	fmt.Fprintf(w, "%s (#%s)\n", view.Name, view.ID)
	fmt.Fprintf(w, "Category: %s\n", util.FormatOptional(meal.Category))
	fmt.Fprintf(w, "Area: %s\n", util.FormatOptional(meal.Area))
	if len(view.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(view.Tags, ", "))
	}
	if view.Video != "" {
		fmt.Fprintf(w, "Video: %s\n", view.Video)
	}

	if len(view.Ingredients) > 0 {
		rows := make([][]string, 0, len(view.Ingredients))
		for _, line := range view.Ingredients {
			rows = append(rows, []string{line.Ingredient, line.Measure})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderTable([]string{"Ingredient", "Measure"}, rows, nil))
	}

	if len(view.Steps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Instructions")
		for i, step := range view.Steps {
			fmt.Fprintf(w, "%2d. %s\n", i+1, step)
		}
	}
}
