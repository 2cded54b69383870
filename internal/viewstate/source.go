package viewstate

import (
	"context"

	"mealmate/internal/model"
	"mealmate/internal/repository"
)

// ListingSource is the repository surface used by ListingController.
type ListingSource interface {
	SearchMealsByName(ctx context.Context, name string) repository.Result[[]model.Meal]
	FilterByCategory(ctx context.Context, category string) repository.Result[[]model.Meal]
	FilterByArea(ctx context.Context, area string) repository.Result[[]model.Meal]
	FilterByIngredient(ctx context.Context, ingredient string) repository.Result[[]model.Meal]
}

// DetailSource is the repository surface used by DetailController.
type DetailSource interface {
	MealByID(ctx context.Context, id string) repository.Result[*model.Meal]
}

// HomeSource is the repository surface used by HomeController.
type HomeSource interface {
	RandomMeal(ctx context.Context) repository.Result[*model.Meal]
	Categories(ctx context.Context) repository.Result[[]model.Category]
	Areas(ctx context.Context) repository.Result[[]model.AreaItem]
}

var (
	_ ListingSource = (*repository.Repository)(nil)
	_ DetailSource  = (*repository.Repository)(nil)
	_ HomeSource    = (*repository.Repository)(nil)
)
