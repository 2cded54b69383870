// Package repository wraps the mealdb client and normalizes every call into a
// Result. Null upstream lists become empty slices, client errors and panics
// become Failure values, and nothing is cached or retried.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"mealmate/internal/logging"
	"mealmate/internal/mealdb"
	"mealmate/internal/model"
)

// Repository exposes one Result-returning operation per upstream call.
type Repository struct {
	api    mealdb.API
	logger *slog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for failure records.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Repository over api.
func New(api mealdb.API, opts ...Option) *Repository {
	repo := &Repository{api: api, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// SearchMealsByName searches meals by name.
func (r *Repository) SearchMealsByName(ctx context.Context, name string) Result[[]model.Meal] {
	return run(ctx, r, "search by name", func(ctx context.Context) (*mealdb.MealsEnvelope, error) {
		return r.api.SearchByName(ctx, name)
	}, mealList)
}

// MealsByFirstLetter lists meals starting with letter.
func (r *Repository) MealsByFirstLetter(ctx context.Context, letter string) Result[[]model.Meal] {
	return run(ctx, r, "list by first letter", func(ctx context.Context) (*mealdb.MealsEnvelope, error) {
		return r.api.ListByFirstLetter(ctx, letter)
	}, mealList)
}

// MealByID returns the first meal for id, nil when upstream has none.
func (r *Repository) MealByID(ctx context.Context, id string) Result[*model.Meal] {
	return run(ctx, r, "lookup by id", func(ctx context.Context) (*mealdb.MealsEnvelope, error) {
		return r.api.LookupByID(ctx, id)
	}, firstMeal)
}

// RandomMeal returns one random meal, nil when upstream sends none.
func (r *Repository) RandomMeal(ctx context.Context) Result[*model.Meal] {
	return run(ctx, r, "random meal", func(ctx context.Context) (*mealdb.MealsEnvelope, error) {
		return r.api.Random(ctx)
	}, firstMeal)
}

// Categories lists all categories.
func (r *Repository) Categories(ctx context.Context) Result[[]model.Category] {
	return run(ctx, r, "categories", func(ctx context.Context) (*mealdb.CategoriesEnvelope, error) {
		return r.api.Categories(ctx)
	}, func(env *mealdb.CategoriesEnvelope) []model.Category {
		if env == nil || env.Categories == nil {
			return []model.Category{}
		}
		return env.Categories
	})
}

// Areas lists all cuisine areas.
func (r *Repository) Areas(ctx context.Context) Result[[]model.AreaItem] {
	return run(ctx, r, "areas", func(ctx context.Context) (*mealdb.AreasEnvelope, error) {
		return r.api.Areas(ctx)
	}, func(env *mealdb.AreasEnvelope) []model.AreaItem {
		if env == nil || env.Meals == nil {
			return []model.AreaItem{}
		}
		return env.Meals
	})
}

// FilterByIngredient lists meals using ingredient.
func (r *Repository) FilterByIngredient(ctx context.Context, ingredient string) Result[[]model.Meal] {
	return run(ctx, r, "filter by ingredient", func(ctx context.Context) (*mealdb.MealsEnvelope, error) {
		return r.api.FilterByIngredient(ctx, ingredient)
	}, mealList)
}

// FilterByCategory lists meals in category.
func (r *Repository) FilterByCategory(ctx context.Context, category string) Result[[]model.Meal] {
	return run(ctx, r, "filter by category", func(ctx context.Context) (*mealdb.MealsEnvelope, error) {
		return r.api.FilterByCategory(ctx, category)
	}, mealList)
}

// FilterByArea lists meals from area.
func (r *Repository) FilterByArea(ctx context.Context, area string) Result[[]model.Meal] {
	return run(ctx, r, "filter by area", func(ctx context.Context) (*mealdb.MealsEnvelope, error) {
		return r.api.FilterByArea(ctx, area)
	}, mealList)
}

func mealList(env *mealdb.MealsEnvelope) []model.Meal {
	if env == nil || env.Meals == nil {
		return []model.Meal{}
	}
	return env.Meals
}

func firstMeal(env *mealdb.MealsEnvelope) *model.Meal {
	if env == nil || len(env.Meals) == 0 {
		return nil
	}
	meal := env.Meals[0]
	return &meal
}

// run invokes fetch and projects its envelope. Errors and panics become Failure.
func run[E, T any](ctx context.Context, r *Repository, op string, fetch func(context.Context) (E, error), project func(E) T) (result Result[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("%s: panic: %v", op, rec)
			logging.WithContext(ctx, r.logger).Error("repository operation panicked",
				slog.String("operation", op),
				slog.String("error", err.Error()),
			)
			result = Failure[T](err)
		}
	}()

	envelope, err := fetch(ctx)
	if err != nil {
		logging.WithContext(ctx, r.logger).Warn("repository operation failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		return Failure[T](err)
	}
	return Success(project(envelope))
}
