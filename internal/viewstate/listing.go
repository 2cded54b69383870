package viewstate

import (
	"context"
	"strings"

	"mealmate/internal/model"
	"mealmate/internal/repository"
)

// Error prefixes published by ListingController.
const (
	SearchFailedPrefix = "Search failed: "
	FilterFailedPrefix = "Filter failed: "
)

// ListingState is the state behind search and filter screens.
type ListingState struct {
	Results   []model.Meal
	IsLoading bool
	Error     string
}

// ListingController drives name search and the three filter actions.
type ListingController struct {
	repo  ListingSource
	state *Observable[ListingState]
	scope *scope
	seq   sequencer
}

// NewListingController creates an idle controller with no results.
func NewListingController(repo ListingSource, opts ...Option) *ListingController {
	o := buildOptions("listing", opts)
	return &ListingController{
		repo:  repo,
		state: NewObservable(ListingState{Results: []model.Meal{}}),
		scope: newScope(o.logger),
		seq:   sequencer{enabled: o.staleDiscard},
	}
}

// State returns the observable listing state.
func (c *ListingController) State() *Observable[ListingState] {
	return c.state
}

// Search looks meals up by name. A blank query clears the results without a request.
func (c *ListingController) Search(query string) {
	if strings.TrimSpace(query) == "" {
		c.state.update(func(ListingState) ListingState {
			c.seq.next()
			return ListingState{Results: []model.Meal{}}
		})
		return
	}
	c.run("search", SearchFailedPrefix, func(ctx context.Context) repository.Result[[]model.Meal] {
		return c.repo.SearchMealsByName(ctx, query)
	})
}

// FilterByCategory lists meals in category.
func (c *ListingController) FilterByCategory(category string) {
	c.run("filter_category", FilterFailedPrefix, func(ctx context.Context) repository.Result[[]model.Meal] {
		return c.repo.FilterByCategory(ctx, category)
	})
}

// FilterByArea lists meals from area.
func (c *ListingController) FilterByArea(area string) {
	c.run("filter_area", FilterFailedPrefix, func(ctx context.Context) repository.Result[[]model.Meal] {
		return c.repo.FilterByArea(ctx, area)
	})
}

// FilterByIngredient lists meals using ingredient.
func (c *ListingController) FilterByIngredient(ingredient string) {
	c.run("filter_ingredient", FilterFailedPrefix, func(ctx context.Context) repository.Result[[]model.Meal] {
		return c.repo.FilterByIngredient(ctx, ingredient)
	})
}

func (c *ListingController) run(action, prefix string, fetch func(context.Context) repository.Result[[]model.Meal]) {
	var seq uint64
	c.state.update(func(s ListingState) ListingState {
		seq = c.seq.next()
		s.IsLoading = true
		s.Error = ""
		return s
	})

	c.scope.launch(action, func(ctx context.Context) {
		defer c.publish(seq, func(s ListingState) ListingState {
			s.IsLoading = false
			return s
		})
		result := fetch(ctx)
		c.publish(seq, func(s ListingState) ListingState {
			if result.OK() {
				s.Results = result.Value()
				s.Error = ""
				return s
			}
			s.Results = []model.Meal{}
			s.Error = prefix + result.Err().Error()
			return s
		})
	})
}

func (c *ListingController) publish(seq uint64, fn func(ListingState) ListingState) {
	c.state.update(func(s ListingState) ListingState {
		if !c.seq.current(seq) {
			return s
		}
		return fn(s)
	})
}

// Wait blocks until every launched task has finished.
func (c *ListingController) Wait() {
	c.scope.wait()
}

// Close discards the state of in-flight tasks and cancels their requests.
func (c *ListingController) Close() {
	c.state.Close()
	c.scope.close()
}
