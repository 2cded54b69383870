package viewstate

import (
	"context"

	"mealmate/internal/model"
)

// Error prefixes published by HomeController.
const (
	RandomMealFailedPrefix = "Failed to load random meal: "
	CategoriesFailedPrefix = "Failed to load categories: "
	AreasFailedPrefix      = "Failed to load areas: "
)

// HomeState aggregates the home screen data behind one loading/error pair.
type HomeState struct {
	RandomMeal *model.Meal
	Categories []model.Category
	Areas      []model.AreaItem
	IsLoading  bool
	Error      string
}

// HomeController loads a random meal, the categories and the areas.
type HomeController struct {
	repo  HomeSource
	state *Observable[HomeState]
	scope *scope

	randomSeq     sequencer
	categoriesSeq sequencer
	areasSeq      sequencer

	// countPending makes IsLoading track outstanding fetches instead of the
	// last one to finish. It is set together with stale discarding.
	countPending bool
	pending      int
}

// NewHomeController creates the controller and immediately starts the random
// meal, categories and areas fetches independently of each other.
func NewHomeController(repo HomeSource, opts ...Option) *HomeController {
	o := buildOptions("home", opts)
	c := &HomeController{
		repo:          repo,
		state:         NewObservable(HomeState{Categories: []model.Category{}, Areas: []model.AreaItem{}}),
		scope:         newScope(o.logger),
		randomSeq:     sequencer{enabled: o.staleDiscard},
		categoriesSeq: sequencer{enabled: o.staleDiscard},
		areasSeq:      sequencer{enabled: o.staleDiscard},
		countPending:  o.staleDiscard,
	}
	c.FetchRandomMeal()
	c.fetchCategories()
	c.fetchAreas()
	return c
}

// State returns the observable home state.
func (c *HomeController) State() *Observable[HomeState] {
	return c.state
}

// FetchRandomMeal replaces the random meal.
func (c *HomeController) FetchRandomMeal() {
	seq := c.begin(&c.randomSeq)
	c.scope.launch("random_meal", func(ctx context.Context) {
		defer c.finish(&c.randomSeq, seq)
		result := c.repo.RandomMeal(ctx)
		c.publish(&c.randomSeq, seq, func(s HomeState) HomeState {
			if result.OK() {
				s.RandomMeal = result.Value()
				s.Error = ""
				return s
			}
			s.RandomMeal = nil
			s.Error = RandomMealFailedPrefix + result.Err().Error()
			return s
		})
	})
}

func (c *HomeController) fetchCategories() {
	seq := c.begin(&c.categoriesSeq)
	c.scope.launch("categories", func(ctx context.Context) {
		defer c.finish(&c.categoriesSeq, seq)
		result := c.repo.Categories(ctx)
		c.publish(&c.categoriesSeq, seq, func(s HomeState) HomeState {
			if result.OK() {
				s.Categories = result.Value()
				s.Error = ""
				return s
			}
			s.Categories = []model.Category{}
			s.Error = CategoriesFailedPrefix + result.Err().Error()
			return s
		})
	})
}

func (c *HomeController) fetchAreas() {
	seq := c.begin(&c.areasSeq)
	c.scope.launch("areas", func(ctx context.Context) {
		defer c.finish(&c.areasSeq, seq)
		result := c.repo.Areas(ctx)
		c.publish(&c.areasSeq, seq, func(s HomeState) HomeState {
			if result.OK() {
				s.Areas = result.Value()
				s.Error = ""
				return s
			}
			s.Areas = []model.AreaItem{}
			s.Error = AreasFailedPrefix + result.Err().Error()
			return s
		})
	})
}

func (c *HomeController) begin(seq *sequencer) uint64 {
	var n uint64
	c.state.update(func(s HomeState) HomeState {
		n = seq.next()
		c.pending++
		s.IsLoading = true
		s.Error = ""
		return s
	})
	return n
}

func (c *HomeController) publish(seq *sequencer, n uint64, fn func(HomeState) HomeState) {
	c.state.update(func(s HomeState) HomeState {
		if !seq.current(n) {
			return s
		}
		return fn(s)
	})
}

func (c *HomeController) finish(seq *sequencer, n uint64) {
	c.state.update(func(s HomeState) HomeState {
		c.pending--
		if c.countPending {
			s.IsLoading = c.pending > 0
			return s
		}
		if seq.current(n) {
			s.IsLoading = false
		}
		return s
	})
}

// Wait blocks until every launched task has finished.
func (c *HomeController) Wait() {
	c.scope.wait()
}

// Close discards the state of in-flight tasks and cancels their requests.
func (c *HomeController) Close() {
	c.state.Close()
	c.scope.close()
}
