package viewstate

import (
	"context"

	"mealmate/internal/model"
)

// DetailFailedPrefix prefixes DetailController errors.
const DetailFailedPrefix = "Failed to load meal details: "

// DetailState is the state behind the meal detail screen.
type DetailState struct {
	Meal      *model.Meal
	IsLoading bool
	Error     string
}

// DetailController loads a single meal by id.
type DetailController struct {
	repo  DetailSource
	state *Observable[DetailState]
	scope *scope
	seq   sequencer
}

// NewDetailController creates an idle controller with no meal.
func NewDetailController(repo DetailSource, opts ...Option) *DetailController {
	o := buildOptions("detail", opts)
	return &DetailController{
		repo:  repo,
		state: NewObservable(DetailState{}),
		scope: newScope(o.logger),
		seq:   sequencer{enabled: o.staleDiscard},
	}
}

// State returns the observable detail state.
func (c *DetailController) State() *Observable[DetailState] {
	return c.state
}

// LoadMealDetails fetches id. Every call issues a request, and a failure keeps
// the previously loaded meal.
func (c *DetailController) LoadMealDetails(id string) {
	var seq uint64
	c.state.update(func(s DetailState) DetailState {
		seq = c.seq.next()
		s.IsLoading = true
		s.Error = ""
		return s
	})

	c.scope.launch("load_meal", func(ctx context.Context) {
		defer c.publish(seq, func(s DetailState) DetailState {
			s.IsLoading = false
			return s
		})
		result := c.repo.MealByID(ctx, id)
		c.publish(seq, func(s DetailState) DetailState {
			if result.OK() {
				s.Meal = result.Value()
				s.Error = ""
				return s
			}
			s.Error = DetailFailedPrefix + result.Err().Error()
			return s
		})
	})
}

func (c *DetailController) publish(seq uint64, fn func(DetailState) DetailState) {
	c.state.update(func(s DetailState) DetailState {
		if !c.seq.current(seq) {
			return s
		}
		return fn(s)
	})
}

// Wait blocks until every launched task has finished.
func (c *DetailController) Wait() {
	c.scope.wait()
}

// Close discards the state of in-flight tasks and cancels their requests.
func (c *DetailController) Close() {
	c.state.Close()
	c.scope.close()
}
