package testsupport

import (
	"context"
	"sync"

	"mealmate/internal/mealdb"
	"mealmate/internal/model"
)

// Operation names recorded by FakeAPI.
const (
	OpSearchByName       = "SearchByName"
	OpListByFirstLetter  = "ListByFirstLetter"
	OpLookupByID         = "LookupByID"
	OpRandom             = "Random"
	OpCategories         = "Categories"
	OpAreas              = "Areas"
	OpFilterByIngredient = "FilterByIngredient"
	OpFilterByCategory   = "FilterByCategory"
	OpFilterByArea       = "FilterByArea"
)

// Call records one FakeAPI invocation.
type Call struct {
	Op  string
	Arg string
}

// MealsFunc answers a meal-shaped operation.
type MealsFunc func(ctx context.Context, arg string) (*mealdb.MealsEnvelope, error)

// FakeAPI is an in-memory mealdb.API. Unset handlers return empty envelopes.
type FakeAPI struct {
	SearchByNameFn       MealsFunc
	ListByFirstLetterFn  MealsFunc
	LookupByIDFn         MealsFunc
	RandomFn             MealsFunc
	FilterByIngredientFn MealsFunc
	FilterByCategoryFn   MealsFunc
	FilterByAreaFn       MealsFunc
	CategoriesFn         func(ctx context.Context) (*mealdb.CategoriesEnvelope, error)
	AreasFn              func(ctx context.Context) (*mealdb.AreasEnvelope, error)

	mu    sync.Mutex
	calls []Call
}

var _ mealdb.API = (*FakeAPI)(nil)

// Calls returns a copy of every recorded call in order.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times op was invoked. An empty op counts all calls.
func (f *FakeAPI) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if op == "" {
		return len(f.calls)
	}
	n := 0
	for _, c := range f.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (f *FakeAPI) record(op, arg string) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Op: op, Arg: arg})
	f.mu.Unlock()
}

func (f *FakeAPI) meals(ctx context.Context, op, arg string, fn MealsFunc) (*mealdb.MealsEnvelope, error) {
	f.record(op, arg)
	if fn == nil {
		return &mealdb.MealsEnvelope{}, nil
	}
	return fn(ctx, arg)
}

func (f *FakeAPI) SearchByName(ctx context.Context, name string) (*mealdb.MealsEnvelope, error) {
	return f.meals(ctx, OpSearchByName, name, f.SearchByNameFn)
}

func (f *FakeAPI) ListByFirstLetter(ctx context.Context, letter string) (*mealdb.MealsEnvelope, error) {
	return f.meals(ctx, OpListByFirstLetter, letter, f.ListByFirstLetterFn)
}

func (f *FakeAPI) LookupByID(ctx context.Context, id string) (*mealdb.MealsEnvelope, error) {
	return f.meals(ctx, OpLookupByID, id, f.LookupByIDFn)
}

func (f *FakeAPI) Random(ctx context.Context) (*mealdb.MealsEnvelope, error) {
	return f.meals(ctx, OpRandom, "", f.RandomFn)
}

func (f *FakeAPI) FilterByIngredient(ctx context.Context, ingredient string) (*mealdb.MealsEnvelope, error) {
	return f.meals(ctx, OpFilterByIngredient, ingredient, f.FilterByIngredientFn)
}

func (f *FakeAPI) FilterByCategory(ctx context.Context, category string) (*mealdb.MealsEnvelope, error) {
	return f.meals(ctx, OpFilterByCategory, category, f.FilterByCategoryFn)
}

func (f *FakeAPI) FilterByArea(ctx context.Context, area string) (*mealdb.MealsEnvelope, error) {
	return f.meals(ctx, OpFilterByArea, area, f.FilterByAreaFn)
}

func (f *FakeAPI) Categories(ctx context.Context) (*mealdb.CategoriesEnvelope, error) {
	f.record(OpCategories, "")
	if f.CategoriesFn == nil {
		return &mealdb.CategoriesEnvelope{}, nil
	}
	return f.CategoriesFn(ctx)
}

func (f *FakeAPI) Areas(ctx context.Context) (*mealdb.AreasEnvelope, error) {
	f.record(OpAreas, "")
	if f.AreasFn == nil {
		return &mealdb.AreasEnvelope{}, nil
	}
	return f.AreasFn(ctx)
}

// Meal builds a minimal meal record.
func Meal(id, name string) model.Meal {
	return model.Meal{ID: id, Name: name}
}

// Returning answers every call with the given meals.
func Returning(meals ...model.Meal) MealsFunc {
	return func(context.Context, string) (*mealdb.MealsEnvelope, error) {
		return &mealdb.MealsEnvelope{Meals: meals}, nil
	}
}

// Failing answers every call with err.
func Failing(err error) MealsFunc {
	return func(context.Context, string) (*mealdb.MealsEnvelope, error) {
		return nil, err
	}
}

// Gate blocks handler calls per argument until the test releases them.
type Gate struct {
	mu      sync.Mutex
	waiting map[string]chan struct{}
	entered chan string
}

// NewGate creates a Gate. Entered reports each argument as its call starts blocking.
func NewGate() *Gate {
	return &Gate{waiting: map[string]chan struct{}{}, entered: make(chan string, 16)}
}

func (g *Gate) channel(arg string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.waiting[arg]
	if !ok {
		ch = make(chan struct{})
		g.waiting[arg] = ch
	}
	return ch
}

// Entered returns the channel of arguments whose calls are now blocked.
func (g *Gate) Entered() <-chan string {
	return g.entered
}

// Release unblocks the call for arg.
func (g *Gate) Release(arg string) {
	close(g.channel(arg))
}

// Wrap returns a handler that waits for Release(arg) before delegating to next.
func (g *Gate) Wrap(next MealsFunc) MealsFunc {
	return func(ctx context.Context, arg string) (*mealdb.MealsEnvelope, error) {
		ch := g.channel(arg)
		g.entered <- arg
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return next(ctx, arg)
	}
}

// Echo answers with one meal whose id and name are the call argument.
func Echo() MealsFunc {
	return func(_ context.Context, arg string) (*mealdb.MealsEnvelope, error) {
		return &mealdb.MealsEnvelope{Meals: []model.Meal{Meal(arg, arg)}}, nil
	}
}
