package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"mealmate/internal/mealdb"
	"mealmate/internal/repository"
	"mealmate/internal/testsupport"
)

type listOutcome struct {
	ok    bool
	len   int
	isNil bool
}

func describe[E any](res repository.Result[[]E]) listOutcome {
	value := res.Value()
	return listOutcome{ok: res.OK(), len: len(value), isNil: value == nil}
}

func TestNullListsBecomeEmptySuccess(t *testing.T) {
	api := &testsupport.FakeAPI{
		CategoriesFn: func(context.Context) (*mealdb.CategoriesEnvelope, error) {
			return &mealdb.CategoriesEnvelope{Categories: nil}, nil
		},
		AreasFn: func(context.Context) (*mealdb.AreasEnvelope, error) {
			return &mealdb.AreasEnvelope{Meals: nil}, nil
		},
	}
	repo := repository.New(api)
	ctx := context.Background()

	outcomes := map[string]listOutcome{
		"search":     describe(repo.SearchMealsByName(ctx, "none")),
		"letter":     describe(repo.MealsByFirstLetter(ctx, "q")),
		"ingredient": describe(repo.FilterByIngredient(ctx, "x")),
		"category":   describe(repo.FilterByCategory(ctx, "x")),
		"area":       describe(repo.FilterByArea(ctx, "x")),
		"categories": describe(repo.Categories(ctx)),
		"areas":      describe(repo.Areas(ctx)),
	}
	for name, res := range outcomes {
		if !res.ok {
			t.Fatalf("%s: expected success", name)
		}
		if res.isNil || res.len != 0 {
			t.Fatalf("%s: expected empty non-nil slice, got nil=%v len=%d", name, res.isNil, res.len)
		}
	}
}

func TestNilEnvelopeBecomesEmptySuccess(t *testing.T) {
	api := &testsupport.FakeAPI{
		FilterByCategoryFn: func(context.Context, string) (*mealdb.MealsEnvelope, error) {
			return nil, nil
		},
	}
	res := repository.New(api).FilterByCategory(context.Background(), "Beef")
	if !res.OK() || res.Value() == nil || len(res.Value()) != 0 {
		t.Fatalf("expected Success([]), got %#v", res)
	}
}

func TestSingleMealOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("first of many", func(t *testing.T) {
		api := &testsupport.FakeAPI{LookupByIDFn: testsupport.Returning(testsupport.Meal("1", "A"), testsupport.Meal("2", "B"))}
		res := repository.New(api).MealByID(ctx, "1")
		if !res.OK() || res.Value() == nil || res.Value().ID != "1" {
			t.Fatalf("unexpected result: %#v", res)
		}
	})

	t.Run("empty list is nil meal", func(t *testing.T) {
		api := &testsupport.FakeAPI{LookupByIDFn: testsupport.Returning()}
		res := repository.New(api).MealByID(ctx, "52977")
		if !res.OK() || res.Value() != nil {
			t.Fatalf("expected Success(nil), got %#v", res)
		}
	})

	t.Run("null list is nil meal", func(t *testing.T) {
		api := &testsupport.FakeAPI{}
		res := repository.New(api).RandomMeal(ctx)
		if !res.OK() || res.Value() != nil {
			t.Fatalf("expected Success(nil), got %#v", res)
		}
	})
}

func TestClientErrorsBecomeFailure(t *testing.T) {
	cause := fmt.Errorf("%w: search.php: connection refused", mealdb.ErrNetwork)
	api := &testsupport.FakeAPI{SearchByNameFn: testsupport.Failing(cause)}
	res := repository.New(api).SearchMealsByName(context.Background(), "chicken")
	if res.OK() {
		t.Fatal("expected failure")
	}
	if !errors.Is(res.Err(), mealdb.ErrNetwork) {
		t.Fatalf("expected wrapped network error, got %v", res.Err())
	}
	if res.Value() != nil {
		t.Fatalf("failure must not carry a value, got %#v", res.Value())
	}
}

func TestPanicBecomesFailure(t *testing.T) {
	api := &testsupport.FakeAPI{
		FilterByAreaFn: func(context.Context, string) (*mealdb.MealsEnvelope, error) {
			panic("boom")
		},
	}
	res := repository.New(api).FilterByArea(context.Background(), "Canadian")
	if res.OK() {
		t.Fatal("expected failure after panic")
	}
	if res.Err() == nil || res.Err().Error() != "filter by area: panic: boom" {
		t.Fatalf("unexpected error %v", res.Err())
	}
}

func TestFailureNilIsNormalized(t *testing.T) {
	res := repository.Failure[int](nil)
	if res.OK() || !errors.Is(res.Err(), repository.ErrUnknownFailure) {
		t.Fatalf("expected unknown failure, got %#v", res)
	}
	value, err := repository.Success(7).Unwrap()
	if value != 7 || err != nil {
		t.Fatalf("unexpected unwrap %d %v", value, err)
	}
}

func TestArgumentsPassThrough(t *testing.T) {
	api := &testsupport.FakeAPI{}
	repo := repository.New(api)
	ctx := context.Background()
	repo.SearchMealsByName(ctx, "")
	repo.FilterByIngredient(ctx, "  ")
	calls := api.Calls()
	if len(calls) != 2 || calls[0].Arg != "" || calls[1].Arg != "  " {
		t.Fatalf("unexpected calls %#v", calls)
	}
}
