package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"mealmate/internal/model"
	"mealmate/internal/viewstate"
)

var errMealNotFound = errors.New("meal not found")

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search meals by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withServices(func(svc *services) error {
				ctrl := viewstate.NewListingController(svc.repo, svc.controllerOptions()...)
				defer ctrl.Close()
				ctrl.Search(query)
				return writeListing(cmd, ctx, ctrl, fmt.Sprintf("No meals found for %q", query))
			})
		},
	}
}

func newLetterCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "letter <letter>",
		Short: "List meals whose name starts with a letter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			letter := strings.TrimSpace(args[0])
			r, size := utf8.DecodeRuneInString(letter)
			if size == 0 || size != len(letter) || !unicode.IsLetter(r) {
				return fmt.Errorf("expected a single letter, got %q", args[0])
			}
			return ctx.withServices(func(svc *services) error {
				meals, err := svc.repo.MealsByFirstLetter(requestContext(cmd), strings.ToLower(letter)).Unwrap()
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, summarizeMeals(meals))
				}
				renderMealList(cmd.OutOrStdout(), meals, fmt.Sprintf("No meals start with %q", letter))
				return nil
			})
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a meal with ingredients and instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withServices(func(svc *services) error {
				ctrl := viewstate.NewDetailController(svc.repo, svc.controllerOptions()...)
				defer ctrl.Close()
				ctrl.LoadMealDetails(id)
				ctrl.Wait()

				state := ctrl.State().Value()
				if state.Error != "" {
					return errors.New(state.Error)
				}
				if state.Meal == nil {
					return fmt.Errorf("%w: %s", errMealNotFound, id)
				}
				return writeMeal(cmd, ctx, *state.Meal)
			})
		},
	}
}

func newRandomCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show a random meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				meal, err := svc.repo.RandomMeal(requestContext(cmd)).Unwrap()
				if err != nil {
					return err
				}
				if meal == nil {
					return errMealNotFound
				}
				return writeMeal(cmd, ctx, *meal)
			})
		},
	}
}

func newHomeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show a random meal with the category and area lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				ctrl := viewstate.NewHomeController(svc.repo, svc.controllerOptions()...)
				defer ctrl.Close()
				ctrl.Wait()

				state := ctrl.State().Value()
				if state.Error != "" {
					return errors.New(state.Error)
				}

				if ctx.jsonOutput() {
					view := homeView{Categories: state.Categories, Areas: areaNames(state.Areas)}
					if state.RandomMeal != nil {
						detail := detailView(*state.RandomMeal)
						view.RandomMeal = &detail
					}
					return writeJSON(cmd, view)
				}

				out := cmd.OutOrStdout()
				if state.RandomMeal != nil {
					fmt.Fprintf(out, "Random pick: %s (#%s)\n\n", state.RandomMeal.Name, state.RandomMeal.ID)
				}
				renderCategories(out, state.Categories)
				fmt.Fprintln(out)
				renderAreas(out, state.Areas)
				return nil
			})
		},
	}
}

// writeListing waits for the controller and prints its results.
func writeListing(cmd *cobra.Command, ctx *commandContext, ctrl *viewstate.ListingController, emptyMessage string) error {
	ctrl.Wait()
	state := ctrl.State().Value()
	if state.Error != "" {
		return errors.New(state.Error)
	}
	if ctx.jsonOutput() {
		return writeJSON(cmd, summarizeMeals(state.Results))
	}
	renderMealList(cmd.OutOrStdout(), state.Results, emptyMessage)
	return nil
}

func writeMeal(cmd *cobra.Command, ctx *commandContext, meal model.Meal) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, detailView(meal))
	}
	renderMealDetail(cmd.OutOrStdout(), meal)
	return nil
}

func requestContext(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
