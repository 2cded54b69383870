package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mealmate/internal/model"
	"mealmate/internal/util"
	"mealmate/internal/viewstate"
)

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var category string
	var area string
	var ingredient string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List meals by category, area or main ingredient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category = strings.TrimSpace(category)
			area = strings.TrimSpace(area)
			ingredient = util.IngredientQuery(ingredient)

			set := 0
			for _, v := range []string{category, area, ingredient} {
				if v != "" {
					set++
				}
			}
			if set != 1 {
				return errors.New("exactly one of --category, --area or --ingredient is required")
			}

			return ctx.withServices(func(svc *services) error {
				ctrl := viewstate.NewListingController(svc.repo, svc.controllerOptions()...)
				defer ctrl.Close()

				var subject string
				switch {
				case category != "":
					subject = category
					ctrl.FilterByCategory(category)
				case area != "":
					subject = area
					ctrl.FilterByArea(area)
				default:
					subject = util.TitleLabel(ingredient)
					ctrl.FilterByIngredient(ingredient)
				}
				return writeListing(cmd, ctx, ctrl, fmt.Sprintf("No meals found for %s", subject))
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category name, e.g. Seafood")
	cmd.Flags().StringVar(&area, "area", "", "Area name, e.g. Canadian")
	cmd.Flags().StringVar(&ingredient, "ingredient", "", "Main ingredient, e.g. \"chicken breast\"")
	return cmd
}

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List meal categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				categories, err := svc.repo.Categories(requestContext(cmd)).Unwrap()
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, categories)
				}
				renderCategories(cmd.OutOrStdout(), categories)
				return nil
			})
		},
	}
}

func newAreasCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List cuisine areas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				areas, err := svc.repo.Areas(requestContext(cmd)).Unwrap()
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, areaNames(areas))
				}
				renderAreas(cmd.OutOrStdout(), areas)
				return nil
			})
		},
	}
}

func renderCategories(w io.Writer, categories []model.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories available")
		return
	}
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c.Name, util.TruncateString(firstLine(c.Description), 60)})
	}
	fmt.Fprintln(w, renderTable([]string{"Category", "Description"}, rows, nil))
}

func renderAreas(w io.Writer, areas []model.AreaItem) {
	if len(areas) == 0 {
		fmt.Fprintln(w, "No areas available")
		return
	}
	rows := make([][]string, 0, len(areas))
	for _, a := range areas {
		rows = append(rows, []string{a.Name})
	}
	fmt.Fprintln(w, renderTable([]string{"Area"}, rows, nil))
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
