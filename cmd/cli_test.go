package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSearchCommandRendersTableAndJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"search", "teriyaki"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "Teriyaki Chicken Casserole")
	requireContains(t, out, "Japanese")
	requireContains(t, out, "1 meal")

	out, _, err = runCLI(t, []string{"--json", "search", "teriyaki"}, env.configPath)
	if err != nil {
		t.Fatalf("search --json: %v", err)
	}
	var meals []mealSummaryView
	if err := json.Unmarshal([]byte(out), &meals); err != nil {
		t.Fatalf("decode search output: %v\n%s", err, out)
	}
	if len(meals) != 1 || meals[0].ID != "52772" || meals[0].Category != "Chicken" {
		t.Fatalf("unexpected meals %#v", meals)
	}

	out, _, err = runCLI(t, []string{"search", "nothing", "here"}, env.configPath)
	if err != nil {
		t.Fatalf("empty search: %v", err)
	}
	requireContains(t, out, `No meals found for "nothing here"`)

	log := env.requestLog()
	if last := log[len(log)-1]; last != "search.php?s=nothing+here" {
		t.Fatalf("unexpected request %q", last)
	}
}

func TestShowCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"show", "52772"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Teriyaki Chicken Casserole (#52772)")
	requireContains(t, out, "Tags: Meat, Casserole")
	requireContains(t, out, "3/4 cup")
	requireContains(t, out, " 3. Bake for 15 minutes.")
	if strings.Contains(out, " 4. ") {
		t.Fatalf("blank instruction lines should be dropped:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"--json", "show", "52772"}, env.configPath)
	if err != nil {
		t.Fatalf("show --json: %v", err)
	}
	var meal mealDetailView
	if err := json.Unmarshal([]byte(out), &meal); err != nil {
		t.Fatalf("decode show output: %v", err)
	}
	if len(meal.Ingredients) != 2 || meal.Ingredients[1].Ingredient != "water" {
		t.Fatalf("unexpected ingredients %#v", meal.Ingredients)
	}
	if len(meal.Steps) != 3 || len(meal.Tags) != 2 {
		t.Fatalf("unexpected steps %v tags %v", meal.Steps, meal.Tags)
	}

	_, _, err = runCLI(t, []string{"show", "1"}, env.configPath)
	if !errors.Is(err, errMealNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFilterCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"filter"}, env.configPath); err == nil {
		t.Fatal("expected an error without a filter flag")
	}
	if _, _, err := runCLI(t, []string{"filter", "--area", "Japanese", "--category", "Chicken"}, env.configPath); err == nil {
		t.Fatal("expected an error with two filter flags")
	}
	if n := len(env.requestLog()); n != 0 {
		t.Fatalf("invalid flags must not reach the API, got %d requests", n)
	}

	out, _, err := runCLI(t, []string{"filter", "--ingredient", "Chicken  Breast"}, env.configPath)
	if err != nil {
		t.Fatalf("filter ingredient: %v", err)
	}
	requireContains(t, out, "Teriyaki Chicken Casserole")
	if got := env.requestLog()[0]; got != "filter.php?i=chicken_breast" {
		t.Fatalf("unexpected request %q", got)
	}

	out, _, err = runCLI(t, []string{"filter", "--area", "Canadian"}, env.configPath)
	if err != nil {
		t.Fatalf("filter area: %v", err)
	}
	requireContains(t, out, "No meals found for Canadian")
}

func TestLetterCommandValidatesInput(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, arg := range []string{"ab", "1", ""} {
		if _, _, err := runCLI(t, []string{"letter", arg}, env.configPath); err == nil {
			t.Fatalf("expected %q to be rejected", arg)
		}
	}
	if n := len(env.requestLog()); n != 0 {
		t.Fatalf("invalid letters must not reach the API, got %d requests", n)
	}

	out, _, err := runCLI(t, []string{"letter", "T"}, env.configPath)
	if err != nil {
		t.Fatalf("letter: %v", err)
	}
	requireContains(t, out, "Teriyaki Chicken Casserole")
	if got := env.requestLog()[0]; got != "search.php?f=t" {
		t.Fatalf("unexpected request %q", got)
	}
}

func TestHomeAndListCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "home"}, env.configPath)
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	var home homeView
	if err := json.Unmarshal([]byte(out), &home); err != nil {
		t.Fatalf("decode home: %v", err)
	}
	if home.RandomMeal == nil || home.RandomMeal.ID != "52772" {
		t.Fatalf("unexpected random meal %#v", home.RandomMeal)
	}
	if len(home.Categories) != 2 || len(home.Areas) != 2 || home.Areas[0] != "Canadian" {
		t.Fatalf("unexpected home lists %#v", home)
	}

	out, _, err = runCLI(t, []string{"categories"}, env.configPath)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	requireContains(t, out, "Beef is the culinary name for meat from cattle.")
	if strings.Contains(out, "More text.") {
		t.Fatalf("only the first description line should be shown:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"areas"}, env.configPath)
	if err != nil {
		t.Fatalf("areas: %v", err)
	}
	requireContains(t, out, "Canadian")

	out, _, err = runCLI(t, []string{"random"}, env.configPath)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	requireContains(t, out, "Teriyaki Chicken Casserole (#52772)")
}

func TestUpstreamFailureSurfacesPrefixedError(t *testing.T) {
	env := setupCLITestEnv(t)
	env.setFailing(true)

	_, _, err := runCLI(t, []string{"search", "teriyaki"}, env.configPath)
	if err == nil || !strings.HasPrefix(err.Error(), "Search failed: ") {
		t.Fatalf("expected search failure, got %v", err)
	}

	_, _, err = runCLI(t, []string{"home"}, env.configPath)
	if err == nil {
		t.Fatal("expected home failure")
	}
}

func TestBaseURLFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"--base-url", "ftp://example.com", "search", "teriyaki"}, env.configPath)
	if err == nil {
		t.Fatal("expected invalid base url to be rejected")
	}
	if n := len(env.requestLog()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestConfigInitShowAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# path: "+env.configPath)
	requireContains(t, out, env.server.URL)
}

func TestRootWithoutTerminalFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, nil, env.configPath)
	if !errors.Is(err, errNotTerminal) {
		t.Fatalf("expected terminal error, got %v", err)
	}
}
