package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mealmate/internal/config"
	"mealmate/internal/testsupport"
)

const teriyakiJSON = `{
	"idMeal": "52772",
	"strMeal": "Teriyaki Chicken Casserole",
	"strCategory": "Chicken",
	"strArea": "Japanese",
	"strInstructions": "Preheat oven to 350F.\r\nCombine soy sauce and sugar.\r\n\r\nBake for 15 minutes.",
	"strMealThumb": "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
	"strTags": "Meat,Casserole",
	"strYoutube": "https://www.youtube.com/watch?v=4aZr5hZXP_s",
	"strIngredient1": "soy sauce",
	"strMeasure1": "3/4 cup",
	"strIngredient2": "water",
	"strMeasure2": "1/2 cup",
	"strIngredient3": "",
	"strMeasure3": " ",
	"strIngredient4": null,
	"strMeasure4": null
}`

type cliTestEnv struct {
	server     *httptest.Server
	configPath string

	mu       sync.Mutex
	requests []string
	failing  bool
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFormat, "")

	env := &cliTestEnv{}
	env.server = httptest.NewServer(http.HandlerFunc(env.serve))
	t.Cleanup(env.server.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithBaseURL(env.server.URL+"/api/json/v1/1/"))
	env.configPath = filepath.Join(home, "mealmate.toml")
	writeTestConfig(t, env.configPath, cfg)
	return env
}

func (e *cliTestEnv) serve(w http.ResponseWriter, r *http.Request) {
	e.mu.Lock()
	e.requests = append(e.requests, strings.TrimPrefix(r.URL.Path, "/api/json/v1/1/")+"?"+r.URL.RawQuery)
	failing := e.failing
	e.mu.Unlock()

	if failing {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}

	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")
	switch strings.TrimPrefix(r.URL.Path, "/api/json/v1/1/") {
	case "search.php":
		if strings.EqualFold(q.Get("s"), "teriyaki") || q.Get("f") == "t" {
			fmt.Fprintf(w, `{"meals":[%s]}`, teriyakiJSON)
			return
		}
		fmt.Fprint(w, `{"meals":null}`)
	case "lookup.php":
		if q.Get("i") == "52772" {
			fmt.Fprintf(w, `{"meals":[%s]}`, teriyakiJSON)
			return
		}
		fmt.Fprint(w, `{"meals":null}`)
	case "random.php":
		fmt.Fprintf(w, `{"meals":[%s]}`, teriyakiJSON)
	case "categories.php":
		fmt.Fprint(w, `{"categories":[{"idCategory":"1","strCategory":"Beef","strCategoryThumb":"","strCategoryDescription":"Beef is the culinary name for meat from cattle.\r\nMore text."},{"idCategory":"3","strCategory":"Dessert","strCategoryThumb":"","strCategoryDescription":"Sweet course."}]}`)
	case "list.php":
		fmt.Fprint(w, `{"meals":[{"strArea":"Canadian"},{"strArea":"Japanese"}]}`)
	case "filter.php":
		if q.Get("i") == "chicken_breast" || q.Get("c") == "Chicken" || q.Get("a") == "Japanese" {
			fmt.Fprint(w, `{"meals":[{"strMeal":"Teriyaki Chicken Casserole","strMealThumb":"x.jpg","idMeal":"52772"}]}`)
			return
		}
		fmt.Fprint(w, `{"meals":null}`)
	default:
		http.NotFound(w, r)
	}
}

func (e *cliTestEnv) setFailing(v bool) {
	e.mu.Lock()
	e.failing = v
	e.mu.Unlock()
}

func (e *cliTestEnv) requestLog() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.requests...)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
