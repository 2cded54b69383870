package mealdb_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"mealmate/internal/mealdb"
)

type recorded struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorded) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, req.URL.Path+"?"+req.URL.RawQuery)
}

func (r *recorded) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}

func newServer(t *testing.T, body string) (*mealdb.Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := mealdb.New(server.URL + "/api/json/v1/1")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client, rec
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := mealdb.New("  "); err == nil {
		t.Fatal("expected error when base url missing")
	}
	if _, err := mealdb.New("ftp://example.com"); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}

func TestNewNormalizesTrailingSlash(t *testing.T) {
	client, err := mealdb.New("https://example.com/api///")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if client.BaseURL() != "https://example.com/api/" {
		t.Fatalf("unexpected base url %q", client.BaseURL())
	}
}

func TestOperationsHitExpectedEndpoints(t *testing.T) {
	client, rec := newServer(t, `{"meals":null}`)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
		want string
	}{
		{"search", func() error { _, err := client.SearchByName(ctx, "chicken"); return err }, "/api/json/v1/1/search.php?s=chicken"},
		{"letter", func() error { _, err := client.ListByFirstLetter(ctx, "a"); return err }, "/api/json/v1/1/search.php?f=a"},
		{"lookup", func() error { _, err := client.LookupByID(ctx, "52977"); return err }, "/api/json/v1/1/lookup.php?i=52977"},
		{"random", func() error { _, err := client.Random(ctx); return err }, "/api/json/v1/1/random.php?"},
		{"areas", func() error { _, err := client.Areas(ctx); return err }, "/api/json/v1/1/list.php?a=list"},
		{"ingredient", func() error { _, err := client.FilterByIngredient(ctx, "chicken_breast"); return err }, "/api/json/v1/1/filter.php?i=chicken_breast"},
		{"category", func() error { _, err := client.FilterByCategory(ctx, "Seafood"); return err }, "/api/json/v1/1/filter.php?c=Seafood"},
		{"area", func() error { _, err := client.FilterByArea(ctx, "Canadian"); return err }, "/api/json/v1/1/filter.php?a=Canadian"},
		{"empty query passes through", func() error { _, err := client.SearchByName(ctx, ""); return err }, "/api/json/v1/1/search.php?s="},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); err != nil {
				t.Fatalf("call returned error: %v", err)
			}
			if got := rec.last(); got != tc.want {
				t.Fatalf("request = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSearchDecodesMeals(t *testing.T) {
	client, _ := newServer(t, `{"meals":[{"idMeal":"1","strMeal":"Corba","strIngredient1":"Lentils","strMeasure1":"1 cup"},{"idMeal":"2","strMeal":"Kumpir"}]}`)
	env, err := client.SearchByName(context.Background(), "c")
	if err != nil {
		t.Fatalf("SearchByName returned error: %v", err)
	}
	if len(env.Meals) != 2 || env.Meals[0].Name != "Corba" || env.Meals[1].ID != "2" {
		t.Fatalf("unexpected envelope: %#v", env)
	}
}

func TestNullMealsDecodesToNil(t *testing.T) {
	client, _ := newServer(t, `{"meals":null}`)
	env, err := client.SearchByName(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("SearchByName returned error: %v", err)
	}
	if env.Meals != nil {
		t.Fatalf("expected nil meals, got %#v", env.Meals)
	}
}

func TestCategoriesDecode(t *testing.T) {
	client, _ := newServer(t, `{"categories":[{"idCategory":"1","strCategory":"Beef","strCategoryThumb":"b.png","strCategoryDescription":"Beef is..."}]}`)
	env, err := client.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories returned error: %v", err)
	}
	if len(env.Categories) != 1 || env.Categories[0].Name != "Beef" || env.Categories[0].Description != "Beef is..." {
		t.Fatalf("unexpected categories: %#v", env.Categories)
	}
}

func TestNonSuccessStatusIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client, err := mealdb.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.Random(context.Background())
	if !errors.Is(err, mealdb.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	var statusErr *mealdb.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected StatusError 503, got %v", err)
	}
}

func TestConnectionFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := mealdb.New(url)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Categories(context.Background()); !errors.Is(err, mealdb.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client, err := mealdb.New(server.URL, mealdb.WithTimeouts(50*time.Millisecond, 50*time.Millisecond, 50*time.Millisecond))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Random(context.Background()); !errors.Is(err, mealdb.ErrNetwork) {
		t.Fatalf("expected ErrNetwork on timeout, got %v", err)
	}
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	cases := map[string]string{
		"not json":       `<html>oops</html>`,
		"wrong shape":    `{"meals":"nope"}`,
		"missing id":     `{"meals":[{"strMeal":"Ghost"}]}`,
		"bad field type": `{"meals":[{"idMeal":"1","strArea":7}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client, _ := newServer(t, body)
			_, err := client.SearchByName(context.Background(), "x")
			if !errors.Is(err, mealdb.ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
			if errors.Is(err, mealdb.ErrNetwork) {
				t.Fatalf("decode error must not be classified as network: %v", err)
			}
		})
	}
}

func TestUserAgentHeader(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	t.Cleanup(server.Close)

	client, err := mealdb.New(server.URL, mealdb.WithUserAgent("mealmate-test/1.0"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Random(context.Background()); err != nil {
		t.Fatalf("Random returned error: %v", err)
	}
	if got != "mealmate-test/1.0" {
		t.Fatalf("unexpected user agent %q", got)
	}
}

func TestFetchImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/broken.png") {
			_, _ = w.Write([]byte("not an image"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(server.Close)

	client, err := mealdb.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	img, err := client.FetchImage(context.Background(), server.URL+"/thumb.png")
	if err != nil {
		t.Fatalf("FetchImage returned error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("unexpected bounds %v", b)
	}

	if _, err := client.FetchImage(context.Background(), server.URL+"/broken.png"); !errors.Is(err, mealdb.ErrDecode) {
		t.Fatalf("expected ErrDecode for broken image, got %v", err)
	}
}
