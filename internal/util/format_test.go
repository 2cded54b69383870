package util

import (
	"reflect"
	"testing"
)

func TestSplitSteps(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"crlf", "Heat oil.\r\n\r\nAdd onions.\r\nServe.", []string{"Heat oil.", "Add onions.", "Serve."}},
		{"lf with blanks", "One\n \nTwo\n", []string{"One", "Two"}},
		{"single step", "Mix everything together.", []string{"Mix everything together."}},
		{"blank", "  \r\n ", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitSteps(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitSteps(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags("Soup, ,Vegan,  Spicy ")
	want := []string{"Soup", "Vegan", "Spicy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitTags = %#v, want %#v", got, want)
	}
	if got := SplitTags(""); len(got) != 0 {
		t.Fatalf("expected no tags, got %#v", got)
	}
}

func TestTitleLabelAndIngredientQuery(t *testing.T) {
	if got := TitleLabel("chicken_breast"); got != "Chicken Breast" {
		t.Fatalf("TitleLabel = %q", got)
	}
	if got := IngredientQuery("  Chicken   Breast "); got != "chicken_breast" {
		t.Fatalf("IngredientQuery = %q", got)
	}
}

func TestFormatOptional(t *testing.T) {
	blank := "  "
	value := " Italian "
	if FormatOptional(nil) != "—" || FormatOptional(&blank) != "—" {
		t.Fatal("expected placeholder for absent values")
	}
	if FormatOptional(&value) != "Italian" {
		t.Fatalf("unexpected value %q", FormatOptional(&value))
	}
	if OptionalValue(nil) != "" || OptionalValue(&value) != "Italian" {
		t.Fatal("unexpected OptionalValue result")
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1, "meal", "meals"); got != "1 meal" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCount(1204, "meal", "meals"); got != "1,204 meals" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("Beef Wellington", 8); got != "Beef ..." {
		t.Fatalf("got %q", got)
	}
	if got := TruncateString("Pie", 8); got != "Pie" {
		t.Fatalf("got %q", got)
	}
	if got := TruncateString("Pie", 2); got != "Pi" {
		t.Fatalf("got %q", got)
	}
}
