package util

import (
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatOptional returns the trimmed value or "—" if nil or blank.
func FormatOptional(s *string) string {
	if s == nil {
		return "—"
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return "—"
	}
	return v
}

// OptionalValue returns the trimmed value or "" if nil.
func OptionalValue(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// SplitSteps splits instructions on line breaks and drops blank lines.
// Text without breaks comes back as a single step.
func SplitSteps(instructions string) []string {
	normalized := strings.ReplaceAll(instructions, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	steps := make([]string, 0)
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		steps = append(steps, line)
	}
	return steps
}

// SplitTags splits a comma-separated tag string, trimming and dropping blanks.
func SplitTags(tags string) []string {
	out := make([]string, 0)
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// TitleLabel turns "chicken_breast" into "Chicken Breast".
func TitleLabel(s string) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " ")
	if s == "" {
		return ""
	}
	return cases.Title(language.Und).String(s)
}

// IngredientQuery normalizes user input to the upstream ingredient key form,
// e.g. "Chicken Breast" becomes "chicken_breast".
func IngredientQuery(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "_"))
}

// FormatCount renders n with a singular or plural noun, e.g. "1 meal", "1,204 meals".
func FormatCount(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return humanize.Comma(int64(n)) + " " + noun
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
