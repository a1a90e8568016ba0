package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase trims s and capitalizes each word: "new york city" -> "New York City".
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
