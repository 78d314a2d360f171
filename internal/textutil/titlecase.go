package textutil

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase converts a phrase to title casing. Used for tag display names
// and image titles.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
