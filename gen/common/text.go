package common

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Upper trims and upper-cases text the way names are printed. A Caser is
// stateful, so each call gets its own.
func Upper(text string) string {
	return cases.Upper(language.AmericanEnglish).String(strings.TrimSpace(text))
}
