package textsim

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var tagFolder = cases.Lower(language.English)

// NormalizeTag case-folds a tag and strips separator characters so that
// "Machine-Learning", "machine_learning" and "machine learning" compare
// equal.
func NormalizeTag(tag string) string {
	folded := tagFolder.String(strings.TrimSpace(tag))
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '/':
			return -1
		}
		return r
	}, folded)
}
