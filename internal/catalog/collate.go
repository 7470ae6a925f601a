package catalog

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns a root-locale collator. Collators keep internal buffers
// and are not safe for concurrent use, so every sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

// CompareNames compares a and b the way the site orders names.
func CompareNames(a, b string) int {
	return newCollator().CompareString(a, b)
}
