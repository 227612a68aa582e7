package city

import (
	"strings"
	"unicode"
)

// Slugify turns a display name into the lowercase hyphenated
// identifier used in URLs and database keys. Runs of characters that
// are not letters or digits collapse into single hyphens, so
// "Area B - Low Emission Zone" becomes "area-b-low-emission-zone".
func Slugify(name string) string {
	var b strings.Builder
	hyphen := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
			continue
		}

		hyphen = true
	}

	return b.String()
}
