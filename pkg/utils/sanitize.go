package utils

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips markup and returns plain text. Entities are decoded, so
// "R&D" stays "R&D"; escaping is left to whoever renders the text.
func Sanitize(input string) string {
	return html.UnescapeString(sanitizer.Sanitize(input))
}
