package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// EscapeHTML replaces HTML-significant characters with entities.
func EscapeHTML(input string) string {
	return htmlEscaper.Replace(input)
}

// StripTags removes all markup from input and returns plain text.
// bluemonday escapes the text it keeps, so entities are decoded again afterwards.
func StripTags(input string) string {
	return html.UnescapeString(stripPolicy.Sanitize(input))
}
