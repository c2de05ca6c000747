package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// CleanText normalizes question text coming from an external source. OpenTDB
// ships entity-encoded strings that may carry markup; the result is plain
// text, ready for comparison and for escaping at render time.
func CleanText(input string) string {
	input = html.UnescapeString(input)
	input = htmlPolicy.Sanitize(input)
	// Sanitize re-encodes &, < and >; undo that so answers compare as typed.
	input = html.UnescapeString(input)
	return strings.Join(strings.Fields(input), " ")
}

// SanitizeInput strips control bytes from user-supplied text and trims it.
func SanitizeInput(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.TrimSpace(input)

	if len(input) > 256 {
		input = input[:256]
	}

	return input
}
