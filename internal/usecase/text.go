package usecase

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy drops every tag; reviews and comments are plain text.
var textPolicy = bluemonday.StrictPolicy()

const maxTextRounds = 8

// plainText strips markup from user-written text and trims it. Entities are
// decoded so apostrophes and ampersands survive, and the text is sanitized
// again until decoding exposes no new tags.
func plainText(s string) string {
	for i := 0; i < maxTextRounds; i++ {
		out := html.UnescapeString(textPolicy.Sanitize(s))
		if out == s {
			return strings.TrimSpace(out)
		}
		s = out
	}
	// still changing: keep the escaped form, which holds no tags
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
