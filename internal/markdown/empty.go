// Package markdown holds the Markdown helpers used by the note core: the
// emptiness heuristic applied before a note is accepted and the HTML renderer
// used by every projection.
package markdown

import (
	"regexp"
	"strings"
)

var (
	syntaxRe  = regexp.MustCompile(`[#_*>\-\d.]`)
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

// IsEmpty reports whether md carries no visible text.
//
// It removes anything shaped like an HTML tag, then the characters '#', '_',
// '*', '>', '-', '.' and the ASCII digits, then trims whitespace. An empty input
// is empty.
//
// This is a heuristic, not a parser. Known false positives (reported empty
// although they are text): content built only from stripped characters such
// as "1984.", "---" or "<br>".
// Known false negatives (reported non-empty although nothing renders):
// constructs outside the stripped class such as "[]()", "` `" or "&nbsp;".
func IsEmpty(md string) bool {
	if md == "" {
		return true
	}
	// Tags go first: stripping '>' would leave nothing for htmlTagRe to match.
	text := htmlTagRe.ReplaceAllString(md, "")
	text = syntaxRe.ReplaceAllString(text, "")
	return len(strings.TrimSpace(text)) == 0
}
