// Package moderation implements the content-moderation decision engine:
// text normalization, toxicity scoring (heuristic and OpenAI), spam
// detection, the warning ledger and the timed-mute state machine, all
// orchestrated per message by the Pipeline.
package moderation

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// nonWord matches whitespace, punctuation and underscores, everything
// that is not a letter or digit after transliteration.
var nonWord = regexp.MustCompile(`[\W_]+`)

// Normalize canonicalizes raw text for pattern matching: transliterate
// to ASCII, lower-case, strip separators and collapse character runs of
// three or more to a single occurrence. Pure function, always returns a
// string (possibly empty).
func Normalize(s string) string {
	s = unidecode.Unidecode(strings.ToLower(s))
	s = nonWord.ReplaceAllString(s, "")
	return collapseRuns(s)
}

// collapseRuns reduces any character repeated 3+ times in a row to a
// single occurrence; runs of two are left alone. RE2 has no
// backreferences, so this is a linear scan.
func collapseRuns(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		n := j - i
		if n >= 3 {
			n = 1
		}
		for k := 0; k < n; k++ {
			b.WriteRune(runes[i])
		}
		i = j
	}
	return b.String()
}
