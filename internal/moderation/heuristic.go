package moderation

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ScoreSource identifies which scorer produced a toxicity score.
type ScoreSource string

const (
	SourceHeuristic ScoreSource = "heuristic"
	SourceRemote    ScoreSource = "remote"
)

// Score is a toxicity estimate in [0,1] with its provenance.
type Score struct {
	Value  float64
	Source ScoreSource
}

// Structural patterns encoding abstract shapes of known slur families.
// Letter-substitution tolerant (digit/symbol look-alikes, optional
// repeated characters between letters). No explicit slur lists.
var slurPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)n+\W*[i1!]+\W*[gq9]+\W*[e3a]+\W*[r]+`),
	regexp.MustCompile(`(?i)f+\W*[a@4]+\W*[gq9]+\W*[o0]+\W*[t]+`),
}

// punctBurst matches four or more consecutive !, ? or . characters.
var punctBurst = regexp.MustCompile(`[!?.]{4,}`)

// shapeTemplates are short abstract models used for fuzzy comparison
// against normalized text (not explicit words).
var shapeTemplates = []string{"nger", "fgot", "kk"}

// HeuristicScorer is the rule-based toxicity estimator. It is stateless
// and safe for concurrent use.
type HeuristicScorer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewHeuristicScorer creates a HeuristicScorer.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{dmp: diffmatchpatch.New()}
}

// MatchesSlurPattern reports whether any structural pattern matches the
// raw text or its normalized form.
func MatchesSlurPattern(text string) bool {
	norm := Normalize(text)
	for _, p := range slurPatterns {
		if p.MatchString(text) || p.MatchString(norm) {
			return true
		}
	}
	return false
}

// Score returns a 0..1 toxicity estimate for text. Checks run in
// priority order and the first match wins:
//
//	structural pattern  -> 0.95
//	punctuation burst   -> 0.45
//	all-caps ratio >0.5 -> 0.4
//	shape match >0.6    -> 0.8
//	default             -> 0.0
func (h *HeuristicScorer) Score(text string) float64 {
	if MatchesSlurPattern(text) {
		return 0.95
	}

	if punctBurst.MatchString(text) {
		return 0.45
	}

	if capsRatio(text) > 0.5 {
		return 0.4
	}

	if h.shapeMatch(text) > 0.6 {
		return 0.8
	}

	return 0.0
}

// capsRatio is the uppercase-letter fraction over total length, with +1
// smoothing in the denominator so short shouts don't divide by zero.
func capsRatio(text string) float64 {
	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(utf8.RuneCountInString(text)+1)
}

// shapeMatch returns the best similarity ratio between the normalized
// text and the abstract violation templates.
func (h *HeuristicScorer) shapeMatch(text string) float64 {
	norm := Normalize(text)
	best := 0.0
	for _, tpl := range shapeTemplates {
		if r := h.similarity(norm, tpl); r > best {
			best = r
		}
	}
	return best
}

// similarity is a common-subsequence ratio in [0,1]: twice the number
// of characters the two strings share in sequence, over their combined
// length (the SequenceMatcher ratio).
func (h *HeuristicScorer) similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	common := 0
	for _, d := range h.dmp.DiffMain(a, b, false) {
		if d.Type == diffmatchpatch.DiffEqual {
			common += utf8.RuneCountInString(d.Text)
		}
	}
	return 2.0 * float64(common) / float64(utf8.RuneCountInString(a)+utf8.RuneCountInString(b))
}
