// Package keywords derives candidate session keywords from OCR text
// and measures keyword-set overlap between sessions.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// denylist holds generic tokens that say nothing about what a session
// was about: OS chrome, browser names, URL plumbing, stop words. The
// exact contents are corpus-tunable.
var denylist = map[string]struct{}{
	"screenshot": {}, "screen": {}, "capture": {}, "desktop": {}, "window": {},
	"chrome": {}, "firefox": {}, "safari": {}, "edge": {}, "browser": {},
	"windows": {}, "macos": {}, "linux": {}, "ubuntu": {},
	"http": {}, "https": {}, "www": {}, "com": {}, "org": {}, "net": {}, "localhost": {},
	"file": {}, "edit": {}, "view": {}, "help": {}, "menu": {}, "settings": {},
	"search": {}, "bookmarks": {}, "history": {}, "untitled": {}, "new": {},
	"tab": {}, "page": {}, "home": {}, "back": {}, "close": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "this": {},
	"that": {}, "you": {}, "your": {}, "are": {}, "not": {}, "all": {},
}

var (
	tokenPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9_-]{2,}`)

	// Compound identifiers (kebab/snake) and letter-digit mixes tend to
	// be project, repo or ticket names worth surfacing.
	compoundPattern = regexp.MustCompile(`^[a-z0-9]+[-_][a-z0-9][a-z0-9_-]*$`)
	letterDigit     = regexp.MustCompile(`[a-z][a-z-]*[0-9]`)
	camelPattern    = regexp.MustCompile(`^[A-Z][a-z0-9]+(?:[A-Z][a-z0-9]+)+$`)
)

// Tokenize splits raw OCR text into lowercase candidate keywords,
// dropping denylisted and purely structural tokens. Duplicates are
// preserved so callers can rank by frequency. Tokens whose raw shape
// looks like a project identifier (CamelCase, kebab-case, snake_case,
// letter-digit mixes) are emitted twice to boost them in ranking.
func Tokenize(text string) []string {
	var tokens []string
	for _, raw := range tokenPattern.FindAllString(text, -1) {
		tok := strings.ToLower(strings.Trim(raw, "-_"))
		if len(tok) < 3 {
			continue
		}
		if _, denied := denylist[tok]; denied {
			continue
		}
		tokens = append(tokens, tok)
		if camelPattern.MatchString(raw) || IsProjectToken(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// IsProjectToken reports whether a lowercase token has a recognizable
// project-name shape.
func IsProjectToken(tok string) bool {
	return compoundPattern.MatchString(tok) || letterDigit.MatchString(tok)
}

// Top ranks tokens by frequency (project-shaped tokens get an extra
// weight) and returns at most limit distinct keywords. Ties break on
// first appearance so the result is deterministic.
func Top(tokens []string, limit int) []string {
	if limit <= 0 || len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int)
	first := make(map[string]int)
	var order []string
	for i, tok := range tokens {
		if _, seen := counts[tok]; !seen {
			first[tok] = i
			order = append(order, tok)
		}
		weight := 1
		if IsProjectToken(tok) {
			weight = 2
		}
		counts[tok] += weight
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return first[order[i]] < first[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// Jaccard returns |a ∩ b| / |a ∪ b| over the two keyword lists treated
// as sets. Two empty sets have similarity 0.
func Jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, kw := range a {
		setA[kw] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, kw := range b {
		setB[kw] = struct{}{}
	}

	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for kw := range setA {
		if _, ok := setB[kw]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}
