package engine

import (
	"regexp"
	"strings"

	"parley/internal/script"
)

var nonWordRE = regexp.MustCompile(`\W+`)

// bareToken strips punctuation from a token: "fluffy," -> "fluffy".
func bareToken(tok string) string {
	return nonWordRE.ReplaceAllString(tok, "")
}

type preRule struct {
	re          *regexp.Regexp
	replacement string
}

// normalizer is the pre-transform pass: lowercase, contraction expansion,
// synonym canonicalization, whitespace collapsing. Normalize is total and
// idempotent; malformed pre-transform patterns are dropped at construction.
type normalizer struct {
	pre      []preRule
	synonyms map[string]string // variant -> canonical
	preserve map[string]bool   // tokens synonym substitution must not touch
}

func newNormalizer(s *script.Script, trace Trace) *normalizer {
	n := &normalizer{
		synonyms: make(map[string]string),
		preserve: make(map[string]bool),
	}

	for _, t := range s.Pre {
		re, err := regexp.Compile("(?i)" + t.Pattern)
		if err != nil {
			trace("drop pre-transform %q: %v", t.Pattern, err)
			continue
		}
		n.pre = append(n.pre, preRule{re: re, replacement: t.Replacement})
	}

	for canonical, variants := range s.Synonyms {
		n.synonyms[canonical] = canonical
		for _, v := range variants {
			n.synonyms[v] = canonical
		}
	}

	// Keyword triggers and link words drive dispatch, so they survive
	// synonym rewriting untouched.
	for _, kw := range s.Keywords {
		n.preserve[kw.Word] = true
	}
	for _, l := range s.Links {
		n.preserve[l.Word] = true
	}

	return n
}

// Normalize lowercases and trims the utterance, expands contractions,
// canonicalizes synonyms token by token (keeping surrounding punctuation),
// and collapses whitespace.
func (n *normalizer) Normalize(raw string) string {
	text := strings.ToLower(strings.TrimSpace(raw))
	for _, r := range n.pre {
		text = r.re.ReplaceAllString(text, r.replacement)
	}

	words := strings.Fields(text)
	for i, w := range words {
		bare := bareToken(w)
		if bare == "" || n.preserve[bare] {
			continue
		}
		if canonical, ok := n.synonyms[bare]; ok && canonical != bare {
			words[i] = strings.Replace(w, bare, canonical, 1)
		}
	}
	return strings.Join(words, " ")
}

// containsToken reports whether the text has word as an exact token once
// punctuation is stripped.
func containsToken(text, word string) bool {
	for _, w := range strings.Fields(text) {
		if bareToken(w) == word {
			return true
		}
	}
	return false
}

// firstToken returns the punctuation-stripped first token of the text.
func firstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return bareToken(fields[0])
}
