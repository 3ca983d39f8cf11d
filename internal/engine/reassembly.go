package engine

import (
	"regexp"
	"strconv"

	"parley/internal/script"
)

var placeholderRE = regexp.MustCompile(`\{(\d+)\}`)

type decompRule struct {
	re        *regexp.Regexp
	templates []string
}

type keywordRule struct {
	word  string
	rank  int
	rules []decompRule
}

// compileDecomps compiles decomposition patterns case-insensitively and
// unanchored. Patterns that do not compile are dropped with a trace event
// rather than failing construction.
func compileDecomps(owner string, decomps []script.Decomp, trace Trace) []decompRule {
	var rules []decompRule
	for _, d := range decomps {
		re, err := regexp.Compile("(?i)" + d.Pattern)
		if err != nil {
			trace("%s: drop pattern %q: %v", owner, d.Pattern, err)
			continue
		}
		rules = append(rules, decompRule{re: re, templates: d.Reassembly})
	}
	return rules
}

// fillTemplate substitutes {n} placeholders with captures. It reports false
// when the template references a capture index the match did not produce.
func fillTemplate(tmpl string, captures []string) (string, bool) {
	ok := true
	out := placeholderRE.ReplaceAllStringFunc(tmpl, func(m string) string {
		n, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || n >= len(captures) {
			ok = false
			return m
		}
		return captures[n]
	})
	if !ok {
		return "", false
	}
	return out, true
}

// reassemble tries the keyword's decomposition rules in declared order. The
// first structurally matching rule picks a reassembly template uniformly at
// random; a template referencing an absent capture skips the whole rule.
func (e *Engine) reassemble(text string, kw *keywordRule) (string, bool) {
	for _, d := range kw.rules {
		m := d.re.FindStringSubmatch(text)
		if m == nil || len(d.templates) == 0 {
			continue
		}
		tmpl := d.templates[e.rng.Intn(len(d.templates))]
		out, ok := fillTemplate(tmpl, m[1:])
		if !ok {
			e.trace("keyword %q: template %q wants captures pattern %q lacks, skipping rule",
				kw.word, tmpl, d.re.String())
			continue
		}
		return out, true
	}
	return "", false
}
