package engine

import (
	"regexp"
	"unicode"

	"parley/internal/script"
)

// meGuardRE matches "me" together with a following guard word when one is
// present. RE2 has no lookahead, so the guard word is captured instead and
// matches that include one are left alone. This keeps phrases the responder
// itself produces, like "tell me more", from being person-switched.
var meGuardRE = regexp.MustCompile(`(?i)\bme\b(\s+(?:more|about|how|what|why|when|where)\b)?`)

type postRule struct {
	re          *regexp.Regexp
	replacement string
	guarded     bool
}

// newPostRules compiles the post-transform pass. Each rule matches whole
// words, case-insensitively. A bare "me" pattern gets the guard treatment.
func newPostRules(s *script.Script, trace Trace) []postRule {
	var rules []postRule
	for _, t := range s.Post {
		if t.Pattern == "me" {
			rules = append(rules, postRule{re: meGuardRE, replacement: t.Replacement, guarded: true})
			continue
		}
		re, err := regexp.Compile(`(?i)\b(?:` + t.Pattern + `)\b`)
		if err != nil {
			trace("drop post-transform %q: %v", t.Pattern, err)
			continue
		}
		rules = append(rules, postRule{re: re, replacement: t.Replacement})
	}
	return rules
}

// finalize applies the post-transform rules in declared order and
// capitalizes the first character. Deterministic.
func (e *Engine) finalize(text string) string {
	for _, r := range e.post {
		if r.guarded {
			text = r.re.ReplaceAllStringFunc(text, func(m string) string {
				if len(m) > len("me") {
					return m // guard word present, leave the phrase alone
				}
				return r.replacement
			})
			continue
		}
		text = r.re.ReplaceAllString(text, r.replacement)
	}
	return upperFirst(text)
}

func upperFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
