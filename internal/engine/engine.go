// Package engine turns utterances into replies by keyword-driven pattern
// matching over a rule set: normalize the input, pick a keyword by link
// redirection or rank, decompose with capture patterns, reassemble a
// templated reply, and fall back to short-term memory or a default line.
package engine

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"parley/internal/memory"
	"parley/internal/script"
)

// Trace receives diagnostic events the engine would otherwise swallow:
// dropped patterns, skipped templates, link redirections. The default trace
// discards everything.
type Trace func(format string, args ...any)

// Option customizes engine construction.
type Option func(*Engine)

// WithRand injects the random source used for template and default-response
// selection. Tests pass a seeded source for deterministic replies.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithTrace installs a diagnostic hook.
func WithTrace(t Trace) Option {
	return func(e *Engine) {
		if t != nil {
			e.trace = t
		}
	}
}

// WithMemoryCapacity overrides the memory queue bound.
func WithMemoryCapacity(n int) Option {
	return func(e *Engine) { e.mem = memory.NewQueue(n) }
}

type linkRule struct {
	word   string
	target *keywordRule
}

// Engine generates replies for one conversation. The rule set is read-only
// and may be shared between engines; the memory queue is per-engine state,
// so an engine must not be shared between concurrent conversations.
type Engine struct {
	norm      *normalizer
	post      []postRule
	ranked    []*keywordRule // descending rank, declaration order on ties
	links     []linkRule     // declaration order
	memRules  []decompRule
	defaults  []string
	greetings []string
	mem       *memory.Queue
	rng       *rand.Rand
	trace     Trace
}

// acknowledgments are inputs that should take the default path rather than
// consume a stored memory.
var acknowledgments = map[string]bool{
	"yes": true, "no": true, "ok": true, "okay": true, "sure": true,
	"right": true, "yeah": true, "yep": true, "nope": true, "yea": true,
}

// New builds an engine from a rule set. Construction never fails: a nil
// script falls back to the builtin rule set and unparseable patterns are
// dropped with a trace event.
func New(s *script.Script, opts ...Option) *Engine {
	if s == nil || len(s.Keywords) == 0 {
		s = script.Builtin()
	}

	e := &Engine{
		defaults:  s.Defaults,
		greetings: s.Greetings,
		mem:       memory.NewQueue(memory.DefaultCapacity),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		trace:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.norm = newNormalizer(s, e.trace)
	e.post = newPostRules(s, e.trace)

	byWord := make(map[string]*keywordRule, len(s.Keywords))
	for _, kw := range s.Keywords {
		rule := &keywordRule{
			word:  kw.Word,
			rank:  kw.Rank,
			rules: compileDecomps("keyword "+kw.Word, kw.Decomposition, e.trace),
		}
		e.ranked = append(e.ranked, rule)
		if _, dup := byWord[kw.Word]; !dup {
			byWord[kw.Word] = rule
		}
	}
	// Pre-sorted once here instead of per turn; stable sort keeps the
	// first-declared-wins tie policy.
	sort.SliceStable(e.ranked, func(i, j int) bool {
		return e.ranked[i].rank > e.ranked[j].rank
	})

	for _, l := range s.Links {
		target, ok := byWord[l.Keyword]
		if !ok {
			e.trace("drop link %q -> %q: no such keyword", l.Word, l.Keyword)
			continue
		}
		e.links = append(e.links, linkRule{word: l.Word, target: target})
	}

	mem := s.Memory
	if mem == nil || len(mem.Decomposition) == 0 {
		mem = script.Builtin().Memory
	}
	e.memRules = compileDecomps("memory", mem.Decomposition, e.trace)

	if len(e.defaults) == 0 {
		e.defaults = []string{"I see."}
	}

	return e
}

// Respond generates a reply for one conversational turn. It is total: every
// input, including empty or unrecognized text, yields a non-empty string.
func (e *Engine) Respond(utterance string) string {
	text := e.norm.Normalize(utterance)
	if text == "" {
		return e.pick(e.defaults)
	}

	// Statements about "my" anything are remembered unconditionally, even
	// when a keyword produces the reply this same turn.
	if containsToken(text, "my") {
		e.mem.Store(e.finalize(text))
	}

	if kw, ok := e.resolve(text); ok {
		if reply, ok := e.reassemble(text, kw); ok {
			return e.finalize(reply)
		}
		return e.pick(e.defaults)
	}

	if !acknowledgments[firstToken(text)] {
		if entry, ok := e.mem.Recall(); ok {
			if reply, ok := e.memoryReply(entry); ok {
				return e.finalize(reply)
			}
		}
	}

	return e.pick(e.defaults)
}

// InitialPrompt returns a conversation opener.
func (e *Engine) InitialPrompt() string {
	if len(e.greetings) == 0 {
		return "How do you do. Please tell me your problem."
	}
	return e.pick(e.greetings)
}

// MemoryLen reports how many statements are currently remembered.
func (e *Engine) MemoryLen() int {
	return e.mem.Len()
}

// resolve selects a keyword rule for the normalized text: link redirection
// first (declaration order), then rank search over contained triggers.
func (e *Engine) resolve(text string) (*keywordRule, bool) {
	for _, l := range e.links {
		if strings.Contains(text, l.word) {
			e.trace("link %q -> keyword %q", l.word, l.target.word)
			return l.target, true
		}
	}
	for _, kw := range e.ranked {
		if strings.Contains(text, kw.word) {
			return kw, true
		}
	}
	return nil, false
}

// memoryReply matches a recalled entry against the memory decomposition
// rules and fills the chosen template, adapting the entry's grammar to the
// template's phrasing.
func (e *Engine) memoryReply(entry string) (string, bool) {
	for _, d := range e.memRules {
		m := d.re.FindStringSubmatch(entry)
		if m == nil || len(d.templates) == 0 {
			continue
		}
		tmpl := d.templates[e.rng.Intn(len(d.templates))]
		captures := m[1:]
		adapted := make([]string, len(captures))
		for i, c := range captures {
			adapted[i] = memory.AdaptRecall(tmpl, c)
		}
		out, ok := fillTemplate(tmpl, adapted)
		if !ok {
			e.trace("memory: template %q wants captures pattern %q lacks, skipping rule",
				tmpl, d.re.String())
			continue
		}
		return out, true
	}
	return "", false
}

func (e *Engine) pick(list []string) string {
	return list[e.rng.Intn(len(list))]
}
