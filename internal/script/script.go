// Package script defines the rule-set model that drives the response engine
// and loads rule sets from YAML files.
package script

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decomp is one capture pattern with its candidate reassembly templates.
// Templates use positional placeholders: {0} is the first capture group.
type Decomp struct {
	Pattern    string   `yaml:"pattern"`
	Reassembly []string `yaml:"reassembly"`
}

// Keyword is a trigger word with a priority rank and ordered decomposition
// rules. Higher rank wins when several keywords appear in one utterance.
type Keyword struct {
	Word          string   `yaml:"word"`
	Rank          int      `yaml:"rank"`
	Decomposition []Decomp `yaml:"decomposition"`
}

// Link redirects an auxiliary word to the keyword whose rules it borrows.
type Link struct {
	Word    string
	Keyword string
}

// LinkTable preserves the declaration order of link entries. Order matters:
// when an utterance contains several link words, the first-declared one wins.
type LinkTable []Link

// UnmarshalYAML decodes a YAML mapping into the table without losing the
// order of its keys.
func (lt *LinkTable) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("links: expected a mapping, got %v", value.Kind)
	}
	out := make(LinkTable, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		out = append(out, Link{
			Word:    strings.ToLower(strings.TrimSpace(value.Content[i].Value)),
			Keyword: strings.ToLower(strings.TrimSpace(value.Content[i+1].Value)),
		})
	}
	*lt = out
	return nil
}

// Transform is a single rewrite rule: pattern in, replacement out.
// In YAML a transform is a two-element list, e.g. ["i'm", "i am"].
type Transform struct {
	Pattern     string
	Replacement string
}

// UnmarshalYAML decodes the [pattern, replacement] pair form.
func (t *Transform) UnmarshalYAML(value *yaml.Node) error {
	var pair []string
	if err := value.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("transform: expected [pattern, replacement], got %d elements", len(pair))
	}
	t.Pattern, t.Replacement = pair[0], pair[1]
	return nil
}

// Script is a complete rule set. Loaded once, read-only afterwards; engines
// never mutate it, so one Script can back any number of conversations.
type Script struct {
	Keywords  []Keyword           `yaml:"keywords"`
	Links     LinkTable           `yaml:"links"`
	Synonyms  map[string][]string `yaml:"synonyms"`
	Pre       []Transform         `yaml:"pre"`
	Post      []Transform         `yaml:"post"`
	Memory    *Keyword            `yaml:"memory"`
	Defaults  []string            `yaml:"defaults"`
	Greetings []string            `yaml:"greetings"`
	QuitWords []string            `yaml:"quit"`
}

// KeywordFor returns the keyword rule for the given trigger word.
func (s *Script) KeywordFor(word string) (*Keyword, bool) {
	for i := range s.Keywords {
		if s.Keywords[i].Word == word {
			return &s.Keywords[i], true
		}
	}
	return nil, false
}

// IsQuitWord reports whether the word signals the end of a conversation.
func (s *Script) IsQuitWord(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	for _, q := range s.QuitWords {
		if word == q {
			return true
		}
	}
	return false
}

// Validate reports problems a loaded script may carry: decomposition
// patterns that do not compile and links that point at unknown keywords.
// The engine tolerates both (bad patterns are dropped, dangling links are
// skipped), so these are warnings rather than load failures.
func (s *Script) Validate() []string {
	var issues []string
	for _, kw := range s.Keywords {
		for _, d := range kw.Decomposition {
			if _, err := regexp.Compile("(?i)" + d.Pattern); err != nil {
				issues = append(issues, fmt.Sprintf("keyword %q: bad pattern %q: %v", kw.Word, d.Pattern, err))
			}
			if len(d.Reassembly) == 0 {
				issues = append(issues, fmt.Sprintf("keyword %q: pattern %q has no reassembly templates", kw.Word, d.Pattern))
			}
		}
	}
	if s.Memory != nil {
		for _, d := range s.Memory.Decomposition {
			if _, err := regexp.Compile("(?i)" + d.Pattern); err != nil {
				issues = append(issues, fmt.Sprintf("memory: bad pattern %q: %v", d.Pattern, err))
			}
		}
	}
	for _, l := range s.Links {
		if _, ok := s.KeywordFor(l.Keyword); !ok {
			issues = append(issues, fmt.Sprintf("link %q -> %q: no such keyword", l.Word, l.Keyword))
		}
	}
	for _, t := range append(append([]Transform{}, s.Pre...), s.Post...) {
		if _, err := regexp.Compile("(?i)" + t.Pattern); err != nil {
			issues = append(issues, fmt.Sprintf("transform: bad pattern %q: %v", t.Pattern, err))
		}
	}
	return issues
}
