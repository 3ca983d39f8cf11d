package script

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed doctor.yaml
var doctorYAML []byte

// Load reads a rule set from a YAML file. Optional fields missing from the
// file fall back, field by field, to the builtin defaults.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML script data and fills in per-field defaults.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	fillDefaults(&s)
	return &s, nil
}

// Default returns the embedded doctor script.
func Default() *Script {
	s, err := Parse(doctorYAML)
	if err != nil {
		// The embedded script is validated by tests; if it is somehow
		// unusable the builtin literal still carries the conversation.
		return Builtin()
	}
	return s
}

// LoadOrDefault loads the script at path, falling back to the embedded
// default when path is empty or the file is missing or malformed. It never
// fails: the worst case degrades to the builtin rule set.
func LoadOrDefault(path string) *Script {
	if path == "" {
		return Default()
	}
	s, err := Load(path)
	if err != nil {
		return Default()
	}
	return s
}

func fillDefaults(s *Script) {
	builtin := Builtin()
	if len(s.Keywords) == 0 {
		s.Keywords = builtin.Keywords
	}
	if len(s.Synonyms) == 0 {
		s.Synonyms = builtin.Synonyms
	}
	if len(s.Pre) == 0 {
		s.Pre = builtin.Pre
	}
	if len(s.Post) == 0 {
		s.Post = builtin.Post
	}
	if s.Memory == nil || len(s.Memory.Decomposition) == 0 {
		s.Memory = builtin.Memory
	}
	if len(s.Defaults) == 0 {
		s.Defaults = builtin.Defaults
	}
	if len(s.Greetings) == 0 {
		s.Greetings = builtin.Greetings
	}
	if len(s.QuitWords) == 0 {
		s.QuitWords = builtin.QuitWords
	}
}
