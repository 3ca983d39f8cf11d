package memory

import (
	"strings"
	"unicode"
)

// gerunds rewrites finite verbs so a remembered statement reads naturally
// after "about": "your cat is fluffy" becomes "your cat being fluffy".
var gerunds = map[string]string{
	"is":     "being",
	"are":    "being",
	"was":    "being",
	"were":   "being",
	"feel":   "feeling",
	"feels":  "feeling",
	"think":  "thinking",
	"thinks": "thinking",
	"want":   "wanting",
	"wants":  "wanting",
	"need":   "needing",
	"needs":  "needing",
	"hate":   "hating",
	"hates":  "hating",
}

// AdaptRecall prepares a recalled entry for insertion into a response
// template. Templates phrased with "about" take the gerund form; templates
// phrased with "why" (and anything else) take the entry as stored. The
// entry is lowercased at the front and stripped of trailing sentence
// punctuation either way, since it lands mid-sentence.
func AdaptRecall(template, entry string) string {
	entry = strings.TrimRight(strings.TrimSpace(entry), ".!?")
	entry = lowerFirst(entry)
	if !containsWord(template, "about") {
		return entry
	}
	words := strings.Fields(entry)
	for i, w := range words {
		if g, ok := gerunds[strings.ToLower(w)]; ok {
			words[i] = g
		} else if strings.EqualFold(w, "me") {
			words[i] = "you"
		}
	}
	return strings.Join(words, " ")
}

func lowerFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToLower(r)) + s[i+len(string(r)):]
	}
	return s
}

func containsWord(text, word string) bool {
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if strings.Trim(w, ".,!?;:'\"") == word {
			return true
		}
	}
	return false
}
