package script

// Builtin returns the hand-written fallback rule set. It is the last line of
// defense when neither a script file nor the embedded default is usable, so
// it is a plain literal that cannot fail to construct.
func Builtin() *Script {
	return &Script{
		Keywords: []Keyword{
			{Word: "hello", Rank: 0, Decomposition: []Decomp{{
				Pattern: `.*hello.*`,
				Reassembly: []string{
					"Hello. How are you feeling today?",
					"Hi there. What brings you here?",
					"Hello. What would you like to talk about?",
				},
			}}},
			{Word: "mother", Rank: 10, Decomposition: []Decomp{{
				Pattern: `.*mother.*`,
				Reassembly: []string{
					"Tell me more about your family.",
					"Who else in your family?",
					"What about your family?",
				},
			}}},
			{Word: "father", Rank: 10, Decomposition: []Decomp{{
				Pattern: `.*father.*`,
				Reassembly: []string{
					"Tell me more about your family.",
					"Who else in your family?",
					"What about your family?",
				},
			}}},
			{Word: "am", Rank: 5, Decomposition: []Decomp{
				{
					Pattern: `.*i am not (.*)`,
					Reassembly: []string{
						"Why are you not {0}?",
						"Would you like to be {0}?",
					},
				},
				{
					Pattern: `.*i am (.*)`,
					Reassembly: []string{
						"Why are you {0}?",
						"How long have you been {0}?",
						"Do you enjoy being {0}?",
					},
				},
			}},
			{Word: "feel", Rank: 5, Decomposition: []Decomp{{
				Pattern: `.*i feel (.*)`,
				Reassembly: []string{
					"Do you often feel {0}?",
					"What makes you feel {0}?",
					"Can you tell me more about feeling {0}?",
				},
			}}},
			{Word: "think", Rank: 5, Decomposition: []Decomp{{
				Pattern: `.*i think (.*)`,
				Reassembly: []string{
					"What makes you think {0}?",
					"Do you really think {0}?",
					"Can you elaborate on why you think {0}?",
				},
			}}},
			{Word: "want", Rank: 5, Decomposition: []Decomp{{
				Pattern: `.*i want (.*)`,
				Reassembly: []string{
					"Why do you want {0}?",
					"What would it mean to you if you had {0}?",
					"Tell me more about wanting {0}.",
				},
			}}},
			{Word: "need", Rank: 5, Decomposition: []Decomp{{
				Pattern: `.*i need (.*)`,
				Reassembly: []string{
					"Why do you need {0}?",
					"What would happen if you didn't have {0}?",
					"Tell me more about needing {0}.",
				},
			}}},
		},
		Synonyms: map[string][]string{
			"mother": {"mom", "mommy", "mama", "mum"},
			"father": {"dad", "daddy", "papa", "pop"},
		},
		Pre: []Transform{
			{"i'm", "i am"},
			{"you're", "you are"},
			{"it's", "it is"},
			{"that's", "that is"},
			{"i've", "i have"},
			{"i'll", "i will"},
			{"i'd", "i would"},
			{"don't", "do not"},
			{"doesn't", "does not"},
			{"didn't", "did not"},
			{"can't", "cannot"},
			{"cannot", "can not"},
			{"won't", "will not"},
			{"isn't", "is not"},
			{"aren't", "are not"},
			{"wasn't", "was not"},
		},
		Post: []Transform{
			{"am", "are"},
			{"is", "are"},
			{"was", "were"},
			{"i", "you"},
			{"my", "your"},
			{"myself", "yourself"},
			{"me", "you"},
			{"mine", "yours"},
		},
		Memory: &Keyword{
			Word: "my",
			Decomposition: []Decomp{{
				Pattern: `(.*)`,
				Reassembly: []string{
					"Earlier you said {0}.",
					"Let's talk further about {0}.",
					"Does that have anything to do with the fact that {0}?",
					"Why do you say {0}?",
				},
			}},
		},
		Defaults: []string{
			"I see.",
			"Tell me more.",
			"Go on.",
			"I understand.",
			"Can you elaborate on that?",
			"What does that suggest to you?",
			"How does that make you feel?",
		},
		Greetings: []string{
			"How do you do. Please tell me your problem.",
		},
		QuitWords: []string{"bye", "goodbye", "quit", "exit"},
	}
}
