package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"parley/internal/script"
)

func init() {
	scriptCmd := &cobra.Command{
		Use:   "script",
		Short: "Inspect conversation scripts",
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a script for problems",
		Long:  "Load a script and report patterns that do not compile and links that point at unknown keywords.",
		Run:   runScriptValidate,
	}

	showCmd := &cobra.Command{
		Use:   "show [file]",
		Short: "List a script's keywords by rank",
		Run:   runScriptShow,
	}

	scriptCmd.AddCommand(validateCmd, showCmd)
	RootCmd.AddCommand(scriptCmd)
}

func loadScriptArg(args []string) *script.Script {
	if len(args) > 0 {
		s, err := script.Load(args[0])
		if err != nil {
			exitErr("load script", err)
		}
		return s
	}
	return loadScript()
}

func runScriptValidate(cmd *cobra.Command, args []string) {
	s := loadScriptArg(args)
	issues := s.Validate()

	if formatFlag == "text" {
		if len(issues) == 0 {
			fmt.Println("ok")
			return
		}
		for _, issue := range issues {
			fmt.Println(issue)
		}
		os.Exit(1)
	}

	b, _ := json.MarshalIndent(map[string]interface{}{
		"ok":     len(issues) == 0,
		"issues": issues,
	}, "", "  ")
	fmt.Println(string(b))
	if len(issues) > 0 {
		os.Exit(1)
	}
}

type keywordSummary struct {
	Word     string `json:"word"`
	Rank     int    `json:"rank"`
	Patterns int    `json:"patterns"`
}

func runScriptShow(cmd *cobra.Command, args []string) {
	s := loadScriptArg(args)

	summaries := make([]keywordSummary, 0, len(s.Keywords))
	for _, kw := range s.Keywords {
		summaries = append(summaries, keywordSummary{
			Word:     kw.Word,
			Rank:     kw.Rank,
			Patterns: len(kw.Decomposition),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Rank > summaries[j].Rank
	})

	if formatFlag == "text" {
		for _, k := range summaries {
			fmt.Printf("%3d  %-12s %d pattern(s)\n", k.Rank, k.Word, k.Patterns)
		}
		fmt.Printf("links: %d, synonyms: %d, defaults: %d\n",
			len(s.Links), len(s.Synonyms), len(s.Defaults))
		return
	}

	b, _ := json.MarshalIndent(summaries, "", "  ")
	fmt.Println(string(b))
}
