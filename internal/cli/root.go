// Package cli implements the parley CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"parley/internal/script"
	"parley/internal/transcript"
)

var (
	scriptPath string
	dbPath     string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "parley",
	Short: "A rule-driven conversational responder",
	Long:  "A pattern-matching chat responder in the classic keyword/decomposition style. Scripts are YAML, conversations are logged to SQLite, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&scriptPath, "script", "s", "", "Script path (default: $PARLEY_SCRIPT or the embedded doctor script)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Transcript database path (default: $PARLEY_DB or ~/.parley/transcript.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func getScriptPath() string {
	if scriptPath != "" {
		return scriptPath
	}
	return os.Getenv("PARLEY_SCRIPT")
}

// loadScript never fails; a missing or malformed script degrades to the
// embedded default.
func loadScript() *script.Script {
	return script.LoadOrDefault(getScriptPath())
}

// scriptName labels transcript sessions with their script source.
func scriptName() string {
	if p := getScriptPath(); p != "" {
		return filepath.Base(p)
	}
	return "doctor"
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("PARLEY_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".parley", "transcript.db")
}

func openTranscript() (*transcript.Store, error) {
	return transcript.Open(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
