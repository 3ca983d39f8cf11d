package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"parley/internal/engine"
	"parley/internal/transcript"
	"parley/internal/tui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Run:   runChat,
	}

	cmd.Flags().Bool("no-log", false, "Do not record the conversation in the transcript database")
	cmd.Flags().Int("memory", 0, "Memory queue capacity (0 = default)")

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	noLog, _ := cmd.Flags().GetBool("no-log")
	memCap, _ := cmd.Flags().GetInt("memory")

	scr := loadScript()
	var opts []engine.Option
	if memCap > 0 {
		opts = append(opts, engine.WithMemoryCapacity(memCap))
	}
	eng := engine.New(scr, opts...)

	var store *transcript.Store
	if !noLog {
		// Transcript problems never block a conversation.
		if s, err := openTranscript(); err == nil {
			store = s
			defer s.Close()
		} else {
			fmt.Fprintf(os.Stderr, "warning: transcript disabled: %v\n", err)
		}
	}

	if err := tui.Run(eng, scr, store, scriptName()); err != nil {
		exitErr("chat", err)
	}
}
