package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"parley/internal/engine"
	"parley/internal/transcript"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask [utterance]",
		Short: "Get a single reply",
		Long:  "Generate one reply. The utterance can be a positional arg or piped via stdin.",
		Run:   runAsk,
	}

	cmd.Flags().String("session", "", "Append the exchange to an existing transcript session")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible replies (0 = random)")

	RootCmd.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, args []string) {
	sessionID, _ := cmd.Flags().GetString("session")
	seed, _ := cmd.Flags().GetInt64("seed")

	// Get the utterance: positional arg first, then check stdin
	var utterance string
	if len(args) > 0 {
		utterance = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			utterance = string(b)
		}
	}

	var opts []engine.Option
	if seed != 0 {
		opts = append(opts, engine.WithRand(rand.New(rand.NewSource(seed))))
	}
	eng := engine.New(loadScript(), opts...)
	reply := eng.Respond(utterance)

	if sessionID != "" {
		// Transcript problems never block a conversation.
		if err := appendExchange(cmd.Context(), sessionID, utterance, reply); err != nil {
			fmt.Fprintf(os.Stderr, "warning: transcript not recorded: %v\n", err)
		}
	}

	if formatFlag == "text" {
		fmt.Println(reply)
		return
	}
	b, _ := json.Marshal(map[string]string{"response": reply})
	fmt.Println(string(b))
}

// appendExchange records one ask exchange in an existing session.
func appendExchange(ctx context.Context, sessionID, utterance, reply string) error {
	s, err := openTranscript()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.SessionByID(ctx, sessionID); err != nil {
		return err
	}
	if _, err := s.Append(ctx, sessionID, transcript.RoleUser, utterance, ""); err != nil {
		return err
	}
	_, err = s.Append(ctx, sessionID, transcript.RoleBot, reply, "")
	return err
}
