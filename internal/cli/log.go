package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parley/internal/transcript"
)

func init() {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Browse recorded conversations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Run:   runLogList,
	}
	listCmd.Flags().IntP("limit", "l", 20, "Max sessions")

	showCmd := &cobra.Command{
		Use:   "show [session-id]",
		Short: "Show a session's turns",
		Args:  cobra.ExactArgs(1),
		Run:   runLogShow,
	}
	showCmd.Flags().IntP("limit", "l", 0, "Only the most recent N turns (0 = all)")

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search turn text",
		Args:  cobra.MinimumNArgs(1),
		Run:   runLogSearch,
	}
	searchCmd.Flags().String("role", "", "Filter by role: user or bot")
	searchCmd.Flags().IntP("limit", "l", 20, "Max results")

	logCmd.AddCommand(listCmd, showCmd, searchCmd)
	RootCmd.AddCommand(logCmd)
}

func runLogList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openTranscript()
	if err != nil {
		exitErr("open transcript", err)
	}
	defer s.Close()

	sessions, err := s.Sessions(cmd.Context(), limit)
	if err != nil {
		exitErr("list", err)
	}

	if formatFlag == "text" {
		for _, sess := range sessions {
			fmt.Printf("%s  %s  %d turn(s)  %s\n",
				sess.ID, sess.StartedAt.Format("2006-01-02 15:04"), sess.TurnCount, sess.Script)
		}
		return
	}
	b, _ := json.MarshalIndent(sessions, "", "  ")
	fmt.Println(string(b))
}

func runLogShow(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openTranscript()
	if err != nil {
		exitErr("open transcript", err)
	}
	defer s.Close()

	if _, err := s.SessionByID(cmd.Context(), args[0]); err != nil {
		exitErr("show", err)
	}
	turns, err := s.Turns(cmd.Context(), args[0], limit)
	if err != nil {
		exitErr("show", err)
	}

	if formatFlag == "text" {
		for _, t := range turns {
			fmt.Printf("%4d %-4s %s\n", t.Seq, t.Role, t.Text)
		}
		return
	}
	b, _ := json.MarshalIndent(turns, "", "  ")
	fmt.Println(string(b))
}

func runLogSearch(cmd *cobra.Command, args []string) {
	role, _ := cmd.Flags().GetString("role")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openTranscript()
	if err != nil {
		exitErr("open transcript", err)
	}
	defer s.Close()

	turns, err := s.Search(cmd.Context(), transcript.SearchParams{
		Query: query,
		Role:  role,
		Limit: limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if len(turns) == 0 && formatFlag != "text" {
		fmt.Println("[]")
		return
	}

	if formatFlag == "text" {
		for _, t := range turns {
			fmt.Printf("%s %-4s %s\n", t.SessionID, t.Role, t.Text)
		}
		return
	}
	b, _ := json.MarshalIndent(turns, "", "  ")
	fmt.Println(string(b))
}
