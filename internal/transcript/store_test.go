package transcript

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "transcript.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStartAndEndSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.StartSession(ctx, "doctor")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected a session ID")
	}
	if sess.Script != "doctor" {
		t.Errorf("expected script name recorded, got %q", sess.Script)
	}

	got, err := s.SessionByID(ctx, sess.ID)
	if err != nil {
		t.Fatalf("SessionByID: %v", err)
	}
	if got.EndedAt != nil {
		t.Error("expected open session")
	}

	if err := s.EndSession(ctx, sess.ID); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	got, err = s.SessionByID(ctx, sess.ID)
	if err != nil {
		t.Fatalf("SessionByID after end: %v", err)
	}
	if got.EndedAt == nil {
		t.Error("expected ended_at set")
	}
}

func TestSessionByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SessionByID(context.Background(), "nope"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestAppendAssignsSequence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.StartSession(ctx, "doctor")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	first, err := s.Append(ctx, sess.ID, RoleUser, "hello", "hello")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	second, err := s.Append(ctx, sess.ID, RoleBot, "Hello. How are you feeling today?", "")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if first.Seq != 1 || second.Seq != 2 {
		t.Errorf("expected seq 1 and 2, got %d and %d", first.Seq, second.Seq)
	}
	if first.Keyword != "hello" {
		t.Errorf("expected keyword recorded, got %q", first.Keyword)
	}
	if second.Keyword != "" {
		t.Errorf("expected empty keyword, got %q", second.Keyword)
	}
}

func TestTurnsOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, _ := s.StartSession(ctx, "doctor")
	texts := []string{"one", "two", "three", "four", "five"}
	for _, txt := range texts {
		if _, err := s.Append(ctx, sess.ID, RoleUser, txt, ""); err != nil {
			t.Fatalf("Append(%q): %v", txt, err)
		}
	}

	all, err := s.Turns(ctx, sess.ID, 0)
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(all) != len(texts) {
		t.Fatalf("expected %d turns, got %d", len(texts), len(all))
	}
	for i, turn := range all {
		if turn.Text != texts[i] {
			t.Errorf("turn %d: expected %q, got %q", i, texts[i], turn.Text)
		}
		if turn.Seq != i+1 {
			t.Errorf("turn %d: expected seq %d, got %d", i, i+1, turn.Seq)
		}
	}

	// A limit keeps the most recent turns, still in ascending order.
	tail, err := s.Turns(ctx, sess.ID, 2)
	if err != nil {
		t.Fatalf("Turns with limit: %v", err)
	}
	if len(tail) != 2 || tail[0].Text != "four" || tail[1].Text != "five" {
		t.Errorf("expected the last two turns in order, got %+v", tail)
	}
}

func TestSessionsListsWithTurnCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.StartSession(ctx, "doctor")
	b, _ := s.StartSession(ctx, "custom")
	s.Append(ctx, a.ID, RoleUser, "hello", "")
	s.Append(ctx, a.ID, RoleBot, "Hello there.", "")
	s.Append(ctx, b.ID, RoleUser, "hi", "")

	sessions, err := s.Sessions(ctx, 10)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	counts := map[string]int{}
	for _, sess := range sessions {
		counts[sess.ID] = sess.TurnCount
	}
	if counts[a.ID] != 2 {
		t.Errorf("expected 2 turns in first session, got %d", counts[a.ID])
	}
	if counts[b.ID] != 1 {
		t.Errorf("expected 1 turn in second session, got %d", counts[b.ID])
	}
}

func TestSearchFindsTurnText(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, _ := s.StartSession(ctx, "doctor")
	s.Append(ctx, sess.ID, RoleUser, "my cat is fluffy", "my")
	s.Append(ctx, sess.ID, RoleBot, "Tell me more about your cat.", "")
	s.Append(ctx, sess.ID, RoleUser, "the weather is nice", "")

	got, err := s.Search(ctx, SearchParams{Query: "cat"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	userOnly, err := s.Search(ctx, SearchParams{Query: "cat", Role: RoleUser})
	if err != nil {
		t.Fatalf("Search with role: %v", err)
	}
	if len(userOnly) != 1 || userOnly[0].Text != "my cat is fluffy" {
		t.Errorf("expected the user turn only, got %+v", userOnly)
	}

	none, err := s.Search(ctx, SearchParams{Query: "zeppelin"})
	if err != nil {
		t.Fatalf("Search no match: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestSearchSanitizesQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, _ := s.StartSession(ctx, "doctor")
	s.Append(ctx, sess.ID, RoleUser, "plain words here", "")

	// Quote characters and operators must not break the query.
	if _, err := s.Search(ctx, SearchParams{Query: `"unbalanced AND (NOT`}); err != nil {
		t.Errorf("expected sanitized query to run, got %v", err)
	}
}

func TestFTSQueryQuoting(t *testing.T) {
	if got := ftsQuery(`cat dog`); got != `"cat" "dog"` {
		t.Errorf("got %q", got)
	}
	if got := ftsQuery(`say "hi"`); got != `"say" "hi"` {
		t.Errorf("got %q", got)
	}
}
