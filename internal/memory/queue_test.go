package memory

import "testing"

func TestStoreAndRecall(t *testing.T) {
	q := NewQueue(5)
	q.Store("test sentence")

	got, ok := q.Recall()
	if !ok {
		t.Fatal("expected a recalled entry")
	}
	if got != "test sentence" {
		t.Errorf("expected %q, got %q", "test sentence", got)
	}
}

func TestFIFOOrder(t *testing.T) {
	q := NewQueue(5)
	q.Store("first")
	q.Store("second")
	q.Store("third")

	for _, want := range []string{"first", "second", "third"} {
		got, ok := q.Recall()
		if !ok {
			t.Fatalf("expected entry %q, queue empty", want)
		}
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}

	if _, ok := q.Recall(); ok {
		t.Error("expected empty queue after three recalls")
	}
}

func TestCapacityEviction(t *testing.T) {
	q := NewQueue(3)
	for _, s := range []string{"one", "two", "three", "four"} {
		q.Store(s)
	}

	if q.Len() != 3 {
		t.Fatalf("expected len 3, got %d", q.Len())
	}
	// Oldest entry was evicted
	got, _ := q.Recall()
	if got != "two" {
		t.Errorf("expected oldest remaining entry %q, got %q", "two", got)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	q := NewQueue(5)
	q.Store("kept")

	if got, ok := q.Peek(); !ok || got != "kept" {
		t.Fatalf("peek: got %q, %v", got, ok)
	}
	if q.Len() != 1 {
		t.Errorf("peek consumed the entry")
	}
}

func TestBlankEntriesIgnored(t *testing.T) {
	q := NewQueue(5)
	q.Store("")
	q.Store("   ")
	if q.Len() != 0 {
		t.Errorf("expected blank entries to be ignored, len %d", q.Len())
	}
}

func TestClear(t *testing.T) {
	q := NewQueue(5)
	q.Store("a")
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("expected empty queue after clear, len %d", q.Len())
	}
}

func TestDefaultCapacity(t *testing.T) {
	q := NewQueue(0)
	if q.Cap() != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, q.Cap())
	}
}

func TestAdaptRecallGerund(t *testing.T) {
	got := AdaptRecall("Let's talk further about {0}.", "Your cat is fluffy.")
	if got != "your cat being fluffy" {
		t.Errorf("expected gerund form, got %q", got)
	}
}

func TestAdaptRecallGerundPronoun(t *testing.T) {
	got := AdaptRecall("You mentioned something about {0}.", "your mother hates me")
	if got != "your mother hating you" {
		t.Errorf("expected %q, got %q", "your mother hating you", got)
	}
}

func TestAdaptRecallWhyUnmodified(t *testing.T) {
	got := AdaptRecall("Why do you say {0}?", "Your cat is fluffy.")
	if got != "your cat is fluffy" {
		t.Errorf("expected unmodified entry, got %q", got)
	}
}

func TestAdaptRecallVerbTable(t *testing.T) {
	cases := map[string]string{
		"you feel sad":      "you feeling sad",
		"you thinks hard":   "you thinking hard",
		"you want a dog":    "you wanting a dog",
		"you needs help":    "you needing help",
		"you were alone":    "you being alone",
		"your dogs are old": "your dogs being old",
	}
	for in, want := range cases {
		if got := AdaptRecall("about {0}", in); got != want {
			t.Errorf("AdaptRecall(about, %q) = %q, want %q", in, got, want)
		}
	}
}
