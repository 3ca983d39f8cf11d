// Package memory implements the short-term conversation memory: a bounded
// FIFO of transformed utterances, plus the grammatical adaptation applied
// when an entry is recalled into a response template.
package memory

import "strings"

// DefaultCapacity is the queue bound used when none is given.
const DefaultCapacity = 5

// Queue is a bounded FIFO of remembered statements. Oldest entries are
// evicted first when the bound is reached. A Queue belongs to a single
// conversation and is not safe for concurrent use.
type Queue struct {
	entries  []string
	capacity int
}

// NewQueue creates an empty queue holding at most capacity entries.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{capacity: capacity}
}

// Store appends an entry, evicting the oldest if the queue is full.
// Blank entries are ignored.
func (q *Queue) Store(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}
	q.entries = append(q.entries, entry)
	if len(q.entries) > q.capacity {
		q.entries = q.entries[1:]
	}
}

// Recall removes and returns the oldest entry. The second return value is
// false when the queue is empty.
func (q *Queue) Recall() (string, bool) {
	if len(q.entries) == 0 {
		return "", false
	}
	entry := q.entries[0]
	q.entries = q.entries[1:]
	return entry, true
}

// Peek returns the oldest entry without removing it.
func (q *Queue) Peek() (string, bool) {
	if len(q.entries) == 0 {
		return "", false
	}
	return q.entries[0], true
}

// Len returns the number of stored entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Cap returns the queue bound.
func (q *Queue) Cap() int {
	return q.capacity
}

// Clear discards all entries.
func (q *Queue) Clear() {
	q.entries = nil
}
