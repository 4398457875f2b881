// Package topk implements the bounded top-k result queue every query
// algorithm in pkg/query drains into: a min-heap of at most k entries with
// a monotonically rising threshold (the score a new candidate must beat to
// be considered) and a fixed tie-break rule — on equal scores, the smaller
// docid wins.
package topk

import "container/heap"

// Entry is one candidate result.
type Entry struct {
	DocID uint32
	Score float32
}

// Queue is a bounded top-k priority queue. The zero value is not usable;
// construct with New.
type Queue struct {
	k    int
	h    entryHeap
	seed float32 // caller-seeded threshold, used before the heap fills
}

// New creates a Queue that will retain at most k results. seedThreshold
// lets a caller pre-seed the pruning threshold below which no candidate is
// even considered (0 disables seeding: every candidate is considered until
// the queue fills). A seeded threshold that is too aggressive can cause
// the query to finish with fewer than k results; neither Queue nor
// pkg/query detects or reports that case (pisaerr.ErrThresholdUnsatisfied
// is not returned by either), and every pkg/query algorithm seeds 0.
func New(k int, seedThreshold float32) *Queue {
	q := &Queue{k: k, seed: seedThreshold}
	q.h = make(entryHeap, 0, k)
	return q
}

// Threshold returns the current pruning threshold: the seeded floor while
// the queue has not filled, otherwise the score of the worst entry
// currently retained (a full queue's threshold rises monotonically as
// better candidates evict worse ones).
func (q *Queue) Threshold() float32 {
	if len(q.h) < q.k {
		return q.seed
	}
	return q.h[0].Score
}

// Full reports whether the queue holds k entries.
func (q *Queue) Full() bool { return len(q.h) >= q.k }

// Insert offers (docid, score) to the queue. It returns false without
// modifying the queue if score does not beat the current threshold. Once
// the queue is full, a candidate scoring exactly at the threshold is
// inserted only if its docid is smaller than that of the worst retained
// entry, which it then evicts (the smaller docid wins the tie); the
// threshold score never drops, so it still only rises. Returns true if
// the entry was retained.
func (q *Queue) Insert(docid uint32, score float32) bool {
	if q.k <= 0 {
		return false
	}
	if len(q.h) < q.k {
		if score < q.seed {
			return false
		}
		heap.Push(&q.h, Entry{DocID: docid, Score: score})
		return true
	}
	worst := q.h[0]
	if score < worst.Score || (score == worst.Score && docid >= worst.DocID) {
		return false
	}
	q.h[0] = Entry{DocID: docid, Score: score}
	heap.Fix(&q.h, 0)
	return true
}

// Len returns the number of entries currently retained.
func (q *Queue) Len() int { return len(q.h) }

// Results drains the queue into a slice sorted by descending score, with
// ties broken by ascending docid (smaller docid ranks first), and resets
// the queue to empty.
func (q *Queue) Results() []Entry {
	out := make([]Entry, len(q.h))
	copy(out, q.h)
	q.h = q.h[:0]
	sortResults(out)
	return out
}

func sortResults(entries []Entry) {
	// Small k (typically <= 1000): insertion sort is simple, stable, and
	// plenty fast; heap already did the expensive part.
	for i := 1; i < len(entries); i++ {
		e := entries[i]
		j := i - 1
		for j >= 0 && less(e, entries[j]) {
			entries[j+1] = entries[j]
			j--
		}
		entries[j+1] = e
	}
}

// less reports whether a should sort before b in final output order:
// higher score first, smaller docid breaks ties.
func less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.DocID < b.DocID
}

// entryHeap is a min-heap ordered so its root is always the entry that
// should be evicted first: lowest score, with ties broken toward evicting
// the larger docid (so that, between two equal-scoring retained entries,
// the smaller-docid one survives — consistent with Results' tie-break).
type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].DocID > h[j].DocID
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x interface{}) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
