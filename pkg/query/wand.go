package query

import (
	"sort"

	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/topk"
)

// WAND implements Broder et al.'s pruning algorithm: cursors are kept
// sorted by current docid, a pivot term is found where the cumulative sum
// of term-wide max scores first exceeds the current threshold, and only
// documents at or past that pivot are ever fully evaluated. Generalizes
// pkg/qgram/wand.go's GeneratePrunedCandidates — which sorts materialized
// PatternIterators and sums MaxScore up to the pivot — to real Next/
// NextGEQ cursor advancement instead of slice re-sorting per step, and to
// an actual top-k queue instead of an unsorted candidate list the caller
// must filter.
func WAND(cursors []*cursor.MaxScored, k int) []topk.Entry {
	q := topk.New(k, 0)
	if len(cursors) == 0 {
		return q.Results()
	}
	for {
		sortByDocID(cursors)
		if cursors[0].Empty() {
			break
		}

		threshold := q.Threshold()
		pivotIdx, ok := findPivot(cursors, threshold)
		if !ok {
			break
		}
		pivotDoc := cursors[pivotIdx].DocID()

		if pivotDoc == cursors[0].DocID() {
			evaluateAt(cursors, pivotDoc, q)
			for _, c := range cursors {
				if !c.Empty() && c.DocID() == pivotDoc {
					c.Next()
				}
			}
		} else {
			// Advance the cursor with the smallest current docid among
			// [0, pivotIdx) directly to the pivot — it cannot contribute
			// to any document before pivotDoc once max-score pruning has
			// ruled those documents out.
			cursors[0].NextGEQ(pivotDoc)
		}
	}
	return q.Results()
}

func sortByDocID(cursors []*cursor.MaxScored) {
	sort.Slice(cursors, func(i, j int) bool {
		return docIDOrLast(cursors[i]) < docIDOrLast(cursors[j])
	})
}

func docIDOrLast(c *cursor.MaxScored) uint32 {
	return c.DocID()
}

// findPivot returns the index of the first cursor (in current sorted
// order) at which the cumulative max-score sum exceeds threshold. If the
// sum across all cursors never exceeds it, no document can beat the
// threshold and the search is over.
func findPivot(cursors []*cursor.MaxScored, threshold float32) (int, bool) {
	var sum float32
	for i, c := range cursors {
		if c.Empty() {
			break
		}
		sum += c.MaxScore()
		if sum > threshold {
			return i, true
		}
	}
	return 0, false
}

func evaluateAt(cursors []*cursor.MaxScored, doc uint32, q *topk.Queue) {
	var score float32
	for _, c := range cursors {
		if !c.Empty() && c.DocID() == doc {
			score += c.Score()
		}
	}
	q.Insert(doc, score)
}
