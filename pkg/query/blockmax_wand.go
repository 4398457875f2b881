package query

import (
	"sort"

	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/topk"
)

// BlockMaxWAND layers block-level score bounds on top of WAND: before
// fully decoding and scoring the pivot document, it first checks whether
// the sum of each cursor's *current block* max score (tighter than the
// term-wide bound WAND uses) still exceeds the threshold. When it does
// not, every cursor can jump straight to the end of its current block
// without ever evaluating a single posting in it.
func BlockMaxWAND(cursors []*cursor.BlockMaxScored, k int) []topk.Entry {
	q := topk.New(k, 0)
	if len(cursors) == 0 {
		return q.Results()
	}
	for {
		sortByDocIDBM(cursors)
		if cursors[0].Empty() {
			break
		}

		threshold := q.Threshold()
		pivotIdx, ok := findPivotBM(cursors, threshold)
		if !ok {
			break
		}
		pivotDoc := cursors[pivotIdx].DocID()

		blockBound := blockBoundUpTo(cursors, pivotIdx, pivotDoc)
		if blockBound <= threshold {
			advancePastBlock(cursors, pivotIdx, pivotDoc)
			continue
		}

		if pivotDoc == cursors[0].DocID() {
			evaluateAtBM(cursors, pivotDoc, q)
			for _, c := range cursors {
				if !c.Empty() && c.DocID() == pivotDoc {
					c.Next()
				}
			}
		} else {
			cursors[0].NextGEQ(pivotDoc)
		}
	}
	return q.Results()
}

func sortByDocIDBM(cursors []*cursor.BlockMaxScored) {
	sort.Slice(cursors, func(i, j int) bool { return cursors[i].DocID() < cursors[j].DocID() })
}

func findPivotBM(cursors []*cursor.BlockMaxScored, threshold float32) (int, bool) {
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

// blockBoundUpTo sums the current-block max score for every cursor up to
// and including pivotIdx, after virtually seeking each to pivotDoc (a
// cursor positioned before pivotDoc still covers pivotDoc with its
// current block's upper bound as long as the block hasn't ended yet).
func blockBoundUpTo(cursors []*cursor.BlockMaxScored, pivotIdx int, pivotDoc uint32) float32 {
	var sum float32
	for i := 0; i <= pivotIdx; i++ {
		c := cursors[i]
		if c.Empty() {
			continue
		}
		sum += c.BlockMaxScore()
	}
	return sum
}

// advancePastBlock skips every cursor in [0, pivotIdx] whose current
// block ends before pivotDoc straight to the first posting past that
// block, avoiding per-posting decode/score work inside a block already
// known to be too weak.
func advancePastBlock(cursors []*cursor.BlockMaxScored, pivotIdx int, pivotDoc uint32) {
	next := pivotDoc
	for i := 0; i <= pivotIdx; i++ {
		c := cursors[i]
		if c.Empty() {
			continue
		}
		if last := c.BlockLastDocID(); last+1 > next {
			next = last + 1
		}
	}
	cursors[0].NextGEQ(next)
}

func evaluateAtBM(cursors []*cursor.BlockMaxScored, doc uint32, q *topk.Queue) {
	var score float32
	for _, c := range cursors {
		if !c.Empty() && c.DocID() == doc {
			score += c.Score()
		}
	}
	q.Insert(doc, score)
}
