// Package query implements the seven dynamic-pruning top-k query
// algorithms: Ranked-OR and Ranked-AND (exhaustive baselines), WAND,
// BlockMax-WAND, MaxScore, BlockMax-MaxScore, and TAAT (simple and lazy
// B-bit accumulator variants). Every algorithm is document-at-a-time
// except TAAT, which is term-at-a-time by construction.
//
// Grounded on pkg/qgram/wand.go's GeneratePrunedCandidates (the pivot-
// selection shape, generalized here from materialized docid slices to
// real cursors with Next/NextGEQ) and on
// original_source/include/pisa/query/algorithm/*.hpp for the WAND/
// MaxScore/BlockMax variants' exact pruning conditions.
package query

import (
	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/topk"
)

// RankedOr scores every document touched by any cursor (document-at-a-
// time union), the unpruned baseline every other algorithm's output must
// agree with (§8 cross-algorithm equivalence).
func RankedOr(cursors []*cursor.Scored, k int) []topk.Entry {
	q := topk.New(k, 0)
	for {
		pivot := minDocID(cursors)
		if pivot == cursor.ExhaustedDocID {
			break
		}
		var score float32
		for _, c := range cursors {
			if c.Empty() {
				continue
			}
			if c.DocID() == pivot {
				score += c.Score()
				c.Next()
			}
		}
		q.Insert(pivot, score)
	}
	return q.Results()
}

// RankedAnd scores only documents present in every cursor's list
// (document-at-a-time intersection).
func RankedAnd(cursors []*cursor.Scored, k int) []topk.Entry {
	q := topk.New(k, 0)
	if len(cursors) == 0 {
		return q.Results()
	}
	for {
		pivot := cursors[0].DocID()
		if pivot == cursor.ExhaustedDocID {
			break
		}
		matched := true
		for _, c := range cursors[1:] {
			c.NextGEQ(pivot)
			if c.DocID() != pivot {
				matched = false
				pivot = maxDocID(pivot, c.DocID())
				break
			}
		}
		if !matched {
			cursors[0].NextGEQ(pivot)
			continue
		}
		var score float32
		for _, c := range cursors {
			score += c.Score()
		}
		q.Insert(cursors[0].DocID(), score)
		cursors[0].Next()
	}
	return q.Results()
}

func minDocID(cursors []*cursor.Scored) uint32 {
	min := cursor.ExhaustedDocID
	for _, c := range cursors {
		if d := c.DocID(); d < min {
			min = d
		}
	}
	return min
}

func maxDocID(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
