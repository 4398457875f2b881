package query

import (
	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/topk"
)

// TAAT scores term-at-a-time into a full-width float accumulator array,
// then drains it into a top-k queue at the end — the simple accumulator,
// zeroed fresh for every query.
func TAAT(cursors []*cursor.Scored, numDocs int, k int) []topk.Entry {
	acc := make([]float32, numDocs)
	touched := make([]bool, numDocs)
	for _, c := range cursors {
		for !c.Empty() {
			d := c.DocID()
			acc[d] += c.Score()
			touched[d] = true
			c.Next()
		}
	}
	q := topk.New(k, 0)
	for d, t := range touched {
		if t {
			q.Insert(uint32(d), acc[d])
		}
	}
	return q.Results()
}

// TAATLazy scores term-at-a-time into a B-bit lazy accumulator (see
// LazyAccumulator), avoiding the O(numDocs) zeroing TAAT pays on every
// query by instead tagging each touched slot with the current query's
// generation number.
func TAATLazy(cursors []*cursor.Scored, acc *LazyAccumulator, k int) []topk.Entry {
	acc.BeginQuery()
	for _, c := range cursors {
		for !c.Empty() {
			acc.Accumulate(c.DocID(), c.Score())
			c.Next()
		}
	}
	q := topk.New(k, 0)
	acc.Aggregate(q)
	return q.Results()
}
