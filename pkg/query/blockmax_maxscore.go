package query

import (
	"sort"

	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/topk"
)

// BlockMaxMaxScore is MaxScore with BlockMaxWAND's block-level bound check
// spliced in: before scoring a candidate against the essential cursors,
// it first checks whether the essential cursors' current-block bound
// (tighter than their term-wide MaxScore) plus the non-essential upper
// bound can still beat the threshold; if not, the essential cursors with
// the nearest block end are jumped forward without ever being scored.
func BlockMaxMaxScore(cursors []*cursor.BlockMaxScored, k int) []topk.Entry {
	q := topk.New(k, 0)
	if len(cursors) == 0 {
		return q.Results()
	}
	sort.Slice(cursors, func(i, j int) bool { return cursors[i].MaxScore() < cursors[j].MaxScore() })

	suffixSum := make([]float32, len(cursors)+1)
	for i := len(cursors) - 1; i >= 0; i-- {
		suffixSum[i] = suffixSum[i+1] + cursors[i].MaxScore()
	}

	for {
		threshold := q.Threshold()
		essStart := essentialStartBM(cursors, suffixSum, threshold)

		pivot := minDocIDRangeBM(cursors, essStart)
		if pivot == cursor.ExhaustedDocID {
			break
		}

		remaining := suffixSum[0] - suffixSum[essStart]

		var blockBound float32
		for i := essStart; i < len(cursors); i++ {
			c := cursors[i]
			if !c.Empty() {
				blockBound += c.BlockMaxScore()
			}
		}
		if blockBound+remaining <= threshold {
			next := pivot
			for i := essStart; i < len(cursors); i++ {
				c := cursors[i]
				if c.Empty() {
					continue
				}
				if last := c.BlockLastDocID(); last+1 > next {
					next = last + 1
				}
			}
			for i := essStart; i < len(cursors); i++ {
				cursors[i].NextGEQ(next)
			}
			continue
		}

		var score float32
		for i := essStart; i < len(cursors); i++ {
			c := cursors[i]
			if !c.Empty() && c.DocID() == pivot {
				score += c.Score()
			}
		}

		if score+remaining > threshold {
			for i := essStart - 1; i >= 0; i-- {
				c := cursors[i]
				c.NextGEQ(pivot)
				if !c.Empty() && c.DocID() == pivot {
					score += c.Score()
				}
				remaining -= c.MaxScore()
				if score+remaining <= threshold {
					break
				}
			}
			q.Insert(pivot, score)
		}

		for i := essStart; i < len(cursors); i++ {
			c := cursors[i]
			if !c.Empty() && c.DocID() == pivot {
				c.Next()
			}
		}
	}
	return q.Results()
}

func essentialStartBM(cursors []*cursor.BlockMaxScored, suffixSum []float32, threshold float32) int {
	for i := 0; i < len(cursors); i++ {
		if suffixSum[i] > threshold {
			return i
		}
	}
	return len(cursors)
}

func minDocIDRangeBM(cursors []*cursor.BlockMaxScored, start int) uint32 {
	min := cursor.ExhaustedDocID
	for i := start; i < len(cursors); i++ {
		if d := cursors[i].DocID(); d < min {
			min = d
		}
	}
	return min
}
