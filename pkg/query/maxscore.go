package query

import (
	"sort"

	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/topk"
)

// MaxScore partitions cursors, sorted by ascending term-wide max score,
// into a non-essential prefix and an essential suffix: the essential
// suffix is the shortest one whose max-score sum still exceeds the
// current threshold, so any document scoring above threshold must get a
// contribution from at least one essential term. Essential cursors are
// unioned document-at-a-time to generate candidates; non-essential
// cursors are only ever sought to (never unioned), and only when the
// candidate's partial score plus the remaining non-essential upper bound
// could still beat the threshold.
func MaxScore(cursors []*cursor.MaxScored, k int) []topk.Entry {
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
		essStart := essentialStart(cursors, suffixSum, threshold)

		pivot := minDocIDRange(cursors, essStart)
		if pivot == cursor.ExhaustedDocID {
			break
		}

		var score float32
		for i := essStart; i < len(cursors); i++ {
			c := cursors[i]
			if !c.Empty() && c.DocID() == pivot {
				score += c.Score()
			}
		}

		remaining := suffixSum[0] - suffixSum[essStart]
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

// essentialStart returns the smallest index i such that the max-score sum
// of cursors[i:] exceeds threshold — the start of the essential suffix.
func essentialStart(cursors []*cursor.MaxScored, suffixSum []float32, threshold float32) int {
	for i := 0; i < len(cursors); i++ {
		if suffixSum[i] > threshold {
			return i
		}
	}
	return len(cursors)
}

func minDocIDRange(cursors []*cursor.MaxScored, start int) uint32 {
	min := cursor.ExhaustedDocID
	for i := start; i < len(cursors); i++ {
		if d := cursors[i].DocID(); d < min {
			min = d
		}
	}
	return min
}
