package index

import (
	"github.com/pisa-go/pisa/pkg/scorer"
	"github.com/pisa-go/pisa/pkg/wand"
)

// BuildWandData constructs block-max metadata for every term in ix using
// s to score postings. blockSize <= 0 selects wand.FixedBlockSize (B=64);
// a positive lambda instead switches to variable lambda-bounded blocks.
func (ix *Index) BuildWandData(s scorer.Scorer, blockSize int, lambda float32) *wand.Data {
	d := &wand.Data{Terms: make([]wand.TermData, len(ix.postings))}
	for t := range ix.postings {
		docids, freqs := ix.decodeTerm(t)
		sf := s.TermScorer(1, ix.TermStats(t), ix.DocLen)
		if lambda > 0 {
			d.Terms[t] = wand.BuildVariable(docids, sf, freqs, lambda)
		} else {
			d.Terms[t] = wand.BuildFixed(docids, sf, freqs, blockSize)
		}
	}
	return d
}
