// Package wand builds and serves the block-max metadata ("WandData") used
// by BlockMax-WAND and BlockMax-MaxScore: a term-wide score upper bound
// plus a table of (last docid, max score) per block. (Plain WAND and
// MaxScore take their term-wide bound from the scorer's MaxScore, see
// index.MaxScoredCursor.) Two block-construction policies are supported:
// fixed B=64-posting blocks (original_source's default) and variable
// blocks cut by a caller-supplied lambda score-drop rule (see
// BuildVariable).
package wand

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/pisa-go/pisa/pkg/cursor"
)

// FixedBlockSize is the default fixed block-max block size (B=64),
// matching original_source's wand_data block shape.
const FixedBlockSize = 64

// Block is one block-max table entry.
type Block struct {
	LastDocID uint32
	MaxScore  float32
}

// TermData is one term's complete WandData entry: the term-wide score
// upper bound plus its block table (empty for a plain, non-block-max
// term).
type TermData struct {
	MaxScore float32
	Blocks   []Block
}

// Data is the WandData for an entire index: one TermData per term, in
// term-id order.
type Data struct {
	Terms []TermData
}

// BuildFixed constructs a TermData using fixed-size blocks of blockSize
// postings (original_source's default construction, B=64).
func BuildFixed(docids []uint32, score cursor.ScoreFunc, freqs []uint32, blockSize int) TermData {
	if blockSize <= 0 {
		blockSize = FixedBlockSize
	}
	var td TermData
	for start := 0; start < len(docids); start += blockSize {
		end := start + blockSize
		if end > len(docids) {
			end = len(docids)
		}
		max := blockMax(docids[start:end], freqs[start:end], score)
		td.Blocks = append(td.Blocks, Block{LastDocID: docids[end-1], MaxScore: max})
		if max > td.MaxScore {
			td.MaxScore = max
		}
	}
	return td
}

// BuildVariable constructs a TermData with variable-sized blocks: a block
// is closed at the first posting whose score falls more than lambda below
// the highest score seen so far in that block, and that posting is the
// block's last; the final posting always closes a block. Only such a drop
// cuts a block, so the scores inside one block can span more than lambda
// (a posting that raises the block's maximum, and the posting that
// triggers the cut, both stay in the block). A bitset records the
// position of each block's last posting as the block is cut.
func BuildVariable(docids []uint32, score cursor.ScoreFunc, freqs []uint32, lambda float32) TermData {
	if len(docids) == 0 {
		return TermData{}
	}
	boundary := bitset.New(uint(len(docids)))

	var td TermData
	blockStart := 0
	blockMaxSoFar := float32(0)
	for i := range docids {
		s := score(docids[i], freqs[i])
		if s > blockMaxSoFar {
			blockMaxSoFar = s
		}
		cut := i == len(docids)-1
		if !cut && s < blockMaxSoFar-lambda {
			cut = true
		}
		if cut {
			boundary.Set(uint(i))
			td.Blocks = append(td.Blocks, Block{LastDocID: docids[i], MaxScore: blockMaxSoFar})
			if blockMaxSoFar > td.MaxScore {
				td.MaxScore = blockMaxSoFar
			}
			blockStart = i + 1
			blockMaxSoFar = 0
		}
	}
	_ = blockStart
	return td
}

func blockMax(docids, freqs []uint32, score cursor.ScoreFunc) float32 {
	var max float32
	for i := range docids {
		s := score(docids[i], freqs[i])
		if s > max {
			max = s
		}
	}
	return max
}

// Lookup adapts a TermData into the cursor.BlockMaxLookup interface,
// resolved by linear scan of the (typically small, O(size/64)) block
// table — acceptable because block lookups happen once per pivot
// candidate, not once per posting.
type Lookup struct {
	td *TermData
}

// NewLookup wraps td for use by a cursor.BlockMaxScored.
func NewLookup(td *TermData) *Lookup { return &Lookup{td: td} }

func (l *Lookup) blockFor(docid uint32) int {
	for i, b := range l.td.Blocks {
		if docid <= b.LastDocID {
			return i
		}
	}
	return len(l.td.Blocks) - 1
}

// BlockMaxScore implements cursor.BlockMaxLookup.
func (l *Lookup) BlockMaxScore(docid uint32) float32 {
	if len(l.td.Blocks) == 0 {
		return l.td.MaxScore
	}
	return l.td.Blocks[l.blockFor(docid)].MaxScore
}

// BlockLastDocID implements cursor.BlockMaxLookup.
func (l *Lookup) BlockLastDocID(docid uint32) uint32 {
	if len(l.td.Blocks) == 0 {
		return cursor.ExhaustedDocID
	}
	return l.td.Blocks[l.blockFor(docid)].LastDocID
}
