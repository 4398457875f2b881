package cursor

import (
	"sort"

	"github.com/pisa-go/pisa/pkg/codec"
)

// BlockSize is the number of postings per on-disk frequency block, and per
// docid block for block (non-whole-list) codecs. Grounded on
// original_source's block_posting_list default block size; matches §4.2's
// "decode one block of N postings at a time" requirement.
const BlockSize = 128

// DocBlock is one entry of a term's docid block directory: the raw,
// still-compressed bytes for one block, the number of postings it holds,
// the last (absolute) docid in the block, and that block's starting
// position in the term's overall posting sequence. A whole-list codec
// (roaring, ef) stores its entire list as a single DocBlock spanning the
// whole term.
type DocBlock struct {
	Bytes     []byte
	Count     int
	LastDocID uint32
	StartPos  int
}

// FreqBlock is one entry of a term's frequency block directory. Unlike
// docids, frequencies are never whole-list encoded (they aren't a sorted
// set), so a term always has ceil(df/BlockSize) FreqBlocks regardless of
// which codec built its docids.
type FreqBlock struct {
	Bytes []byte
	Count int
}

// BlockCursor decodes a term's posting list lazily, one block at a time,
// directly out of the memory-mapped compressed bytes pkg/index hands it —
// no posting list is ever materialized in full. Grounded on §4.2 ("the
// currently decoded block buffer", "block index and cumulative docid
// base") and §5's mmap-resident-pages model.
type BlockCursor struct {
	docCodec     codec.Codec
	freqCodec    codec.Codec
	docWholeList bool
	docBlocks    []DocBlock
	freqBlocks   []FreqBlock
	lastDocIDs   []uint32

	size int
	pos  int

	cachedDocBlock int
	docVals        []uint32

	cachedFreqBlock int
	freqVals        []uint32
}

// NewBlock builds a BlockCursor over a term's compressed docid/freq block
// directories. size is the term's document frequency (total posting
// count).
func NewBlock(docCodec, freqCodec codec.Codec, docWholeList bool, docBlocks []DocBlock, freqBlocks []FreqBlock, size int) *BlockCursor {
	lastDocIDs := make([]uint32, len(docBlocks))
	for i, b := range docBlocks {
		lastDocIDs[i] = b.LastDocID
	}
	return &BlockCursor{
		docCodec:        docCodec,
		freqCodec:       freqCodec,
		docWholeList:    docWholeList,
		docBlocks:       docBlocks,
		freqBlocks:      freqBlocks,
		lastDocIDs:      lastDocIDs,
		size:            size,
		cachedDocBlock:  -1,
		cachedFreqBlock: -1,
	}
}

// mustDecode panics on a codec decode error: a block's bytes were already
// validated (length-checked, magic-checked) when the postings file was
// opened, so a decode failure here means the mapped bytes were corrupted
// after that — not a condition any caller can recover from mid-query.
func mustDecode(vals []uint32, _ int, err error) []uint32 {
	if err != nil {
		panic(err)
	}
	return vals
}

func (c *BlockCursor) ensureDocBlock(idx int) []uint32 {
	if c.cachedDocBlock == idx {
		return c.docVals
	}
	b := c.docBlocks[idx]
	vals := mustDecode(c.docCodec.Decode(b.Bytes, b.Count))
	if !c.docWholeList {
		var base uint32
		if idx > 0 {
			base = c.docBlocks[idx-1].LastDocID
		}
		acc := base
		for i, gap := range vals {
			acc += gap
			vals[i] = acc
		}
	}
	c.cachedDocBlock = idx
	c.docVals = vals
	return vals
}

func (c *BlockCursor) ensureFreqBlock(idx int) []uint32 {
	if c.cachedFreqBlock == idx {
		return c.freqVals
	}
	b := c.freqBlocks[idx]
	vals := mustDecode(c.freqCodec.Decode(b.Bytes, b.Count))
	c.cachedFreqBlock = idx
	c.freqVals = vals
	return vals
}

// docBlockIndexForPos finds the docid block covering posting position pos
// via binary search over block start offsets — the O(log #blocks) half of
// §4.2's skip cost.
func (c *BlockCursor) docBlockIndexForPos(pos int) int {
	lo, hi := 0, len(c.docBlocks)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if c.docBlocks[mid].StartPos <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// DocID implements PostingCursor.
func (c *BlockCursor) DocID() uint32 {
	if c.Empty() {
		return ExhaustedDocID
	}
	idx := c.docBlockIndexForPos(c.pos)
	vals := c.ensureDocBlock(idx)
	return vals[c.pos-c.docBlocks[idx].StartPos]
}

// Freq implements PostingCursor.
func (c *BlockCursor) Freq() uint32 {
	if c.Empty() {
		return 0
	}
	idx := c.pos / BlockSize
	vals := c.ensureFreqBlock(idx)
	return vals[c.pos%BlockSize]
}

// Next implements PostingCursor.
func (c *BlockCursor) Next() { c.pos++ }

// NextGEQ implements PostingCursor: skip whole blocks via the per-block
// last-docid index (sort.Search over lastDocIDs), then binary-search the
// decoded target block (sort.Search again) — O(log #blocks) +
// O(log blockSize) instead of a search over the whole materialized list.
func (c *BlockCursor) NextGEQ(target uint32) {
	if c.Empty() {
		return
	}
	if c.DocID() >= target {
		return
	}
	curBlock := c.docBlockIndexForPos(c.pos)
	rest := c.lastDocIDs[curBlock:]
	skip := sort.Search(len(rest), func(i int) bool { return rest[i] >= target })
	if skip == len(rest) {
		c.pos = c.size
		return
	}
	blockIdx := curBlock + skip
	vals := c.ensureDocBlock(blockIdx)
	start := c.docBlocks[blockIdx].StartPos

	within := 0
	if blockIdx == curBlock {
		within = c.pos - start
	}
	off := sort.Search(len(vals)-within, func(i int) bool { return vals[within+i] >= target })
	c.pos = start + within + off
}

// Size implements PostingCursor.
func (c *BlockCursor) Size() int { return c.size }

// Reset implements PostingCursor.
func (c *BlockCursor) Reset() { c.pos = 0 }

// Empty implements PostingCursor.
func (c *BlockCursor) Empty() bool { return c.pos >= c.size }
