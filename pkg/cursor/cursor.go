// Package cursor implements the posting-list cursor abstraction: docid,
// freq, next, next_geq, size, plus the scored/max-scored/block-max-scored
// layers the query algorithms pile on top. Two concrete cursors satisfy
// PostingCursor: Cursor, a plain in-memory sorted-slice cursor grounded on
// pkg/qgram/posting_list.go's SlicePostings/sliceIter (binary-search Seek
// over an already-decoded slice), and BlockCursor, which decodes
// compressed postings lazily one block at a time straight from mapped
// bytes, grounded on original_source/include/pisa/cursor/{scored_cursor,
// max_scored_cursor,block_max_scored_cursor}.hpp's layering and §4.2's
// block-buffer/block-skip design.
package cursor

import "sort"

// ExhaustedDocID marks a cursor past its last element. It is the largest
// uint32, greater than every valid docid; it is not the collection's
// document count.
const ExhaustedDocID = ^uint32(0)

// PostingCursor is the shape every posting-list cursor implements,
// whether it iterates a fully in-memory slice (*Cursor) or decodes
// compressed blocks lazily from mapped bytes (*BlockCursor). pkg/cursor's
// Scored/MaxScored/BlockMaxScored layers are built against this interface
// so either cursor kind can sit underneath them.
type PostingCursor interface {
	DocID() uint32
	Freq() uint32
	Next()
	NextGEQ(target uint32)
	Size() int
	Reset()
	Empty() bool
}

// Cursor iterates the decoded (docid, freq) pairs of one term's posting
// list in increasing docid order. A cursor is never copied by value: every
// holder stores and passes *Cursor, structurally standing in for the
// non-copyable cursor semantics of the original C++ cursors.
type Cursor struct {
	docids []uint32
	freqs  []uint32
	pos    int
}

// New builds a Cursor over already-decoded, delta-free (absolute) sorted
// docids and their parallel frequencies.
func New(docids, freqs []uint32) *Cursor {
	return &Cursor{docids: docids, freqs: freqs}
}

// DocID returns the current document id, or ExhaustedDocID if the cursor
// has advanced past the end of the list.
func (c *Cursor) DocID() uint32 {
	if c.pos >= len(c.docids) {
		return ExhaustedDocID
	}
	return c.docids[c.pos]
}

// Freq returns the term frequency at the current position.
func (c *Cursor) Freq() uint32 {
	if c.pos >= len(c.freqs) {
		return 0
	}
	return c.freqs[c.pos]
}

// Next advances to the next posting.
func (c *Cursor) Next() {
	c.pos++
}

// NextGEQ advances the cursor to the first docid >= target. Postcondition:
// DocID() >= target, or DocID() == ExhaustedDocID if no such posting
// exists. NextGEQ never moves backward: seeking to a target <= the current
// docid is a no-op, matching the monotonic-cursor invariant every query
// algorithm in pkg/query relies on.
func (c *Cursor) NextGEQ(target uint32) {
	if c.pos < len(c.docids) && c.docids[c.pos] >= target {
		return
	}
	// Binary search the remaining suffix, the same sort.Search-based Seek
	// shape as qgram's SlicePostings.
	rest := c.docids[c.pos:]
	idx := sort.Search(len(rest), func(i int) bool { return rest[i] >= target })
	c.pos += idx
}

// Size returns the total number of postings in the list, independent of
// cursor position.
func (c *Cursor) Size() int { return len(c.docids) }

// Reset rewinds the cursor to its first posting.
func (c *Cursor) Reset() { c.pos = 0 }

// Empty reports whether the cursor is exhausted.
func (c *Cursor) Empty() bool { return c.pos >= len(c.docids) }
