package cursor

import "github.com/RoaringBitmap/roaring/v2"

// NewFromRoaring builds a Cursor over a roaring-encoded posting list,
// materializing the bitmap's docids into the same sorted-slice shape every
// other Cursor uses. Frequencies for a roaring-encoded list are carried
// separately (roaring only ever stores docid sets, per
// pkg/qgram/compressed_postings.go's CompressedGramPostings), so callers
// pass the parallel freqs decoded from the accompanying .freqs record.
func NewFromRoaring(bm *roaring.Bitmap, freqs []uint32) *Cursor {
	docids := bm.ToArray()
	return New(docids, freqs)
}
