// Package index assembles the compiled, queryable retrieval index: the
// compressed per-term docid/freq postings (built by the compress step from
// the inverted file cmd/invert writes, see build.ReadInverted), the per-document
// length table, and the WandData block-max metadata. Index.Open
// memory-maps the on-disk files via pkg/binfmt.Source so postings are
// decoded directly out of resident pages, lazily and one block at a time
// (pkg/cursor.BlockCursor) rather than staged into memory up front.
package index

import (
	"encoding/binary"
	"fmt"

	"github.com/pisa-go/pisa/pkg/binfmt"
	"github.com/pisa-go/pisa/pkg/codec"
	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/pisaerr"
	"github.com/pisa-go/pisa/pkg/scorer"
	"github.com/pisa-go/pisa/pkg/wand"
)

// Index is a read-only, memory-mapped handle onto one compiled collection.
type Index struct {
	docsSrc  binfmt.Source
	postings []termRecord

	docCodec     codec.Codec
	freqCodec    codec.Codec
	docWholeList bool
	codecName    string

	sizesSrc  binfmt.Source
	docLens   []uint32
	numDocs   int
	avgDocLen float64

	wandData *wand.Data // nil if the .wand file wasn't loaded
}

// termRecord holds one term's posting list as undecoded block directories
// into the memory-mapped postings bytes, plus the small set of scalar
// stats (df, totalFreq, maxFreq) cheap enough to precompute once at build
// time instead of scanning the decoded freq stream on every MaxTF call.
type termRecord struct {
	df         int
	totalFreq  uint64
	maxFreq    uint32
	docBlocks  []cursor.DocBlock
	freqBlocks []cursor.FreqBlock
}

// Options configures Open.
type Options struct {
	// WandPath, if non-empty, loads block-max metadata alongside the
	// postings so callers can build MaxScored/BlockMaxScored cursors.
	WandPath string
}

// Open memory-maps basename+".docs" (the compressed postings, produced by
// cmd/compress) and basename+".sizes" (document lengths), and optionally
// basename+".wand".
func Open(basename string, opts Options) (*Index, error) {
	docsSrc, err := binfmt.OpenFile(basename + ".docs")
	if err != nil {
		return nil, err
	}
	sizesSrc, err := binfmt.OpenFile(basename + ".sizes")
	if err != nil {
		docsSrc.Close()
		return nil, err
	}

	ix, err := decodePostingsFile(docsSrc)
	if err != nil {
		docsSrc.Close()
		sizesSrc.Close()
		return nil, err
	}
	ix.docsSrc = docsSrc
	ix.sizesSrc = sizesSrc

	sizesBC, err := binfmt.OpenBinaryCollection(sizesSrc)
	if err != nil {
		ix.Close()
		return nil, err
	}
	if sizesBC.Len() > 0 {
		ix.docLens = sizesBC.Sequence(0)
		ix.numDocs = len(ix.docLens)
		var sum uint64
		for _, l := range ix.docLens {
			sum += uint64(l)
		}
		if ix.numDocs > 0 {
			ix.avgDocLen = float64(sum) / float64(ix.numDocs)
		}
	}

	if opts.WandPath != "" {
		wandSrc, err := binfmt.OpenFile(opts.WandPath)
		if err != nil {
			ix.Close()
			return nil, err
		}
		defer wandSrc.Close()
		wd, err := wand.DecodeFile(wandSrc.Bytes())
		if err != nil {
			ix.Close()
			return nil, err
		}
		ix.wandData = wd
	}

	return ix, nil
}

// Close releases the underlying memory maps.
func (ix *Index) Close() error {
	var firstErr error
	if ix.docsSrc != nil {
		if err := ix.docsSrc.Close(); err != nil {
			firstErr = err
		}
	}
	if ix.sizesSrc != nil {
		if err := ix.sizesSrc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NumDocs returns the collection's document count.
func (ix *Index) NumDocs() int { return ix.numDocs }

// NumTerms returns the number of terms (posting lists) in the index.
func (ix *Index) NumTerms() int { return len(ix.postings) }

// AvgDocLen returns the collection's average document length.
func (ix *Index) AvgDocLen() float64 { return ix.avgDocLen }

// DocLen returns docid's length in tokens.
func (ix *Index) DocLen(docid uint32) uint32 {
	if int(docid) >= len(ix.docLens) {
		return 0
	}
	return ix.docLens[docid]
}

// TermStats returns the collection statistics scorer.Scorer needs for
// term-id t.
func (ix *Index) TermStats(t int) scorer.TermStats {
	r := ix.postings[t]
	return scorer.TermStats{
		DocFreq:       uint64(r.df),
		TotalDocs:     uint64(ix.numDocs),
		TotalTermFreq: r.totalFreq,
		AvgDocLen:     ix.avgDocLen,
	}
}

// MaxTF returns the largest single-document frequency recorded for term t,
// used by pkg/wand to build the term's score upper bound. Precomputed at
// build time and stored in the postings file header, so this never
// touches the (possibly still-compressed) freq blocks.
func (ix *Index) MaxTF(t int) uint32 { return ix.postings[t].maxFreq }

// Cursor returns a plain, unscored cursor over term t's postings,
// decoding blocks lazily on demand rather than materializing the list.
func (ix *Index) Cursor(t int) cursor.PostingCursor {
	r := ix.postings[t]
	return cursor.NewBlock(ix.docCodec, ix.freqCodec, ix.docWholeList, r.docBlocks, r.freqBlocks, r.df)
}

// decodeTerm fully decodes term t's postings, for offline/build-time
// consumers (pkg/index/wandbuild.go) that need the whole list at once;
// the hot query path always goes through Cursor instead.
func (ix *Index) decodeTerm(t int) (docids, freqs []uint32) {
	c := ix.Cursor(t)
	docids = make([]uint32, 0, ix.postings[t].df)
	freqs = make([]uint32, 0, ix.postings[t].df)
	for !c.Empty() {
		docids = append(docids, c.DocID())
		freqs = append(freqs, c.Freq())
		c.Next()
	}
	return docids, freqs
}

// ScoredCursor wraps term t's postings with s's scoring formula.
func (ix *Index) ScoredCursor(t int, s scorer.Scorer, queryWeight float32) *cursor.Scored {
	sf := s.TermScorer(queryWeight, ix.TermStats(t), ix.DocLen)
	return cursor.NewScored(ix.Cursor(t), sf)
}

// MaxScoredCursor additionally attaches a term-wide score upper bound,
// computed from s and the term's recorded max frequency.
func (ix *Index) MaxScoredCursor(t int, s scorer.Scorer, queryWeight float32) *cursor.MaxScored {
	sc := ix.ScoredCursor(t, s, queryWeight)
	max := s.MaxScore(queryWeight, ix.TermStats(t), ix.MaxTF(t))
	return cursor.NewMaxScored(sc, max)
}

// BlockMaxScoredCursor additionally attaches per-block score upper bounds
// from the loaded WandData. It returns an error if Open was not given a
// WandPath.
func (ix *Index) BlockMaxScoredCursor(t int, s scorer.Scorer, queryWeight float32) (*cursor.BlockMaxScored, error) {
	if ix.wandData == nil {
		return nil, pisaerr.Format("block max cursor", fmt.Errorf("no wand data loaded"))
	}
	m := ix.MaxScoredCursor(t, s, queryWeight)
	lk := wand.NewLookup(&ix.wandData.Terms[t])
	return cursor.NewBlockMaxScored(m, lk), nil
}

// --- compressed postings file layout ---
//
// [u32 magic "PIDX"][1 byte docCodec name len][docCodec name]
// [1 byte freqCodec name len][freqCodec name]
// [u32 numTerms]
// repeated numTerms times:
//   [u32 df][u64 totalFreq][u32 maxFreq]
//   [u32 numDocBlocks] repeated: [u32 count][u32 lastDocID][u32 byteLen][byteLen bytes]
//   [u32 numFreqBlocks] repeated: [u32 count][u32 byteLen][byteLen bytes]
//
// A whole-list docCodec (roaring, ef) always produces exactly one doc
// block spanning the entire term; a block codec (varint, simdbp) produces
// ceil(df/cursor.BlockSize) doc blocks, each delta-gapped relative to the
// previous block's last absolute docid (0 for the first block).
// Frequency blocks are always chunked at cursor.BlockSize regardless of
// docCodec, since frequencies are never a valid whole-list input.

var postingsMagic = [4]byte{'P', 'I', 'D', 'X'}

// BuildPostingsFile serializes terms (one entry per term, in term-id
// order, absolute sorted docids with parallel freqs) using the named
// codec for docids. Frequencies use the same codec unless it is a
// whole-list codec, in which case they fall back to "varint" — a
// whole-list codec is built for a sorted set of distinct values, and a
// frequency stream is neither sorted nor distinct.
func BuildPostingsFile(terms [][2][]uint32, codecName string) ([]byte, error) {
	docCodec, err := codec.Get(codecName)
	if err != nil {
		return nil, err
	}
	freqCodecName := codecName
	if docCodec.WholeList() {
		freqCodecName = "varint"
	}
	freqCodec, err := codec.Get(freqCodecName)
	if err != nil {
		return nil, err
	}

	var buf []byte
	buf = append(buf, postingsMagic[:]...)
	buf = append(buf, byte(len(codecName)))
	buf = append(buf, codecName...)
	buf = append(buf, byte(len(freqCodecName)))
	buf = append(buf, freqCodecName...)
	buf = appendU32Local(buf, uint32(len(terms)))

	for _, t := range terms {
		docids, freqs := t[0], t[1]
		var totalFreq uint64
		var maxFreq uint32
		for _, f := range freqs {
			totalFreq += uint64(f)
			if f > maxFreq {
				maxFreq = f
			}
		}

		buf = appendU32Local(buf, uint32(len(docids)))
		buf = appendU64Local(buf, totalFreq)
		buf = appendU32Local(buf, maxFreq)

		docBlocks := buildDocBlocks(docids, docCodec)
		buf = appendU32Local(buf, uint32(len(docBlocks)))
		for _, blk := range docBlocks {
			buf = appendU32Local(buf, uint32(blk.count))
			buf = appendU32Local(buf, blk.lastDocID)
			buf = appendU32Local(buf, uint32(len(blk.bytes)))
			buf = append(buf, blk.bytes...)
		}

		freqBlocks := buildFreqBlocks(freqs, freqCodec)
		buf = appendU32Local(buf, uint32(len(freqBlocks)))
		for _, blk := range freqBlocks {
			buf = appendU32Local(buf, uint32(blk.count))
			buf = appendU32Local(buf, uint32(len(blk.bytes)))
			buf = append(buf, blk.bytes...)
		}
	}
	return buf, nil
}

type builtBlock struct {
	count     int
	lastDocID uint32
	bytes     []byte
}

func buildDocBlocks(docids []uint32, c codec.Codec) []builtBlock {
	if len(docids) == 0 {
		return nil
	}
	if c.WholeList() {
		return []builtBlock{{
			count:     len(docids),
			lastDocID: docids[len(docids)-1],
			bytes:     c.Encode(nil, docids),
		}}
	}
	var blocks []builtBlock
	base := uint32(0)
	for start := 0; start < len(docids); start += cursor.BlockSize {
		end := start + cursor.BlockSize
		if end > len(docids) {
			end = len(docids)
		}
		chunk := docids[start:end]
		gaps := make([]uint32, len(chunk))
		prev := base
		for i, d := range chunk {
			gaps[i] = d - prev
			prev = d
		}
		blocks = append(blocks, builtBlock{
			count:     len(chunk),
			lastDocID: chunk[len(chunk)-1],
			bytes:     c.Encode(nil, gaps),
		})
		base = chunk[len(chunk)-1]
	}
	return blocks
}

func buildFreqBlocks(freqs []uint32, c codec.Codec) []builtBlock {
	var blocks []builtBlock
	for start := 0; start < len(freqs); start += cursor.BlockSize {
		end := start + cursor.BlockSize
		if end > len(freqs) {
			end = len(freqs)
		}
		chunk := freqs[start:end]
		blocks = append(blocks, builtBlock{count: len(chunk), bytes: c.Encode(nil, chunk)})
	}
	return blocks
}

func decodePostingsFile(src binfmt.Source) (*Index, error) {
	buf := src.Bytes()
	if err := binfmt.Require(buf, 5, "postings file header"); err != nil {
		return nil, err
	}
	if [4]byte(buf[:4]) != postingsMagic {
		return nil, pisaerr.Format("postings file", fmt.Errorf("bad magic"))
	}
	off := 4

	docNameLen := int(buf[off])
	off++
	if err := binfmt.Require(buf[off:], docNameLen+1, "postings file doc codec name"); err != nil {
		return nil, err
	}
	docCodecName := string(buf[off : off+docNameLen])
	off += docNameLen

	freqNameLen := int(buf[off])
	off++
	if err := binfmt.Require(buf[off:], freqNameLen+4, "postings file freq codec name"); err != nil {
		return nil, err
	}
	freqCodecName := string(buf[off : off+freqNameLen])
	off += freqNameLen

	docCodec, err := codec.Get(docCodecName)
	if err != nil {
		return nil, err
	}
	freqCodec, err := codec.Get(freqCodecName)
	if err != nil {
		return nil, err
	}

	numTerms := int(binary.LittleEndian.Uint32(buf[off:]))
	off += 4

	ix := &Index{
		codecName:    docCodecName,
		docCodec:     docCodec,
		freqCodec:    freqCodec,
		docWholeList: docCodec.WholeList(),
	}
	ix.postings = make([]termRecord, numTerms)

	for i := 0; i < numTerms; i++ {
		if err := binfmt.Require(buf[off:], 16, "postings file term header"); err != nil {
			return nil, err
		}
		df := int(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
		totalFreq := binary.LittleEndian.Uint64(buf[off:])
		off += 8
		maxFreq := binary.LittleEndian.Uint32(buf[off:])
		off += 4

		if err := binfmt.Require(buf[off:], 4, "postings file doc block count"); err != nil {
			return nil, err
		}
		numDocBlocks := int(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
		docBlocks := make([]cursor.DocBlock, numDocBlocks)
		pos := 0
		for b := 0; b < numDocBlocks; b++ {
			if err := binfmt.Require(buf[off:], 12, "postings file doc block header"); err != nil {
				return nil, err
			}
			count := int(binary.LittleEndian.Uint32(buf[off:]))
			off += 4
			lastDocID := binary.LittleEndian.Uint32(buf[off:])
			off += 4
			blockLen := int(binary.LittleEndian.Uint32(buf[off:]))
			off += 4
			if err := binfmt.Require(buf[off:], blockLen, "postings file doc block bytes"); err != nil {
				return nil, err
			}
			docBlocks[b] = cursor.DocBlock{
				Bytes: buf[off : off+blockLen], Count: count, LastDocID: lastDocID, StartPos: pos,
			}
			pos += count
			off += blockLen
		}

		if err := binfmt.Require(buf[off:], 4, "postings file freq block count"); err != nil {
			return nil, err
		}
		numFreqBlocks := int(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
		freqBlocks := make([]cursor.FreqBlock, numFreqBlocks)
		for b := 0; b < numFreqBlocks; b++ {
			if err := binfmt.Require(buf[off:], 8, "postings file freq block header"); err != nil {
				return nil, err
			}
			count := int(binary.LittleEndian.Uint32(buf[off:]))
			off += 4
			blockLen := int(binary.LittleEndian.Uint32(buf[off:]))
			off += 4
			if err := binfmt.Require(buf[off:], blockLen, "postings file freq block bytes"); err != nil {
				return nil, err
			}
			freqBlocks[b] = cursor.FreqBlock{Bytes: buf[off : off+blockLen], Count: count}
			off += blockLen
		}

		ix.postings[i] = termRecord{
			df: df, totalFreq: totalFreq, maxFreq: maxFreq,
			docBlocks: docBlocks, freqBlocks: freqBlocks,
		}
	}

	return ix, nil
}

func appendU32Local(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendU64Local(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}
