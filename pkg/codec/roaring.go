package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

func init() {
	Register("roaring", func() Codec { return roaringCodec{} })
}

// roaringCodec stores a block of values as a roaring bitmap, the whole-list
// alternative to the delta+varint block codecs. Grounded on
// pkg/qgram/compressed_postings.go's CompressedGramPostings, which wraps a
// *roaring.Bitmap as the docid set for a posting list; here the same
// bitmap serves as a Codec so a term's ".docs" block can be built with
// --encoding roaring instead of the default delta-varint block codec.
//
// Unlike the delta-varint codecs, values passed to roaringCodec.Encode are
// absolute docids, not gaps — pkg/index detects the roaring encoding and
// skips the delta transform, since roaring.Bitmap already compresses
// sorted integer sets without needing a gap transform.
type roaringCodec struct{}

func (roaringCodec) Name() string    { return "roaring" }
func (roaringCodec) WholeList() bool { return true }

func (roaringCodec) Encode(dst []byte, values []uint32) []byte {
	bm := roaring.New()
	bm.AddMany(values)
	bm.RunOptimize()

	size := bm.GetSerializedSizeInBytes()
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], size)
	dst = append(dst, lenBuf[:]...)

	buf := make([]byte, 0, size)
	w := &byteSliceWriter{buf: buf}
	_, _ = bm.WriteTo(w)
	return append(dst, w.buf...)
}

func (roaringCodec) Decode(src []byte, n int) ([]uint32, int, error) {
	if err := requireLen(src, 8); err != nil {
		return nil, 0, err
	}
	size := binary.LittleEndian.Uint64(src)
	if err := requireLen(src[8:], int(size)); err != nil {
		return nil, 0, err
	}
	bm := roaring.New()
	if _, err := bm.ReadFrom(newByteSliceReader(src[8 : 8+size])); err != nil {
		return nil, 0, pisaerr.Format("roaring codec", err)
	}
	out := bm.ToArray()
	if len(out) != n {
		return nil, 0, pisaerr.Format("roaring codec", fmt.Errorf("decoded %d values, expected %d", len(out), n))
	}
	return out, 8 + int(size), nil
}

func requireLen(b []byte, n int) error {
	if len(b) < n {
		return pisaerr.Format("roaring codec", fmt.Errorf("need %d bytes, have %d", n, len(b)))
	}
	return nil
}

type byteSliceWriter struct{ buf []byte }

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

type byteSliceReader struct {
	buf []byte
	pos int
}

func newByteSliceReader(b []byte) *byteSliceReader { return &byteSliceReader{buf: b} }

func (r *byteSliceReader) Read(p []byte) (int, error) {
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	if n == 0 && len(p) > 0 {
		return 0, fmt.Errorf("roaring codec: unexpected eof")
	}
	return n, nil
}
