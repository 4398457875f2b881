package codec

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

func init() {
	Register("simdbp", func() Codec { return bitpackCodec{} })
}

// bitpackCodec is a fixed-width bit-packing block codec in the spirit of
// SIMD-BP128: a block is packed at the minimum bit width that fits its
// largest member, the same "one width per block of postings" idea
// SIMD-BP128 applies to lanes of 128 integers, expressed here without
// requiring SIMD intrinsics. Values are delta-gapped by the caller before
// Encode, same as varintCodec.
type bitpackCodec struct{}

func (bitpackCodec) Name() string    { return "simdbp" }
func (bitpackCodec) WholeList() bool { return false }

func (bitpackCodec) Encode(dst []byte, values []uint32) []byte {
	var width uint32
	for _, v := range values {
		if w := uint32(bits.Len32(v)); w > width {
			width = w
		}
	}
	dst = appendU32(dst, width)
	if width == 0 {
		return dst
	}
	w := newBitWriter()
	for _, v := range values {
		w.writeBits(uint64(v), width)
	}
	return append(dst, w.bytes()...)
}

func (bitpackCodec) Decode(src []byte, n int) ([]uint32, int, error) {
	if err := requireLen(src, 4); err != nil {
		return nil, 0, err
	}
	width := binary.LittleEndian.Uint32(src)
	off := 4
	out := make([]uint32, n)
	if width == 0 {
		return out, off, nil
	}
	needBits := uint64(width) * uint64(n)
	needBytes := int((needBits + 7) / 8)
	if err := requireLen(src[off:], needBytes); err != nil {
		return nil, 0, err
	}
	r := newBitReader(src[off : off+needBytes])
	for i := 0; i < n; i++ {
		v, err := r.readBits(width)
		if err != nil {
			return nil, 0, pisaerr.Format("simdbp codec", fmt.Errorf("truncated block at value %d", i))
		}
		out[i] = uint32(v)
	}
	return out, off + needBytes, nil
}
