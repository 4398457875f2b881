package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

func init() {
	Register("varint", func() Codec { return varintCodec{} })
}

// varintCodec is the simplest block codec: each value is written as an
// unsigned LEB128 varint, the same byte-oriented style as
// resorank/fst_index.go's writeUvarint/readUvarint helpers, generalized
// from a one-off encoder into a registered Codec.
type varintCodec struct{}

func (varintCodec) Name() string    { return "varint" }
func (varintCodec) WholeList() bool { return false }

func (varintCodec) Encode(dst []byte, values []uint32) []byte {
	var buf [binary.MaxVarintLen64]byte
	for _, v := range values {
		n := binary.PutUvarint(buf[:], uint64(v))
		dst = append(dst, buf[:n]...)
	}
	return dst
}

func (varintCodec) Decode(src []byte, n int) ([]uint32, int, error) {
	out := make([]uint32, n)
	consumed := 0
	for i := 0; i < n; i++ {
		v, w := binary.Uvarint(src[consumed:])
		if w <= 0 {
			return nil, 0, pisaerr.Format("varint codec", fmt.Errorf("truncated varint at value %d", i))
		}
		out[i] = uint32(v)
		consumed += w
	}
	return out, consumed, nil
}
