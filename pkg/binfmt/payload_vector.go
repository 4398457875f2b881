package binfmt

import (
	"encoding/binary"
	"fmt"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// PayloadVector is a read-only view over a vector of variable-length byte
// payloads, laid out exactly as original_source/include/pisa/payload_vector.hpp:
// a u64 element count, an (count+1)-entry offset array, then the
// concatenated payload bytes. Offsets are either 32- or 64-bit, selected by
// the vector's header flag; size() = len(offsets)-1 and payload i spans
// offsets[i]:offsets[i+1], mirroring the C++ template's iterator semantics.
type PayloadVector struct {
	wide    bool
	offsets []uint64
	payload []byte
}

// BuildPayloadVector serializes a sequence of payloads in the format above.
// wide selects 64-bit offsets; otherwise offsets are written as 32-bit and
// the caller must ensure the total payload length fits in a uint32.
func BuildPayloadVector(items [][]byte, wide bool) ([]byte, error) {
	var buf []byte
	count := uint64(len(items))
	buf = appendU64(buf, count)

	offsets := make([]uint64, count+1)
	var total uint64
	for i, it := range items {
		offsets[i] = total
		total += uint64(len(it))
	}
	offsets[count] = total

	if !wide && total > 0xFFFFFFFF {
		return nil, fmt.Errorf("payload vector: total payload size %d overflows 32-bit offsets", total)
	}

	for _, off := range offsets {
		if wide {
			buf = appendU64(buf, off)
		} else {
			buf = appendU32(buf, uint32(off))
		}
	}
	for _, it := range items {
		buf = append(buf, it...)
	}
	return buf, nil
}

// OpenPayloadVector parses buf (the output of BuildPayloadVector) into a
// PayloadVector.
func OpenPayloadVector(buf []byte, wide bool) (*PayloadVector, error) {
	if err := Require(buf, 8, "payload vector header"); err != nil {
		return nil, err
	}
	count := binary.LittleEndian.Uint64(buf)
	off := 8

	offWidth := 4
	if wide {
		offWidth = 8
	}
	offsetsBytes := int(count+1) * offWidth
	if err := Require(buf[off:], offsetsBytes, "payload vector offsets"); err != nil {
		return nil, err
	}

	offsets := make([]uint64, count+1)
	for i := range offsets {
		if wide {
			offsets[i] = binary.LittleEndian.Uint64(buf[off+i*8:])
		} else {
			offsets[i] = uint64(binary.LittleEndian.Uint32(buf[off+i*4:]))
		}
	}
	off += offsetsBytes

	return &PayloadVector{wide: wide, offsets: offsets, payload: buf[off:]}, nil
}

// Len returns the number of payload entries.
func (pv *PayloadVector) Len() int {
	if len(pv.offsets) == 0 {
		return 0
	}
	return len(pv.offsets) - 1
}

// At returns the i-th payload as a slice aliasing the backing buffer.
func (pv *PayloadVector) At(i int) ([]byte, error) {
	if i < 0 || i >= pv.Len() {
		return nil, pisaerr.Format("payload vector", fmt.Errorf("index %d out of range [0,%d)", i, pv.Len()))
	}
	start, end := pv.offsets[i], pv.offsets[i+1]
	if end > uint64(len(pv.payload)) {
		return nil, pisaerr.Format("payload vector", fmt.Errorf("offset %d exceeds payload length %d", end, len(pv.payload)))
	}
	return pv.payload[start:end], nil
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}
