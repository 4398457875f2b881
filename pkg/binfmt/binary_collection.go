package binfmt

import (
	"encoding/binary"
	"io"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// A Sequence is one "u32 len; u32 values[len]" record of the binary
// collection format. In this repository the .sizes file written by
// cmd/invert is a binary collection with a single record holding every
// document's length, which index.Open reads back as Sequence(0).
type Sequence []uint32

// BinaryCollection is a read-only view over a sequence of Sequence
// records packed back-to-back in a Source, little-endian u32 length
// prefix followed by that many little-endian u32 values.
type BinaryCollection struct {
	src    Source
	starts []int // byte offset of each record's length prefix
}

// OpenBinaryCollection scans src once to index record boundaries.
func OpenBinaryCollection(src Source) (*BinaryCollection, error) {
	buf := src.Bytes()
	bc := &BinaryCollection{src: src}
	off := 0
	for off < len(buf) {
		if off+4 > len(buf) {
			return nil, pisaerr.Format("binary collection", errShortRecord)
		}
		n := int(binary.LittleEndian.Uint32(buf[off:]))
		bc.starts = append(bc.starts, off)
		off += 4 + 4*n
		if off > len(buf) {
			return nil, pisaerr.Format("binary collection", errShortRecord)
		}
	}
	return bc, nil
}

var errShortRecord = pisaerr.ErrFormatError

// Len returns the number of records.
func (bc *BinaryCollection) Len() int { return len(bc.starts) }

// Sequence returns a copy of the i-th record's values; the returned slice
// does not alias the backing Source and stays valid after Close.
func (bc *BinaryCollection) Sequence(i int) Sequence {
	off := bc.starts[i]
	buf := bc.src.Bytes()
	n := int(binary.LittleEndian.Uint32(buf[off:]))
	start := off + 4
	vals := make([]uint32, n)
	for j := 0; j < n; j++ {
		vals[j] = binary.LittleEndian.Uint32(buf[start+4*j:])
	}
	return vals
}

// RawSequence is identical to Sequence but avoids the copy when the
// caller only needs to read the bytes directly (used by codec decoders
// that walk the delta-encoded byte stream themselves).
func (bc *BinaryCollection) RawSequence(i int) (n int, payload []byte) {
	off := bc.starts[i]
	buf := bc.src.Bytes()
	n = int(binary.LittleEndian.Uint32(buf[off:]))
	start := off + 4
	return n, buf[start : start+4*n]
}

// WriteSequence appends a length-prefixed u32 record to w.
func WriteSequence(w io.Writer, vals []uint32) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(vals)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	var vbuf [4]byte
	for _, v := range vals {
		binary.LittleEndian.PutUint32(vbuf[:], v)
		if _, err := w.Write(vbuf[:]); err != nil {
			return err
		}
	}
	return nil
}
