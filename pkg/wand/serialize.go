package wand

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// On-disk .wand file layout:
// [u32 magic "WAND"][u32 numTerms]
// repeated numTerms times: [f32 maxScore][u32 numBlocks]
//   repeated numBlocks times: [u32 lastDocID][f32 maxScore]

var wandMagic = [4]byte{'W', 'A', 'N', 'D'}

// Encode serializes d in the layout documented above.
func Encode(d *Data) []byte {
	var buf []byte
	buf = append(buf, wandMagic[:]...)
	buf = appendU32(buf, uint32(len(d.Terms)))
	for _, t := range d.Terms {
		buf = appendF32(buf, t.MaxScore)
		buf = appendU32(buf, uint32(len(t.Blocks)))
		for _, b := range t.Blocks {
			buf = appendU32(buf, b.LastDocID)
			buf = appendF32(buf, b.MaxScore)
		}
	}
	return buf
}

// DecodeFile parses a .wand file previously produced by Encode.
func DecodeFile(buf []byte) (*Data, error) {
	if len(buf) < 8 {
		return nil, pisaerr.Format("wand file", fmt.Errorf("truncated header"))
	}
	if [4]byte(buf[:4]) != wandMagic {
		return nil, pisaerr.Format("wand file", fmt.Errorf("bad magic"))
	}
	off := 4
	numTerms := int(binary.LittleEndian.Uint32(buf[off:]))
	off += 4

	d := &Data{Terms: make([]TermData, numTerms)}
	for i := 0; i < numTerms; i++ {
		if len(buf[off:]) < 8 {
			return nil, pisaerr.Format("wand file", fmt.Errorf("truncated term header"))
		}
		maxScore := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
		numBlocks := int(binary.LittleEndian.Uint32(buf[off:]))
		off += 4

		td := TermData{MaxScore: maxScore}
		if numBlocks > 0 {
			td.Blocks = make([]Block, numBlocks)
		}
		for j := 0; j < numBlocks; j++ {
			if len(buf[off:]) < 8 {
				return nil, pisaerr.Format("wand file", fmt.Errorf("truncated block"))
			}
			last := binary.LittleEndian.Uint32(buf[off:])
			off += 4
			ms := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
			off += 4
			td.Blocks[j] = Block{LastDocID: last, MaxScore: ms}
		}
		d.Terms[i] = td
	}
	return d, nil
}

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendF32(buf []byte, v float32) []byte {
	return appendU32(buf, math.Float32bits(v))
}
