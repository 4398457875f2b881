package binfmt

import (
	"fmt"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// Lookup table v1 header: 2 magic bytes, 1 flags byte, 5 reserved zero
// bytes, followed by a PayloadVector of keys (sorted iff flagSorted) or
// integer record offsets.
const (
	lookupMagic0 = 0x87
	lookupMagic1 = 0x01

	flagSorted      = 1 << 0
	flagWideOffsets = 1 << 1

	lookupHeaderLen = 8
)

// LookupTable maps an ordinal position to a record inside a PayloadVector,
// and, when Sorted, supports binary-search lookup by key.
type LookupTable struct {
	Sorted      bool
	WideOffsets bool
	Keys        *PayloadVector
}

// BuildLookupTable serializes keys (already sorted by the caller if sorted
// is true) behind the v1 header.
func BuildLookupTable(keys [][]byte, sorted, wide bool) ([]byte, error) {
	body, err := BuildPayloadVector(keys, wide)
	if err != nil {
		return nil, err
	}
	header := make([]byte, lookupHeaderLen)
	header[0] = lookupMagic0
	header[1] = lookupMagic1
	var flags byte
	if sorted {
		flags |= flagSorted
	}
	if wide {
		flags |= flagWideOffsets
	}
	header[2] = flags
	// header[3:8] reserved, left zero.
	return append(header, body...), nil
}

// OpenLookupTable parses a v1 lookup table from buf.
func OpenLookupTable(buf []byte) (*LookupTable, error) {
	if err := Require(buf, lookupHeaderLen, "lookup table header"); err != nil {
		return nil, err
	}
	if buf[0] != lookupMagic0 || buf[1] != lookupMagic1 {
		return nil, pisaerr.Format("lookup table", fmt.Errorf("bad magic %02x%02x", buf[0], buf[1]))
	}
	flags := buf[2]
	for i := 3; i < lookupHeaderLen; i++ {
		if buf[i] != 0 {
			return nil, pisaerr.Format("lookup table", fmt.Errorf("reserved byte %d not zero", i))
		}
	}
	wide := flags&flagWideOffsets != 0
	pv, err := OpenPayloadVector(buf[lookupHeaderLen:], wide)
	if err != nil {
		return nil, err
	}
	return &LookupTable{
		Sorted:      flags&flagSorted != 0,
		WideOffsets: wide,
		Keys:        pv,
	}, nil
}

// Lookup performs binary search for key, requiring Sorted. It returns the
// matching index and true, or false if absent.
func (lt *LookupTable) Lookup(key []byte) (int, bool) {
	if !lt.Sorted {
		return 0, false
	}
	lo, hi := 0, lt.Keys.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		k, err := lt.Keys.At(mid)
		if err != nil {
			return 0, false
		}
		c := compareBytes(k, key)
		switch {
		case c == 0:
			return mid, true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
