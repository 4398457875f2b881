// Package codec implements the block and whole-list encodings used to
// compress posting lists: fixed-size delta-encoded docid/freq blocks
// (varint, simdbp) and whole-list alternatives that compress an entire
// posting list as one unit (roaring, ef). Encodings are registered by name
// at startup, mirroring the original C++ codebase's macro-driven sweep
// over codec template instantiations (original_source's index_types.hpp)
// with a constructor registry instead of a macro.
package codec

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// Codec encodes and decodes a fixed-length sequence of non-negative
// integers. Docid sequences are always delta-encoded by the caller before
// Encode is invoked (codecs never see raw docids, only gaps), matching
// original_source's separation of "codec" from "delta transform".
type Codec interface {
	// Name is the registry key, written into the .docs postings file header so
	// the encoding used to build an index can be recovered at open time.
	Name() string
	// Encode appends the encoded form of values to dst and returns it.
	Encode(dst []byte, values []uint32) []byte
	// Decode reads exactly n values from src, returning them and the
	// number of bytes consumed.
	Decode(src []byte, n int) (values []uint32, consumed int, err error)
	// WholeList reports whether this codec compresses an entire posting
	// list as a single unit (roaring, Elias-Fano) rather than a sequence
	// of independently-decodable fixed-size blocks (varint, simdbp).
	// pkg/index uses this to pick the on-disk block layout and to keep
	// whole-list codecs off the frequency stream, which is never a sorted
	// set.
	WholeList() bool
}

var (
	mu       sync.RWMutex
	registry = map[string]func() Codec{}
)

// Register adds a named codec constructor to the registry. Called from
// each codec file's init().
func Register(name string, ctor func() Codec) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ctor
}

// Get constructs the codec registered under name.
func Get(name string) (Codec, error) {
	mu.RLock()
	ctor, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, pisaerr.Format("codec", fmt.Errorf("%w: %q", pisaerr.ErrUnknownEncoding, name))
	}
	return ctor(), nil
}

// Names returns the sorted set of registered codec names, used by cmd/compress
// to validate a --encoding flag and print usage.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
