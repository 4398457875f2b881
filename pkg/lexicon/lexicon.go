// Package lexicon implements the term and document lexicons (.termlex,
// .doclex): a sorted-string FST mapping each term or external document id
// to its internal integer id, plus the reverse mapping for printing
// results. Grounded on pkg/fst/wrapper.go and pkg/resorank/fst_index.go's
// "build sorted strings into an FST, keep a side payload blob" pattern —
// promoted here from that in-house wrapper to the real upstream
// github.com/blevesearch/vellum it was modeled on.
package lexicon

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/blevesearch/vellum"

	"github.com/pisa-go/pisa/pkg/binfmt"
	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// Lexicon resolves between external string keys (terms or document ids)
// and the dense integer ids used throughout the rest of the index.
type Lexicon struct {
	fst     *vellum.FST
	strings *binfmt.PayloadVector // id -> original string, for reverse lookup

	fstBytes     []byte // raw FST blob, kept for Serialize
	stringsBytes []byte // raw PayloadVector blob, kept for Serialize
}

// Build constructs a Lexicon from keys, which need not be pre-sorted. The
// returned id for keys[i] (before sorting) is NOT necessarily i — callers
// that need a stable original-order id mapping should consult the
// returned idsInInputOrder slice.
func Build(keys []string) (lex *Lexicon, idsInInputOrder []uint32, err error) {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return keys[order[a]] < keys[order[b]] })

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, nil, pisaerr.Format("lexicon build", err)
	}

	sortedKeys := make([][]byte, len(keys))
	idsInInputOrder = make([]uint32, len(keys))
	for rank, orig := range order {
		sortedKeys[rank] = []byte(keys[orig])
		if err := builder.Insert([]byte(keys[orig]), uint64(rank)); err != nil {
			return nil, nil, pisaerr.Format("lexicon build", fmt.Errorf("insert %q: %w", keys[orig], err))
		}
		idsInInputOrder[orig] = uint32(rank)
	}
	if err := builder.Close(); err != nil {
		return nil, nil, pisaerr.Format("lexicon build", err)
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, nil, pisaerr.Format("lexicon build", err)
	}

	payload, err := binfmt.BuildPayloadVector(sortedKeys, false)
	if err != nil {
		return nil, nil, pisaerr.Format("lexicon build", err)
	}
	pv, err := binfmt.OpenPayloadVector(payload, false)
	if err != nil {
		return nil, nil, pisaerr.Format("lexicon build", err)
	}

	return &Lexicon{fst: fst, strings: pv, fstBytes: buf.Bytes(), stringsBytes: payload}, idsInInputOrder, nil
}

// Open loads a previously serialized Lexicon: fstBytes is the vellum FST
// blob, stringsBytes the PayloadVector of sorted keys in id order.
func Open(fstBytes, stringsBytes []byte) (*Lexicon, error) {
	fst, err := vellum.Load(fstBytes)
	if err != nil {
		return nil, pisaerr.Format("lexicon open", err)
	}
	pv, err := binfmt.OpenPayloadVector(stringsBytes, false)
	if err != nil {
		return nil, err
	}
	return &Lexicon{fst: fst, strings: pv, fstBytes: fstBytes, stringsBytes: stringsBytes}, nil
}

// Serialize returns the raw FST and PayloadVector blobs backing this
// Lexicon, ready to write to a file pair (cmd/invert writes <name> and
// <name>.str, e.g. .termlex and .termlex.str) and reload later via Open.
// A Lexicon obtained through Open returns the bytes it was opened with.
func (l *Lexicon) Serialize() (fstBytes, stringsBytes []byte) {
	return l.fstBytes, l.stringsBytes
}

// ID resolves key to its internal id.
func (l *Lexicon) ID(key string) (uint32, bool) {
	v, exists, err := l.fst.Get([]byte(key))
	if err != nil || !exists {
		return 0, false
	}
	return uint32(v), true
}

// String resolves an internal id back to its original key.
func (l *Lexicon) String(id uint32) (string, error) {
	b, err := l.strings.At(int(id))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Len returns the number of keys in the lexicon.
func (l *Lexicon) Len() int { return l.strings.Len() }

// Close releases the FST's backing resources.
func (l *Lexicon) Close() error {
	if l.fst == nil {
		return nil
	}
	return l.fst.Close()
}
