package build

import (
	"encoding/json"
	"io"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// WriteForwardIndex serializes fwd as JSON, the intermediate format
// cmd/parse_collection writes and cmd/invert reads back — a plain,
// inspectable handoff between build-pipeline stages, not part of the
// compiled index's on-disk layout.
func WriteForwardIndex(w io.Writer, fwd *ForwardIndex) error {
	if err := json.NewEncoder(w).Encode(fwd); err != nil {
		return pisaerr.IO("write forward index", err)
	}
	return nil
}

// ReadForwardIndex reads back a ForwardIndex written by WriteForwardIndex.
func ReadForwardIndex(r io.Reader) (*ForwardIndex, error) {
	var fwd ForwardIndex
	if err := json.NewDecoder(r).Decode(&fwd); err != nil {
		return nil, pisaerr.IO("read forward index", err)
	}
	return &fwd, nil
}

// InvertedFile is the on-disk JSON form of an InvertedResult, the
// intermediate cmd/invert writes and cmd/compress reads back.
type InvertedFile struct {
	Vocab      []string      `json:"vocab"`
	Postings   [][2][]uint32 `json:"postings"`
	DocIDs     []string      `json:"docids"`
	DocLengths []uint32      `json:"doc_lengths"`
}

// WriteInverted serializes an InvertedResult as JSON.
func WriteInverted(w io.Writer, inv *InvertedResult) error {
	f := InvertedFile{Vocab: inv.Vocab, Postings: inv.Postings, DocIDs: inv.DocIDs, DocLengths: inv.DocLengths}
	if err := json.NewEncoder(w).Encode(f); err != nil {
		return pisaerr.IO("write inverted index", err)
	}
	return nil
}

// ReadInverted reads back an InvertedFile written by WriteInverted.
func ReadInverted(r io.Reader) (*InvertedFile, error) {
	var f InvertedFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, pisaerr.IO("read inverted index", err)
	}
	return &f, nil
}
