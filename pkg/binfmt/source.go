// Package binfmt implements the on-disk file formats shared by every index
// file: the binary collection format used by the .sizes document-length
// file, the payload vector format used by .doclex/.termlex payload blobs,
// and the lookup table v1 header used to locate records inside a payload
// vector. The .docs postings file has its own layout (see pkg/index).
//
// Layouts follow the original PISA C++ sources exactly
// (include/pisa/binary_collection.hpp, include/pisa/payload_vector.hpp,
// include/pisa/lookup_table.hpp).
package binfmt

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/pisa-go/pisa/pkg/pisaerr"
)

// Source is "where index bytes live" — either a memory-mapped file or an
// in-memory byte slice. pkg/index never holds a raw *os.File; every reader
// is built on a Source.
type Source interface {
	// Bytes returns the full backing buffer. The returned slice must not
	// be retained past Close.
	Bytes() []byte
	Close() error
}

// OpenFile memory-maps path read-only and returns a Source backed by it.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pisaerr.IO("open "+path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, pisaerr.IO("stat "+path, err)
	}
	if info.Size() == 0 {
		return &memorySource{buf: nil}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, pisaerr.IO("mmap "+path, err)
	}
	return &mmapSource{m: m}, nil
}

type mmapSource struct {
	m mmap.MMap
}

func (s *mmapSource) Bytes() []byte { return []byte(s.m) }
func (s *mmapSource) Close() error  { return s.m.Unmap() }

// FromBytes wraps an in-memory buffer as a Source, used by tests and by
// callers that have already loaded an index into memory.
func FromBytes(buf []byte) Source {
	return &memorySource{buf: buf}
}

type memorySource struct {
	buf []byte
}

func (s *memorySource) Bytes() []byte { return s.buf }
func (s *memorySource) Close() error  { return nil }

// Require returns a FormatError if buf is shorter than n bytes.
func Require(buf []byte, n int, what string) error {
	if len(buf) < n {
		return pisaerr.Format(what, fmt.Errorf("need %d bytes, have %d", n, len(buf)))
	}
	return nil
}
