package build

import "sort"

// InvertedResult is the output of Invert: the sorted term vocabulary, the
// per-term (docids, freqs) postings in term order (ready for
// index.BuildPostingsFile), the external document ids in internal docid
// order, and each document's length in tokens.
type InvertedResult struct {
	Vocab      []string
	Postings   [][2][]uint32
	DocIDs     []string
	DocLengths []uint32
}

// Invert builds per-term postings from a tokenized ForwardIndex, internal
// docids assigned in input order (entries[i] becomes docid i).
func Invert(fwd *ForwardIndex) *InvertedResult {
	type accum struct {
		docFreq map[uint32]uint32 // docid -> term frequency
	}
	byTerm := map[string]*accum{}

	docIDs := make([]string, len(fwd.Entries))
	docLengths := make([]uint32, len(fwd.Entries))

	for docid, e := range fwd.Entries {
		docIDs[docid] = e.ExternalID
		docLengths[docid] = uint32(len(e.Terms))
		for _, term := range e.Terms {
			a, ok := byTerm[term]
			if !ok {
				a = &accum{docFreq: map[uint32]uint32{}}
				byTerm[term] = a
			}
			a.docFreq[uint32(docid)]++
		}
	}

	vocab := make([]string, 0, len(byTerm))
	for term := range byTerm {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	postings := make([][2][]uint32, len(vocab))
	for i, term := range vocab {
		a := byTerm[term]
		docids := make([]uint32, 0, len(a.docFreq))
		for d := range a.docFreq {
			docids = append(docids, d)
		}
		sort.Slice(docids, func(x, y int) bool { return docids[x] < docids[y] })
		freqs := make([]uint32, len(docids))
		for j, d := range docids {
			freqs[j] = a.docFreq[d]
		}
		postings[i] = [2][]uint32{docids, freqs}
	}

	return &InvertedResult{
		Vocab:      vocab,
		Postings:   postings,
		DocIDs:     docIDs,
		DocLengths: docLengths,
	}
}
