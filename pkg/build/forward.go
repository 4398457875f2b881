package build

// Document is one input document: an external id plus raw text.
type Document struct {
	ExternalID string
	Text       string
}

// ForwardEntry is one document's tokenized form: term occurrences in
// order, ready for inversion.
type ForwardEntry struct {
	ExternalID string
	Terms      []string // tokenized, in document order; length is doc length
}

// ForwardIndex is the tokenized form of a whole collection, in input
// document order — parallel to original_source's forward_index, the
// intermediate structure invert.cpp consumes to build postings.
type ForwardIndex struct {
	Entries []ForwardEntry
}
