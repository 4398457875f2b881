// Package pisaerr defines the error kinds surfaced at the public boundary
// of the retrieval core. Each kind is a sentinel; IO and Format attach
// context and an underlying error to it in this package's own wrapper
// type, whose Is method matches the sentinel and whose Unwrap returns the
// underlying error, so call sites match the kind with errors.Is.
package pisaerr

import "errors"

var (
	// ErrIOFailure indicates a failure reading or writing an index file.
	ErrIOFailure = errors.New("pisa: i/o failure")
	// ErrFormatError indicates a structurally invalid on-disk file.
	ErrFormatError = errors.New("pisa: format error")
	// ErrUnknownEncoding indicates a codec name not present in the registry.
	ErrUnknownEncoding = errors.New("pisa: unknown encoding")
	// ErrUnknownScorer indicates a scorer name not present in the registry.
	ErrUnknownScorer = errors.New("pisa: unknown scorer")
	// ErrTermNotFound indicates a query term absent from the term lexicon.
	ErrTermNotFound = errors.New("pisa: term not found")
	// ErrEmptyQuery indicates a query with no resolvable terms remaining.
	ErrEmptyQuery = errors.New("pisa: empty query")
	// ErrThresholdUnsatisfied indicates a seeded threshold that pruned past
	// the true k-th result; the caller received fewer than k results.
	ErrThresholdUnsatisfied = errors.New("pisa: threshold unsatisfied")
	// ErrParseError indicates a malformed collection/query input line.
	ErrParseError = errors.New("pisa: parse error")
)

// IO wraps err as an IOFailure with the given context.
func IO(context string, err error) error {
	return wrap(ErrIOFailure, context, err)
}

// Format wraps err as a FormatError with the given context.
func Format(context string, err error) error {
	return wrap(ErrFormatError, context, err)
}

func wrap(kind error, context string, err error) error {
	if err == nil {
		return errWithContext(kind, context)
	}
	return &wrapped{kind: kind, context: context, err: err}
}

func errWithContext(kind error, context string) error {
	return &wrapped{kind: kind, context: context}
}

type wrapped struct {
	kind    error
	context string
	err     error
}

func (w *wrapped) Error() string {
	if w.err == nil {
		return w.kind.Error() + ": " + w.context
	}
	return w.kind.Error() + ": " + w.context + ": " + w.err.Error()
}

func (w *wrapped) Unwrap() error {
	if w.err != nil {
		return w.err
	}
	return w.kind
}

func (w *wrapped) Is(target error) bool {
	return target == w.kind
}
