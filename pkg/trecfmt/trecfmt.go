// Package trecfmt formats query results in the standard TREC run format:
// "qid Q0 docid rank score run_id", one line per result, ranks starting
// at 1.
package trecfmt

import (
	"fmt"
	"io"

	"github.com/pisa-go/pisa/pkg/topk"
)

// DocIDResolver resolves an internal docid to the external id string
// printed in a TREC run file, e.g. *lexicon.Lexicon.String.
type DocIDResolver func(docid uint32) (string, error)

// Write emits one TREC-format line per entry in results, in the order
// given (callers pass results already sorted best-first, as
// topk.Queue.Results does).
func Write(w io.Writer, qid string, results []topk.Entry, resolve DocIDResolver, runID string) error {
	for i, r := range results {
		ext, err := resolve(r.DocID)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s Q0 %s %d %f %s\n", qid, ext, i+1, r.Score, runID); err != nil {
			return err
		}
	}
	return nil
}
