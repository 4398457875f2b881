// evaluate_queries runs a batch of queries against a compiled index and
// writes results in standard TREC run format, ready for trec_eval or any
// downstream relevance-judgment comparison.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pisa-go/pisa/pkg/config"
	"github.com/pisa-go/pisa/pkg/index"
	"github.com/pisa-go/pisa/pkg/lexicon"
	"github.com/pisa-go/pisa/pkg/pisaerr"
	"github.com/pisa-go/pisa/pkg/qparse"
	"github.com/pisa-go/pisa/pkg/scorer"
	"github.com/pisa-go/pisa/pkg/server"
	"github.com/pisa-go/pisa/pkg/trecfmt"
)

func main() {
	basename := flag.String("index", "", "compiled index basename (required)")
	wandPath := flag.String("wand", "", "optional .wand block-max file, required by -algorithm bmw/bmm")
	termlex := flag.String("termlex", "", "term lexicon basename (default <index>.termlex)")
	doclex := flag.String("doclex", "", "document lexicon basename (default <index>.doclex)")
	algorithm := flag.String("algorithm", "wand", "query algorithm: ranked_or, ranked_and, wand, bmw, mmw, bmm, taat, taat_lazy")
	scorerName := flag.String("scorer", "bm25", "scorer: "+strings.Join(scorer.Names(), ", "))
	k := flag.Int("k", 1000, "number of results per query")
	runID := flag.String("run-id", "pisa-go", "run tag printed in the TREC run's 6th column")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -index idx -algorithm bmm -wand idx.wand <queries.txt >run.trec

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *basename == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *termlex == "" {
		*termlex = *basename + ".termlex"
	}
	if *doclex == "" {
		*doclex = *basename + ".doclex"
	}
	if _, err := config.ParseAlgorithm(*algorithm); err != nil {
		log.Fatal(err)
	}

	ix, err := index.Open(*basename, index.Options{WandPath: *wandPath})
	if err != nil {
		log.Fatal(err)
	}
	defer ix.Close()

	termLex, err := openLexicon(*termlex)
	if err != nil {
		log.Fatal(err)
	}
	defer termLex.Close()

	docLex, err := openLexicon(*doclex)
	if err != nil {
		log.Fatal(err)
	}
	defer docLex.Close()

	sc, err := scorer.Get(scorer.DefaultParams(*scorerName))
	if err != nil {
		log.Fatal(err)
	}

	resolve := func(tok string) (uint32, bool) { return termLex.ID(tok) }
	resolveDocID := func(docid uint32) (string, error) { return docLex.String(docid) }

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	seq := 0
	sc2 := bufio.NewScanner(os.Stdin)
	sc2.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc2.Scan() {
		line := strings.TrimSpace(sc2.Text())
		if line == "" {
			continue
		}
		seq++
		q, err := qparse.ParseLine(line, resolve)
		if err != nil {
			log.Printf("query %d: %v", seq, err)
			continue
		}

		results, err := server.Dispatch(ix, sc, *algorithm, q.Terms, *k)
		if err != nil {
			log.Printf("query %q: %v", q.ID, err)
			continue
		}

		id := q.ID
		if id == "" {
			id = fmt.Sprintf("%d", seq)
		}
		if err := trecfmt.Write(out, id, results, resolveDocID, *runID); err != nil {
			log.Fatal(err)
		}
	}
	if err := sc2.Err(); err != nil {
		log.Fatal(err)
	}
}

func openLexicon(basename string) (*lexicon.Lexicon, error) {
	fstBytes, err := os.ReadFile(basename)
	if err != nil {
		return nil, pisaerr.IO("open lexicon", err)
	}
	strBytes, err := os.ReadFile(basename + ".str")
	if err != nil {
		return nil, pisaerr.IO("open lexicon strings", err)
	}
	return lexicon.Open(fstBytes, strBytes)
}
