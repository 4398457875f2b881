// queries runs a batch of queries (one per line on stdin, "id: term
// term ...") against a compiled index and writes each query's top-k
// results to stdout as "id: docid score docid score ...". Unlike
// cmd/evaluate_queries it does not resolve docids back to external ids or
// format TREC output — it's the quick, unformatted runner used while
// iterating on an index or algorithm choice.
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
)

func main() {
	basename := flag.String("index", "", "compiled index basename (required)")
	wandPath := flag.String("wand", "", "optional .wand block-max file, required by -algorithm bmw/bmm")
	termlex := flag.String("termlex", "", "term lexicon basename (<termlex>, <termlex>.str), required (default <index>.termlex)")
	algorithm := flag.String("algorithm", "wand", "query algorithm: ranked_or, ranked_and, wand, bmw, mmw, bmm, taat, taat_lazy")
	scorerName := flag.String("scorer", "bm25", "scorer: "+strings.Join(scorer.Names(), ", "))
	k := flag.Int("k", 10, "number of results per query")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -index idx -algorithm bmw -wand idx.wand <queries.txt

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
	if _, err := config.ParseAlgorithm(*algorithm); err != nil {
		log.Fatal(err)
	}

	ix, err := index.Open(*basename, index.Options{WandPath: *wandPath})
	if err != nil {
		log.Fatal(err)
	}
	defer ix.Close()

	lex, err := openLexicon(*termlex)
	if err != nil {
		log.Fatal(err)
	}
	defer lex.Close()

	sc, err := scorer.Get(scorer.DefaultParams(*scorerName))
	if err != nil {
		log.Fatal(err)
	}

	resolve := func(tok string) (uint32, bool) { return lex.ID(tok) }

	seq := 0
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

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
		fmt.Fprintf(out, "%s:", id)
		for _, r := range results {
			fmt.Fprintf(out, " %d %f", r.DocID, r.Score)
		}
		fmt.Fprintln(out)
	}
	if err := sc2.Err(); err != nil {
		log.Fatal(err)
	}
}

func openLexicon(basename string) (*lexicon.Lexicon, error) {
	fstBytes, err := os.ReadFile(basename)
	if err != nil {
		return nil, pisaerr.IO("open term lexicon", err)
	}
	strBytes, err := os.ReadFile(basename + ".str")
	if err != nil {
		return nil, pisaerr.IO("open term lexicon strings", err)
	}
	return lexicon.Open(fstBytes, strBytes)
}
