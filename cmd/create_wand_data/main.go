// create_wand_data opens a compiled index and builds its block-max
// metadata file (.wand), consumed by the block-max query algorithms
// (bmw, bmm).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pisa-go/pisa/pkg/index"
	"github.com/pisa-go/pisa/pkg/scorer"
	"github.com/pisa-go/pisa/pkg/wand"
)

func main() {
	basename := flag.String("index", "", "compiled index basename (required)")
	out := flag.String("output", "", "output .wand file path (required)")
	scorerName := flag.String("scorer", "bm25", "scorer used to compute block score upper bounds")
	blockSize := flag.Int("block-size", wand.FixedBlockSize, "fixed block size in postings (ignored if -lambda > 0)")
	lambda := flag.Float64("lambda", 0, "variable block-max lambda bound (> 0 selects variable blocks)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -index idx -output idx.wand -scorer bm25

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *basename == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	ix, err := index.Open(*basename, index.Options{})
	if err != nil {
		log.Fatal(err)
	}
	defer ix.Close()

	sc, err := scorer.Get(scorer.DefaultParams(*scorerName))
	if err != nil {
		log.Fatal(err)
	}

	d := ix.BuildWandData(sc, *blockSize, float32(*lambda))
	buf := wand.Encode(d)

	if err := os.WriteFile(*out, buf, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote block-max data for %d terms to %s (%d bytes)", len(d.Terms), *out, len(buf))
}
