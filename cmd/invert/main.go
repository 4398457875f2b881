// invert reads a forward index written by parse_collection and writes the
// inverted per-term postings (pkg/build.InvertedResult), alongside the
// term and document lexicons (pkg/lexicon) built from its vocabulary and
// document ids. This is the second build-pipeline stage; cmd/compress
// consumes its postings and document lengths, cmd/queries and
// cmd/evaluate_queries its lexicons.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pisa-go/pisa/pkg/binfmt"
	"github.com/pisa-go/pisa/pkg/build"
	"github.com/pisa-go/pisa/pkg/lexicon"
)

func main() {
	in := flag.String("input", "", "forward index file from parse_collection (required)")
	out := flag.String("output", "", "output basename (required); writes <output>.inverted.json, .sizes, .termlex, .termlex.str, .doclex, .doclex.str")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -input fwd.json -output idx

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal(err)
	}
	fwd, err := build.ReadForwardIndex(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	inv := build.Invert(fwd)
	log.Printf("inverted %d documents into %d terms", len(fwd.Entries), len(inv.Vocab))

	invOut, err := os.Create(*out + ".inverted.json")
	if err != nil {
		log.Fatal(err)
	}
	err = build.WriteInverted(invOut, inv)
	invOut.Close()
	if err != nil {
		log.Fatal(err)
	}

	termLex, _, err := lexicon.Build(inv.Vocab)
	if err != nil {
		log.Fatal(err)
	}
	if err := writeLexicon(*out+".termlex", termLex); err != nil {
		log.Fatal(err)
	}

	docLex, _, err := lexicon.Build(inv.DocIDs)
	if err != nil {
		log.Fatal(err)
	}
	if err := writeLexicon(*out+".doclex", docLex); err != nil {
		log.Fatal(err)
	}

	sizesOut, err := os.Create(*out + ".sizes")
	if err != nil {
		log.Fatal(err)
	}
	err = binfmt.WriteSequence(sizesOut, inv.DocLengths)
	sizesOut.Close()
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote inverted postings, lexicons and sizes to %s.*", *out)
}

func writeLexicon(basename string, lex *lexicon.Lexicon) error {
	fstBytes, stringsBytes := lex.Serialize()
	if err := os.WriteFile(basename, fstBytes, 0o644); err != nil {
		return err
	}
	return os.WriteFile(basename+".str", stringsBytes, 0o644)
}
