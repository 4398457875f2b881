// compress reads the raw per-term postings written by invert and encodes
// them with a named codec (see pkg/codec) into the compiled postings file
// Index.Open memory-maps, the build pipeline's final stage.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pisa-go/pisa/pkg/build"
	"github.com/pisa-go/pisa/pkg/codec"
	"github.com/pisa-go/pisa/pkg/index"
)

func main() {
	in := flag.String("input", "", "<basename>.inverted.json from invert (required)")
	out := flag.String("output", "", "output basename; writes <output>.docs (required)")
	enc := flag.String("encoding", "varint", "posting codec: "+strings.Join(codec.Names(), ", "))

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -input idx.inverted.json -output idx -encoding roaring

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
	inv, err := build.ReadInverted(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	buf, err := index.BuildPostingsFile(inv.Postings, *enc)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(*out+".docs", buf, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("compressed %d terms (%s) into %s.docs (%d bytes)", len(inv.Postings), *enc, *out, len(buf))
}
