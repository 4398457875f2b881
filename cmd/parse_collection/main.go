// parse_collection reads a tab-separated document collection
// ("external_id\tdocument text", one per line) and writes out a
// tokenized forward index, the first stage of the build pipeline (see
// pkg/build). Flag shape and error handling follow
// kortschak-ins/cmd/ins/main.go: a custom flag.Usage, required flags
// checked by hand, log.Fatal on unrecoverable error.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pisa-go/pisa/pkg/build"
)

func main() {
	in := flag.String("input", "", "collection file, \"id\\ttext\" per line (required; - for stdin)")
	out := flag.String("output", "", "output forward index file (required)")
	workers := flag.Int("workers", 0, "tokenizer worker count (<=0 uses all cores)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -input collection.tsv -output fwd.json

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	docs, err := readDocuments(*in)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("parsed %d documents from %s", len(docs), *in)

	tok := build.DefaultTokenizer()
	fwd, err := build.BuildForwardIndex(context.Background(), docs, tok, *workers)
	if err != nil {
		log.Fatal(err)
	}

	w, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	if err := build.WriteForwardIndex(w, fwd); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote forward index with %d entries to %s", len(fwd.Entries), *out)
}

func readDocuments(path string) ([]build.Document, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var docs []build.Document
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		id, text, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("malformed line (expected id<TAB>text): %q", line)
		}
		docs = append(docs, build.Document{ExternalID: id, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
