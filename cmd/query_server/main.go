// query_server opens a compiled index and serves QueryRequest/
// QueryResponse (pkg/server) over HTTP. It is the "external collaborator"
// counterpart to the batch cmd/queries tool — same dispatch, reachable
// over the network instead of stdin.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pisa-go/pisa/pkg/index"
	"github.com/pisa-go/pisa/pkg/pisalog"
	"github.com/pisa-go/pisa/pkg/scorer"
	"github.com/pisa-go/pisa/pkg/server"
)

func main() {
	basename := flag.String("index", "", "compiled index basename (required)")
	wandPath := flag.String("wand", "", "optional .wand block-max file")
	scorerName := flag.String("scorer", "bm25", "default scorer")
	addr := flag.String("addr", ":8080", "listen address")
	workers := flag.Int("workers", 0, "query worker pool size (<=0 uses all cores)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -index idx -wand idx.wand -addr :8080

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *basename == "" {
		flag.Usage()
		os.Exit(2)
	}

	ix, err := index.Open(*basename, index.Options{WandPath: *wandPath})
	if err != nil {
		log.Fatal(err)
	}
	defer ix.Close()

	sc, err := scorer.Get(scorer.DefaultParams(*scorerName))
	if err != nil {
		log.Fatal(err)
	}

	logger := pisalog.Default()
	srv := server.New(ix, sc, *workers, logger)

	logger.Printf("listening on %s (index %s)", *addr, *basename)
	log.Fatal(http.ListenAndServe(*addr, srv))
}
