// partition_fwd_index splits a forward index into numShards forward index
// files, round-robin by document, each ready to run independently through
// invert/compress/create_wand_data and be opened as one shard of a
// sharded collection (see pkg/index.ShardPaths — sharding is purely a
// filename convention, there is no runtime shard coordinator).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pisa-go/pisa/pkg/build"
	"github.com/pisa-go/pisa/pkg/index"
)

func main() {
	in := flag.String("input", "", "forward index file from parse_collection (required)")
	out := flag.String("output", "", "output basename; writes <output>.00, <output>.01, ... (required)")
	numShards := flag.Int("shards", 0, "number of shards to split into (required, > 0)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -input fwd.json -output shard -shards 4

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *in == "" || *out == "" || *numShards <= 0 {
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

	shards := make([]build.ForwardIndex, *numShards)
	for i, e := range fwd.Entries {
		shard := i % *numShards
		shards[shard].Entries = append(shards[shard].Entries, e)
	}

	paths := index.ShardPaths(*out, *numShards)
	for i, path := range paths {
		w, err := os.Create(path)
		if err != nil {
			log.Fatal(err)
		}
		err = build.WriteForwardIndex(w, &shards[i])
		w.Close()
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote shard %d (%d documents) to %s", i, len(shards[i].Entries), path)
	}
}
