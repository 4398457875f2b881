package index

import "fmt"

// ShardPath returns the basename for shard i of a sharded collection: a
// two-digit filename suffix, e.g. basename.00, basename.01. Sharding here
// is purely a filesystem convention resolved at open time by the
// caller (e.g. a server process opening every shard and merging partial
// top-k results) — there is no runtime coordinating the shards.
func ShardPath(basename string, i int) string {
	return fmt.Sprintf("%s.%02d", basename, i)
}

// ShardPaths returns the basenames for numShards shards of basename.
func ShardPaths(basename string, numShards int) []string {
	paths := make([]string, numShards)
	for i := range paths {
		paths[i] = ShardPath(basename, i)
	}
	return paths
}
