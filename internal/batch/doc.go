// Package batch chunks many independent documents concurrently.
//
// The chunking engine is single-threaded per document; parallelism happens
// here, across documents, with an errgroup and a bounded worker pool.
//
// # Basic Usage
//
//	runner := batch.New(chunker.Default())
//	paths, err := batch.DiscoverFiles("/data/policies", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, stats, err := runner.Run(ctx, batch.DocumentsFromPaths(paths), &batch.Config{
//	    Workers:  4,
//	    Strategy: types.StrategyBalanced,
//	})
//
// Results come back in input order. A document that cannot be loaded carries
// its error in DocumentResult.Err and is counted in Statistics.Failed; the
// run itself only fails when the context is cancelled.
//
// Documents with inline Text skip loading entirely, so the runner also works
// for callers that already hold document text in memory.
package batch
