// Package testutil provides testing utilities for partvec.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random vectors and ids and for
// computing exact nearest neighbors as an oracle.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UniformVectors(100, 4)   // uniform [0, 1)
//	ids := testutil.IDs("doc", 100)      // doc-0 .. doc-99
//
// # Exact Search (Ground Truth)
//
//	want := testutil.BruteForceSearch(ids, vecs, query, k, distance.L2)
package testutil
