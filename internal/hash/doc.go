// Package hash provides the stable string hash used for automatic
// partition placement.
//
// # FNV-1a
//
// Placement hashes record ids with 32-bit FNV-1a:
//
//   - Fully specified (offset basis 2166136261, prime 16777619)
//   - Identical across processes, runs and platforms
//   - No per-process seed, unlike maphash or runtime map hashing
//
// The same id therefore lands in the same partition every time the same
// partition list is used.
//
// # Usage
//
//	h := hash.FNV1a32("p4")
//	idx := hash.Bucket("p4", len(partitions))
package hash
