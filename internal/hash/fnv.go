package hash

import "hash/fnv"

// FNV1a32 returns the 32-bit FNV-1a hash of s.
func FNV1a32(s string) uint32 {
	h := fnv.New32a()
	// Write on a hash.Hash never returns an error.
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// Bucket maps s onto [0, n) using FNV1a32. n must be positive.
func Bucket(s string, n int) int {
	return int(FNV1a32(s) % uint32(n))
}
