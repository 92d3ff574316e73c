// Package partvec provides an in-memory vector collection split into a fixed
// set of named partitions.
//
// Every record carries a vector of the collection's fixed dimension plus a
// metadata document. Record ids are unique across the whole collection and a
// record stays in the partition it was first placed in for its lifetime.
// Search is an exact brute-force scan of a single partition.
//
// # Quick Start
//
//	c, err := partvec.New("products", 4,
//	    partvec.WithPartitions("fruits", "juices", "others"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c.UpsertTo("fruits", "p1", []float32{0.9, 0.1, 0, 0}, metadata.Document{
//	    "name": metadata.String("Red apple"),
//	})
//	c.Upsert("p4", []float32{0.1, 0.05, 0.9, 0.3}, nil) // placed by FNV-1a
//
//	results, err := c.Search("fruits", []float32{0.88, 0.12, 0, 0}, 2)
//
// # Placement
//
// Upsert places a new id into ChoosePartition(id), the FNV-1a hash of the id
// modulo the number of partitions. UpsertTo places it explicitly. Once an id
// is stored, later upserts replace its vector and metadata in place and any
// requested partition is ignored.
//
// # Search
//
//	results, err := c.Query(q).In("fruits").KNN(5).
//	    Where(metadata.Eq("category", "fruit")).
//	    Execute()
//
// Results are ordered by ascending distance; ties keep insertion order.
// SearchPartitions runs one search per partition concurrently and merges
// the results.
//
// # Concurrency
//
// A Collection is not safe for concurrent use. Wrap it with NewSafe to share
// it between goroutines.
package partvec
