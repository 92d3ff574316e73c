package partvec

import (
	"fmt"
	"strings"
)

// PartitionSummary is the record count of one partition.
type PartitionSummary struct {
	Name  string
	Count int
}

// Summary describes the collection's shape and per-partition counts.
type Summary struct {
	Collection string
	Dimension  int
	Metric     string
	Partitions []PartitionSummary
	Total      int
}

// Summarize returns per-partition record counts in partition order and
// their total.
func (c *Collection) Summarize() Summary {
	s := Summary{
		Collection: c.name,
		Dimension:  c.dim,
		Metric:     c.metric.String(),
		Partitions: make([]PartitionSummary, len(c.partitions)),
	}
	for i, p := range c.partitions {
		n := p.len()
		s.Partitions[i] = PartitionSummary{Name: p.name, Count: n}
		s.Total += n
	}
	return s
}

// String renders the summary as a short plain-text report.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Collection: %s\n", s.Collection)
	fmt.Fprintf(&b, "Dimension: %d\n", s.Dimension)
	fmt.Fprintf(&b, "Metric: %s\n", s.Metric)
	b.WriteString("Partitions:\n")
	for _, p := range s.Partitions {
		fmt.Fprintf(&b, "  - %s: %d vectors\n", p.Name, p.Count)
	}
	fmt.Fprintf(&b, "Total vectors: %d\n", s.Total)
	return b.String()
}
