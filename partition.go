package partvec

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/partvec/distance"
	"github.com/hupe1980/partvec/metadata"
)

// Record is a stored vector with its metadata.
type Record struct {
	Vector   []float32
	Metadata metadata.Document
}

func (r Record) clone() Record {
	return Record{
		Vector:   slices.Clone(r.Vector),
		Metadata: r.Metadata.Clone(),
	}
}

// Result is a single search hit.
type Result struct {
	ID        string
	Partition string
	Distance  float64
}

// partition stores records in insertion order. Slots are never reused, so
// iterating slots is iterating insertion order.
type partition struct {
	name    string
	ids     []string
	records []Record
	meta    *metadata.Index
}

func newPartition(name string) *partition {
	return &partition{
		name: name,
		meta: metadata.NewIndex(),
	}
}

func (p *partition) len() int {
	return len(p.records)
}

// maxPartitionSlots is the slot space of a partition; metadata postings
// address slots as uint32.
var maxPartitionSlots uint64 = math.MaxUint32

func (p *partition) insert(id string, rec Record) (uint32, error) {
	if uint64(len(p.records)) >= maxPartitionSlots {
		return 0, fmt.Errorf("%w: %q holds %d records", ErrPartitionFull, p.name, len(p.records))
	}
	slot := uint32(len(p.records))
	p.ids = append(p.ids, id)
	p.records = append(p.records, rec)
	p.meta.Add(slot, rec.Metadata)
	return slot, nil
}

func (p *partition) replace(slot uint32, rec Record) {
	p.meta.Update(slot, p.records[slot].Metadata, rec.Metadata)
	p.records[slot] = rec
}

func (p *partition) snapshot() map[string]Record {
	out := make(map[string]Record, len(p.records))
	for i, rec := range p.records {
		out[p.ids[i]] = rec.clone()
	}
	return out
}

// search scans the partition and returns the k nearest records accepted by
// filters, nearest first.
func (p *partition) search(query []float32, k int, dist distance.Func, filters *metadata.FilterSet) []Result {
	if k <= 0 {
		return []Result{}
	}

	candidates, residual := p.meta.Select(filters)

	results := make([]Result, 0, min(k, len(p.records)))
	visit := func(slot uint32) {
		rec := p.records[slot]
		for i := range residual {
			if !residual[i].Matches(rec.Metadata) {
				return
			}
		}
		results = append(results, Result{
			ID:        p.ids[slot],
			Partition: p.name,
			Distance:  dist(query, rec.Vector),
		})
	}

	if candidates != nil {
		it := candidates.Iterator()
		for it.HasNext() {
			visit(it.Next())
		}
	} else {
		for slot := range p.records {
			visit(uint32(slot))
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}
