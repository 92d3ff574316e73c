// Package pk maps record ids to their physical location in a collection.
package pk

// Location identifies where a record lives: the partition ordinal (position
// in the collection's partition list) and the slot inside that partition.
type Location struct {
	Partition int
	Slot      uint32
}

// Index maps id -> Location. It is the secondary index that lets upsert and
// point lookup resolve an id without scanning every partition.
//
// Index is not safe for concurrent use; the owning collection serializes
// access.
type Index struct {
	m map[string]Location
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{m: make(map[string]Location)}
}

// Lookup returns the location for id.
func (idx *Index) Lookup(id string) (Location, bool) {
	loc, ok := idx.m[id]
	return loc, ok
}

// Insert records the location of a new id. Locations are immutable once
// set; Insert reports false and leaves the index unchanged if id exists.
func (idx *Index) Insert(id string, loc Location) bool {
	if _, ok := idx.m[id]; ok {
		return false
	}
	idx.m[id] = loc
	return true
}

// Len returns the number of indexed ids.
func (idx *Index) Len() int {
	return len(idx.m)
}
