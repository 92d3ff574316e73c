package metadata

import "github.com/RoaringBitmap/roaring/v2"

// Index is an inverted index from field=value to the set of record slots
// carrying it, stored as Roaring bitmaps.
//
// Supported operators:
//   - OpEqual
//   - OpIn (array of Values)
//
// for string, bool and finite numeric values, keyed by equalityKey.
// Everything else is returned as a residual filter to be evaluated against
// the document with Filter.Matches.
//
// Index is not safe for concurrent mutation; the owner serializes writes.
type Index struct {
	// key -> valueKey -> slots
	fields map[string]map[string]*roaring.Bitmap
}

// NewIndex creates an empty inverted index.
func NewIndex() *Index {
	return &Index{fields: make(map[string]map[string]*roaring.Bitmap)}
}

// Add indexes doc under slot.
func (ix *Index) Add(slot uint32, doc Document) {
	for k, v := range doc {
		vk, ok := equalityKey(v)
		if !ok {
			continue
		}
		vm, ok := ix.fields[k]
		if !ok {
			vm = make(map[string]*roaring.Bitmap)
			ix.fields[k] = vm
		}
		bm, ok := vm[vk]
		if !ok {
			bm = roaring.New()
			vm[vk] = bm
		}
		bm.Add(slot)
	}
}

// Remove drops the postings of doc for slot.
func (ix *Index) Remove(slot uint32, doc Document) {
	for k, v := range doc {
		vk, ok := equalityKey(v)
		if !ok {
			continue
		}
		vm, ok := ix.fields[k]
		if !ok {
			continue
		}
		bm, ok := vm[vk]
		if !ok {
			continue
		}
		bm.Remove(slot)
		if bm.IsEmpty() {
			delete(vm, vk)
		}
		if len(vm) == 0 {
			delete(ix.fields, k)
		}
	}
}

// Update replaces the postings of oldDoc with those of newDoc for slot.
func (ix *Index) Update(slot uint32, oldDoc, newDoc Document) {
	ix.Remove(slot, oldDoc)
	ix.Add(slot, newDoc)
}

// Select resolves the indexable filters of fs into a candidate bitmap.
//
// candidates is nil when no filter could be answered by the index (every
// slot is a candidate). residual holds the filters the caller still has to
// evaluate per document. The returned bitmap is owned by the caller.
func (ix *Index) Select(fs *FilterSet) (candidates *roaring.Bitmap, residual []Filter) {
	if fs == nil {
		return nil, nil
	}

	for _, f := range fs.Filters {
		bm, ok := ix.postings(f)
		if !ok {
			residual = append(residual, f)
			continue
		}
		if candidates == nil {
			candidates = bm
		} else {
			candidates.And(bm)
		}
	}
	return candidates, residual
}

// postings returns a fresh bitmap of slots matching f, or ok=false when f
// cannot be answered by the index.
func (ix *Index) postings(f Filter) (*roaring.Bitmap, bool) {
	switch f.Operator {
	case OpEqual:
		vk, ok := equalityKey(f.Value)
		if !ok {
			return nil, false
		}
		return ix.lookup(f.Key, vk), true

	case OpIn:
		arr, ok := f.Value.AsArray()
		if !ok {
			return nil, false
		}
		keys := make([]string, 0, len(arr))
		for _, v := range arr {
			vk, ok := equalityKey(v)
			if !ok {
				return nil, false
			}
			keys = append(keys, vk)
		}
		out := roaring.New()
		for _, vk := range keys {
			out.Or(ix.lookup(f.Key, vk))
		}
		return out, true

	default:
		return nil, false
	}
}

func (ix *Index) lookup(field, vk string) *roaring.Bitmap {
	if bm, ok := ix.fields[field][vk]; ok {
		return bm.Clone()
	}
	return roaring.New()
}
