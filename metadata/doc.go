// Package metadata provides the typed metadata documents attached to records
// and the filters evaluated against them.
//
// # Metadata Types
//
// Metadata values can be:
//
//   - String: metadata.String("fruit")
//   - Int: metadata.Int(2024)
//   - Float: metadata.Float(3.14)
//   - Bool: metadata.Bool(true)
//   - Array: metadata.Array([]metadata.Value{...})
//
// Example:
//
//	meta := metadata.Document{
//	    "name":     metadata.String("Red apple"),
//	    "category": metadata.String("fruit"),
//	}
//
// Loose map[string]any input is converted with DocumentFromAny.
//
// # Filters
//
//   - Eq(field, value), Ne(field, value)
//   - Gt / Gte / Lt / Lte for numeric values
//   - In(field, values...)
//   - Contains(field, substring)
//
// A FilterSet matches when all of its filters match. Equality and in
// filters can be answered by an Index (Roaring bitmaps keyed by record
// slot) without touching the documents. Both paths agree on equality: an
// int and a float are equal when they denote the same integer.
package metadata
