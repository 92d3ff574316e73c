// Package distance provides the vector distance functions used to rank
// search results.
//
// Every function returns a distance where smaller means closer, so callers
// can always sort ascending regardless of the configured metric.
//
// # Supported Metrics
//
//   - MetricL2: Euclidean distance (default)
//   - MetricCosine: cosine distance (1 - cosine similarity)
//   - MetricDot: negated dot product
//
// # Usage
//
//	d := distance.L2(a, b)
//	fn, _ := distance.Provider(distance.MetricCosine)
//	d = fn(a, b)
//
// Components are accumulated in float64 so float32 inputs that differ only
// in their last bits still rank consistently.
package distance
