package metadata

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// Matches reports whether doc satisfies f. A missing field never matches,
// and neither does a filter whose value could not be converted.
//
// Equality goes through the same key normalisation as Index, so a filter
// selects the same records whether the index or a document scan answers it.
func (f *Filter) Matches(doc Document) bool {
	if f.Value.Kind == KindInvalid {
		return false
	}
	v, ok := doc[f.Key]
	if !ok {
		return false
	}

	switch f.Operator {
	case OpEqual:
		return equal(v, f.Value)
	case OpNotEqual:
		return !equal(v, f.Value)
	case OpIn:
		return f.Value.Kind == KindArray && slices.ContainsFunc(f.Value.A, func(x Value) bool {
			return equal(v, x)
		})
	case OpContains:
		return v.Kind == KindString && f.Value.Kind == KindString &&
			strings.Contains(v.s.Value(), f.Value.s.Value())
	}

	c, ok := compareNumbers(v, f.Value)
	if !ok {
		return false
	}
	switch f.Operator {
	case OpGreaterThan:
		return c > 0
	case OpGreaterEqual:
		return c >= 0
	case OpLessThan:
		return c < 0
	case OpLessEqual:
		return c <= 0
	default:
		return false
	}
}

// Matches reports whether doc satisfies every filter of the set.
// A nil or empty set matches everything.
func (fs *FilterSet) Matches(doc Document) bool {
	if fs == nil {
		return true
	}
	for i := range fs.Filters {
		if !fs.Filters[i].Matches(doc) {
			return false
		}
	}
	return true
}

// twoPow63 bounds the floats that convert to int64 without overflow.
const twoPow63 = float64(1 << 63)

// equalityKey returns the key under which v is indexed. Two scalars are
// equal exactly when their keys are. Integral floats in int64 range share
// the int key space, so Int(3) and Float(3) collide while
// Float(2^53) and Int(2^53+1) do not.
//
// Null, arrays, NaN and infinities have no key.
func equalityKey(v Value) (string, bool) {
	switch v.Kind {
	case KindString, KindBool, KindInt:
		return v.Key(), true
	case KindFloat:
		f := v.F64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		if f == math.Trunc(f) && f >= -twoPow63 && f < twoPow63 {
			return Int(int64(f)).Key(), true
		}
		return v.Key(), true
	default:
		return "", false
	}
}

func equal(a, b Value) bool {
	if a.Kind == KindArray || b.Kind == KindArray {
		if a.Kind != b.Kind || len(a.A) != len(b.A) {
			return false
		}
		for i := range a.A {
			if !equal(a.A[i], b.A[i]) {
				return false
			}
		}
		return true
	}
	if a.Kind == KindNull || b.Kind == KindNull {
		return a.Kind == b.Kind
	}

	ka, okA := equalityKey(a)
	kb, okB := equalityKey(b)
	return okA && okB && ka == kb
}

// compareNumbers orders two numeric values without rounding ints through
// float64. ok is false for non-numbers and NaN.
func compareNumbers(a, b Value) (c int, ok bool) {
	ai, aInt := a.AsInt64()
	bi, bInt := b.AsInt64()
	af, aFloat := a.AsFloat64()
	bf, bFloat := b.AsFloat64()

	if (aFloat && math.IsNaN(af)) || (bFloat && math.IsNaN(bf)) {
		return 0, false
	}

	switch {
	case aInt && bInt:
		return cmp.Compare(ai, bi), true
	case aInt && bFloat:
		return compareIntFloat(ai, bf), true
	case aFloat && bInt:
		return -compareIntFloat(bi, af), true
	case aFloat && bFloat:
		return cmp.Compare(af, bf), true
	default:
		return 0, false
	}
}

func compareIntFloat(i int64, f float64) int {
	switch {
	case f >= twoPow63:
		return -1
	case f < -twoPow63:
		return 1
	}
	t := math.Trunc(f)
	if c := cmp.Compare(i, int64(t)); c != 0 {
		return c
	}
	// Same integral part: the fraction decides.
	return cmp.Compare(t, f)
}
