package metadata

import (
	"fmt"
	"math"
)

// FromAny converts loosely typed input (decoded YAML, CLI flags, Go
// literals) into a Value. Integers must fit in int64. Lists become arrays.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x)
	case []any:
		return arrayOf(x)
	case []string:
		return arrayOf(x)
	default:
		return Value{}, fmt.Errorf("unsupported metadata value type %T", v)
	}
}

func fromUint(x uint64) (Value, error) {
	if x > math.MaxInt64 {
		return Value{}, fmt.Errorf("metadata integer %d overflows int64", x)
	}
	return Int(int64(x)), nil
}

func arrayOf[T any](xs []T) (Value, error) {
	arr := make([]Value, len(xs))
	for i, x := range xs {
		v, err := FromAny(x)
		if err != nil {
			return Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		arr[i] = v
	}
	return Array(arr), nil
}

// DocumentFromAny converts every field of m with FromAny. A nil map
// yields a nil Document.
func DocumentFromAny(m map[string]any) (Document, error) {
	if m == nil {
		return nil, nil
	}
	doc := make(Document, len(m))
	for k, v := range m {
		val, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("metadata field %q: %w", k, err)
		}
		doc[k] = val
	}
	return doc, nil
}

// MustDocument is DocumentFromAny for literals; it panics on error.
func MustDocument(m map[string]any) Document {
	doc, err := DocumentFromAny(m)
	if err != nil {
		panic(err)
	}
	return doc
}
