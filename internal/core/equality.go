package core

import "math"

// SameValue implements the SameValue identity relation: NaN is equal
// to itself, and +0 is distinguished from -0 -- that +0/-0 distinction
// is why this isn't called SameValueZero, which treats them as equal.
// For anything that isn't a float it falls back to a guarded ==
// comparison, treating dynamically non-comparable values (slices,
// maps, funcs boxed in an any) as never equal -- the same outcome a
// reference-identity check would give two distinct objects.
func SameValue(a, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		return sameFloat(av, bv)
	case float32:
		bv, ok := b.(float32)
		if !ok {
			return false
		}
		return sameFloat(float64(av), float64(bv))
	default:
		return safeEqual(a, b)
	}
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if a == 0 && b == 0 {
		return math.Signbit(a) == math.Signbit(b)
	}
	return a == b
}

// safeEqual compares two any values with ==, recovering from the panic
// Go raises when the dynamic type isn't comparable (slices, maps,
// funcs). Non-comparable values are reported as never equal.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
