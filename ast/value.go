package ast

import "math"

// Scalar is one constant component: a kind tag plus a 64-bit payload.
// Integer payloads are stored sign-extended; float payloads use the IEEE 754
// bit representation of the float64 value.
type Scalar struct {
	Kind BasicType
	Bits uint64
	Str  string // string constants only
}

// IntScalar returns an integer scalar of the given signed kind, narrowed to
// the kind's width.
func IntScalar(kind BasicType, v int64) Scalar {
	switch kind {
	case Int16:
		v = int64(int16(v))
	case Int:
		v = int64(int32(v))
	}
	return Scalar{Kind: kind, Bits: uint64(v)}
}

// UintScalar returns an integer scalar of the given unsigned kind, narrowed
// to the kind's width.
func UintScalar(kind BasicType, v uint64) Scalar {
	switch kind {
	case Uint16:
		v = uint64(uint16(v))
	case Uint:
		v = uint64(uint32(v))
	}
	return Scalar{Kind: kind, Bits: v}
}

// FloatScalar returns a floating-point scalar of the given kind. All float
// kinds carry a float64 payload; narrower kinds round on the way in.
func FloatScalar(kind BasicType, v float64) Scalar {
	switch kind {
	case Float:
		v = float64(float32(v))
	case Float16:
		// Round through float32; a full half round-trip is not needed for
		// front-end folding.
		v = float64(float32(v))
	}
	return Scalar{Kind: kind, Bits: math.Float64bits(v)}
}

// BoolScalar returns a boolean scalar.
func BoolScalar(v bool) Scalar {
	var bits uint64
	if v {
		bits = 1
	}
	return Scalar{Kind: Bool, Bits: bits}
}

// StringScalar returns a string scalar.
func StringScalar(s string) Scalar {
	return Scalar{Kind: String, Str: s}
}

// Int returns the payload as a signed integer.
func (s Scalar) Int() int64 { return int64(s.Bits) }

// Uint returns the payload as an unsigned integer.
func (s Scalar) Uint() uint64 { return s.Bits }

// Float returns the payload as a float64.
func (s Scalar) Float() float64 { return math.Float64frombits(s.Bits) }

// Bool returns the payload as a boolean.
func (s Scalar) Bool() bool { return s.Bits != 0 }

// asFloat widens the payload to the floating domain regardless of kind.
func (s Scalar) asFloat() float64 {
	switch {
	case s.Kind.IsFloatingDomain():
		return s.Float()
	case s.Kind == Bool:
		if s.Bool() {
			return 1
		}
		return 0
	case s.Kind.IsSigned():
		return float64(s.Int())
	default:
		return float64(s.Uint())
	}
}

// asInt narrows the payload to the signed integer domain. Floats truncate
// toward zero.
func (s Scalar) asInt() int64 {
	switch {
	case s.Kind.IsFloatingDomain():
		return int64(s.Float())
	case s.Kind == Bool:
		if s.Bool() {
			return 1
		}
		return 0
	default:
		return s.Int()
	}
}

// asUint narrows the payload to the unsigned integer domain.
func (s Scalar) asUint() uint64 {
	switch {
	case s.Kind.IsFloatingDomain():
		return uint64(int64(s.Float()))
	case s.Kind == Bool:
		if s.Bool() {
			return 1
		}
		return 0
	default:
		return s.Uint()
	}
}

// Convert reinterprets the scalar as the given basic type, per the numeric
// conversion rules of the source languages (truncation toward zero for
// float→int, 0/1 for bool sources, non-zero test for bool targets).
func (s Scalar) Convert(to BasicType) Scalar {
	if s.Kind == to {
		return s
	}
	switch {
	case to == Bool:
		switch {
		case s.Kind.IsFloatingDomain():
			return BoolScalar(s.Float() != 0)
		default:
			return BoolScalar(s.Bits != 0)
		}
	case to.IsFloatingDomain():
		return FloatScalar(to, s.asFloat())
	case to.IsSigned():
		return IntScalar(to, s.asInt())
	case to.IsInteger():
		return UintScalar(to, s.asUint())
	default:
		return s
	}
}

// ConvertValues reinterprets every component of a constant value array.
func ConvertValues(values []Scalar, to BasicType) []Scalar {
	out := make([]Scalar, len(values))
	for i, v := range values {
		out[i] = v.Convert(to)
	}
	return out
}
