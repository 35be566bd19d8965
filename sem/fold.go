package sem

import "github.com/gogpu/shaderfront/ast"

// Constant folding. A Unary or Binary whose operands are all plain
// constants is replaced, during the builder call that created it, by a
// ConstantValue of the checked result type. Sequence and assignment
// operators never fold; neither does division or modulo when any divisor
// component is zero, so the node survives for the caller to diagnose.

// foldBinary evaluates op over two constants. resultType is the promoted
// node's type. Returns nil when the operator doesn't fold.
func foldBinary(op ast.Operator, left, right *ast.ConstantValue, resultType ast.Type) *ast.ConstantValue {
	if op.ModifiesState() || op == ast.OpSequence || op == ast.OpComma {
		return nil
	}

	lv, rv := left.Values, right.Values

	// Smear a scalar constant against a vector one.
	if len(lv) == 1 && len(rv) > 1 {
		lv = smear(lv[0], len(rv))
	} else if len(rv) == 1 && len(lv) > 1 {
		rv = smear(rv[0], len(lv))
	}
	if len(lv) != len(rv) {
		return nil
	}

	switch op {
	case ast.OpDiv, ast.OpMod:
		for _, d := range rv {
			if isZero(d) {
				return nil
			}
		}
	}

	out := make([]ast.Scalar, 0, len(lv))
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpVectorTimesScalar, ast.OpDiv, ast.OpMod:
		for i := range lv {
			v, ok := foldArith(op, lv[i], rv[i])
			if !ok {
				return nil
			}
			out = append(out, v)
		}

	case ast.OpAnd, ast.OpInclusiveOr, ast.OpExclusiveOr,
		ast.OpLeftShift, ast.OpRightShift:
		for i := range lv {
			v, ok := foldBitwise(op, lv[i], rv[i])
			if !ok {
				return nil
			}
			out = append(out, v)
		}

	case ast.OpLogicalAnd, ast.OpLogicalOr, ast.OpLogicalXor:
		for i := range lv {
			a, b := lv[i].Bool(), rv[i].Bool()
			var v bool
			switch op {
			case ast.OpLogicalAnd:
				v = a && b
			case ast.OpLogicalOr:
				v = a || b
			default:
				v = a != b
			}
			out = append(out, ast.BoolScalar(v))
		}

	case ast.OpLessThan, ast.OpGreaterThan, ast.OpLessThanEqual, ast.OpGreaterThanEqual:
		for i := range lv {
			v, ok := foldRelational(op, lv[i], rv[i])
			if !ok {
				return nil
			}
			out = append(out, v)
		}

	case ast.OpEqual, ast.OpNotEqual:
		// Aggregate equality over all components, one scalar result.
		eq := scalarsEqual(lv, rv)
		if op == ast.OpNotEqual {
			eq = !eq
		}
		out = append(out, ast.BoolScalar(eq))

	case ast.OpVectorEqual, ast.OpVectorNotEqual:
		for i := range lv {
			eq := scalarEqual(lv[i], rv[i])
			if op == ast.OpVectorNotEqual {
				eq = !eq
			}
			out = append(out, ast.BoolScalar(eq))
		}

	default:
		// matrix products and everything else survive as nodes
		return nil
	}

	return constantOf(resultType, out, left.Loc)
}

// foldUnary evaluates op over one constant. Returns nil when the operator
// doesn't fold.
func foldUnary(op ast.Operator, operand *ast.ConstantValue, resultType ast.Type) *ast.ConstantValue {
	out := make([]ast.Scalar, 0, len(operand.Values))
	for _, v := range operand.Values {
		switch op {
		case ast.OpNegative:
			switch {
			case v.Kind.IsFloatingDomain():
				out = append(out, ast.FloatScalar(v.Kind, -v.Float()))
			case v.Kind.IsSigned():
				out = append(out, ast.IntScalar(v.Kind, -v.Int()))
			case v.Kind.IsInteger():
				out = append(out, ast.UintScalar(v.Kind, -v.Uint()))
			default:
				return nil
			}
		case ast.OpLogicalNot:
			if v.Kind != ast.Bool {
				return nil
			}
			out = append(out, ast.BoolScalar(!v.Bool()))
		case ast.OpBitwiseNot:
			switch {
			case v.Kind.IsSigned():
				out = append(out, ast.IntScalar(v.Kind, ^v.Int()))
			case v.Kind.IsInteger():
				out = append(out, ast.UintScalar(v.Kind, ^v.Uint()))
			default:
				return nil
			}
		default:
			return nil
		}
	}
	return constantOf(resultType, out, operand.Loc)
}

// foldDereference extracts component(s) of a constant for a direct index.
func foldDereference(base *ast.ConstantValue, index int, resultType ast.Type, loc ast.Loc) *ast.ConstantValue {
	count := resultType.ComponentCount()
	start := index * count
	if start < 0 || start+count > len(base.Values) {
		return nil
	}
	return constantOf(resultType, base.Values[start:start+count], loc)
}

func foldArith(op ast.Operator, a, b ast.Scalar) (ast.Scalar, bool) {
	switch {
	case a.Kind.IsFloatingDomain():
		x, y := a.Float(), b.Float()
		switch op {
		case ast.OpAdd:
			return ast.FloatScalar(a.Kind, x+y), true
		case ast.OpSub:
			return ast.FloatScalar(a.Kind, x-y), true
		case ast.OpMul, ast.OpVectorTimesScalar:
			return ast.FloatScalar(a.Kind, x*y), true
		case ast.OpDiv:
			return ast.FloatScalar(a.Kind, x/y), true
		}
		return ast.Scalar{}, false
	case a.Kind.IsSigned():
		x, y := a.Int(), b.Int()
		switch op {
		case ast.OpAdd:
			return ast.IntScalar(a.Kind, x+y), true
		case ast.OpSub:
			return ast.IntScalar(a.Kind, x-y), true
		case ast.OpMul, ast.OpVectorTimesScalar:
			return ast.IntScalar(a.Kind, x*y), true
		case ast.OpDiv:
			return ast.IntScalar(a.Kind, x/y), true
		case ast.OpMod:
			return ast.IntScalar(a.Kind, x%y), true
		}
		return ast.Scalar{}, false
	case a.Kind.IsInteger():
		x, y := a.Uint(), b.Uint()
		switch op {
		case ast.OpAdd:
			return ast.UintScalar(a.Kind, x+y), true
		case ast.OpSub:
			return ast.UintScalar(a.Kind, x-y), true
		case ast.OpMul, ast.OpVectorTimesScalar:
			return ast.UintScalar(a.Kind, x*y), true
		case ast.OpDiv:
			return ast.UintScalar(a.Kind, x/y), true
		case ast.OpMod:
			return ast.UintScalar(a.Kind, x%y), true
		}
	}
	return ast.Scalar{}, false
}

func foldBitwise(op ast.Operator, a, b ast.Scalar) (ast.Scalar, bool) {
	if !a.Kind.IsInteger() {
		return ast.Scalar{}, false
	}
	shift := uint(b.Uint() & 63)
	if a.Kind.IsSigned() {
		x := a.Int()
		switch op {
		case ast.OpAnd:
			return ast.IntScalar(a.Kind, x&b.Int()), true
		case ast.OpInclusiveOr:
			return ast.IntScalar(a.Kind, x|b.Int()), true
		case ast.OpExclusiveOr:
			return ast.IntScalar(a.Kind, x^b.Int()), true
		case ast.OpLeftShift:
			return ast.IntScalar(a.Kind, x<<shift), true
		case ast.OpRightShift:
			return ast.IntScalar(a.Kind, x>>shift), true
		}
		return ast.Scalar{}, false
	}
	x := a.Uint()
	switch op {
	case ast.OpAnd:
		return ast.UintScalar(a.Kind, x&b.Uint()), true
	case ast.OpInclusiveOr:
		return ast.UintScalar(a.Kind, x|b.Uint()), true
	case ast.OpExclusiveOr:
		return ast.UintScalar(a.Kind, x^b.Uint()), true
	case ast.OpLeftShift:
		return ast.UintScalar(a.Kind, x<<shift), true
	case ast.OpRightShift:
		return ast.UintScalar(a.Kind, x>>shift), true
	}
	return ast.Scalar{}, false
}

func foldRelational(op ast.Operator, a, b ast.Scalar) (ast.Scalar, bool) {
	var less, equal bool
	switch {
	case a.Kind.IsFloatingDomain():
		less, equal = a.Float() < b.Float(), a.Float() == b.Float()
	case a.Kind.IsSigned():
		less, equal = a.Int() < b.Int(), a.Int() == b.Int()
	case a.Kind.IsInteger():
		less, equal = a.Uint() < b.Uint(), a.Uint() == b.Uint()
	default:
		return ast.Scalar{}, false
	}
	switch op {
	case ast.OpLessThan:
		return ast.BoolScalar(less), true
	case ast.OpGreaterThan:
		return ast.BoolScalar(!less && !equal), true
	case ast.OpLessThanEqual:
		return ast.BoolScalar(less || equal), true
	case ast.OpGreaterThanEqual:
		return ast.BoolScalar(!less), true
	}
	return ast.Scalar{}, false
}

func smear(v ast.Scalar, n int) []ast.Scalar {
	out := make([]ast.Scalar, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func isZero(v ast.Scalar) bool {
	if v.Kind.IsFloatingDomain() {
		return v.Float() == 0
	}
	return v.Bits == 0
}

func scalarEqual(a, b ast.Scalar) bool {
	if a.Kind.IsFloatingDomain() {
		return a.Float() == b.Float()
	}
	return a.Bits == b.Bits
}

func scalarsEqual(a, b []ast.Scalar) bool {
	for i := range a {
		if !scalarEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// constantOf wraps folded components as a const-qualified ConstantValue of
// the node's result type.
func constantOf(resultType ast.Type, values []ast.Scalar, loc ast.Loc) *ast.ConstantValue {
	typ := resultType
	p := typ.Qualifier.Precision
	typ.Qualifier = ast.NewQualifier(ast.StorageConst)
	typ.Qualifier.Precision = p
	return &ast.ConstantValue{Typ: typ, Values: values, Loc: loc}
}
