package sem

import "github.com/gogpu/shaderfront/ast"

// specConstantPropagates reports whether spec-constantness flows through a
// two-operand operation: one operand a specialization constant and the
// other a constant (or specialization constant).
func specConstantPropagates(a, b ast.Typed) bool {
	return (a.Type().Qualifier.IsSpecConstant() && b.Type().Qualifier.IsConstant()) ||
		(b.Type().Qualifier.IsSpecConstant() && a.Type().Qualifier.IsConstant())
}

// isSpecializationOperation implements the set of operations that may still
// yield a specialization constant: dereference and swizzle always; for
// floating-domain results only float-width conversions beyond that; for
// integer/boolean results with no floating operand, conversions among the
// integer/boolean kinds, unary negate/not/bitwise-not, and the full
// arithmetic, bitwise, shift, logical, and relational set.
func isSpecializationOperation(node ast.Typed) bool {
	op, ok := operatorOf(node)
	if !ok {
		return false
	}

	// Operations resulting in floating point are quite limited. (Some
	// floating-point operations result in bool, like ">", so those are
	// handled below.)
	if node.Type().Basic.IsFloatingDomain() {
		switch op {
		case ast.OpIndexDirect, ast.OpIndexIndirect, ast.OpIndexDirectStruct,
			ast.OpVectorSwizzle,
			ast.OpConvFloatToDouble, ast.OpConvDoubleToFloat,
			ast.OpConvFloat16ToFloat, ast.OpConvFloatToFloat16,
			ast.OpConvFloat16ToDouble, ast.OpConvDoubleToFloat16:
			return true
		default:
			return false
		}
	}

	// Floating-point arguments disqualify everything else.
	if bin, ok := node.(*ast.Binary); ok {
		if bin.Left.Type().Basic.IsFloatingDomain() ||
			bin.Right.Type().Basic.IsFloatingDomain() {
			return false
		}
	}

	// Only integer/bool-based operations remain.
	switch op {
	case ast.OpIndexDirect, ast.OpIndexIndirect, ast.OpIndexDirectStruct,
		ast.OpVectorSwizzle,

		ast.OpNegative, ast.OpLogicalNot, ast.OpBitwiseNot,

		ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpVectorTimesScalar,
		ast.OpDiv, ast.OpMod,
		ast.OpRightShift, ast.OpLeftShift,
		ast.OpAnd, ast.OpInclusiveOr, ast.OpExclusiveOr,
		ast.OpLogicalOr, ast.OpLogicalXor, ast.OpLogicalAnd,
		ast.OpEqual, ast.OpNotEqual,
		ast.OpLessThan, ast.OpGreaterThan, ast.OpLessThanEqual, ast.OpGreaterThanEqual:
		return true
	}

	// Conversions among the integer and boolean kinds qualify.
	if from, to, ok := op.ConversionTypes(); ok {
		return !from.IsFloatingDomain() && !to.IsFloatingDomain()
	}

	return false
}

func operatorOf(node ast.Typed) (ast.Operator, bool) {
	switch n := node.(type) {
	case *ast.Unary:
		return n.Op, true
	case *ast.Binary:
		return n.Op, true
	case *ast.Aggregate:
		return n.Op, true
	default:
		return ast.OpNull, false
	}
}
