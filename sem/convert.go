package sem

import "github.com/gogpu/shaderfront/ast"

// addConversion converts node's basic type to the target type's, as allowed
// by the invoking operator. For implicit conversions op is not the requested
// conversion itself but the operation requiring it. Shape is left alone;
// callers reconcile shape separately.
//
// Returns the node unchanged when no conversion is needed.
func (b *Builder) addConversion(op ast.Operator, target *ast.Type, node ast.Typed) (ast.Typed, error) {
	// Does the basic type even allow the operation?
	switch node.Type().Basic {
	case ast.Void:
		return nil, ErrTypeIncompatible
	case ast.AtomicUint, ast.Sampler:
		switch {
		case op == ast.OpFunction || op == ast.OpFunctionCall:
			// opaque types can be passed to functions
		case b.ctx.Dialect == HLSL && node.Type().Basic == ast.Sampler:
			// samplers assign directly, no constructor
		case node.Type().Basic == ast.Sampler && op == ast.OpAssign && isTextureSamplerConstructor(node):
			// a combined texture-sampler being assigned
		default:
			return nil, ErrOpaqueOperandRejected
		}
	}

	if target.Equal(node.Type()) {
		return node, nil
	}

	// Structures and arrays never convert.
	if target.IsStruct() || node.Type().IsStruct() {
		return nil, ErrTypeIncompatible
	}
	if target.IsArray() || node.Type().IsArray() {
		return nil, ErrTypeIncompatible
	}

	from := node.Type().Basic
	var promoteTo ast.BasicType

	switch {
	case op.ConstructorBasicType() != ast.Void:
		// Explicit conversions: the constructor fixes the target.
		promoteTo = op.ConstructorBasicType()

	case op == ast.OpLeftShift, op == ast.OpRightShift,
		op == ast.OpLeftShiftAssign, op == ast.OpRightShiftAssign:
		// Shifts keep mixed integer types without converting; the left
		// operand determines the resulting type.
		if target.Basic.IsInteger() && from.IsInteger() {
			return node, nil
		}
		if b.ctx.Dialect == HLSL && from == ast.Bool {
			promoteTo = target.Basic
			break
		}
		return nil, ErrTypeIncompatible

	case operatorAllowsConversion(op):
		if target.Basic == from {
			return node, nil
		}
		if !b.canImplicitlyPromote(from, target.Basic, op) {
			return nil, ErrTypeIncompatible
		}
		promoteTo = target.Basic

	default:
		// Everything else requires a match.
		if target.Basic == from {
			return node, nil
		}
		return nil, ErrTypeIncompatible
	}

	// Constants are retyped in place rather than wrapped.
	if c, ok := node.(*ast.ConstantValue); ok && !c.Typ.Qualifier.SpecConstant {
		return b.promoteConstant(promoteTo, c), nil
	}

	convOp := ast.ConversionOp(from, promoteTo)
	if convOp == ast.OpNull {
		return nil, ErrTypeIncompatible
	}

	newType := *node.Type()
	newType.Basic = promoteTo
	newType.Qualifier = ast.NewQualifier(ast.StorageTemporary)
	wrapper := &ast.Unary{Op: convOp, Operand: node, Typ: newType, Loc: node.Pos()}

	// A specialization constant survives conversion only when the specific
	// conversion is itself eligible.
	if node.Type().Qualifier.IsSpecConstant() && isSpecializationOperation(wrapper) {
		wrapper.Typ.Qualifier.MakeSpecConstant()
	}

	return wrapper, nil
}

// promoteConstant reinterprets a constant's components as the new basic
// type, keeping its shape.
func (b *Builder) promoteConstant(to ast.BasicType, c *ast.ConstantValue) *ast.ConstantValue {
	typ := c.Typ
	typ.Basic = to
	typ.Qualifier = ast.NewQualifier(ast.StorageConst)
	typ.Qualifier.Precision = c.Typ.Qualifier.Precision
	return &ast.ConstantValue{Typ: typ, Values: ast.ConvertValues(c.Values, to), Loc: c.Loc}
}

// convertToBasicType converts node to the given basic type, keeping its
// shape, under the conversion policy of op.
func (b *Builder) convertToBasicType(op ast.Operator, basic ast.BasicType, node ast.Typed) (ast.Typed, error) {
	if node.Type().Basic == basic {
		return node, nil
	}
	target := *node.Type()
	target.Basic = basic
	return b.addConversion(op, &target, node)
}

func isTextureSamplerConstructor(node ast.Typed) bool {
	agg, ok := node.(*ast.Aggregate)
	return ok && agg.Op == ast.OpConstructTextureSampler
}

// operatorAllowsConversion lists the operators that may implicitly convert
// one operand to another's basic type. This is the policy table; the
// mechanism lives in addConversion.
func operatorAllowsConversion(op ast.Operator) bool {
	switch op {
	case ast.OpLessThan, ast.OpGreaterThan, ast.OpLessThanEqual, ast.OpGreaterThanEqual,
		ast.OpEqual, ast.OpNotEqual,

		ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod,

		ast.OpVectorTimesScalar, ast.OpVectorTimesMatrix,
		ast.OpMatrixTimesVector, ast.OpMatrixTimesScalar,

		ast.OpAnd, ast.OpInclusiveOr, ast.OpExclusiveOr,
		ast.OpAndAssign, ast.OpInclusiveOrAssign, ast.OpExclusiveOrAssign,
		ast.OpLogicalNot, ast.OpLogicalAnd, ast.OpLogicalOr, ast.OpLogicalXor,

		ast.OpFunctionCall, ast.OpReturn,
		ast.OpAssign, ast.OpAddAssign, ast.OpSubAssign, ast.OpMulAssign,
		ast.OpVectorTimesScalarAssign, ast.OpMatrixTimesScalarAssign,
		ast.OpDivAssign, ast.OpModAssign,

		ast.OpAtan, ast.OpClamp, ast.OpCross, ast.OpDistance, ast.OpDot, ast.OpDst,
		ast.OpFaceForward, ast.OpFma, ast.OpFrexp, ast.OpLdexp, ast.OpMix, ast.OpLit,
		ast.OpMax, ast.OpMin, ast.OpModf, ast.OpPow, ast.OpReflect, ast.OpRefract,
		ast.OpSmoothStep, ast.OpStep,

		ast.OpSequence, ast.OpConstructStruct:
		return true
	default:
		return false
	}
}

// canImplicitlyPromote reports whether the 'from' basic type may be
// implicitly converted to 'to' under the operator requiring it. This is
// about basic type only, not shape or arrays or structs.
func (b *Builder) canImplicitlyPromote(from, to ast.BasicType, op ast.Operator) bool {
	if b.ctx.promotionDisabled() {
		return false
	}

	if from == to {
		return true
	}

	if b.ctx.Dialect == HLSL {
		// 32/64-bit numeric types and bool convert freely for operator
		// classes that perform arbitrary conversion.
		fromConvertable := from == ast.Float || from == ast.Double || from == ast.Int || from == ast.Uint || from == ast.Bool
		toConvertable := to == ast.Float || to == ast.Double || to == ast.Int || to == ast.Uint || to == ast.Bool

		if fromConvertable && toConvertable {
			switch op {
			case ast.OpAssign, ast.OpAddAssign, ast.OpSubAssign, ast.OpMulAssign,
				ast.OpDivAssign, ast.OpModAssign,
				ast.OpAndAssign, ast.OpInclusiveOrAssign, ast.OpExclusiveOrAssign,
				ast.OpVectorTimesScalarAssign, ast.OpMatrixTimesScalarAssign,
				ast.OpReturn, ast.OpFunctionCall,
				ast.OpLogicalNot, ast.OpLogicalAnd, ast.OpLogicalOr, ast.OpLogicalXor,
				ast.OpConstructStruct:
				return true
			}
		}
	}

	switch to {
	case ast.Double:
		switch from {
		case ast.Int, ast.Uint, ast.Int64, ast.Uint64, ast.Int16, ast.Uint16,
			ast.Float, ast.Float16:
			return true
		}
	case ast.Float:
		switch from {
		case ast.Int, ast.Uint, ast.Int16, ast.Uint16, ast.Float16:
			return true
		case ast.Bool:
			return b.ctx.Dialect == HLSL
		}
	case ast.Uint:
		switch from {
		case ast.Int:
			return b.ctx.Version >= 400 || b.ctx.Dialect == HLSL
		case ast.Int16, ast.Uint16:
			return true
		case ast.Bool:
			return b.ctx.Dialect == HLSL
		}
	case ast.Int:
		switch from {
		case ast.Int16:
			return true
		case ast.Bool:
			return b.ctx.Dialect == HLSL
		}
	case ast.Uint64:
		switch from {
		case ast.Int, ast.Uint, ast.Int64, ast.Int16, ast.Uint16:
			return true
		}
	case ast.Int64:
		switch from {
		case ast.Int, ast.Int16:
			return true
		}
	case ast.Float16:
		switch from {
		case ast.Int16, ast.Uint16:
			return true
		}
	case ast.Uint16:
		return from == ast.Int16
	}
	return false
}
