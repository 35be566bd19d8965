package sem

import "github.com/gogpu/shaderfront/ast"

// constructorOp maps a type to the operator that fully constructs it.
func constructorOp(t *ast.Type) ast.Operator {
	switch {
	case t.IsStruct():
		return ast.OpConstructStruct
	case t.Basic == ast.Sampler:
		if t.Sampler != nil && t.Sampler.Combined {
			return ast.OpConstructTextureSampler
		}
		return ast.OpNull
	case t.IsMatrix():
		switch t.MatrixCols {
		case 2:
			return [3]ast.Operator{ast.OpConstructMat2x2, ast.OpConstructMat2x3, ast.OpConstructMat2x4}[t.MatrixRows-2]
		case 3:
			return [3]ast.Operator{ast.OpConstructMat3x2, ast.OpConstructMat3x3, ast.OpConstructMat3x4}[t.MatrixRows-2]
		case 4:
			return [3]ast.Operator{ast.OpConstructMat4x2, ast.OpConstructMat4x3, ast.OpConstructMat4x4}[t.MatrixRows-2]
		}
		return ast.OpNull
	case t.VectorSize >= 2:
		return [3]ast.Operator{ast.OpConstructVec2, ast.OpConstructVec3, ast.OpConstructVec4}[t.VectorSize-2]
	default:
		switch t.Basic {
		case ast.Bool:
			return ast.OpConstructBool
		case ast.Float:
			return ast.OpConstructFloat
		case ast.Double:
			return ast.OpConstructDouble
		case ast.Float16:
			return ast.OpConstructFloat16
		case ast.Int:
			return ast.OpConstructInt
		case ast.Uint:
			return ast.OpConstructUint
		case ast.Int64:
			return ast.OpConstructInt64
		case ast.Uint64:
			return ast.OpConstructUint64
		case ast.Int16:
			return ast.OpConstructInt16
		case ast.Uint16:
			return ast.OpConstructUint16
		}
		return ast.OpNull
	}
}

// addUniShapeConversion converts node's shape toward the given type when
// only one direction can change. This is policy; addShapeConversion is the
// mechanism. GLSL trees already carry legal shapes, so this only acts for
// HLSL; bad shapes are still caught in promotion.
//
// Returns node unchanged when no conversion applies.
func (b *Builder) addUniShapeConversion(op ast.Operator, target *ast.Type, node ast.Typed) ast.Typed {
	if b.ctx.Dialect != HLSL {
		return node
	}

	switch op {
	case ast.OpFunctionCall, ast.OpReturn:

	case ast.OpMulAssign,
		// vector *= scalar stays a native op in the tree, not a smear;
		// same for the other compound assignments.
		ast.OpAddAssign, ast.OpSubAssign, ast.OpDivAssign,
		ast.OpAndAssign, ast.OpInclusiveOrAssign, ast.OpExclusiveOrAssign,
		ast.OpRightShiftAssign, ast.OpLeftShiftAssign:
		if node.Type().VectorSize == 1 {
			return node
		}

	case ast.OpAssign:

	case ast.OpMix:

	default:
		return node
	}

	return b.addShapeConversion(target, node)
}

// addBiShapeConversion reconciles the shapes of two operands for op,
// converting in whichever direction works. This is policy;
// addShapeConversion is the mechanism.
func (b *Builder) addBiShapeConversion(op ast.Operator, lhs, rhs ast.Typed) (ast.Typed, ast.Typed) {
	if b.ctx.Dialect != HLSL {
		return lhs, rhs
	}

	switch op {
	case ast.OpAssign, ast.OpMulAssign,
		ast.OpAddAssign, ast.OpSubAssign, ast.OpDivAssign,
		ast.OpAndAssign, ast.OpInclusiveOrAssign, ast.OpExclusiveOrAssign,
		ast.OpRightShiftAssign, ast.OpLeftShiftAssign:
		// the lhs can't change; switch to unidirectional conversion
		return lhs, b.addUniShapeConversion(op, lhs.Type(), rhs)

	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		// keep vector * scalar and matrix * vector native, not smeared
		if lhs.Type().VectorSize == 1 || rhs.Type().VectorSize == 1 {
			return lhs, rhs
		}

	case ast.OpRightShift, ast.OpLeftShift:
		// a scalar right operand with a vector left is native; the
		// reverse is not
		if rhs.Type().VectorSize == 1 {
			return lhs, rhs
		}

	case ast.OpLessThan, ast.OpGreaterThan, ast.OpLessThanEqual, ast.OpGreaterThanEqual,
		ast.OpEqual, ast.OpNotEqual,
		ast.OpLogicalAnd, ast.OpLogicalOr, ast.OpLogicalXor,
		ast.OpAnd, ast.OpInclusiveOr, ast.OpExclusiveOr,
		ast.OpMix:

	default:
		return lhs, rhs
	}

	// Bidirectional: force a scalar or vec1 side to the other's shape
	// first, then make both final shapes agree.
	if lhs.Type().IsScalarOrVec1() || rhs.Type().IsScalarOrVec1() {
		if lhs.Type().IsScalarOrVec1() {
			lhs = b.addShapeConversion(rhs.Type(), lhs)
		} else {
			rhs = b.addShapeConversion(lhs.Type(), rhs)
		}
	}
	lhs = b.addShapeConversion(rhs.Type(), lhs)
	rhs = b.addShapeConversion(lhs.Type(), rhs)
	return lhs, rhs
}

// addShapeConversion rebuilds node as a constructor of the target shape. It
// is not an error for shapes to stay different here, as some operations
// accept mixed shapes; promotion does the final shape checking.
//
// Returns node unchanged when no conversion was done.
func (b *Builder) addShapeConversion(target *ast.Type, node ast.Typed) ast.Typed {
	if node.Type().Equal(target) {
		return node
	}

	// structures and arrays don't change shape, either to or from
	if node.Type().IsStruct() || node.Type().IsArray() || target.IsStruct() || target.IsArray() {
		return node
	}

	op := constructorOp(target)

	// HLSL replicates a scalar to every component of a matrix target;
	// left to itself a constructor from one scalar would populate the
	// diagonal. Only symbols and constants may appear under several
	// parents; a compound operand is left alone, so the caller binds it
	// to a temporary first.
	if b.ctx.Dialect == HLSL && node.Type().IsScalarOrVec1() && target.IsMatrix() {
		switch node.(type) {
		case *ast.Symbol, *ast.ConstantValue:
		default:
			return node
		}
		agg := &ast.Aggregate{Loc: node.Pos()}
		for i := 0; i < target.MatrixCols*target.MatrixRows; i++ {
			agg.Children = append(agg.Children, node)
		}
		return b.SetAggregateOperator(agg, op, *target, node.Pos())
	}

	// scalar -> vector, vec1 -> vector, vector -> scalar, or
	// vector -> smaller vector
	if (node.Type().IsScalarOrVec1() && target.IsVector()) ||
		(node.Type().IsVector() && target.IsScalar()) ||
		(node.Type().IsVector() && target.IsVector() && node.Type().VectorSize > target.VectorSize) {
		return b.SetAggregateOperator(b.MakeAggregate(node, node.Pos()), op, *target, node.Pos())
	}

	return node
}
