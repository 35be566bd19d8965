package sem

import "github.com/gogpu/shaderfront/ast"

// promote validates an operator node whose children are already converted,
// assigns the result type, and possibly rewrites the operator to a more
// specific variant.
func (b *Builder) promote(node ast.Typed) error {
	switch n := node.(type) {
	case *ast.Unary:
		return b.promoteUnary(n)
	case *ast.Binary:
		return b.promoteBinary(n)
	case *ast.Aggregate:
		return b.promoteAggregate(n)
	default:
		return ErrOperatorNotApplicable
	}
}

func (b *Builder) promoteUnary(node *ast.Unary) error {
	operand := node.Operand

	switch node.Op {
	case ast.OpLogicalNot:
		if operand.Type().Basic != ast.Bool {
			converted, err := b.convertToBasicType(node.Op, ast.Bool, operand)
			if err != nil {
				return err
			}
			node.Operand = converted
			operand = converted
		}

	case ast.OpBitwiseNot:
		if !operand.Type().Basic.IsInteger() {
			return ErrOperatorNotApplicable
		}

	case ast.OpNegative,
		ast.OpPostIncrement, ast.OpPostDecrement,
		ast.OpPreIncrement, ast.OpPreDecrement:
		if !operand.Type().Basic.IsNumeric() {
			return ErrOperatorNotApplicable
		}

	default:
		if operand.Type().Basic != ast.Float {
			return ErrOperatorNotApplicable
		}
	}

	node.Typ = *operand.Type()
	node.Typ.Qualifier.MakeTemporary()
	return nil
}

func (b *Builder) promoteBinary(node *ast.Binary) error {
	op := node.Op
	left, right := node.Left, node.Right

	// Arrays and structures have to be exact matches.
	if (left.Type().IsArray() || right.Type().IsArray() ||
		left.Type().Basic == ast.Struct || right.Type().Basic == ast.Struct) &&
		!left.Type().Equal(right.Type()) {
		return ErrTypeIncompatible
	}

	// Base assumption: the type is the left operand's. Only deviations
	// from this are coded below.
	node.Typ = *left.Type()
	node.Typ.Qualifier = ast.NewQualifier(ast.StorageTemporary)

	// Composite and opaque types don't have pending operator changes;
	// just establish the final type and correctness.
	if left.Type().IsArray() || left.Type().Basic == ast.Struct || left.Type().Basic == ast.Sampler {
		switch op {
		case ast.OpEqual, ast.OpNotEqual:
			if left.Type().Basic == ast.Sampler {
				// can't compare samplers
				return ErrOpaqueOperandRejected
			}
			node.Typ = ast.NewType(ast.Bool, ast.StorageTemporary)
			return nil
		case ast.OpAssign:
			return nil
		default:
			return ErrOperatorNotApplicable
		}
	}

	// Only scalars, vectors, and matrices from here on.

	// HLSL implicitly promotes bool -> int for numeric operations. The
	// conversions making the operands match each other were already done.
	if b.ctx.Dialect == HLSL &&
		(left.Type().Basic == ast.Bool || right.Type().Basic == ast.Bool) {
		switch op {
		case ast.OpLessThan, ast.OpGreaterThan, ast.OpLessThanEqual, ast.OpGreaterThanEqual,
			ast.OpRightShift, ast.OpLeftShift,
			ast.OpMod,
			ast.OpAnd, ast.OpInclusiveOr, ast.OpExclusiveOr,
			ast.OpAdd, ast.OpSub, ast.OpDiv, ast.OpMul:
			l, err := b.addConversion(op, shapedType(ast.Int, left.Type().VectorSize), left)
			if err != nil {
				return err
			}
			r, err := b.addConversion(op, shapedType(ast.Int, right.Type().VectorSize), right)
			if err != nil {
				return err
			}
			node.Left, node.Right = l, r
			left, right = l, r
		}
	}

	// General checks against the individual operands; comparing left with
	// right and reconciling mixed shapes comes after.
	switch op {
	case ast.OpLessThan, ast.OpGreaterThan, ast.OpLessThanEqual, ast.OpGreaterThanEqual:
		// Relational comparisons need numeric types and promote to Boolean.
		if left.Type().Basic == ast.Bool {
			return ErrOperatorNotApplicable
		}
		node.Typ = *shapedType(ast.Bool, left.Type().VectorSize)

	case ast.OpEqual, ast.OpNotEqual:
		if b.ctx.Dialect == HLSL {
			resultWidth := left.Type().VectorSize
			if right.Type().VectorSize > resultWidth {
				resultWidth = right.Type().VectorSize
			}
			// == and != on vectors mean component-wise comparison.
			if resultWidth > 1 {
				if op == ast.OpEqual {
					op = ast.OpVectorEqual
				} else {
					op = ast.OpVectorNotEqual
				}
				node.Op = op
			}
			node.Typ = *shapedType(ast.Bool, resultWidth)
		} else {
			node.Typ = ast.NewType(ast.Bool, ast.StorageTemporary)
		}

	case ast.OpLogicalAnd, ast.OpLogicalOr, ast.OpLogicalXor:
		if b.ctx.Dialect == HLSL {
			l, err := b.convertToBasicType(op, ast.Bool, left)
			if err != nil {
				return err
			}
			r, err := b.convertToBasicType(op, ast.Bool, right)
			if err != nil {
				return err
			}
			node.Left, node.Right = l, r
			left, right = l, r
		} else {
			// logical ops operate only on scalar Booleans
			if left.Type().Basic != ast.Bool || left.Type().IsVector() || left.Type().IsMatrix() {
				return ErrOperatorNotApplicable
			}
		}
		node.Typ = *shapedType(ast.Bool, left.Type().VectorSize)

	case ast.OpRightShift, ast.OpLeftShift,
		ast.OpRightShiftAssign, ast.OpLeftShiftAssign,
		ast.OpMod, ast.OpModAssign,
		ast.OpAnd, ast.OpInclusiveOr, ast.OpExclusiveOr,
		ast.OpAndAssign, ast.OpInclusiveOrAssign, ast.OpExclusiveOrAssign:
		if b.ctx.Dialect != HLSL {
			if !left.Type().Basic.IsInteger() || !right.Type().Basic.IsInteger() {
				return ErrOperatorNotApplicable
			}
			if left.Type().IsMatrix() || right.Type().IsMatrix() {
				return ErrOperatorNotApplicable
			}
		}

	case ast.OpAdd, ast.OpSub, ast.OpDiv, ast.OpMul,
		ast.OpAddAssign, ast.OpSubAssign, ast.OpMulAssign, ast.OpDivAssign:
		if left.Type().Basic == ast.Bool || right.Type().Basic == ast.Bool {
			return ErrOperatorNotApplicable
		}
	}

	// Compare left with right; these are the cases where the operand
	// types must match.
	switch op {
	case ast.OpLessThan, ast.OpGreaterThan, ast.OpLessThanEqual, ast.OpGreaterThanEqual,
		ast.OpEqual, ast.OpNotEqual, ast.OpVectorEqual, ast.OpVectorNotEqual,
		ast.OpLogicalAnd, ast.OpLogicalOr, ast.OpLogicalXor:
		if !left.Type().Equal(right.Type()) {
			return mismatchError(left.Type(), right.Type())
		}
		return nil

	case ast.OpMod, ast.OpModAssign,
		ast.OpAnd, ast.OpInclusiveOr, ast.OpExclusiveOr,
		ast.OpAndAssign, ast.OpInclusiveOrAssign, ast.OpExclusiveOrAssign,
		ast.OpAdd, ast.OpSub, ast.OpDiv,
		ast.OpAddAssign, ast.OpSubAssign, ast.OpDivAssign:
		// Quick out in case the types do match.
		if left.Type().Equal(right.Type()) {
			return nil
		}
		// At least the basic type has to match.
		if left.Type().Basic != right.Type().Basic {
			return ErrTypeIncompatible
		}

	case ast.OpMul, ast.OpMulAssign:
		if left.Type().Basic != right.Type().Basic {
			return ErrTypeIncompatible
		}
	}

	// For all ops: both operands being scalar needs nothing further.
	if left.Type().IsScalar() && right.Type().IsScalar() {
		return nil
	}

	// For all ops: two vectors of different sizes don't mix.
	if left.Type().IsVector() && right.Type().IsVector() &&
		left.Type().VectorSize != right.Type().VectorSize && right.Type().VectorSize > 1 {
		return ErrShapeIncompatible
	}

	// A mix of scalars, vectors, or matrices remains, for non-relational
	// operations. Decide whether the operands combine and what results.
	basic := left.Type().Basic
	switch op {
	case ast.OpMul:
		lt, rt := left.Type(), right.Type()
		switch {
		case !lt.IsMatrix() && rt.IsMatrix():
			if lt.IsVector() {
				if lt.VectorSize != rt.MatrixRows {
					return ErrShapeIncompatible
				}
				node.Op = ast.OpVectorTimesMatrix
				node.Typ = *shapedType(basic, rt.MatrixCols)
			} else {
				node.Op = ast.OpMatrixTimesScalar
				node.Typ = ast.NewMatrixType(basic, ast.StorageTemporary, rt.MatrixCols, rt.MatrixRows)
			}
		case lt.IsMatrix() && !rt.IsMatrix():
			if rt.IsVector() {
				if lt.MatrixCols != rt.VectorSize {
					return ErrShapeIncompatible
				}
				node.Op = ast.OpMatrixTimesVector
				node.Typ = *shapedType(basic, lt.MatrixRows)
			} else {
				node.Op = ast.OpMatrixTimesScalar
			}
		case lt.IsMatrix() && rt.IsMatrix():
			if lt.MatrixCols != rt.MatrixRows {
				return ErrShapeIncompatible
			}
			node.Op = ast.OpMatrixTimesMatrix
			node.Typ = ast.NewMatrixType(basic, ast.StorageTemporary, rt.MatrixCols, lt.MatrixRows)
		default:
			if lt.IsVector() && rt.IsVector() {
				// leave as component product
			} else if lt.IsVector() || rt.IsVector() {
				node.Op = ast.OpVectorTimesScalar
				if rt.IsVector() {
					node.Typ = *shapedType(basic, rt.VectorSize)
				}
			}
		}

	case ast.OpMulAssign:
		lt, rt := left.Type(), right.Type()
		switch {
		case !lt.IsMatrix() && rt.IsMatrix():
			if !lt.IsVector() {
				return ErrShapeIncompatible
			}
			if lt.VectorSize != rt.MatrixRows || lt.VectorSize != rt.MatrixCols {
				return ErrShapeIncompatible
			}
			node.Op = ast.OpVectorTimesMatrixAssign
		case lt.IsMatrix() && !rt.IsMatrix():
			if rt.IsVector() {
				return ErrShapeIncompatible
			}
			node.Op = ast.OpMatrixTimesScalarAssign
		case lt.IsMatrix() && rt.IsMatrix():
			if lt.MatrixCols != lt.MatrixRows ||
				lt.MatrixCols != rt.MatrixCols || lt.MatrixCols != rt.MatrixRows {
				return ErrShapeIncompatible
			}
			node.Op = ast.OpMatrixTimesMatrixAssign
		default:
			if lt.IsVector() && rt.IsVector() {
				// leave as component product
			} else if lt.IsVector() || rt.IsVector() {
				if !lt.IsVector() {
					return ErrShapeIncompatible
				}
				node.Op = ast.OpVectorTimesScalarAssign
			}
		}

	case ast.OpRightShift, ast.OpLeftShift,
		ast.OpRightShiftAssign, ast.OpLeftShiftAssign:
		if right.Type().IsVector() &&
			(!left.Type().IsVector() || right.Type().VectorSize != left.Type().VectorSize) {
			return ErrShapeIncompatible
		}

	case ast.OpAssign,
		ast.OpAdd, ast.OpSub, ast.OpDiv, ast.OpMod,
		ast.OpAnd, ast.OpInclusiveOr, ast.OpExclusiveOr,
		ast.OpAddAssign, ast.OpSubAssign, ast.OpDivAssign, ast.OpModAssign,
		ast.OpAndAssign, ast.OpInclusiveOrAssign, ast.OpExclusiveOrAssign:
		if op == ast.OpAssign && !left.Type().SameShape(right.Type()) {
			return ErrShapeIncompatible
		}
		if (left.Type().IsMatrix() && right.Type().IsVector()) ||
			(left.Type().IsVector() && right.Type().IsMatrix()) ||
			left.Type().Basic != right.Type().Basic {
			return mismatchError(left.Type(), right.Type())
		}
		if left.Type().IsMatrix() && right.Type().IsMatrix() &&
			(left.Type().MatrixCols != right.Type().MatrixCols ||
				left.Type().MatrixRows != right.Type().MatrixRows) {
			return ErrShapeIncompatible
		}
		if left.Type().IsVector() && right.Type().IsVector() &&
			left.Type().VectorSize != right.Type().VectorSize {
			return ErrShapeIncompatible
		}
		if right.Type().IsVector() || right.Type().IsMatrix() {
			node.Typ = *right.Type()
			node.Typ.Qualifier.MakeTemporary()
		}

	default:
		return ErrOperatorNotApplicable
	}

	// One more check for assignment: the resulting type has to match the
	// left operand's.
	switch node.Op {
	case ast.OpAssign, ast.OpAddAssign, ast.OpSubAssign, ast.OpMulAssign,
		ast.OpDivAssign, ast.OpModAssign,
		ast.OpAndAssign, ast.OpInclusiveOrAssign, ast.OpExclusiveOrAssign,
		ast.OpLeftShiftAssign, ast.OpRightShiftAssign:
		if !node.Typ.Equal(left.Type()) {
			return ErrShapeIncompatible
		}
	}

	return nil
}

// promoteAggregate unifies the argument types of a multi-argument built-in.
// Only HLSL does intrinsic promotion of this kind.
func (b *Builder) promoteAggregate(node *ast.Aggregate) error {
	if b.ctx.Dialect != HLSL {
		return nil
	}

	switch node.Op {
	case ast.OpAtan, ast.OpClamp, ast.OpCross, ast.OpDistance, ast.OpDot, ast.OpDst,
		ast.OpFaceForward, ast.OpFma, ast.OpMod, ast.OpFrexp, ast.OpLdexp,
		ast.OpMix, ast.OpLit, ast.OpMax, ast.OpMin, ast.OpModf,
		ast.OpPow, ast.OpReflect, ast.OpRefract, ast.OpSmoothStep, ast.OpStep:
	default:
		return nil
	}

	args := node.Children

	// Try each argument's type in turn as the canonical type, converting
	// every other argument to it; first full success wins.
	for _, canonical := range args {
		ct, ok := canonical.(ast.Typed)
		if !ok {
			continue
		}
		converted := make([]ast.Node, len(args))
		allOK := true
		for i, arg := range args {
			at, ok := arg.(ast.Typed)
			if !ok {
				allOK = false
				break
			}
			c, err := b.addConversion(node.Op, ct.Type(), at)
			if err != nil {
				allOK = false
				break
			}
			converted[i] = c
		}
		if allOK {
			node.Children = converted
			return nil
		}
	}

	return ErrTypeIncompatible
}

// shapedType returns a temporary scalar or vector type of the given size.
func shapedType(basic ast.BasicType, size int) *ast.Type {
	t := ast.NewType(basic, ast.StorageTemporary)
	t.VectorSize = size
	return &t
}

// mismatchError picks the failure kind for two irreconcilable operand
// types: basic-type disagreement is a type error, anything else a shape one.
func mismatchError(a, b *ast.Type) error {
	if a.Basic != b.Basic {
		return ErrTypeIncompatible
	}
	return ErrShapeIncompatible
}

// hasPrecision reports whether the basic type carries a precision
// qualifier worth propagating.
func hasPrecision(b ast.BasicType) bool {
	return b == ast.Int || b == ast.Uint || b == ast.Float || b == ast.Float16
}

// updatePrecision recomputes a freshly promoted node's precision from its
// operands and, for binary nodes, pushes the result back down into
// precision-less children.
func updatePrecision(node ast.Typed) {
	switch n := node.(type) {
	case *ast.Unary:
		if !hasPrecision(n.Typ.Basic) {
			return
		}
		if p := n.Operand.Type().Qualifier.Precision; p > n.Typ.Qualifier.Precision {
			n.Typ.Qualifier.Precision = p
		}
	case *ast.Binary:
		if !hasPrecision(n.Typ.Basic) {
			return
		}
		p := n.Left.Type().Qualifier.Precision
		if rp := n.Right.Type().Qualifier.Precision; rp > p {
			p = rp
		}
		n.Typ.Qualifier.Precision = p
		if p != ast.PrecisionNone {
			propagatePrecision(n.Left, p)
			propagatePrecision(n.Right, p)
		}
	}
}

// propagatePrecision pushes a precision into a node and its operand
// subtrees, stopping at nodes that already carry one.
func propagatePrecision(node ast.Typed, p ast.Precision) {
	t := node.Type()
	if t.Qualifier.Precision != ast.PrecisionNone || !hasPrecision(t.Basic) {
		return
	}
	t.Qualifier.Precision = p

	switch n := node.(type) {
	case *ast.Binary:
		propagatePrecision(n.Left, p)
		propagatePrecision(n.Right, p)
	case *ast.Unary:
		propagatePrecision(n.Operand, p)
	case *ast.Selection:
		if tb, ok := n.TrueBlock.(ast.Typed); ok {
			propagatePrecision(tb, p)
		}
		if fb, ok := n.FalseBlock.(ast.Typed); ok {
			propagatePrecision(fb, p)
		}
	case *ast.Aggregate:
		for _, c := range n.Children {
			if ct, ok := c.(ast.Typed); ok {
				propagatePrecision(ct, p)
			}
		}
	}
}
