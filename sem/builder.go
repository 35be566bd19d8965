package sem

import "github.com/gogpu/shaderfront/ast"

// Builder constructs typed tree nodes, one call per syntactic construct.
// Every call either returns a finished, well-typed node or fails with one of
// the sentinel errors in this package; the caller turns failures into
// diagnostics and decides whether to continue.
//
// A Builder is not safe for concurrent use; independent compilation units
// get independent builders.
type Builder struct {
	ctx Context
}

// NewBuilder returns a builder for the given compilation context.
func NewBuilder(ctx Context) *Builder {
	return &Builder{ctx: ctx}
}

// Context returns the compilation context the builder was created with.
func (b *Builder) Context() Context { return b.ctx }

// AddSymbol creates a symbol reference node.
func (b *Builder) AddSymbol(id int, name string, typ ast.Type, loc ast.Loc) *ast.Symbol {
	return &ast.Symbol{ID: id, Name: name, Typ: typ, Loc: loc}
}

// AddConstSymbol creates a symbol reference carrying the declared constant
// component values, so uses of the symbol can fold.
func (b *Builder) AddConstSymbol(id int, name string, typ ast.Type, values []ast.Scalar, loc ast.Loc) *ast.Symbol {
	return &ast.Symbol{ID: id, Name: name, Typ: typ, ConstValues: values, Loc: loc}
}

// AddConstantValue creates a constant node of the given type; values carries
// one scalar per component, column-major for matrices.
func (b *Builder) AddConstantValue(values []ast.Scalar, typ ast.Type, loc ast.Loc, literal bool) *ast.ConstantValue {
	typ.Qualifier.Storage = ast.StorageConst
	return &ast.ConstantValue{Typ: typ, Values: values, Literal: literal, Loc: loc}
}

func (b *Builder) scalarConstant(v ast.Scalar, basic ast.BasicType, loc ast.Loc, literal bool) *ast.ConstantValue {
	return b.AddConstantValue([]ast.Scalar{v}, ast.NewType(basic, ast.StorageConst), loc, literal)
}

// AddBoolConstant creates a scalar bool constant.
func (b *Builder) AddBoolConstant(v bool, loc ast.Loc, literal bool) *ast.ConstantValue {
	return b.scalarConstant(ast.BoolScalar(v), ast.Bool, loc, literal)
}

// AddIntConstant creates a scalar int constant.
func (b *Builder) AddIntConstant(v int32, loc ast.Loc, literal bool) *ast.ConstantValue {
	return b.scalarConstant(ast.IntScalar(ast.Int, int64(v)), ast.Int, loc, literal)
}

// AddUintConstant creates a scalar uint constant.
func (b *Builder) AddUintConstant(v uint32, loc ast.Loc, literal bool) *ast.ConstantValue {
	return b.scalarConstant(ast.UintScalar(ast.Uint, uint64(v)), ast.Uint, loc, literal)
}

// AddInt64Constant creates a scalar int64 constant.
func (b *Builder) AddInt64Constant(v int64, loc ast.Loc, literal bool) *ast.ConstantValue {
	return b.scalarConstant(ast.IntScalar(ast.Int64, v), ast.Int64, loc, literal)
}

// AddUint64Constant creates a scalar uint64 constant.
func (b *Builder) AddUint64Constant(v uint64, loc ast.Loc, literal bool) *ast.ConstantValue {
	return b.scalarConstant(ast.UintScalar(ast.Uint64, v), ast.Uint64, loc, literal)
}

// AddInt16Constant creates a scalar int16 constant.
func (b *Builder) AddInt16Constant(v int16, loc ast.Loc, literal bool) *ast.ConstantValue {
	return b.scalarConstant(ast.IntScalar(ast.Int16, int64(v)), ast.Int16, loc, literal)
}

// AddUint16Constant creates a scalar uint16 constant.
func (b *Builder) AddUint16Constant(v uint16, loc ast.Loc, literal bool) *ast.ConstantValue {
	return b.scalarConstant(ast.UintScalar(ast.Uint16, uint64(v)), ast.Uint16, loc, literal)
}

// AddFloatConstant creates a scalar constant of a floating kind (Float,
// Double, or Float16).
func (b *Builder) AddFloatConstant(v float64, kind ast.BasicType, loc ast.Loc, literal bool) *ast.ConstantValue {
	return b.scalarConstant(ast.FloatScalar(kind, v), kind, loc, literal)
}

// AddStringConstant creates a string constant.
func (b *Builder) AddStringConstant(s string, loc ast.Loc) *ast.ConstantValue {
	return b.scalarConstant(ast.StringScalar(s), ast.String, loc, true)
}

// AddBinaryMath connects two nodes with a binary operation, converting and
// promoting the operands as the operator allows. Both-constant results fold
// to a ConstantValue; spec-constantness propagates per the classifier.
func (b *Builder) AddBinaryMath(op ast.Operator, left, right ast.Typed, loc ast.Loc) (ast.Typed, error) {
	// No operations work on blocks.
	if left.Type().Basic == ast.Block || right.Type().Basic == ast.Block {
		return nil, ErrOpaqueOperandRejected
	}

	// Try converting the children's basic types to compatible types:
	// right toward left first, then left toward right.
	if converted, err := b.addConversion(op, left.Type(), right); err == nil {
		right = converted
	} else if converted, err2 := b.addConversion(op, right.Type(), left); err2 == nil {
		left = converted
	} else {
		return nil, err
	}

	// Reconcile the children's shapes.
	left, right = b.addBiShapeConversion(op, left, right)

	if loc == (ast.Loc{}) {
		loc = left.Pos()
	}
	node := &ast.Binary{Op: op, Left: left, Right: right, Loc: loc}
	if err := b.promoteBinary(node); err != nil {
		return nil, err
	}
	updatePrecision(node)

	// Both (non-specialization) constants must fold. The sequence
	// operator is handled in AddComma instead.
	lc, lok := node.Left.(*ast.ConstantValue)
	rc, rok := node.Right.(*ast.ConstantValue)
	if lok && rok && !lc.Typ.Qualifier.SpecConstant && !rc.Typ.Qualifier.SpecConstant {
		if folded := foldBinary(node.Op, lc, rc, node.Typ); folded != nil {
			return folded, nil
		}
	}

	if specConstantPropagates(node.Left, node.Right) && isSpecializationOperation(node) {
		node.Typ.Qualifier.MakeSpecConstant()
	}

	return node, nil
}

// AddAssign connects two nodes through an assignment. Like binary math,
// except conversion can only go from right to left.
func (b *Builder) AddAssign(op ast.Operator, left, right ast.Typed, loc ast.Loc) (ast.Typed, error) {
	if left.Type().Basic == ast.Block || right.Type().Basic == ast.Block {
		return nil, ErrOpaqueOperandRejected
	}

	converted, err := b.addConversion(op, left.Type(), right)
	if err != nil {
		return nil, err
	}
	right = b.addUniShapeConversion(op, left.Type(), converted)

	if loc == (ast.Loc{}) {
		loc = left.Pos()
	}
	node := &ast.Binary{Op: op, Left: left, Right: right, Loc: loc}
	if err := b.promoteBinary(node); err != nil {
		return nil, err
	}
	updatePrecision(node)

	return node, nil
}

// AddIndex connects a composite base with an offset: array element, vector
// component, matrix column, or struct member. A direct index into a plain
// constant folds to the selected component(s).
func (b *Builder) AddIndex(op ast.Operator, base, index ast.Typed, loc ast.Loc) (ast.Typed, error) {
	elem, err := elementType(op, base.Type(), index)
	if err != nil {
		return nil, err
	}

	if op == ast.OpIndexDirect {
		if values := ast.ConstantValues(base); values != nil {
			if ic, ok := index.(*ast.ConstantValue); ok {
				bc := &ast.ConstantValue{Typ: *base.Type(), Values: values, Loc: base.Pos()}
				if folded := foldDereference(bc, int(ic.Values[0].Int()), elem, loc); folded != nil {
					return folded, nil
				}
			}
		}
	}

	node := &ast.Binary{Op: op, Left: base, Right: index, Typ: elem, Loc: loc}
	if base.Type().Qualifier.IsSpecConstant() && ast.IsConstant(index) && isSpecializationOperation(node) {
		node.Typ.Qualifier.MakeSpecConstant()
	}
	return node, nil
}

// elementType derives the type selected out of a composite by an index
// operator.
func elementType(op ast.Operator, base *ast.Type, index ast.Typed) (ast.Type, error) {
	switch {
	case op == ast.OpIndexDirectStruct:
		if !base.IsStruct() {
			return ast.Type{}, ErrOperatorNotApplicable
		}
		ic, ok := index.(*ast.ConstantValue)
		if !ok {
			return ast.Type{}, ErrOperatorNotApplicable
		}
		i := int(ic.Values[0].Int())
		if i < 0 || i >= len(base.Members) {
			return ast.Type{}, ErrOperatorNotApplicable
		}
		elem := *base.Members[i].Type
		elem.Qualifier = ast.NewQualifier(ast.StorageTemporary)
		elem.Qualifier.Precision = base.Members[i].Type.Qualifier.Precision
		return elem, nil

	case base.IsArray():
		elem := *base
		elem.ArraySize = 0
		elem.Qualifier = ast.NewQualifier(ast.StorageTemporary)
		elem.Qualifier.Precision = base.Qualifier.Precision
		return elem, nil

	case base.IsMatrix():
		col := ast.NewVectorType(base.Basic, ast.StorageTemporary, base.MatrixRows)
		col.Qualifier.Precision = base.Qualifier.Precision
		return col, nil

	case base.IsVector():
		elem := ast.NewType(base.Basic, ast.StorageTemporary)
		elem.Qualifier.Precision = base.Qualifier.Precision
		return elem, nil

	default:
		return ast.Type{}, ErrOperatorNotApplicable
	}
}

// AddSwizzle selects components of a vector. One selector produces a direct
// index; several produce a swizzle node whose right child is the selector
// sequence.
func (b *Builder) AddSwizzle(base ast.Typed, selectors []int, loc ast.Loc) (ast.Typed, error) {
	if !base.Type().IsVector() && !base.Type().IsScalar() {
		return nil, ErrOperatorNotApplicable
	}
	if len(selectors) == 0 || len(selectors) > 4 {
		return nil, ErrShapeIncompatible
	}
	for _, s := range selectors {
		if s < 0 || s >= base.Type().VectorSize {
			return nil, ErrShapeIncompatible
		}
	}

	if len(selectors) == 1 {
		return b.AddIndex(ast.OpIndexDirect, base, b.AddIntConstant(int32(selectors[0]), loc, false), loc)
	}

	resultType := ast.NewVectorType(base.Type().Basic, ast.StorageTemporary, len(selectors))
	resultType.Qualifier.Precision = base.Type().Qualifier.Precision

	// Selected constant components fold immediately.
	if values := ast.ConstantValues(base); values != nil {
		out := make([]ast.Scalar, len(selectors))
		for i, s := range selectors {
			out[i] = values[s]
		}
		return constantOf(resultType, out, loc), nil
	}

	seq := &ast.Aggregate{Op: ast.OpSequence, Loc: loc}
	for _, s := range selectors {
		seq.Children = append(seq.Children, b.AddIntConstant(int32(s), loc, false))
	}

	node := &ast.Binary{Op: ast.OpVectorSwizzle, Left: base, Right: seq, Typ: resultType, Loc: loc}
	if base.Type().Qualifier.IsSpecConstant() && isSpecializationOperation(node) {
		node.Typ.Qualifier.MakeSpecConstant()
	}
	return node, nil
}

// AddUnaryMath adds one node as the parent of another that it operates on.
// Scalar construction operators reduce entirely to a conversion; everything
// else is promoted, precision-updated, folded if constant, and classified.
func (b *Builder) AddUnaryMath(op ast.Operator, child ast.Typed, loc ast.Loc) (ast.Typed, error) {
	if child.Type().Basic == ast.Block {
		return nil, ErrOpaqueOperandRejected
	}

	switch op {
	case ast.OpLogicalNot:
		if b.ctx.Dialect != HLSL {
			t := child.Type()
			if t.Basic != ast.Bool || t.IsMatrix() || t.IsArray() || t.IsVector() {
				return nil, ErrOperatorNotApplicable
			}
		}

	case ast.OpPostIncrement, ast.OpPreIncrement,
		ast.OpPostDecrement, ast.OpPreDecrement,
		ast.OpNegative:
		if child.Type().Basic == ast.Struct || child.Type().IsArray() {
			return nil, ErrOperatorNotApplicable
		}
	}

	// Promote the operand for a scalar construction operator; for those,
	// the conversion is the whole operation.
	if newBasic := op.ConstructorBasicType(); newBasic != ast.Void {
		target := *child.Type()
		target.Basic = newBasic
		converted, err := b.addConversion(op, &target, child)
		if err != nil {
			return nil, err
		}
		return converted, nil
	}

	if loc == (ast.Loc{}) {
		loc = child.Pos()
	}
	node := &ast.Unary{Op: op, Operand: child, Loc: loc}
	if err := b.promoteUnary(node); err != nil {
		return nil, err
	}
	updatePrecision(node)

	// A (non-specialization) constant operand must fold.
	if c, ok := node.Operand.(*ast.ConstantValue); ok && !c.Typ.Qualifier.SpecConstant {
		if folded := foldUnary(node.Op, c, node.Typ); folded != nil {
			return folded, nil
		}
	}

	if node.Operand.Type().Qualifier.IsSpecConstant() && isSpecializationOperation(node) {
		node.Typ.Qualifier.MakeSpecConstant()
	}

	return node, nil
}

// AddBuiltInCall builds a call to a built-in function with a known return
// type. Single-argument calls become unary nodes; multi-argument calls
// become operator aggregates with dialect-dependent argument unification.
func (b *Builder) AddBuiltInCall(op ast.Operator, args []ast.Typed, returnType ast.Type, loc ast.Loc) (ast.Typed, error) {
	if len(args) == 0 {
		return nil, ErrOperatorNotApplicable
	}

	if len(args) == 1 {
		child := args[0]
		if c, ok := child.(*ast.ConstantValue); ok && !c.Typ.Qualifier.SpecConstant {
			if folded := foldUnary(op, c, returnType); folded != nil {
				return folded, nil
			}
		}
		return &ast.Unary{Op: op, Operand: child, Typ: returnType, Loc: loc}, nil
	}

	agg := &ast.Aggregate{Op: op, Loc: loc}
	for _, a := range args {
		agg.Children = append(agg.Children, a)
	}
	if err := b.promoteAggregate(agg); err != nil {
		return nil, err
	}
	agg.Typ = returnType
	return agg, nil
}

// AddComma joins two expressions with the sequence operator; the result is
// the right operand's value. Comma never folds.
func (b *Builder) AddComma(left, right ast.Typed, loc ast.Loc) ast.Typed {
	agg := b.GrowAggregate(left, right, loc)
	agg.Op = ast.OpComma
	agg.Typ = *right.Type()
	agg.Typ.Qualifier.MakeTemporary()
	return agg
}

// AddMethod creates an object-directed call node such as array length.
func (b *Builder) AddMethod(object ast.Typed, typ ast.Type, name string, loc ast.Loc) *ast.Method {
	return &ast.Method{Object: object, Name: name, Typ: typ, Loc: loc}
}

// MakeAggregate turns an existing node into a one-child untagged aggregate.
func (b *Builder) MakeAggregate(node ast.Node, loc ast.Loc) *ast.Aggregate {
	if node == nil {
		return nil
	}
	return &ast.Aggregate{Children: []ast.Node{node}, Loc: loc}
}

// GrowAggregate combines two nodes into an aggregate, reusing the left node
// when it is already an uncommitted (untagged) aggregate. Works with nil on
// either side; returns nil only when both are nil.
func (b *Builder) GrowAggregate(left, right ast.Node, loc ast.Loc) *ast.Aggregate {
	if left == nil && right == nil {
		return nil
	}

	agg, ok := left.(*ast.Aggregate)
	if !ok || agg == nil || agg.Op != ast.OpNull {
		agg = &ast.Aggregate{Loc: loc}
		if left != nil {
			agg.Children = append(agg.Children, left)
		}
	}
	if right != nil {
		agg.Children = append(agg.Children, right)
	}
	agg.Loc = loc
	return agg
}

// SetAggregateOperator commits an operator onto a node, wrapping it into an
// aggregate first unless it is already an uncommitted one. This is the safe
// way to establish a call's operation over its parameters; statement
// sequences set their operator directly instead.
func (b *Builder) SetAggregateOperator(node ast.Node, op ast.Operator, typ ast.Type, loc ast.Loc) *ast.Aggregate {
	var agg *ast.Aggregate

	if node != nil {
		var ok bool
		agg, ok = node.(*ast.Aggregate)
		if !ok || agg.Op != ast.OpNull {
			agg = &ast.Aggregate{Loc: loc}
			agg.Children = append(agg.Children, node)
			if loc == (ast.Loc{}) {
				agg.Loc = node.Pos()
			}
		}
	} else {
		agg = &ast.Aggregate{Loc: loc}
	}

	agg.Op = op
	agg.Typ = typ
	if loc != (ast.Loc{}) {
		agg.Loc = loc
	}
	return agg
}

// AddSelectionStmt creates a statement-level if-then-else. Either path may
// be nil. The false path of a compile-time-constant condition is kept, as
// later analysis still wants to see it.
func (b *Builder) AddSelectionStmt(cond ast.Typed, trueBlock, falseBlock ast.Node, loc ast.Loc) *ast.Selection {
	return &ast.Selection{Cond: cond, TrueBlock: trueBlock, FalseBlock: falseBlock, Loc: loc}
}

// AddSelection creates a value-producing ternary. The branch types are
// unified by conversion; a vector condition lowers to a component-wise mix
// over (false, true, condition) with no Selection node; a scalar condition
// over all constants picks the branch immediately.
func (b *Builder) AddSelection(cond, trueBlock, falseBlock ast.Typed, loc ast.Loc) (ast.Typed, error) {
	// Void on both sides means this is really a statement.
	if trueBlock.Type().Basic == ast.Void && falseBlock.Type().Basic == ast.Void {
		return b.AddSelectionStmt(cond, trueBlock, falseBlock, loc), nil
	}

	// Get compatible types.
	if converted, err := b.addConversion(ast.OpSequence, trueBlock.Type(), falseBlock); err == nil {
		falseBlock = converted
	} else if converted, err2 := b.addConversion(ast.OpSequence, falseBlock.Type(), trueBlock); err2 == nil {
		trueBlock = converted
	} else {
		return nil, err
	}

	// A vector condition becomes a mix.
	if !cond.Type().IsScalarOrVec1() {
		target := shapedType(trueBlock.Type().Basic, cond.Type().VectorSize)
		trueBlock = b.addUniShapeConversion(ast.OpMix, target, trueBlock)
		falseBlock = b.addUniShapeConversion(ast.OpMix, target, falseBlock)

		if !falseBlock.Type().Equal(trueBlock.Type()) {
			return nil, mismatchError(trueBlock.Type(), falseBlock.Type())
		}

		mix := &ast.Aggregate{
			Op:       ast.OpMix,
			Children: []ast.Node{falseBlock, trueBlock, cond},
			Typ:      *target,
			Loc:      loc,
		}
		return mix, nil
	}

	// Scalar condition: shape-match the branches.
	trueBlock, falseBlock = b.addBiShapeConversion(ast.OpMix, trueBlock, falseBlock)
	if !falseBlock.Type().Equal(trueBlock.Type()) {
		return nil, mismatchError(trueBlock.Type(), falseBlock.Type())
	}

	// Eliminate the selection outright when everything is constant.
	if cc, ok := cond.(*ast.ConstantValue); ok && !cc.Typ.Qualifier.SpecConstant {
		_, tok := trueBlock.(*ast.ConstantValue)
		_, fok := falseBlock.(*ast.ConstantValue)
		if tok && fok {
			if cc.Values[0].Bool() {
				return trueBlock, nil
			}
			return falseBlock, nil
		}
	}

	node := &ast.Selection{Cond: cond, TrueBlock: trueBlock, FalseBlock: falseBlock, Typ: *trueBlock.Type(), Loc: loc}
	p := trueBlock.Type().Qualifier.Precision
	if fp := falseBlock.Type().Qualifier.Precision; fp > p {
		p = fp
	}

	if (cond.Type().Qualifier.IsConstant() && specConstantPropagates(trueBlock, falseBlock)) ||
		(cond.Type().Qualifier.IsSpecConstant() &&
			trueBlock.Type().Qualifier.IsConstant() && falseBlock.Type().Qualifier.IsConstant()) {
		node.Typ.Qualifier.MakeSpecConstant()
	} else {
		node.Typ.Qualifier.MakeTemporary()
	}
	node.Typ.Qualifier.Precision = p

	return node, nil
}

// AddSwitch creates a switch over an integer scrutinee whose body sequence
// holds case/default branches and statements.
func (b *Builder) AddSwitch(cond ast.Typed, body *ast.Aggregate, loc ast.Loc) (*ast.Switch, error) {
	if !cond.Type().Basic.IsInteger() || !cond.Type().IsScalarOrVec1() {
		return nil, ErrOperatorNotApplicable
	}
	if body != nil && body.Op == ast.OpNull {
		body.Op = ast.OpSequence
	}
	return &ast.Switch{Cond: cond, Body: body, Loc: loc}, nil
}

// AddLoop creates a while or do-while loop node.
func (b *Builder) AddLoop(body ast.Node, test ast.Typed, terminal ast.Node, testFirst bool, loc ast.Loc) *ast.Loop {
	return &ast.Loop{Body: body, Test: test, Terminal: terminal, TestFirst: testFirst, Loc: loc}
}

// AddForLoop creates a for loop: a sequence holding the initializer and the
// loop node, reusing the initializer's aggregate when it has one.
func (b *Builder) AddForLoop(body ast.Node, initializer ast.Node, test ast.Typed, terminal ast.Node, testFirst bool, loc ast.Loc) (*ast.Loop, *ast.Aggregate) {
	loop := b.AddLoop(body, test, terminal, testFirst, loc)

	seq, ok := initializer.(*ast.Aggregate)
	if initializer == nil || !ok {
		seq = b.MakeAggregate(initializer, loc)
	}
	if seq != nil && seq.Op == ast.OpSequence {
		seq.Op = ast.OpNull
	}
	var seqNode ast.Node
	if seq != nil {
		seqNode = seq
	}
	seq = b.GrowAggregate(seqNode, loop, loc)
	seq.Op = ast.OpSequence
	return loop, seq
}

// AddBranch creates a flow-transfer node: return, break, continue, case, or
// default, with an optional operand.
func (b *Builder) AddBranch(flow ast.Operator, operand ast.Typed, loc ast.Loc) (*ast.Branch, error) {
	switch flow {
	case ast.OpReturn, ast.OpBreak, ast.OpContinue, ast.OpCase, ast.OpDefault:
		return &ast.Branch{Flow: flow, Operand: operand, Loc: loc}, nil
	default:
		return nil, ErrOperatorNotApplicable
	}
}

// AddConversion converts node's basic type toward the target type under the
// policy of the invoking operator.
func (b *Builder) AddConversion(op ast.Operator, target ast.Type, node ast.Typed) (ast.Typed, error) {
	return b.addConversion(op, &target, node)
}

// AddShapeConversion rebuilds node as a constructor of the target shape
// when the dialect performs implicit shape conversion.
func (b *Builder) AddShapeConversion(target ast.Type, node ast.Typed) ast.Typed {
	return b.addShapeConversion(&target, node)
}

// Finalize finishes a top-level root after parsing: a residual untagged
// aggregate becomes the compilation unit's sequence. Any other aggregate
// still untagged below the root is a construction defect.
func (b *Builder) Finalize(root ast.Node) ast.Node {
	if root == nil {
		return nil
	}
	if agg, ok := root.(*ast.Aggregate); ok && agg.Op == ast.OpNull {
		agg.Op = ast.OpSequence
	}
	return root
}
