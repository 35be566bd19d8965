package sem

import (
	"testing"

	"github.com/gogpu/shaderfront/ast"
)

var testLoc = ast.Loc{File: "test.glsl", Line: 1, Column: 1}

func glslBuilder() *Builder {
	return NewBuilder(Context{Dialect: GLSL, Profile: ProfileCore, Version: 450})
}

func hlslBuilder() *Builder {
	return NewBuilder(Context{Dialect: HLSL, Profile: ProfileNone, Version: 500})
}

func floatSymbol(b *Builder, name string, size int) *ast.Symbol {
	if size == 0 {
		return b.AddSymbol(1, name, ast.NewType(ast.Float, ast.StorageTemporary), testLoc)
	}
	return b.AddSymbol(1, name, ast.NewVectorType(ast.Float, ast.StorageTemporary, size), testLoc)
}

func vec2Constant(b *Builder, x, y float64) *ast.ConstantValue {
	return b.AddConstantValue(
		[]ast.Scalar{ast.FloatScalar(ast.Float, x), ast.FloatScalar(ast.Float, y)},
		ast.NewVectorType(ast.Float, ast.StorageTemporary, 2), testLoc, false)
}

func TestFoldIntAdd(t *testing.T) {
	b := glslBuilder()
	node, err := b.AddBinaryMath(ast.OpAdd, b.AddIntConstant(3, testLoc, true), b.AddIntConstant(4, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddBinaryMath: %v", err)
	}
	c, ok := node.(*ast.ConstantValue)
	if !ok {
		t.Fatalf("expected ConstantValue, got %T", node)
	}
	if c.Typ.Basic != ast.Int || !c.Typ.IsScalar() {
		t.Errorf("folded type = %s", c.Typ.String())
	}
	if got := c.Values[0].Int(); got != 7 {
		t.Errorf("3+4 = %d", got)
	}
	if !c.Typ.Qualifier.IsConstant() {
		t.Error("folded result must be const-qualified")
	}
}

func TestFoldBinaryTable(t *testing.T) {
	b := glslBuilder()
	tests := []struct {
		name  string
		op    ast.Operator
		left  ast.Typed
		right ast.Typed
		check func(t *testing.T, c *ast.ConstantValue)
	}{
		{"uint sub wraps", ast.OpSub, b.AddUintConstant(1, testLoc, true), b.AddUintConstant(2, testLoc, true),
			func(t *testing.T, c *ast.ConstantValue) {
				if got := uint32(c.Values[0].Uint()); got != 0xffffffff {
					t.Errorf("1u-2u = %#x", got)
				}
			}},
		{"float mul", ast.OpMul, b.AddFloatConstant(1.5, ast.Float, testLoc, true), b.AddFloatConstant(4, ast.Float, testLoc, true),
			func(t *testing.T, c *ast.ConstantValue) {
				if got := c.Values[0].Float(); got != 6 {
					t.Errorf("1.5*4 = %v", got)
				}
			}},
		{"int shift", ast.OpLeftShift, b.AddIntConstant(1, testLoc, true), b.AddIntConstant(4, testLoc, true),
			func(t *testing.T, c *ast.ConstantValue) {
				if got := c.Values[0].Int(); got != 16 {
					t.Errorf("1<<4 = %d", got)
				}
			}},
		{"relational", ast.OpLessThan, b.AddIntConstant(2, testLoc, true), b.AddIntConstant(3, testLoc, true),
			func(t *testing.T, c *ast.ConstantValue) {
				if c.Typ.Basic != ast.Bool || !c.Values[0].Bool() {
					t.Errorf("2<3 = %+v", c.Values[0])
				}
			}},
		{"vector equality", ast.OpEqual, vec2Constant(b, 1, 2), vec2Constant(b, 1, 3),
			func(t *testing.T, c *ast.ConstantValue) {
				if c.Typ.Basic != ast.Bool || c.Values[0].Bool() {
					t.Errorf("vec2(1,2)==vec2(1,3) folded to %+v", c.Values[0])
				}
			}},
		{"scalar smear", ast.OpAdd, vec2Constant(b, 1, 2), b.AddFloatConstant(10, ast.Float, testLoc, true),
			func(t *testing.T, c *ast.ConstantValue) {
				if len(c.Values) != 2 || c.Values[0].Float() != 11 || c.Values[1].Float() != 12 {
					t.Errorf("vec2(1,2)+10 = %v", c.Values)
				}
			}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := b.AddBinaryMath(tt.op, tt.left, tt.right, testLoc)
			if err != nil {
				t.Fatalf("AddBinaryMath: %v", err)
			}
			c, ok := node.(*ast.ConstantValue)
			if !ok {
				t.Fatalf("expected fold, got %T", node)
			}
			tt.check(t, c)
		})
	}
}

func TestDivisionByZeroNotFolded(t *testing.T) {
	b := glslBuilder()
	for _, op := range []ast.Operator{ast.OpDiv, ast.OpMod} {
		t.Run(op.String(), func(t *testing.T) {
			node, err := b.AddBinaryMath(op, b.AddIntConstant(6, testLoc, true), b.AddIntConstant(0, testLoc, true), testLoc)
			if err != nil {
				t.Fatalf("AddBinaryMath: %v", err)
			}
			bin, ok := node.(*ast.Binary)
			if !ok {
				t.Fatalf("division by zero must survive as a node, got %T", node)
			}
			if bin.Op != op {
				t.Errorf("op = %v", bin.Op)
			}
		})
	}
}

func TestCommaDoesNotFold(t *testing.T) {
	b := glslBuilder()
	left := b.AddIntConstant(1, testLoc, true)
	right := b.AddFloatConstant(2, ast.Float, testLoc, true)
	node := b.AddComma(left, right, testLoc)
	agg, ok := node.(*ast.Aggregate)
	if !ok || agg.Op != ast.OpComma {
		t.Fatalf("expected comma aggregate, got %T", node)
	}
	if agg.Typ.Basic != ast.Float {
		t.Errorf("comma type = %s, want right operand's", agg.Typ.String())
	}
	if agg.Typ.Qualifier.IsConstant() {
		t.Error("comma result must not stay const")
	}
	if len(agg.Children) != 2 {
		t.Errorf("children = %d", len(agg.Children))
	}
}

func TestTernaryVectorConditionLowersToMix(t *testing.T) {
	b := glslBuilder()
	cond := b.AddSymbol(1, "c", ast.NewVectorType(ast.Bool, ast.StorageTemporary, 2), testLoc)
	trueB := vec2Constant(b, 1, 2)
	falseB := vec2Constant(b, 3, 4)

	node, err := b.AddSelection(cond, trueB, falseB, testLoc)
	if err != nil {
		t.Fatalf("AddSelection: %v", err)
	}
	if _, isSel := node.(*ast.Selection); isSel {
		t.Fatal("vector condition must not build a Selection node")
	}
	mix, ok := node.(*ast.Aggregate)
	if !ok || mix.Op != ast.OpMix {
		t.Fatalf("expected mix aggregate, got %T", node)
	}
	if len(mix.Children) != 3 {
		t.Fatalf("mix children = %d, want 3", len(mix.Children))
	}
	if mix.Children[0] != ast.Node(falseB) || mix.Children[1] != ast.Node(trueB) || mix.Children[2] != ast.Node(cond) {
		t.Error("mix children must be ordered (false, true, condition)")
	}
	if mix.Typ.Basic != ast.Float || mix.Typ.VectorSize != 2 || mix.Typ.IsMatrix() {
		t.Errorf("mix type = %s, want vec2 of float", mix.Typ.String())
	}
}

func TestTernaryScalarConstantPicksBranch(t *testing.T) {
	b := glslBuilder()
	trueB := b.AddIntConstant(10, testLoc, true)
	falseB := b.AddIntConstant(20, testLoc, true)

	node, err := b.AddSelection(b.AddBoolConstant(false, testLoc, true), trueB, falseB, testLoc)
	if err != nil {
		t.Fatalf("AddSelection: %v", err)
	}
	if node != ast.Typed(falseB) {
		t.Errorf("constant condition must pick a branch, got %T", node)
	}
}

func TestTernaryScalarBuildsSelection(t *testing.T) {
	b := glslBuilder()
	cond := b.AddSymbol(1, "c", ast.NewType(ast.Bool, ast.StorageTemporary), testLoc)
	node, err := b.AddSelection(cond, b.AddIntConstant(10, testLoc, true), b.AddIntConstant(20, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddSelection: %v", err)
	}
	sel, ok := node.(*ast.Selection)
	if !ok {
		t.Fatalf("expected Selection, got %T", node)
	}
	if sel.Typ.Basic != ast.Int {
		t.Errorf("selection type = %s", sel.Typ.String())
	}
}

func TestHLSLScalarToMatrixAssignReplicates(t *testing.T) {
	b := hlslBuilder()
	m := b.AddSymbol(1, "m", ast.NewMatrixType(ast.Float, ast.StorageTemporary, 2, 2), testLoc)
	node, err := b.AddAssign(ast.OpAssign, m, b.AddFloatConstant(5, ast.Float, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddAssign: %v", err)
	}
	bin := node.(*ast.Binary)
	ctor, ok := bin.Right.(*ast.Aggregate)
	if !ok || ctor.Op != ast.OpConstructMat2x2 {
		t.Fatalf("expected mat2 constructor on the right, got %T", bin.Right)
	}
	if len(ctor.Children) != 4 {
		t.Fatalf("scalar to mat2x2 must replicate to 4 elements, got %d", len(ctor.Children))
	}
	for i, c := range ctor.Children {
		cv, ok := c.(*ast.ConstantValue)
		if !ok || cv.Values[0].Float() != 5 {
			t.Errorf("element %d is not the replicated scalar", i)
		}
	}
}

func TestScalarToMatrixReplicationLimits(t *testing.T) {
	matType := ast.NewMatrixType(ast.Float, ast.StorageTemporary, 2, 2)

	t.Run("symbol shared across elements", func(t *testing.T) {
		b := hlslBuilder()
		s := floatSymbol(b, "s", 0)
		node := b.AddShapeConversion(matType, s)
		ctor, ok := node.(*ast.Aggregate)
		if !ok || ctor.Op != ast.OpConstructMat2x2 {
			t.Fatalf("expected mat2 constructor, got %T", node)
		}
		for i, c := range ctor.Children {
			if c != ast.Node(s) {
				t.Errorf("element %d is not the shared symbol", i)
			}
		}
	})

	t.Run("compound expression kept single-parent", func(t *testing.T) {
		b := hlslBuilder()
		s := floatSymbol(b, "s", 0)
		sum, err := b.AddBinaryMath(ast.OpAdd, s, s, testLoc)
		if err != nil {
			t.Fatalf("AddBinaryMath: %v", err)
		}
		if node := b.AddShapeConversion(matType, sum); node != sum {
			t.Fatalf("compound operand must not be replicated, got %T", node)
		}

		m := b.AddSymbol(1, "m", matType, testLoc)
		if _, err := b.AddAssign(ast.OpAssign, m, sum, testLoc); err != ErrShapeIncompatible {
			t.Errorf("matrix = compound scalar: err = %v, want ErrShapeIncompatible", err)
		}
	})
}

func TestIndexIntoConstantFolds(t *testing.T) {
	b := glslBuilder()
	base := b.AddConstantValue(
		[]ast.Scalar{ast.IntScalar(ast.Int, 1), ast.IntScalar(ast.Int, 2), ast.IntScalar(ast.Int, 3)},
		ast.NewVectorType(ast.Int, ast.StorageTemporary, 3), testLoc, false)

	node, err := b.AddIndex(ast.OpIndexDirect, base, b.AddIntConstant(1, testLoc, false), testLoc)
	if err != nil {
		t.Fatalf("AddIndex: %v", err)
	}
	c, ok := node.(*ast.ConstantValue)
	if !ok {
		t.Fatalf("expected folded component, got %T", node)
	}
	if c.Typ.Basic != ast.Int || !c.Typ.IsScalar() || c.Values[0].Int() != 2 {
		t.Errorf("ivec3(1,2,3)[1] = %+v (%s)", c.Values, c.Typ.String())
	}
}

func TestSwizzle(t *testing.T) {
	b := glslBuilder()

	t.Run("constant folds", func(t *testing.T) {
		base := b.AddConstantValue(
			[]ast.Scalar{ast.FloatScalar(ast.Float, 1), ast.FloatScalar(ast.Float, 2), ast.FloatScalar(ast.Float, 3)},
			ast.NewVectorType(ast.Float, ast.StorageTemporary, 3), testLoc, false)
		node, err := b.AddSwizzle(base, []int{2, 0}, testLoc)
		if err != nil {
			t.Fatalf("AddSwizzle: %v", err)
		}
		c, ok := node.(*ast.ConstantValue)
		if !ok {
			t.Fatalf("expected fold, got %T", node)
		}
		if c.Values[0].Float() != 3 || c.Values[1].Float() != 1 {
			t.Errorf("vec3(1,2,3).zx = %v", c.Values)
		}
	})

	t.Run("symbol builds node", func(t *testing.T) {
		base := floatSymbol(b, "v", 4)
		node, err := b.AddSwizzle(base, []int{1, 3, 0}, testLoc)
		if err != nil {
			t.Fatalf("AddSwizzle: %v", err)
		}
		bin, ok := node.(*ast.Binary)
		if !ok || bin.Op != ast.OpVectorSwizzle {
			t.Fatalf("expected swizzle node, got %T", node)
		}
		if bin.Typ.VectorSize != 3 || bin.Typ.Basic != ast.Float {
			t.Errorf("swizzle type = %s", bin.Typ.String())
		}
	})

	t.Run("selector out of range", func(t *testing.T) {
		base := floatSymbol(b, "v", 2)
		if _, err := b.AddSwizzle(base, []int{2}, testLoc); err != ErrShapeIncompatible {
			t.Errorf("err = %v, want ErrShapeIncompatible", err)
		}
	})
}

func TestBuiltInCallArgumentUnification(t *testing.T) {
	ret := ast.NewType(ast.Float, ast.StorageTemporary)

	t.Run("hlsl unifies to float", func(t *testing.T) {
		b := hlslBuilder()
		args := []ast.Typed{
			floatSymbol(b, "x", 0),
			b.AddIntConstant(0, testLoc, true),
			b.AddIntConstant(1, testLoc, true),
		}
		node, err := b.AddBuiltInCall(ast.OpClamp, args, ret, testLoc)
		if err != nil {
			t.Fatalf("AddBuiltInCall: %v", err)
		}
		agg := node.(*ast.Aggregate)
		for i, c := range agg.Children {
			if c.(ast.Typed).Type().Basic != ast.Float {
				t.Errorf("argument %d not unified to float", i)
			}
		}
	})

	t.Run("glsl leaves arguments alone", func(t *testing.T) {
		b := glslBuilder()
		intArg := b.AddIntConstant(0, testLoc, true)
		node, err := b.AddBuiltInCall(ast.OpClamp, []ast.Typed{floatSymbol(b, "x", 0), intArg, intArg}, ret, testLoc)
		if err != nil {
			t.Fatalf("AddBuiltInCall: %v", err)
		}
		agg := node.(*ast.Aggregate)
		if agg.Children[1].(ast.Typed).Type().Basic != ast.Int {
			t.Error("glsl must not promote intrinsic arguments")
		}
	})
}

func TestGrowAggregateAndFinalize(t *testing.T) {
	b := glslBuilder()
	first := b.AddIntConstant(1, testLoc, true)
	second := b.AddIntConstant(2, testLoc, true)

	agg := b.GrowAggregate(first, second, testLoc)
	if agg.Op != ast.OpNull {
		t.Fatalf("fresh aggregate must be untagged, got %v", agg.Op)
	}
	if len(agg.Children) != 2 {
		t.Fatalf("children = %d", len(agg.Children))
	}

	// growing onto an untagged aggregate reuses it
	third := b.AddIntConstant(3, testLoc, true)
	again := b.GrowAggregate(agg, third, testLoc)
	if again != agg || len(agg.Children) != 3 {
		t.Error("untagged aggregate must accumulate in place")
	}

	// growing onto a committed aggregate wraps it
	agg.Op = ast.OpComma
	wrapped := b.GrowAggregate(agg, third, testLoc)
	if wrapped == agg || len(wrapped.Children) != 2 {
		t.Error("committed aggregate must be wrapped, not extended")
	}

	root := b.Finalize(b.GrowAggregate(nil, first, testLoc))
	if root.(*ast.Aggregate).Op != ast.OpSequence {
		t.Error("Finalize must retag an untagged root as sequence")
	}
}

func TestForLoopSequence(t *testing.T) {
	b := glslBuilder()
	init, err := b.AddAssign(ast.OpAssign,
		b.AddSymbol(1, "i", ast.NewType(ast.Int, ast.StorageTemporary), testLoc),
		b.AddIntConstant(0, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddAssign: %v", err)
	}
	test, err := b.AddBinaryMath(ast.OpLessThan,
		b.AddSymbol(1, "i", ast.NewType(ast.Int, ast.StorageTemporary), testLoc),
		b.AddIntConstant(10, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddBinaryMath: %v", err)
	}
	body := b.MakeAggregate(b.AddIntConstant(0, testLoc, true), testLoc)

	loop, seq := b.AddForLoop(body, init, test, nil, true, testLoc)
	if !loop.TestFirst {
		t.Error("for loop must test first")
	}
	if seq.Op != ast.OpSequence {
		t.Errorf("for sequence op = %v", seq.Op)
	}
	if len(seq.Children) != 2 || seq.Children[1] != ast.Node(loop) {
		t.Error("sequence must hold initializer then loop")
	}
}

func TestAddBranch(t *testing.T) {
	b := glslBuilder()
	br, err := b.AddBranch(ast.OpReturn, b.AddIntConstant(0, testLoc, true), testLoc)
	if err != nil || br.Flow != ast.OpReturn {
		t.Fatalf("AddBranch return: %v", err)
	}
	if _, err := b.AddBranch(ast.OpAdd, nil, testLoc); err != ErrOperatorNotApplicable {
		t.Errorf("non-branch operator: err = %v", err)
	}
}

func TestAddSwitchRequiresIntegerScrutinee(t *testing.T) {
	b := glslBuilder()
	body := &ast.Aggregate{}
	if _, err := b.AddSwitch(floatSymbol(b, "x", 0), body, testLoc); err != ErrOperatorNotApplicable {
		t.Errorf("float scrutinee: err = %v", err)
	}
	sw, err := b.AddSwitch(b.AddIntConstant(1, testLoc, true), body, testLoc)
	if err != nil {
		t.Fatalf("AddSwitch: %v", err)
	}
	if sw.Body.Op != ast.OpSequence {
		t.Error("switch body must be committed as a sequence")
	}
}
