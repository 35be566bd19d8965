package sem

import (
	"testing"

	"github.com/gogpu/shaderfront/ast"
)

func specSymbol(b *Builder, name string, basic ast.BasicType, size int) *ast.Symbol {
	var typ ast.Type
	if size == 0 {
		typ = ast.NewType(basic, ast.StorageConst)
	} else {
		typ = ast.NewVectorType(basic, ast.StorageConst, size)
	}
	typ.Qualifier.MakeSpecConstant()
	return b.AddSymbol(1, name, typ, testLoc)
}

func TestSpecConstantPropagatesThroughIntegerMath(t *testing.T) {
	b := glslBuilder()
	node, err := b.AddBinaryMath(ast.OpAdd, specSymbol(b, "N", ast.Int, 0), b.AddIntConstant(1, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddBinaryMath: %v", err)
	}
	if _, ok := node.(*ast.Binary); !ok {
		t.Fatalf("specialization operand must not fold, got %T", node)
	}
	if !node.Type().Qualifier.IsSpecConstant() {
		t.Error("integer add over a spec constant and a constant must stay a spec constant")
	}
}

func TestFloatingMathNeverSpecConstant(t *testing.T) {
	b := glslBuilder()

	node, err := b.AddBinaryMath(ast.OpAdd, specSymbol(b, "S", ast.Float, 0), b.AddFloatConstant(1, ast.Float, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddBinaryMath: %v", err)
	}
	if node.Type().Qualifier.IsSpecConstant() {
		t.Error("floating-point arithmetic must not yield a spec constant")
	}

	neg, err := b.AddUnaryMath(ast.OpNegative, specSymbol(b, "S", ast.Float, 0), testLoc)
	if err != nil {
		t.Fatalf("AddUnaryMath: %v", err)
	}
	if neg.Type().Qualifier.IsSpecConstant() {
		t.Error("floating-point negate must not yield a spec constant")
	}
}

func TestSpecConstantOperandBlocksFolding(t *testing.T) {
	b := glslBuilder()
	sc := b.AddIntConstant(3, testLoc, false)
	sc.Typ.Qualifier.MakeSpecConstant()

	node, err := b.AddBinaryMath(ast.OpMul, sc, b.AddIntConstant(4, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddBinaryMath: %v", err)
	}
	bin, ok := node.(*ast.Binary)
	if !ok {
		t.Fatalf("spec constant operand folded away: %T", node)
	}
	if !bin.Typ.Qualifier.IsSpecConstant() {
		t.Error("result must be a spec constant")
	}
}

func TestRelationalOverSpecConstant(t *testing.T) {
	b := glslBuilder()
	node, err := b.AddBinaryMath(ast.OpLessThan, specSymbol(b, "N", ast.Int, 0), b.AddIntConstant(8, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddBinaryMath: %v", err)
	}
	if !node.Type().Qualifier.IsSpecConstant() {
		t.Error("integer comparison over a spec constant must stay a spec constant")
	}
}

func TestSwizzleOverSpecConstant(t *testing.T) {
	b := glslBuilder()

	iv, err := b.AddSwizzle(specSymbol(b, "V", ast.Int, 4), []int{1, 2}, testLoc)
	if err != nil {
		t.Fatalf("AddSwizzle: %v", err)
	}
	if !iv.Type().Qualifier.IsSpecConstant() {
		t.Error("swizzle of an integer spec constant must stay a spec constant")
	}

	fv, err := b.AddSwizzle(specSymbol(b, "F", ast.Float, 4), []int{0, 3}, testLoc)
	if err != nil {
		t.Fatalf("AddSwizzle: %v", err)
	}
	if !fv.Type().Qualifier.IsSpecConstant() {
		t.Error("swizzle is eligible even for floating spec constants")
	}
}

func TestSelectionSpecConstant(t *testing.T) {
	b := glslBuilder()
	condType := ast.NewType(ast.Bool, ast.StorageConst)
	condType.Qualifier.MakeSpecConstant()
	cond := b.AddSymbol(1, "flag", condType, testLoc)

	node, err := b.AddSelection(cond, b.AddIntConstant(1, testLoc, true), b.AddIntConstant(2, testLoc, true), testLoc)
	if err != nil {
		t.Fatalf("AddSelection: %v", err)
	}
	sel, ok := node.(*ast.Selection)
	if !ok {
		t.Fatalf("spec constant condition must keep the selection, got %T", node)
	}
	if !sel.Typ.Qualifier.IsSpecConstant() {
		t.Error("selection over constants with a spec constant condition must be a spec constant")
	}
}

func TestIsSpecializationOperationConversions(t *testing.T) {
	tests := []struct {
		name string
		op   ast.Operator
		typ  ast.Type
		want bool
	}{
		{"int to uint", ast.OpConvIntToUint, ast.NewType(ast.Uint, ast.StorageTemporary), true},
		{"bool to int", ast.OpConvBoolToInt, ast.NewType(ast.Int, ast.StorageTemporary), true},
		{"float to double", ast.OpConvFloatToDouble, ast.NewType(ast.Double, ast.StorageTemporary), true},
		{"int to float", ast.OpConvIntToFloat, ast.NewType(ast.Float, ast.StorageTemporary), false},
		{"double to int", ast.OpConvDoubleToInt, ast.NewType(ast.Int, ast.StorageTemporary), false},
	}
	b := glslBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, _, _ := tt.op.ConversionTypes()
			operand := b.AddSymbol(1, "x", ast.NewType(from, ast.StorageTemporary), testLoc)
			node := &ast.Unary{Op: tt.op, Operand: operand, Typ: tt.typ, Loc: testLoc}
			if got := isSpecializationOperation(node); got != tt.want {
				t.Errorf("isSpecializationOperation(%v) = %v, want %v", tt.op, got, tt.want)
			}
		})
	}
}
