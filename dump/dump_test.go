package dump

import (
	"testing"

	"github.com/gogpu/shaderfront/ast"
	"github.com/gogpu/shaderfront/sem"
)

var loc = ast.Loc{File: "test.glsl", Line: 1}

func TestTreeBinary(t *testing.T) {
	b := sem.NewBuilder(sem.Context{Dialect: sem.GLSL, Profile: sem.ProfileCore, Version: 450})
	a := b.AddSymbol(1, "a", ast.NewType(ast.Float, ast.StorageTemporary), loc)
	node, err := b.AddBinaryMath(ast.OpAdd, a, b.AddFloatConstant(1, ast.Float, loc, true), loc)
	if err != nil {
		t.Fatalf("AddBinaryMath: %v", err)
	}

	want := "add (float)\n" +
		"  'a' (float)\n" +
		"  Constant: 1 (const float)\n"
	if got := Tree(node); got != want {
		t.Errorf("Tree() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeSelection(t *testing.T) {
	b := sem.NewBuilder(sem.Context{Dialect: sem.GLSL, Profile: sem.ProfileCore, Version: 450})
	cond := b.AddSymbol(1, "c", ast.NewType(ast.Bool, ast.StorageTemporary), loc)
	node, err := b.AddSelection(cond, b.AddIntConstant(1, loc, true), b.AddIntConstant(2, loc, true), loc)
	if err != nil {
		t.Fatalf("AddSelection: %v", err)
	}

	want := "Test condition and select (int)\n" +
		"  Condition\n" +
		"    'c' (bool)\n" +
		"  true case\n" +
		"    Constant: 1 (const int)\n" +
		"  false case\n" +
		"    Constant: 2 (const int)\n"
	if got := Tree(node); got != want {
		t.Errorf("Tree() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeBranchAndLoop(t *testing.T) {
	b := sem.NewBuilder(sem.Context{Dialect: sem.GLSL, Profile: sem.ProfileCore, Version: 450})
	ret, err := b.AddBranch(ast.OpReturn, b.AddIntConstant(0, loc, true), loc)
	if err != nil {
		t.Fatalf("AddBranch: %v", err)
	}
	test, err := b.AddBinaryMath(ast.OpLessThan,
		b.AddSymbol(1, "i", ast.NewType(ast.Int, ast.StorageTemporary), loc),
		b.AddIntConstant(4, loc, true), loc)
	if err != nil {
		t.Fatalf("AddBinaryMath: %v", err)
	}
	loop := b.AddLoop(ret, test, nil, true, loc)

	want := "Loop with condition tested first\n" +
		"  Loop Condition\n" +
		"    compare less than (bool)\n" +
		"      'i' (int)\n" +
		"      Constant: 4 (const int)\n" +
		"  Loop Body\n" +
		"    Branch: return with expression\n" +
		"      Constant: 0 (const int)\n"
	if got := Tree(loop); got != want {
		t.Errorf("Tree() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeScalarFormatting(t *testing.T) {
	values := []ast.Scalar{
		ast.FloatScalar(ast.Float, 1.5),
		ast.FloatScalar(ast.Float, 2),
	}
	c := &ast.ConstantValue{
		Typ:    ast.NewVectorType(ast.Float, ast.StorageConst, 2),
		Values: values,
		Loc:    loc,
	}
	want := "Constant: 1.5 2 (const 2-component vector of float)\n"
	if got := Tree(c); got != want {
		t.Errorf("Tree() = %q, want %q", got, want)
	}

	bc := &ast.ConstantValue{
		Typ:    ast.NewType(ast.Bool, ast.StorageConst),
		Values: []ast.Scalar{ast.BoolScalar(true)},
		Loc:    loc,
	}
	if got := Tree(bc); got != "Constant: true (const bool)\n" {
		t.Errorf("bool constant = %q", got)
	}
}

func TestTreeMethod(t *testing.T) {
	b := sem.NewBuilder(sem.Context{Dialect: sem.GLSL, Profile: sem.ProfileCore, Version: 450})
	arrType := ast.NewType(ast.Float, ast.StorageTemporary)
	arrType.ArraySize = 4
	arr := b.AddSymbol(1, "weights", arrType, loc)
	m := b.AddMethod(arr, ast.NewType(ast.Int, ast.StorageTemporary), "length", loc)

	want := "method 'length' (int)\n" +
		"  'weights' (float (4-element array))\n"
	if got := Tree(m); got != want {
		t.Errorf("Tree() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeNilNode(t *testing.T) {
	if got := Tree(nil); got != "" {
		t.Errorf("Tree(nil) = %q", got)
	}
}
