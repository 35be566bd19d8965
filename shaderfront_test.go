package shaderfront

import (
	"testing"

	"github.com/gogpu/shaderfront/ast"
	"github.com/gogpu/shaderfront/sem"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Dialect != sem.GLSL || opts.Profile != sem.ProfileCore || opts.Version != 450 {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

func TestNewBuilderEndToEnd(t *testing.T) {
	b := NewBuilder(DefaultOptions())
	loc := ast.Loc{File: "main.glsl", Line: 3}

	sum, err := b.AddBinaryMath(ast.OpAdd, b.AddIntConstant(3, loc, true), b.AddIntConstant(4, loc, true), loc)
	if err != nil {
		t.Fatalf("AddBinaryMath: %v", err)
	}
	c, ok := sum.(*ast.ConstantValue)
	if !ok {
		t.Fatalf("expected folded constant, got %T", sum)
	}
	if c.Values[0].Int() != 7 {
		t.Errorf("3+4 folded to %d", c.Values[0].Int())
	}

	root := b.Finalize(b.GrowAggregate(nil, sum, loc))
	agg, ok := root.(*ast.Aggregate)
	if !ok || agg.Op != ast.OpSequence {
		t.Errorf("Finalize did not produce a sequence root: %T", root)
	}
}
