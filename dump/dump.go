// Package dump renders a typed tree as indented text, one node per line,
// for diagnostics and tests. It never modifies the tree.
package dump

import (
	"strconv"
	"strings"

	"github.com/gogpu/shaderfront/ast"
)

// Tree renders the tree rooted at node.
func Tree(node ast.Node) string {
	var p printer
	p.node(node, 0)
	return p.out.String()
}

type printer struct {
	out strings.Builder
}

func (p *printer) line(depth int, s string) {
	for i := 0; i < depth; i++ {
		p.out.WriteString("  ")
	}
	p.out.WriteString(s)
	p.out.WriteByte('\n')
}

func (p *printer) node(n ast.Node, depth int) {
	if n == nil {
		return
	}

	switch n := n.(type) {
	case *ast.Symbol:
		p.line(depth, "'"+n.Name+"' ("+n.Typ.String()+")")

	case *ast.ConstantValue:
		p.line(depth, "Constant: "+formatValues(n.Values)+" ("+n.Typ.String()+")")

	case *ast.Unary:
		p.line(depth, n.Op.String()+" ("+n.Typ.String()+")")
		p.node(n.Operand, depth+1)

	case *ast.Binary:
		p.line(depth, n.Op.String()+" ("+n.Typ.String()+")")
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)

	case *ast.Aggregate:
		label := n.Op.String()
		if n.Name != "" {
			label += " '" + n.Name + "'"
		}
		p.line(depth, label+" ("+n.Typ.String()+")")
		for _, c := range n.Children {
			p.node(c, depth+1)
		}

	case *ast.Selection:
		p.line(depth, "Test condition and select ("+n.Typ.String()+")")
		p.line(depth+1, "Condition")
		p.node(n.Cond, depth+2)
		if n.TrueBlock != nil {
			p.line(depth+1, "true case")
			p.node(n.TrueBlock, depth+2)
		}
		if n.FalseBlock != nil {
			p.line(depth+1, "false case")
			p.node(n.FalseBlock, depth+2)
		}

	case *ast.Switch:
		p.line(depth, "switch")
		p.line(depth+1, "condition")
		p.node(n.Cond, depth+2)
		p.line(depth+1, "body")
		p.node(n.Body, depth+2)

	case *ast.Loop:
		if n.TestFirst {
			p.line(depth, "Loop with condition tested first")
		} else {
			p.line(depth, "Loop with condition not tested first")
		}
		if n.Test != nil {
			p.line(depth+1, "Loop Condition")
			p.node(n.Test, depth+2)
		}
		if n.Body != nil {
			p.line(depth+1, "Loop Body")
			p.node(n.Body, depth+2)
		}
		if n.Terminal != nil {
			p.line(depth+1, "Loop Terminal Expression")
			p.node(n.Terminal, depth+2)
		}

	case *ast.Branch:
		label := "Branch: " + n.Flow.String()
		if n.Operand != nil {
			p.line(depth, label+" with expression")
			p.node(n.Operand, depth+1)
		} else {
			p.line(depth, label)
		}

	case *ast.Method:
		p.line(depth, "method '"+n.Name+"' ("+n.Typ.String()+")")
		p.node(n.Object, depth+1)
	}
}

func formatValues(values []ast.Scalar) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatScalar(v)
	}
	return strings.Join(parts, " ")
}

func formatScalar(v ast.Scalar) string {
	switch {
	case v.Kind == ast.Bool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case v.Kind == ast.String:
		return strconv.Quote(v.Str)
	case v.Kind.IsFloatingDomain():
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case v.Kind.IsSigned():
		return strconv.FormatInt(v.Int(), 10)
	default:
		return strconv.FormatUint(v.Uint(), 10)
	}
}
