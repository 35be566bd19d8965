package ast

// Loc is a source position attached to every node.
type Loc struct {
	File   string
	Line   int
	Column int
}

// Node is one node of a typed tree. The variant set is closed: Symbol,
// ConstantValue, Unary, Binary, Aggregate, Selection, Switch, Loop, Branch,
// and Method, all in this package.
type Node interface {
	Pos() Loc
	node()
}

// Typed is a node carrying a resolved type. Every variant implements it;
// statement-level constructs carry Void. Type returns a pointer so later
// passes can rewrite qualifier fields in place without rebuilding the tree.
type Typed interface {
	Node
	Type() *Type
}

// Symbol is a named reference to a declared object. A const-qualified symbol
// carries the declared component values so uses can fold.
type Symbol struct {
	ID          int
	Name        string
	Typ         Type
	ConstValues []Scalar
	Loc         Loc
}

// ConstantValue is a literal or folded constant: one Scalar per component,
// column-major for matrices. Literal marks values that appeared verbatim in
// the source and must keep their spelling in diagnostics.
type ConstantValue struct {
	Typ     Type
	Values  []Scalar
	Literal bool
	Loc     Loc
}

// Unary is a one-operand operation, including conversions.
type Unary struct {
	Op      Operator
	Operand Typed
	Typ     Type
	Loc     Loc
}

// Binary is a two-operand operation, including assignments and indexing.
type Binary struct {
	Op    Operator
	Left  Typed
	Right Typed
	Typ   Type
	Loc   Loc
}

// Aggregate is an n-ary node: a call, a constructor, or a statement
// sequence. An aggregate with operator OpNull is untagged; it accumulates
// children until an operator is set or the root is finalized.
type Aggregate struct {
	Op       Operator
	Children []Node
	Name     string // callee name for calls
	Typ      Type
	Loc      Loc
}

// Selection is an if-then-else or a ternary. A value-producing ternary has a
// non-void type and both blocks typed; a statement selection has Void and
// either block possibly nil.
type Selection struct {
	Cond       Typed
	TrueBlock  Node
	FalseBlock Node
	Typ        Type
	Loc        Loc
}

// Switch dispatches over an integer scrutinee; the body is a sequence whose
// children are Branch case/default markers and statements.
type Switch struct {
	Cond Typed
	Body *Aggregate
	Typ  Type
	Loc  Loc
}

// Loop runs Body while Test holds; TestFirst distinguishes while from
// do-while. Terminal, if set, runs after each iteration (the for-loop step).
type Loop struct {
	Body      Node
	Test      Typed
	Terminal  Node
	TestFirst bool
	Typ       Type
	Loc       Loc
}

// Branch is a flow transfer: return (with optional operand), break,
// continue, case (with operand), or default.
type Branch struct {
	Flow    Operator
	Operand Typed
	Typ     Type
	Loc     Loc
}

// Method is an object-directed call such as array length.
type Method struct {
	Object Typed
	Name   string
	Typ    Type
	Loc    Loc
}

func (n *Symbol) node()        {}
func (n *ConstantValue) node() {}
func (n *Unary) node()         {}
func (n *Binary) node()        {}
func (n *Aggregate) node()     {}
func (n *Selection) node()     {}
func (n *Switch) node()        {}
func (n *Loop) node()          {}
func (n *Branch) node()        {}
func (n *Method) node()        {}

func (n *Symbol) Pos() Loc        { return n.Loc }
func (n *ConstantValue) Pos() Loc { return n.Loc }
func (n *Unary) Pos() Loc         { return n.Loc }
func (n *Binary) Pos() Loc        { return n.Loc }
func (n *Aggregate) Pos() Loc     { return n.Loc }
func (n *Selection) Pos() Loc     { return n.Loc }
func (n *Switch) Pos() Loc        { return n.Loc }
func (n *Loop) Pos() Loc          { return n.Loc }
func (n *Branch) Pos() Loc        { return n.Loc }
func (n *Method) Pos() Loc        { return n.Loc }

func (n *Symbol) Type() *Type        { return &n.Typ }
func (n *ConstantValue) Type() *Type { return &n.Typ }
func (n *Unary) Type() *Type         { return &n.Typ }
func (n *Binary) Type() *Type        { return &n.Typ }
func (n *Aggregate) Type() *Type     { return &n.Typ }
func (n *Selection) Type() *Type     { return &n.Typ }
func (n *Switch) Type() *Type        { return &n.Typ }
func (n *Loop) Type() *Type          { return &n.Typ }
func (n *Branch) Type() *Type        { return &n.Typ }
func (n *Method) Type() *Type        { return &n.Typ }

// IsConstant reports whether the node is a plain (non-specialization)
// compile-time constant: a ConstantValue node or a const-qualified symbol
// with known values.
func IsConstant(n Node) bool {
	switch c := n.(type) {
	case *ConstantValue:
		return !c.Typ.Qualifier.SpecConstant
	case *Symbol:
		return c.Typ.Qualifier.IsConstant() && !c.Typ.Qualifier.SpecConstant && len(c.ConstValues) > 0
	default:
		return false
	}
}

// ConstantValues returns the component values of a plain constant node, or
// nil when the node is not one.
func ConstantValues(n Node) []Scalar {
	switch c := n.(type) {
	case *ConstantValue:
		if !c.Typ.Qualifier.SpecConstant {
			return c.Values
		}
	case *Symbol:
		if c.Typ.Qualifier.IsConstant() && !c.Typ.Qualifier.SpecConstant {
			return c.ConstValues
		}
	}
	return nil
}

// IsSpecConstant reports whether the node is a specialization constant.
func IsSpecConstant(n Node) bool {
	t, ok := n.(Typed)
	return ok && t.Type().Qualifier.IsSpecConstant()
}
