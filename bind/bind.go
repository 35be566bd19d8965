// Package bind assigns resource bindings and varying locations to symbols
// of a finished tree. It reads each symbol's type and qualifier and rewrites
// only the qualifier's binding surface in place; the tree structure and
// every type are left untouched.
package bind

import (
	"fmt"

	"github.com/gogpu/shaderfront/ast"
)

// Options configures automatic assignment.
type Options struct {
	// Set is the descriptor set given to uniform and buffer resources
	// that carry no explicit set.
	Set int

	// BindingBase is the first binding number handed out in the set.
	BindingBase int

	// InputBase and OutputBase are the first locations handed out to
	// varying inputs and outputs.
	InputBase  int
	OutputBase int
}

// Assignment records one rewrite made by Resolve.
type Assignment struct {
	Symbol   string
	Set      int
	Binding  int
	Location int
}

// Resolve walks the tree and assigns the next free set/binding pair to each
// uniform or buffer symbol without one, and sequential locations to varying
// in/out symbols without one. Symbols are identified by ID, so a symbol
// referenced twice is assigned once. Returns the assignments made.
func Resolve(root ast.Node, opts Options) ([]Assignment, error) {
	r := resolver{
		opts:        opts,
		nextBinding: opts.BindingBase,
		nextInput:   opts.InputBase,
		nextOutput:  opts.OutputBase,
		seen:        make(map[int]bool),
		taken:       make(map[int]bool),
		takenIn:     make(map[int]bool),
		takenOut:    make(map[int]bool),
	}
	r.collect(root)
	if err := r.assign(); err != nil {
		return nil, err
	}
	return r.made, nil
}

type resolver struct {
	opts        Options
	nextBinding int
	nextInput   int
	nextOutput  int
	seen        map[int]bool
	taken       map[int]bool // explicit bindings in the target set
	takenIn     map[int]bool // explicit input locations, one entry per slot
	takenOut    map[int]bool // explicit output locations, one entry per slot
	symbols     []*ast.Symbol
	made        []Assignment
}

// collect gathers resource and varying symbols in source order and notes
// explicitly bound slots so automatic assignment skips them.
func (r *resolver) collect(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case *ast.Symbol:
		q := &n.Typ.Qualifier
		switch q.Storage {
		case ast.StorageUniform, ast.StorageBuffer, ast.StorageIn, ast.StorageOut:
			if !r.seen[n.ID] {
				r.seen[n.ID] = true
				r.symbols = append(r.symbols, n)
			}
			if (q.Storage == ast.StorageUniform || q.Storage == ast.StorageBuffer) &&
				q.Binding >= 0 && (q.Set < 0 || q.Set == r.opts.Set) {
				r.taken[q.Binding] = true
			}
			if (q.Storage == ast.StorageIn || q.Storage == ast.StorageOut) && q.Location >= 0 {
				locs := r.takenIn
				if q.Storage == ast.StorageOut {
					locs = r.takenOut
				}
				for i := 0; i < locationSlots(&n.Typ); i++ {
					locs[q.Location+i] = true
				}
			}
		}
	case *ast.Unary:
		r.collect(n.Operand)
	case *ast.Binary:
		r.collect(n.Left)
		r.collect(n.Right)
	case *ast.Aggregate:
		for _, c := range n.Children {
			r.collect(c)
		}
	case *ast.Selection:
		r.collect(n.Cond)
		r.collect(n.TrueBlock)
		r.collect(n.FalseBlock)
	case *ast.Switch:
		r.collect(n.Cond)
		if n.Body != nil {
			r.collect(n.Body)
		}
	case *ast.Loop:
		r.collect(n.Body)
		if n.Test != nil {
			r.collect(n.Test)
		}
		r.collect(n.Terminal)
	case *ast.Branch:
		if n.Operand != nil {
			r.collect(n.Operand)
		}
	case *ast.Method:
		r.collect(n.Object)
	}
}

func (r *resolver) assign() error {
	for _, sym := range r.symbols {
		q := &sym.Typ.Qualifier
		switch q.Storage {
		case ast.StorageUniform, ast.StorageBuffer:
			if q.Binding >= 0 {
				continue
			}
			if q.Set < 0 {
				q.Set = r.opts.Set
			}
			for r.taken[r.nextBinding] {
				r.nextBinding++
			}
			q.Binding = r.nextBinding
			r.taken[r.nextBinding] = true
			r.made = append(r.made, Assignment{Symbol: sym.Name, Set: q.Set, Binding: q.Binding, Location: -1})

		case ast.StorageIn:
			if q.Location >= 0 {
				continue
			}
			slots := locationSlots(&sym.Typ)
			q.Location = claimLocations(r.takenIn, r.nextInput, slots)
			r.nextInput = q.Location + slots
			r.made = append(r.made, Assignment{Symbol: sym.Name, Set: -1, Binding: -1, Location: q.Location})

		case ast.StorageOut:
			if q.Location >= 0 {
				continue
			}
			slots := locationSlots(&sym.Typ)
			q.Location = claimLocations(r.takenOut, r.nextOutput, slots)
			r.nextOutput = q.Location + slots
			r.made = append(r.made, Assignment{Symbol: sym.Name, Set: -1, Binding: -1, Location: q.Location})
		}
	}

	for _, sym := range r.symbols {
		q := &sym.Typ.Qualifier
		if (q.Storage == ast.StorageUniform || q.Storage == ast.StorageBuffer) && q.Binding < 0 {
			return fmt.Errorf("bind: no binding assigned for %q", sym.Name)
		}
	}
	return nil
}

// claimLocations finds the first run of free locations wide enough for the
// symbol, starting at from, and marks it taken.
func claimLocations(taken map[int]bool, from, slots int) int {
	loc := from
	for {
		free := true
		for i := 0; i < slots; i++ {
			if taken[loc+i] {
				loc += i + 1
				free = false
				break
			}
		}
		if free {
			break
		}
	}
	for i := 0; i < slots; i++ {
		taken[loc+i] = true
	}
	return loc
}

// locationSlots returns how many sequential locations a varying of this
// type occupies: one per matrix column, one per array element, one
// otherwise.
func locationSlots(t *ast.Type) int {
	slots := 1
	if t.IsMatrix() {
		slots = t.MatrixCols
	}
	if t.ArraySize > 0 {
		slots *= t.ArraySize
	}
	return slots
}
