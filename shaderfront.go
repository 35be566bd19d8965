// Package shaderfront is the semantic core of a shading-language compiler
// front end: it builds typed intermediate trees from syntactic fragments,
// resolving implicit conversions, vector/matrix shapes, and a dialect- and
// version-dependent promotion policy, folding constants as it goes.
//
// A parser drives the core one construct at a time through a sem.Builder:
//
//	b := shaderfront.NewBuilder(shaderfront.Options{
//	    Dialect: sem.GLSL,
//	    Profile: sem.ProfileCore,
//	    Version: 450,
//	})
//	sum, err := b.AddBinaryMath(ast.OpAdd, left, right, loc)
//	if err != nil {
//	    // report a diagnostic at loc and continue
//	}
//	root := b.Finalize(b.GrowAggregate(nil, sum, loc))
//
// The finished tree is consumed by downstream passes: the dump package
// renders it for diagnostics, and the bind package assigns resource
// bindings and varying locations by rewriting symbol qualifiers in place.
package shaderfront

import "github.com/gogpu/shaderfront/sem"

// Options selects the source dialect and the profile/version pair governing
// implicit promotion.
type Options struct {
	Dialect sem.Dialect
	Profile sem.Profile
	Version int
}

// DefaultOptions returns options for desktop GLSL 450 core.
func DefaultOptions() Options {
	return Options{Dialect: sem.GLSL, Profile: sem.ProfileCore, Version: 450}
}

// NewBuilder returns a node builder for one compilation unit. Independent
// units get independent builders.
func NewBuilder(opts Options) *sem.Builder {
	return sem.NewBuilder(sem.Context{
		Dialect: opts.Dialect,
		Profile: opts.Profile,
		Version: opts.Version,
	})
}
