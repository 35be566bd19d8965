// Package sem builds typed intermediate trees from syntactic fragments: it
// resolves implicit and explicit conversions, reconciles vector/matrix
// shapes, promotes operands under a dialect- and version-dependent policy,
// folds constants at construction time, and tracks which results remain
// eligible as specialization constants.
package sem

// Dialect selects the source-language policy the builder enforces.
type Dialect uint8

const (
	// GLSL never converts shapes implicitly and keeps the strict
	// promotion partial order.
	GLSL Dialect = iota
	// HLSL adds implicit shape conversion, bool coercion for numeric
	// operators, and arbitrary conversions for assignment-like operators.
	HLSL
)

func (d Dialect) String() string {
	if d == HLSL {
		return "hlsl"
	}
	return "glsl"
}

// Profile is the language profile the compilation unit targets.
type Profile uint8

const (
	ProfileNone Profile = iota
	ProfileCore
	ProfileCompatibility
	ProfileES
)

func (p Profile) String() string {
	switch p {
	case ProfileCore:
		return "core"
	case ProfileCompatibility:
		return "compatibility"
	case ProfileES:
		return "es"
	default:
		return "none"
	}
}

// Context is the immutable compilation context threaded through every
// builder call: the source dialect plus the profile/version pair that can
// globally disable implicit promotion.
type Context struct {
	Dialect Dialect
	Profile Profile
	Version int
}

// promotionDisabled reports whether implicit promotion is globally off for
// this profile/version combination.
func (c Context) promotionDisabled() bool {
	return c.Profile == ProfileES || c.Version == 110
}
