package sem

import "errors"

// Builder failure taxonomy. Builders return exactly one of these; they carry
// no formatted message because the caller owns diagnostics and anchors them
// at the construct's source location.
var (
	// ErrTypeIncompatible means no conversion path exists between an
	// operand's type and the required type.
	ErrTypeIncompatible = errors.New("type incompatible")

	// ErrShapeIncompatible means the vector/matrix shapes cannot be
	// reconciled for the operator.
	ErrShapeIncompatible = errors.New("shape incompatible")

	// ErrOperatorNotApplicable means the operator is undefined for the
	// resolved type or shape.
	ErrOperatorNotApplicable = errors.New("operator not applicable")

	// ErrOpaqueOperandRejected means a sampler, atomic, or block operand
	// was used where opaque types are disallowed.
	ErrOpaqueOperandRejected = errors.New("opaque operand rejected")
)
