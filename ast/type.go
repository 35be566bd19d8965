package ast

import "strconv"

// BasicType identifies the scalar element kind of a value, or one of the
// non-numeric kinds (struct, block, string, opaque resources).
type BasicType uint8

const (
	Void BasicType = iota
	Float
	Double
	Float16
	Int
	Uint
	Int64
	Uint64
	Int16
	Uint16
	Bool
	AtomicUint
	Sampler
	Struct
	Block
	String
)

// IsInteger reports whether the basic type is in the integer family.
func (b BasicType) IsInteger() bool {
	switch b {
	case Int, Uint, Int64, Uint64, Int16, Uint16:
		return true
	default:
		return false
	}
}

// IsSigned reports whether the basic type is a signed integer.
func (b BasicType) IsSigned() bool {
	return b == Int || b == Int64 || b == Int16
}

// IsFloatingDomain reports whether the basic type is in the floating-point family.
func (b BasicType) IsFloatingDomain() bool {
	return b == Float || b == Double || b == Float16
}

// IsNumeric reports whether the basic type supports arithmetic.
func (b BasicType) IsNumeric() bool {
	return b.IsInteger() || b.IsFloatingDomain()
}

// IsOpaque reports whether the basic type is an opaque resource handle.
func (b BasicType) IsOpaque() bool {
	return b == Sampler || b == AtomicUint
}

// String returns the source-level spelling of the basic type.
func (b BasicType) String() string {
	switch b {
	case Void:
		return "void"
	case Float:
		return "float"
	case Double:
		return "double"
	case Float16:
		return "float16_t"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Int64:
		return "int64_t"
	case Uint64:
		return "uint64_t"
	case Int16:
		return "int16_t"
	case Uint16:
		return "uint16_t"
	case Bool:
		return "bool"
	case AtomicUint:
		return "atomic_uint"
	case Sampler:
		return "sampler"
	case Struct:
		return "structure"
	case Block:
		return "block"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// StorageClass is a value's storage qualification.
type StorageClass uint8

const (
	StorageTemporary StorageClass = iota
	StorageConst
	StorageGlobal
	StorageUniform
	StorageIn
	StorageOut
	StorageBuffer
	StorageShared
)

// String returns the source-level spelling of the storage class.
func (s StorageClass) String() string {
	switch s {
	case StorageTemporary:
		return "temp"
	case StorageConst:
		return "const"
	case StorageGlobal:
		return "global"
	case StorageUniform:
		return "uniform"
	case StorageIn:
		return "in"
	case StorageOut:
		return "out"
	case StorageBuffer:
		return "buffer"
	case StorageShared:
		return "shared"
	default:
		return "unknown"
	}
}

// Precision is a precision hint on a numeric type.
type Precision uint8

const (
	PrecisionNone Precision = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

// String returns the source-level spelling of the precision qualifier.
func (p Precision) String() string {
	switch p {
	case PrecisionLow:
		return "lowp"
	case PrecisionMedium:
		return "mediump"
	case PrecisionHigh:
		return "highp"
	default:
		return ""
	}
}

// Qualifier carries the non-structural properties of a type: storage class,
// precision, constness, and the resource-binding surface that the bind pass
// rewrites in place after construction.
type Qualifier struct {
	Storage      StorageClass
	Precision    Precision
	SpecConstant bool

	// Binding surface. -1 means unassigned.
	Set       int
	Binding   int
	Location  int
	Component int
	Index     int
}

// NewQualifier returns a qualifier of the given storage class with all
// binding fields unassigned.
func NewQualifier(storage StorageClass) Qualifier {
	return Qualifier{
		Storage:   storage,
		Set:       -1,
		Binding:   -1,
		Location:  -1,
		Component: -1,
		Index:     -1,
	}
}

// IsConstant reports whether the qualified value is a compile-time constant.
// Specialization constants are constants too.
func (q *Qualifier) IsConstant() bool {
	return q.Storage == StorageConst
}

// IsSpecConstant reports whether the qualified value is a specialization
// constant: a constant whose concrete value is deferred to a later stage.
func (q *Qualifier) IsSpecConstant() bool {
	return q.SpecConstant
}

// MakeTemporary resets the qualifier to a plain temporary, dropping constness
// and any binding assignment.
func (q *Qualifier) MakeTemporary() {
	*q = NewQualifier(StorageTemporary)
}

// MakeSpecConstant marks the qualified value as a specialization constant.
func (q *Qualifier) MakeSpecConstant() {
	q.Storage = StorageConst
	q.SpecConstant = true
}

// ImageDim is the dimensionality of an opaque texture or image resource.
type ImageDim uint8

const (
	Dim1D ImageDim = iota
	Dim2D
	Dim3D
	DimCube
	DimBuffer
)

// SamplerDesc describes an opaque sampler, texture, or image resource.
type SamplerDesc struct {
	Dim      ImageDim
	Arrayed  bool
	Shadow   bool
	MS       bool
	Image    bool // storage image rather than sampled texture
	Combined bool // texture and sampler bound as one unit
	Pure     bool // sampler with no associated texture
}

// StructMember is one field of a struct or block type.
type StructMember struct {
	Name string
	Type *Type
}

// RuntimeArray marks an array whose size is resolved at a later stage.
const RuntimeArray = -1

// Type is the full type of a node: basic type, shape, qualification, and the
// optional struct-member list or opaque-resource descriptor.
//
// Type identity (Equal) is structural and ignores the qualifier; arrays and
// structs are equal only on exact structural match and are never implicitly
// converted or reshaped.
type Type struct {
	Basic      BasicType
	VectorSize int // 1..4; 1 for scalars and for matrices
	MatrixCols int // 0 when not a matrix
	MatrixRows int // 0 when not a matrix
	Vec1       bool // explicit one-component vector, distinct from a scalar
	ArraySize  int  // 0 not an array, RuntimeArray, or a fixed size

	Qualifier Qualifier

	Name    string         // struct/block type name
	Members []StructMember // struct/block members
	Sampler *SamplerDesc   // opaque resource description
}

// NewType returns a scalar type of the given basic type and storage class.
func NewType(basic BasicType, storage StorageClass) Type {
	return Type{Basic: basic, VectorSize: 1, Qualifier: NewQualifier(storage)}
}

// NewVectorType returns a vector type; size 1 yields an explicit vec1.
func NewVectorType(basic BasicType, storage StorageClass, size int) Type {
	t := NewType(basic, storage)
	t.VectorSize = size
	t.Vec1 = size == 1
	return t
}

// NewMatrixType returns a cols×rows matrix type.
func NewMatrixType(basic BasicType, storage StorageClass, cols, rows int) Type {
	t := NewType(basic, storage)
	t.MatrixCols = cols
	t.MatrixRows = rows
	return t
}

// IsMatrix reports whether the type is a matrix.
func (t *Type) IsMatrix() bool { return t.MatrixCols > 0 }

// IsVector reports whether the type is a vector (including explicit vec1).
func (t *Type) IsVector() bool { return !t.IsMatrix() && (t.VectorSize > 1 || t.Vec1) }

// IsScalar reports whether the type is a plain scalar: not a vector, matrix,
// array, or struct.
func (t *Type) IsScalar() bool {
	return !t.IsMatrix() && !t.IsVector() && !t.IsArray() && !t.IsStruct()
}

// IsScalarOrVec1 reports whether the type has exactly one component and is
// not a matrix, array, or struct.
func (t *Type) IsScalarOrVec1() bool {
	return t.IsScalar() || (t.Vec1 && t.VectorSize == 1 && !t.IsArray())
}

// IsArray reports whether the type is an array.
func (t *Type) IsArray() bool { return t.ArraySize != 0 }

// IsStruct reports whether the type is a struct or block.
func (t *Type) IsStruct() bool { return t.Basic == Struct || t.Basic == Block }

// IsOpaque reports whether the type is an opaque resource handle.
func (t *Type) IsOpaque() bool { return t.Basic.IsOpaque() }

// ComponentCount returns the number of scalar components in one element of
// the type: cols×rows for matrices, the vector size otherwise.
func (t *Type) ComponentCount() int {
	if t.IsMatrix() {
		return t.MatrixCols * t.MatrixRows
	}
	return t.VectorSize
}

// SameShape reports whether two types agree in vector size and matrix
// dimensions, ignoring basic type and qualification.
func (t *Type) SameShape(o *Type) bool {
	return t.VectorSize == o.VectorSize &&
		t.MatrixCols == o.MatrixCols &&
		t.MatrixRows == o.MatrixRows
}

// Equal reports structural type identity. Qualifiers are not part of type
// identity; struct members and opaque descriptors are compared recursively.
func (t *Type) Equal(o *Type) bool {
	if t.Basic != o.Basic || !t.SameShape(o) || t.Vec1 != o.Vec1 || t.ArraySize != o.ArraySize {
		return false
	}
	if t.IsStruct() {
		if t.Name != o.Name || len(t.Members) != len(o.Members) {
			return false
		}
		for i := range t.Members {
			if t.Members[i].Name != o.Members[i].Name || !t.Members[i].Type.Equal(o.Members[i].Type) {
				return false
			}
		}
	}
	if (t.Sampler == nil) != (o.Sampler == nil) {
		return false
	}
	if t.Sampler != nil && *t.Sampler != *o.Sampler {
		return false
	}
	return true
}

// String returns a human-readable type spelling, used by the tree dumper.
func (t *Type) String() string {
	s := ""
	if t.Qualifier.Storage != StorageTemporary {
		s += t.Qualifier.Storage.String() + " "
	}
	if t.Qualifier.SpecConstant {
		s += "specialization-constant "
	}
	if p := t.Qualifier.Precision.String(); p != "" {
		s += p + " "
	}
	switch {
	case t.IsMatrix():
		s += strconv.Itoa(t.MatrixCols) + "X" + strconv.Itoa(t.MatrixRows) + " matrix of " + t.Basic.String()
	case t.IsVector():
		s += strconv.Itoa(t.VectorSize) + "-component vector of " + t.Basic.String()
	case t.IsStruct() && t.Name != "":
		s += t.Basic.String() + " '" + t.Name + "'"
	default:
		s += t.Basic.String()
	}
	if t.ArraySize == RuntimeArray {
		s += " (unsized array)"
	} else if t.ArraySize > 0 {
		s += " (" + strconv.Itoa(t.ArraySize) + "-element array)"
	}
	return s
}
