package ast

import "strconv"

// Operator tags Unary, Binary, Aggregate, and Branch nodes. The enumeration
// is closed: every operator the builders can emit is listed here, and the
// per-concern tables (IsConstructor, IsAssignOp, ModifiesState, ConversionOp,
// String) are kept beside it so each can be tested on its own.
type Operator uint16

const (
	OpNull Operator = iota // untagged aggregate marker

	// Structural
	OpSequence
	OpLinkerObjects
	OpComma
	OpFunction
	OpFunctionCall

	// Branches
	OpReturn
	OpBreak
	OpContinue
	OpCase
	OpDefault

	// Dereference and swizzle
	OpIndexDirect
	OpIndexIndirect
	OpIndexDirectStruct
	OpVectorSwizzle
	OpMatrixSwizzle

	// Unary
	OpNegative
	OpLogicalNot
	OpBitwiseNot
	OpPostIncrement
	OpPostDecrement
	OpPreIncrement
	OpPreDecrement

	// Binary arithmetic
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	// Multiplication refinements, chosen by operand shapes during promotion
	OpVectorTimesScalar
	OpVectorTimesMatrix
	OpMatrixTimesVector
	OpMatrixTimesScalar
	OpMatrixTimesMatrix

	// Comparison
	OpEqual
	OpNotEqual
	OpVectorEqual
	OpVectorNotEqual
	OpLessThan
	OpGreaterThan
	OpLessThanEqual
	OpGreaterThanEqual

	// Logical
	OpLogicalAnd
	OpLogicalOr
	OpLogicalXor

	// Bitwise
	OpAnd
	OpInclusiveOr
	OpExclusiveOr

	// Shift
	OpLeftShift
	OpRightShift

	// Assignment family
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpInclusiveOrAssign
	OpExclusiveOrAssign
	OpLeftShiftAssign
	OpRightShiftAssign
	OpVectorTimesScalarAssign
	OpVectorTimesMatrixAssign
	OpMatrixTimesScalarAssign
	OpMatrixTimesMatrixAssign

	// Multi-argument built-ins eligible for implicit argument conversion
	OpAtan
	OpClamp
	OpCross
	OpDistance
	OpDot
	OpDst
	OpFaceForward
	OpFma
	OpFrexp
	OpLdexp
	OpMix
	OpLit
	OpMax
	OpMin
	OpModf
	OpPow
	OpReflect
	OpRefract
	OpSmoothStep
	OpStep

	opConvGuardStart
)

// Conversion operators, one per (source, target) basic-type pair, grouped by
// target. Emitted as Unary wrappers by the conversion engine.
const (
	OpConvIntToDouble Operator = opConvGuardStart + 1 + iota
	OpConvUintToDouble
	OpConvBoolToDouble
	OpConvFloatToDouble
	OpConvFloat16ToDouble
	OpConvInt64ToDouble
	OpConvUint64ToDouble
	OpConvInt16ToDouble
	OpConvUint16ToDouble

	OpConvIntToFloat
	OpConvUintToFloat
	OpConvBoolToFloat
	OpConvDoubleToFloat
	OpConvFloat16ToFloat
	OpConvInt64ToFloat
	OpConvUint64ToFloat
	OpConvInt16ToFloat
	OpConvUint16ToFloat

	OpConvIntToFloat16
	OpConvUintToFloat16
	OpConvBoolToFloat16
	OpConvFloatToFloat16
	OpConvDoubleToFloat16
	OpConvInt64ToFloat16
	OpConvUint64ToFloat16
	OpConvInt16ToFloat16
	OpConvUint16ToFloat16

	OpConvIntToBool
	OpConvUintToBool
	OpConvFloatToBool
	OpConvDoubleToBool
	OpConvFloat16ToBool
	OpConvInt64ToBool
	OpConvUint64ToBool
	OpConvInt16ToBool
	OpConvUint16ToBool

	OpConvUintToInt
	OpConvBoolToInt
	OpConvFloatToInt
	OpConvDoubleToInt
	OpConvFloat16ToInt
	OpConvInt64ToInt
	OpConvUint64ToInt
	OpConvInt16ToInt
	OpConvUint16ToInt

	OpConvIntToUint
	OpConvBoolToUint
	OpConvFloatToUint
	OpConvDoubleToUint
	OpConvFloat16ToUint
	OpConvInt64ToUint
	OpConvUint64ToUint
	OpConvInt16ToUint
	OpConvUint16ToUint

	OpConvIntToInt64
	OpConvUintToInt64
	OpConvBoolToInt64
	OpConvFloatToInt64
	OpConvDoubleToInt64
	OpConvFloat16ToInt64
	OpConvUint64ToInt64
	OpConvInt16ToInt64
	OpConvUint16ToInt64

	OpConvIntToUint64
	OpConvUintToUint64
	OpConvBoolToUint64
	OpConvFloatToUint64
	OpConvDoubleToUint64
	OpConvFloat16ToUint64
	OpConvInt64ToUint64
	OpConvInt16ToUint64
	OpConvUint16ToUint64

	OpConvIntToInt16
	OpConvUintToInt16
	OpConvBoolToInt16
	OpConvFloatToInt16
	OpConvDoubleToInt16
	OpConvFloat16ToInt16
	OpConvInt64ToInt16
	OpConvUint64ToInt16
	OpConvUint16ToInt16

	OpConvIntToUint16
	OpConvUintToUint16
	OpConvBoolToUint16
	OpConvFloatToUint16
	OpConvDoubleToUint16
	OpConvFloat16ToUint16
	OpConvInt64ToUint16
	OpConvUint64ToUint16
	OpConvInt16ToUint16

	opConvGuardEnd
)

// Construction operators. Scalar constructors fix the basic type; shaped
// constructors fix the shape, with the element type carried by the node.
const (
	opConstructGuardStart Operator = opConvGuardEnd + iota

	OpConstructBool
	OpConstructFloat
	OpConstructDouble
	OpConstructFloat16
	OpConstructInt
	OpConstructUint
	OpConstructInt64
	OpConstructUint64
	OpConstructInt16
	OpConstructUint16

	OpConstructVec2
	OpConstructVec3
	OpConstructVec4
	OpConstructMat2x2
	OpConstructMat2x3
	OpConstructMat2x4
	OpConstructMat3x2
	OpConstructMat3x3
	OpConstructMat3x4
	OpConstructMat4x2
	OpConstructMat4x3
	OpConstructMat4x4

	OpConstructStruct
	OpConstructTextureSampler

	opConstructGuardEnd
)

// convPairs is the single source of truth tying conversion operators to
// their (from, to) basic-type pair.
var convPairs = func() map[Operator][2]BasicType {
	targets := []BasicType{Double, Float, Float16, Bool, Int, Uint, Int64, Uint64, Int16, Uint16}
	sources := map[BasicType][]BasicType{
		Double:  {Int, Uint, Bool, Float, Float16, Int64, Uint64, Int16, Uint16},
		Float:   {Int, Uint, Bool, Double, Float16, Int64, Uint64, Int16, Uint16},
		Float16: {Int, Uint, Bool, Float, Double, Int64, Uint64, Int16, Uint16},
		Bool:    {Int, Uint, Float, Double, Float16, Int64, Uint64, Int16, Uint16},
		Int:     {Uint, Bool, Float, Double, Float16, Int64, Uint64, Int16, Uint16},
		Uint:    {Int, Bool, Float, Double, Float16, Int64, Uint64, Int16, Uint16},
		Int64:   {Int, Uint, Bool, Float, Double, Float16, Uint64, Int16, Uint16},
		Uint64:  {Int, Uint, Bool, Float, Double, Float16, Int64, Int16, Uint16},
		Int16:   {Int, Uint, Bool, Float, Double, Float16, Int64, Uint64, Uint16},
		Uint16:  {Int, Uint, Bool, Float, Double, Float16, Int64, Uint64, Int16},
	}
	m := make(map[Operator][2]BasicType, 90)
	op := opConvGuardStart + 1
	for _, to := range targets {
		for _, from := range sources[to] {
			m[op] = [2]BasicType{from, to}
			op++
		}
	}
	return m
}()

var convOps = func() map[[2]BasicType]Operator {
	m := make(map[[2]BasicType]Operator, len(convPairs))
	for op, pair := range convPairs {
		m[pair] = op
	}
	return m
}()

// ConversionOp returns the conversion operator for the given basic-type
// pair, or OpNull if no such conversion exists.
func ConversionOp(from, to BasicType) Operator {
	return convOps[[2]BasicType{from, to}]
}

// ConversionTypes returns the (from, to) basic-type pair of a conversion
// operator. ok is false for non-conversion operators.
func (op Operator) ConversionTypes() (from, to BasicType, ok bool) {
	pair, ok := convPairs[op]
	return pair[0], pair[1], ok
}

// IsConversion reports whether the operator is a basic-type conversion.
func (op Operator) IsConversion() bool {
	return op > opConvGuardStart && op < opConvGuardEnd
}

// IsConstructor reports whether the operator constructs a value.
func (op Operator) IsConstructor() bool {
	return op > opConstructGuardStart && op < opConstructGuardEnd
}

// ConstructorBasicType returns the basic type fixed by a scalar construction
// operator, or Void for every other operator.
func (op Operator) ConstructorBasicType() BasicType {
	switch op {
	case OpConstructBool:
		return Bool
	case OpConstructFloat:
		return Float
	case OpConstructDouble:
		return Double
	case OpConstructFloat16:
		return Float16
	case OpConstructInt:
		return Int
	case OpConstructUint:
		return Uint
	case OpConstructInt64:
		return Int64
	case OpConstructUint64:
		return Uint64
	case OpConstructInt16:
		return Int16
	case OpConstructUint16:
		return Uint16
	default:
		return Void
	}
}

// IsAssignOp reports whether the operator is in the assignment family.
func (op Operator) IsAssignOp() bool {
	switch op {
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign, OpDivAssign, OpModAssign,
		OpAndAssign, OpInclusiveOrAssign, OpExclusiveOrAssign,
		OpLeftShiftAssign, OpRightShiftAssign,
		OpVectorTimesScalarAssign, OpVectorTimesMatrixAssign,
		OpMatrixTimesScalarAssign, OpMatrixTimesMatrixAssign:
		return true
	default:
		return false
	}
}

// ModifiesState reports whether the operator changes the value of a
// variable. Such operators are never constant-folded.
func (op Operator) ModifiesState() bool {
	if op.IsAssignOp() {
		return true
	}
	switch op {
	case OpPostIncrement, OpPostDecrement, OpPreIncrement, OpPreDecrement:
		return true
	default:
		return false
	}
}

// IsDereference reports whether the operator selects into a composite:
// indexing or swizzling.
func (op Operator) IsDereference() bool {
	switch op {
	case OpIndexDirect, OpIndexIndirect, OpIndexDirectStruct, OpVectorSwizzle, OpMatrixSwizzle:
		return true
	default:
		return false
	}
}

var opNames = map[Operator]string{
	OpNull:          "null",
	OpSequence:      "sequence",
	OpLinkerObjects: "linker objects",
	OpComma:         "comma",
	OpFunction:      "function",
	OpFunctionCall:  "function call",

	OpReturn:   "return",
	OpBreak:    "break",
	OpContinue: "continue",
	OpCase:     "case",
	OpDefault:  "default",

	OpIndexDirect:       "direct index",
	OpIndexIndirect:     "indirect index",
	OpIndexDirectStruct: "direct index for structure",
	OpVectorSwizzle:     "vector swizzle",
	OpMatrixSwizzle:     "matrix swizzle",

	OpNegative:      "negation",
	OpLogicalNot:    "logical not",
	OpBitwiseNot:    "bitwise not",
	OpPostIncrement: "post increment",
	OpPostDecrement: "post decrement",
	OpPreIncrement:  "pre increment",
	OpPreDecrement:  "pre decrement",

	OpAdd: "add",
	OpSub: "subtract",
	OpMul: "component-wise multiply",
	OpDiv: "divide",
	OpMod: "mod",

	OpVectorTimesScalar: "vector-scale",
	OpVectorTimesMatrix: "vector-times-matrix",
	OpMatrixTimesVector: "matrix-times-vector",
	OpMatrixTimesScalar: "matrix-scale",
	OpMatrixTimesMatrix: "matrix-multiply",

	OpEqual:            "compare equal",
	OpNotEqual:         "compare not equal",
	OpVectorEqual:      "component-wise equal",
	OpVectorNotEqual:   "component-wise not equal",
	OpLessThan:         "compare less than",
	OpGreaterThan:      "compare greater than",
	OpLessThanEqual:    "compare less than or equal",
	OpGreaterThanEqual: "compare greater than or equal",

	OpLogicalAnd: "logical and",
	OpLogicalOr:  "logical or",
	OpLogicalXor: "logical xor",

	OpAnd:         "bitwise and",
	OpInclusiveOr: "bitwise or",
	OpExclusiveOr: "bitwise xor",

	OpLeftShift:  "left shift",
	OpRightShift: "right shift",

	OpAssign:                  "move second child to first child",
	OpAddAssign:               "add second child into first child",
	OpSubAssign:               "subtract second child into first child",
	OpMulAssign:               "multiply second child into first child",
	OpDivAssign:               "divide second child into first child",
	OpModAssign:               "mod second child into first child",
	OpAndAssign:               "and second child into first child",
	OpInclusiveOrAssign:       "or second child into first child",
	OpExclusiveOrAssign:       "xor second child into first child",
	OpLeftShiftAssign:         "left shift second child into first child",
	OpRightShiftAssign:        "right shift second child into first child",
	OpVectorTimesScalarAssign: "vector scale second child into first child",
	OpVectorTimesMatrixAssign: "vector-times-matrix second child into first child",
	OpMatrixTimesScalarAssign: "matrix scale second child into first child",
	OpMatrixTimesMatrixAssign: "matrix multiply second child into first child",

	OpAtan:        "arc tangent",
	OpClamp:       "clamp",
	OpCross:       "cross product",
	OpDistance:    "distance",
	OpDot:         "dot product",
	OpDst:         "dst",
	OpFaceForward: "face forward",
	OpFma:         "fma",
	OpFrexp:       "frexp",
	OpLdexp:       "ldexp",
	OpMix:         "mix",
	OpLit:         "lit",
	OpMax:         "max",
	OpMin:         "min",
	OpModf:        "modf",
	OpPow:         "pow",
	OpReflect:     "reflect",
	OpRefract:     "refract",
	OpSmoothStep:  "smoothstep",
	OpStep:        "step",

	OpConstructBool:           "Construct bool",
	OpConstructFloat:          "Construct float",
	OpConstructDouble:         "Construct double",
	OpConstructFloat16:        "Construct float16_t",
	OpConstructInt:            "Construct int",
	OpConstructUint:           "Construct uint",
	OpConstructInt64:          "Construct int64_t",
	OpConstructUint64:         "Construct uint64_t",
	OpConstructInt16:          "Construct int16_t",
	OpConstructUint16:         "Construct uint16_t",
	OpConstructVec2:           "Construct vec2",
	OpConstructVec3:           "Construct vec3",
	OpConstructVec4:           "Construct vec4",
	OpConstructMat2x2:         "Construct mat2",
	OpConstructMat2x3:         "Construct mat2x3",
	OpConstructMat2x4:         "Construct mat2x4",
	OpConstructMat3x2:         "Construct mat3x2",
	OpConstructMat3x3:         "Construct mat3",
	OpConstructMat3x4:         "Construct mat3x4",
	OpConstructMat4x2:         "Construct mat4x2",
	OpConstructMat4x3:         "Construct mat4x3",
	OpConstructMat4x4:         "Construct mat4",
	OpConstructStruct:         "Construct structure",
	OpConstructTextureSampler: "Construct combined texture-sampler",
}

// String returns the diagnostic spelling of the operator.
func (op Operator) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	if from, to, ok := op.ConversionTypes(); ok {
		return "Convert " + from.String() + " to " + to.String()
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}
