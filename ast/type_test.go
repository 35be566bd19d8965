package ast

import "testing"

func TestBasicTypePredicates(t *testing.T) {
	tests := []struct {
		name     string
		basic    BasicType
		integer  bool
		floating bool
		numeric  bool
		opaque   bool
	}{
		{"int", Int, true, false, true, false},
		{"uint16", Uint16, true, false, true, false},
		{"float", Float, false, true, true, false},
		{"float16", Float16, false, true, true, false},
		{"double", Double, false, true, true, false},
		{"bool", Bool, false, false, false, false},
		{"sampler", Sampler, false, false, false, true},
		{"atomic", AtomicUint, false, false, false, true},
		{"struct", Struct, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.basic.IsInteger(); got != tt.integer {
				t.Errorf("IsInteger() = %v, want %v", got, tt.integer)
			}
			if got := tt.basic.IsFloatingDomain(); got != tt.floating {
				t.Errorf("IsFloatingDomain() = %v, want %v", got, tt.floating)
			}
			if got := tt.basic.IsNumeric(); got != tt.numeric {
				t.Errorf("IsNumeric() = %v, want %v", got, tt.numeric)
			}
			if got := tt.basic.IsOpaque(); got != tt.opaque {
				t.Errorf("IsOpaque() = %v, want %v", got, tt.opaque)
			}
		})
	}
}

func TestTypeShapePredicates(t *testing.T) {
	scalar := NewType(Float, StorageTemporary)
	vec1 := NewVectorType(Float, StorageTemporary, 1)
	vec3 := NewVectorType(Float, StorageTemporary, 3)
	mat23 := NewMatrixType(Float, StorageTemporary, 2, 3)

	if !scalar.IsScalar() || scalar.IsVector() || scalar.IsMatrix() {
		t.Error("scalar misclassified")
	}
	if vec1.IsScalar() || !vec1.IsVector() || !vec1.IsScalarOrVec1() {
		t.Error("vec1 misclassified")
	}
	if !vec3.IsVector() || vec3.IsScalarOrVec1() {
		t.Error("vec3 misclassified")
	}
	if !mat23.IsMatrix() || mat23.IsVector() {
		t.Error("matrix misclassified")
	}
	if got := mat23.ComponentCount(); got != 6 {
		t.Errorf("mat2x3 ComponentCount() = %d, want 6", got)
	}
	if got := vec3.ComponentCount(); got != 3 {
		t.Errorf("vec3 ComponentCount() = %d, want 3", got)
	}
}

func TestTypeEqual(t *testing.T) {
	member := NewType(Float, StorageTemporary)
	structA := Type{Basic: Struct, VectorSize: 1, Name: "Light",
		Members: []StructMember{{Name: "dir", Type: &member}}, Qualifier: NewQualifier(StorageTemporary)}
	structB := structA
	structC := structA
	structC.Name = "Camera"

	uniformVec := NewVectorType(Float, StorageUniform, 3)
	tempVec := NewVectorType(Float, StorageTemporary, 3)

	tests := []struct {
		name string
		a, b *Type
		want bool
	}{
		{"same scalar", &member, &member, true},
		{"qualifier ignored", &uniformVec, &tempVec, true},
		{"struct name", &structA, &structC, false},
		{"struct same", &structA, &structB, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}

	vec1 := NewVectorType(Float, StorageTemporary, 1)
	scalar := NewType(Float, StorageTemporary)
	if vec1.Equal(&scalar) {
		t.Error("vec1 must not equal scalar")
	}

	arr := NewType(Float, StorageTemporary)
	arr.ArraySize = 4
	arr2 := arr
	arr2.ArraySize = 8
	if arr.Equal(&arr2) {
		t.Error("arrays of different sizes must not be equal")
	}
}

func TestTypeString(t *testing.T) {
	vec4 := NewVectorType(Float, StorageTemporary, 4)
	vec4.Qualifier.Precision = PrecisionHigh
	mat := NewMatrixType(Float, StorageTemporary, 2, 2)
	arr := NewType(Int, StorageConst)
	arr.ArraySize = 3

	tests := []struct {
		name string
		typ  *Type
		want string
	}{
		{"vec4 highp", &vec4, "highp 4-component vector of float"},
		{"mat2", &mat, "2X2 matrix of float"},
		{"const int array", &arr, "const int (3-element array)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQualifierMutators(t *testing.T) {
	q := NewQualifier(StorageUniform)
	q.Binding = 2
	q.MakeTemporary()
	if q.Storage != StorageTemporary || q.Binding != -1 {
		t.Errorf("MakeTemporary left %+v", q)
	}

	q.MakeSpecConstant()
	if !q.IsConstant() || !q.IsSpecConstant() {
		t.Error("spec constant must also be a constant")
	}
}
