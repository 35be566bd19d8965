package ast

import "testing"

func TestScalarConstructorsNarrow(t *testing.T) {
	if got := IntScalar(Int16, 1<<20).Int(); got != 0 {
		t.Errorf("int16 narrowing kept %d", got)
	}
	if got := UintScalar(Uint16, 0x1ffff).Uint(); got != 0xffff {
		t.Errorf("uint16 narrowing kept %#x", got)
	}
	if got := IntScalar(Int, -5).Int(); got != -5 {
		t.Errorf("int round trip = %d", got)
	}
	if got := FloatScalar(Float, 1.5).Float(); got != 1.5 {
		t.Errorf("float round trip = %v", got)
	}
}

func TestScalarConvert(t *testing.T) {
	tests := []struct {
		name string
		in   Scalar
		to   BasicType
		chk  func(Scalar) bool
	}{
		{"int to float", IntScalar(Int, 3), Float, func(s Scalar) bool { return s.Float() == 3 }},
		{"float to int truncates", FloatScalar(Float, 2.9), Int, func(s Scalar) bool { return s.Int() == 2 }},
		{"negative float to int truncates", FloatScalar(Float, -2.9), Int, func(s Scalar) bool { return s.Int() == -2 }},
		{"float to bool", FloatScalar(Float, 0.25), Bool, func(s Scalar) bool { return s.Bool() }},
		{"zero float to bool", FloatScalar(Float, 0), Bool, func(s Scalar) bool { return !s.Bool() }},
		{"bool to uint", BoolScalar(true), Uint, func(s Scalar) bool { return s.Uint() == 1 }},
		{"int to double", IntScalar(Int, -7), Double, func(s Scalar) bool { return s.Float() == -7 }},
		{"uint to int", UintScalar(Uint, 9), Int, func(s Scalar) bool { return s.Int() == 9 }},
		{"identity", IntScalar(Int, 4), Int, func(s Scalar) bool { return s.Int() == 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Convert(tt.to)
			if got.Kind != tt.to {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.to)
			}
			if !tt.chk(got) {
				t.Errorf("unexpected value %+v", got)
			}
		})
	}
}

func TestConvertValues(t *testing.T) {
	in := []Scalar{IntScalar(Int, 1), IntScalar(Int, 2), IntScalar(Int, 3)}
	out := ConvertValues(in, Float)
	if len(out) != 3 {
		t.Fatalf("len = %d", len(out))
	}
	for i, v := range out {
		if v.Kind != Float || v.Float() != float64(i+1) {
			t.Errorf("component %d = %+v", i, v)
		}
	}
	// input untouched
	if in[0].Kind != Int {
		t.Error("ConvertValues mutated its input")
	}
}
