package vm

import (
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// Num encoding tests
// ---------------------------------------------------------------------------

func TestNumRoundTrip(t *testing.T) {
	tests := []float64{
		0.0,
		-0.0,
		1.0,
		-1.0,
		3.14159265358979,
		-3.14159265358979,
		math.MaxFloat64,
		math.SmallestNonzeroFloat64,
		-math.MaxFloat64,
		math.Inf(1),
		math.Inf(-1),
	}

	for _, f := range tests {
		v := NumVal(f)
		if !v.IsNum() {
			t.Errorf("NumVal(%v).IsNum() = false, want true", f)
			continue
		}
		got := v.Num()
		if got != f {
			t.Errorf("NumVal(%v).Num() = %v, want %v", f, got, f)
		}
	}
}

func TestNumNaN(t *testing.T) {
	// A real NaN is still a number, not a tagged value.
	v := NumVal(math.NaN())
	if !v.IsNum() {
		t.Error("NaN should be a number")
	}
	if !math.IsNaN(v.Num()) {
		t.Error("NaN roundtrip failed")
	}
}

func TestNumTypeChecks(t *testing.T) {
	v := NumVal(42.5)
	if !v.IsNum() {
		t.Error("IsNum should be true")
	}
	if v.IsObj() {
		t.Error("IsObj should be false for num")
	}
	if v.IsNull() {
		t.Error("IsNull should be false for num")
	}
	if v.IsBool() {
		t.Error("IsBool should be false for num")
	}
	if v.IsUndefined() {
		t.Error("IsUndefined should be false for num")
	}
}

// ---------------------------------------------------------------------------
// Special value tests
// ---------------------------------------------------------------------------

func TestSpecialValues(t *testing.T) {
	if !Null.IsNull() {
		t.Error("Null.IsNull() = false")
	}
	if !True.IsBool() || !False.IsBool() {
		t.Error("True/False should be bools")
	}
	if !True.Bool() {
		t.Error("True.Bool() = false")
	}
	if False.Bool() {
		t.Error("False.Bool() = true")
	}
	if !Undefined.IsUndefined() {
		t.Error("Undefined.IsUndefined() = false")
	}

	specials := []Value{Null, True, False, Undefined}
	for _, v := range specials {
		if v.IsNum() {
			t.Errorf("%v.IsNum() = true, want false", v)
		}
		if v.IsObj() {
			t.Errorf("%v.IsObj() = true, want false", v)
		}
	}
}

func TestBoolVal(t *testing.T) {
	if BoolVal(true) != True {
		t.Error("BoolVal(true) != True")
	}
	if BoolVal(false) != False {
		t.Error("BoolVal(false) != False")
	}
}

func TestFalsiness(t *testing.T) {
	if !Null.IsFalsy() || !False.IsFalsy() {
		t.Error("null and false should be falsy")
	}
	if True.IsFalsy() {
		t.Error("true should not be falsy")
	}
	if NumVal(0).IsFalsy() {
		t.Error("0 should not be falsy")
	}
}

// ---------------------------------------------------------------------------
// Object pointer tests
// ---------------------------------------------------------------------------

func TestObjRoundTrip(t *testing.T) {
	vm := NewVM(nil)
	str := vm.NewString("hello")

	v := ObjVal(&str.Obj)
	if !v.IsObj() {
		t.Fatal("ObjVal result should be an object")
	}
	if v.Obj() != &str.Obj {
		t.Error("Obj() should return the original pointer")
	}
	if !IsString(v) {
		t.Error("IsString should be true")
	}
	if AsGoString(v) != "hello" {
		t.Errorf("AsGoString = %q, want %q", AsGoString(v), "hello")
	}
}

// ---------------------------------------------------------------------------
// Equality tests
// ---------------------------------------------------------------------------

func TestValuesSame(t *testing.T) {
	if !ValuesSame(NumVal(1.5), NumVal(1.5)) {
		t.Error("identical numbers should be same")
	}
	if ValuesSame(NumVal(1.5), NumVal(2.5)) {
		t.Error("different numbers should not be same")
	}
	if !ValuesSame(Null, Null) {
		t.Error("null should be same as null")
	}

	vm := NewVM(nil)
	a := vm.StringVal("abc")
	b := vm.StringVal("abc")
	if ValuesSame(a, b) {
		t.Error("distinct string objects should not be same")
	}
}

func TestValuesEqualStrings(t *testing.T) {
	vm := NewVM(nil)
	a := vm.StringVal("abc")
	b := vm.StringVal("abc")
	c := vm.StringVal("abd")

	if !ValuesEqual(a, b) {
		t.Error("byte-identical strings should be equal")
	}
	if ValuesEqual(a, c) {
		t.Error("different strings should not be equal")
	}
}

func TestValuesEqualIdentityOnly(t *testing.T) {
	vm := NewVM(nil)

	// Non-string heap objects compare by identity.
	r1 := vm.RangeVal(1, 3, true)
	r2 := vm.RangeVal(1, 3, true)
	if ValuesEqual(r1, r2) {
		t.Error("distinct ranges should not be equal")
	}
	if !ValuesEqual(r1, r1) {
		t.Error("a range should equal itself")
	}

	l1 := ObjVal(&vm.NewList(0).Obj)
	l2 := ObjVal(&vm.NewList(0).Obj)
	if ValuesEqual(l1, l2) {
		t.Error("distinct lists should not be equal")
	}
}
