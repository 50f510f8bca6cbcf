package vm

import "testing"

// ---------------------------------------------------------------------------
// String primitive tests
// ---------------------------------------------------------------------------

func TestStringCountAndByteCount(t *testing.T) {
	vm := testVM(t)

	got, ok := callPrim(t, vm, vm.StringVal("hello"), "count")
	wantNum(t, vm, got, ok, 5)

	// "héllo" is five code points in six bytes.
	s := vm.StringVal("héllo")
	got, ok = callPrim(t, vm, s, "count")
	wantNum(t, vm, got, ok, 5)
	got, ok = callPrim(t, vm, s, "byteCount_")
	wantNum(t, vm, got, ok, 6)
}

func TestStringPlus(t *testing.T) {
	vm := testVM(t)

	got, ok := callPrim(t, vm, vm.StringVal("foo"), "+(_)", vm.StringVal("bar"))
	wantString(t, vm, got, ok, "foobar")

	_, ok = callPrim(t, vm, vm.StringVal("foo"), "+(_)", NumVal(1))
	wantPrimError(t, vm, ok, "Right operand must be a string.")
}

func TestStringFromCodePoint(t *testing.T) {
	vm := testVM(t)
	str := classValue(vm.StringClass)

	got, ok := callPrim(t, vm, str, "fromCodePoint(_)", NumVal(65))
	wantString(t, vm, got, ok, "A")

	got, ok = callPrim(t, vm, str, "fromCodePoint(_)", NumVal(0xe9))
	wantString(t, vm, got, ok, "é")

	got, ok = callPrim(t, vm, str, "fromCodePoint(_)", NumVal(0x1f600))
	wantString(t, vm, got, ok, "\U0001f600")

	_, ok = callPrim(t, vm, str, "fromCodePoint(_)", NumVal(-1))
	wantPrimError(t, vm, ok, "Code point cannot be negative.")

	_, ok = callPrim(t, vm, str, "fromCodePoint(_)", NumVal(0x110000))
	wantPrimError(t, vm, ok, "Code point cannot be greater than 0x10ffff.")

	_, ok = callPrim(t, vm, str, "fromCodePoint(_)", NumVal(1.5))
	wantPrimError(t, vm, ok, "Code point must be an integer.")
}

func TestStringFromByte(t *testing.T) {
	vm := testVM(t)
	str := classValue(vm.StringClass)

	got, ok := callPrim(t, vm, str, "fromByte(_)", NumVal(0x41))
	wantString(t, vm, got, ok, "A")

	_, ok = callPrim(t, vm, str, "fromByte(_)", NumVal(-1))
	wantPrimError(t, vm, ok, "Byte cannot be negative.")

	_, ok = callPrim(t, vm, str, "fromByte(_)", NumVal(256))
	wantPrimError(t, vm, ok, "Byte cannot be greater than 0xff.")
}

func TestStringByteAt(t *testing.T) {
	vm := testVM(t)
	s := vm.StringVal("abc")

	got, ok := callPrim(t, vm, s, "byteAt_(_)", NumVal(1))
	wantNum(t, vm, got, ok, 'b')

	// Negative indices count from the end.
	got, ok = callPrim(t, vm, s, "byteAt_(_)", NumVal(-1))
	wantNum(t, vm, got, ok, 'c')

	_, ok = callPrim(t, vm, s, "byteAt_(_)", NumVal(3))
	wantPrimError(t, vm, ok, "Index out of bounds.")
}

func TestStringCodePointAt(t *testing.T) {
	vm := testVM(t)
	s := vm.StringVal("héllo")

	got, ok := callPrim(t, vm, s, "codePointAt_(_)", NumVal(0))
	wantNum(t, vm, got, ok, 'h')

	got, ok = callPrim(t, vm, s, "codePointAt_(_)", NumVal(1))
	wantNum(t, vm, got, ok, 0xe9)

	// Index 2 lands in the continuation byte of the two-byte sequence.
	got, ok = callPrim(t, vm, s, "codePointAt_(_)", NumVal(2))
	wantNum(t, vm, got, ok, -1)

	got, ok = callPrim(t, vm, s, "codePointAt_(_)", NumVal(3))
	wantNum(t, vm, got, ok, 'l')
}

// Round trip: fromCodePoint(s.codePointAt_(i)) yields the character at i.
func TestStringCodePointRoundTrip(t *testing.T) {
	vm := testVM(t)
	str := classValue(vm.StringClass)
	s := "hél\U0001f600o"

	for _, i := range []int{0, 1, 3, 4, 8} {
		cp, ok := callPrim(t, vm, vm.StringVal(s), "codePointAt_(_)", NumVal(float64(i)))
		if !ok {
			t.Fatalf("codePointAt_(%d) failed: %v", i, primError(vm))
		}
		back, ok := callPrim(t, vm, str, "fromCodePoint(_)", cp)
		if !ok {
			t.Fatalf("fromCodePoint failed: %v", primError(vm))
		}
		char, ok := callPrim(t, vm, vm.StringVal(s), "[_]", NumVal(float64(i)))
		if !ok {
			t.Fatalf("subscript failed: %v", primError(vm))
		}
		if AsGoString(back) != AsGoString(char) {
			t.Errorf("index %d: fromCodePoint = %q, subscript = %q", i, AsGoString(back), AsGoString(char))
		}
	}
}

func TestStringSubscript(t *testing.T) {
	vm := testVM(t)
	s := vm.StringVal("héllo")

	got, ok := callPrim(t, vm, s, "[_]", NumVal(0))
	wantString(t, vm, got, ok, "h")

	got, ok = callPrim(t, vm, s, "[_]", NumVal(1))
	wantString(t, vm, got, ok, "é")

	_, ok = callPrim(t, vm, s, "[_]", True)
	wantPrimError(t, vm, ok, "Subscript must be a number or a range.")

	_, ok = callPrim(t, vm, s, "[_]", NumVal(99))
	wantPrimError(t, vm, ok, "Subscript out of bounds.")
}

func TestStringSubscriptRange(t *testing.T) {
	vm := testVM(t)
	s := vm.StringVal("hello")

	got, ok := callPrim(t, vm, s, "[_]", vm.RangeVal(1, 3, true))
	wantString(t, vm, got, ok, "ell")

	got, ok = callPrim(t, vm, s, "[_]", vm.RangeVal(1, 3, false))
	wantString(t, vm, got, ok, "el")

	// A negative step selects backwards.
	got, ok = callPrim(t, vm, s, "[_]", vm.RangeVal(4, 0, true))
	wantString(t, vm, got, ok, "olleh")

	// A full-copy range works on an empty string.
	empty := vm.StringVal("")
	got, ok = callPrim(t, vm, empty, "[_]", vm.RangeVal(0, -1, true))
	wantString(t, vm, got, ok, "")
}

func TestStringSearch(t *testing.T) {
	vm := testVM(t)
	s := vm.StringVal("needle in a haystack")

	got, ok := callPrim(t, vm, s, "contains(_)", vm.StringVal("hay"))
	wantBool(t, vm, got, ok, true)
	got, ok = callPrim(t, vm, s, "contains(_)", vm.StringVal("nope"))
	wantBool(t, vm, got, ok, false)

	got, ok = callPrim(t, vm, s, "startsWith(_)", vm.StringVal("needle"))
	wantBool(t, vm, got, ok, true)
	got, ok = callPrim(t, vm, s, "endsWith(_)", vm.StringVal("stack"))
	wantBool(t, vm, got, ok, true)

	got, ok = callPrim(t, vm, s, "indexOf(_)", vm.StringVal("in"))
	wantNum(t, vm, got, ok, 7)
	got, ok = callPrim(t, vm, s, "indexOf(_)", vm.StringVal("zzz"))
	wantNum(t, vm, got, ok, -1)

	got, ok = callPrim(t, vm, s, "indexOf(_,_)", vm.StringVal("a"), NumVal(11))
	wantNum(t, vm, got, ok, 13)

	_, ok = callPrim(t, vm, s, "indexOf(_)", NumVal(2))
	wantPrimError(t, vm, ok, "Argument must be a string.")
}

func TestStringIterate(t *testing.T) {
	vm := testVM(t)

	// Iteration yields code point start indices, skipping continuation
	// bytes.
	s := vm.StringVal("héo")

	got, ok := callPrim(t, vm, s, "iterate(_)", Null)
	wantNum(t, vm, got, ok, 0)

	got, ok = callPrim(t, vm, s, "iterate(_)", NumVal(0))
	wantNum(t, vm, got, ok, 1)

	// From the é at byte 1, the next start is byte 3.
	got, ok = callPrim(t, vm, s, "iterate(_)", NumVal(1))
	wantNum(t, vm, got, ok, 3)

	got, ok = callPrim(t, vm, s, "iterate(_)", NumVal(3))
	wantIterationDone(t, vm, got, ok)

	empty := vm.StringVal("")
	got, ok = callPrim(t, vm, empty, "iterate(_)", Null)
	wantIterationDone(t, vm, got, ok)
}

func TestStringIterateByte(t *testing.T) {
	vm := testVM(t)
	s := vm.StringVal("ab")

	got, ok := callPrim(t, vm, s, "iterateByte_(_)", Null)
	wantNum(t, vm, got, ok, 0)
	got, ok = callPrim(t, vm, s, "iterateByte_(_)", NumVal(0))
	wantNum(t, vm, got, ok, 1)
	got, ok = callPrim(t, vm, s, "iterateByte_(_)", NumVal(1))
	wantIterationDone(t, vm, got, ok)
}

func TestStringIteratorValue(t *testing.T) {
	vm := testVM(t)
	s := vm.StringVal("héo")

	got, ok := callPrim(t, vm, s, "iteratorValue(_)", NumVal(1))
	wantString(t, vm, got, ok, "é")
}

func TestStringToString(t *testing.T) {
	vm := testVM(t)
	s := vm.StringVal("self")

	got, ok := callPrim(t, vm, s, "toString")
	if !ok {
		t.Fatalf("toString failed: %v", primError(vm))
	}
	if got != s {
		t.Error("toString should return the receiver itself")
	}
}

func TestStringDollar(t *testing.T) {
	vm := testVM(t)

	// Unset handler: the method answers null.
	got, ok := callPrim(t, vm, vm.StringVal("q"), "$(_)", NumVal(1))
	if !ok || !got.IsNull() {
		t.Error("$ should return null when no handler is configured")
	}

	// Configured handler receives the call.
	vm.Configuration().DollarOperator = func(v *VM, args []Value) bool {
		args[0] = v.StringVal("handled:" + AsGoString(args[0]))
		return true
	}
	got, ok = callPrim(t, vm, vm.StringVal("q"), "$(_)", NumVal(1))
	wantString(t, vm, got, ok, "handled:q")
}
