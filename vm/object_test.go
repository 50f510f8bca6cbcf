package vm

import "testing"

// ---------------------------------------------------------------------------
// Object primitive tests
// ---------------------------------------------------------------------------

func TestObjectEquality(t *testing.T) {
	vm := testVM(t)

	list := ObjVal(&vm.NewList(0).Obj)
	got, ok := callPrim(t, vm, list, "==(_)", list)
	wantBool(t, vm, got, ok, true)

	other := ObjVal(&vm.NewList(0).Obj)
	got, ok = callPrim(t, vm, list, "==(_)", other)
	wantBool(t, vm, got, ok, false)

	got, ok = callPrim(t, vm, list, "!=(_)", other)
	wantBool(t, vm, got, ok, true)
}

func TestObjectNot(t *testing.T) {
	vm := testVM(t)

	list := ObjVal(&vm.NewList(0).Obj)
	got, ok := callPrim(t, vm, list, "!")
	wantBool(t, vm, got, ok, false)
}

func TestObjectIs(t *testing.T) {
	vm := testVM(t)

	got, ok := callPrim(t, vm, NumVal(1), "is(_)", classValue(vm.NumClass))
	wantBool(t, vm, got, ok, true)

	// Everything is an Object through the superclass chain.
	got, ok = callPrim(t, vm, NumVal(1), "is(_)", classValue(vm.ObjectClass))
	wantBool(t, vm, got, ok, true)

	got, ok = callPrim(t, vm, NumVal(1), "is(_)", classValue(vm.StringClass))
	wantBool(t, vm, got, ok, false)

	_, ok = callPrim(t, vm, NumVal(1), "is(_)", NumVal(2))
	wantPrimError(t, vm, ok, "Right operand must be a class.")
}

func TestObjectType(t *testing.T) {
	vm := testVM(t)

	got, ok := callPrim(t, vm, NumVal(1), "type")
	if !ok || AsClass(got) != vm.NumClass {
		t.Error("type of a num should be Num")
	}

	got, ok = callPrim(t, vm, Null, "type")
	if !ok || AsClass(got) != vm.NullClass {
		t.Error("type of null should be Null")
	}

	got, ok = callPrim(t, vm, True, "type")
	if !ok || AsClass(got) != vm.BoolClass {
		t.Error("type of true should be Bool")
	}

	str := vm.StringVal("s")
	got, ok = callPrim(t, vm, str, "type")
	if !ok || AsClass(got) != vm.StringClass {
		t.Error("type of a string should be String")
	}
}

func TestObjectToString(t *testing.T) {
	vm := testVM(t)

	point := vm.NewClass(vm.ObjectClass, 0, vm.NewString("Point"))
	inst := vm.NewInstance(point)

	got, ok := callPrim(t, vm, ObjVal(&inst.Obj), "toString")
	wantString(t, vm, got, ok, "instance of Point")
}

func TestObjectSame(t *testing.T) {
	vm := testVM(t)
	object := classValue(vm.ObjectClass)

	got, ok := callPrim(t, vm, object, "same(_,_)", NumVal(1), NumVal(1))
	wantBool(t, vm, got, ok, true)

	got, ok = callPrim(t, vm, object, "same(_,_)", NumVal(1), NumVal(2))
	wantBool(t, vm, got, ok, false)

	a := vm.StringVal("eq")
	b := vm.StringVal("eq")
	got, ok = callPrim(t, vm, object, "same(_,_)", a, b)
	wantBool(t, vm, got, ok, true)
}

// ---------------------------------------------------------------------------
// Bool and Null primitive tests
// ---------------------------------------------------------------------------

func TestBoolPrimitives(t *testing.T) {
	vm := testVM(t)

	got, ok := callPrim(t, vm, True, "!")
	wantBool(t, vm, got, ok, false)
	got, ok = callPrim(t, vm, False, "!")
	wantBool(t, vm, got, ok, true)

	got, ok = callPrim(t, vm, True, "toString")
	wantString(t, vm, got, ok, "true")
	got, ok = callPrim(t, vm, False, "toString")
	wantString(t, vm, got, ok, "false")
}

func TestNullPrimitives(t *testing.T) {
	vm := testVM(t)

	got, ok := callPrim(t, vm, Null, "!")
	wantBool(t, vm, got, ok, true)

	got, ok = callPrim(t, vm, Null, "toString")
	wantString(t, vm, got, ok, "null")
}

// ---------------------------------------------------------------------------
// Class primitive tests
// ---------------------------------------------------------------------------

func TestClassPrimitives(t *testing.T) {
	vm := testVM(t)
	num := classValue(vm.NumClass)

	got, ok := callPrim(t, vm, num, "name")
	wantString(t, vm, got, ok, "Num")

	got, ok = callPrim(t, vm, num, "toString")
	wantString(t, vm, got, ok, "Num")

	got, ok = callPrim(t, vm, classValue(vm.ObjectClass), "supertype")
	if !ok || !got.IsNull() {
		t.Error("Object.supertype should be null")
	}

	got, ok = callPrim(t, vm, classValue(vm.ClassClass), "supertype")
	if !ok || AsClass(got) != vm.ObjectClass {
		t.Error("Class.supertype should be Object")
	}

	got, ok = callPrim(t, vm, num, "attributes")
	if !ok || !got.IsNull() {
		t.Error("attributes should default to null")
	}
}

// ---------------------------------------------------------------------------
// Fn primitive tests
// ---------------------------------------------------------------------------

func TestFnNew(t *testing.T) {
	vm := testVM(t)
	fnClass := classValue(vm.FnClass)
	closure := makeClosure(vm, 2)

	// Fn.new validates and returns the closure unchanged.
	got, ok := callPrim(t, vm, fnClass, "new(_)", ObjVal(&closure.Obj))
	if !ok || got != ObjVal(&closure.Obj) {
		t.Error("Fn.new should return the closure itself")
	}

	_, ok = callPrim(t, vm, fnClass, "new(_)", NumVal(1))
	wantPrimError(t, vm, ok, "Argument must be a function.")
}

func TestFnArity(t *testing.T) {
	vm := testVM(t)
	closure := makeClosure(vm, 3)

	got, ok := callPrim(t, vm, ObjVal(&closure.Obj), "arity")
	wantNum(t, vm, got, ok, 3)
}

func TestFnToString(t *testing.T) {
	vm := testVM(t)
	closure := makeClosure(vm, 0)

	got, ok := callPrim(t, vm, ObjVal(&closure.Obj), "toString")
	wantString(t, vm, got, ok, "<fn>")
}

func TestFnCallSignaturesAreFunctionCalls(t *testing.T) {
	vm := testVM(t)

	// Every call arity up to 16 must be bound as a FUNCTION_CALL slot.
	signatures := []string{"call()"}
	sig := "call(_"
	for i := 1; i <= maxCallArgs; i++ {
		signatures = append(signatures, sig+")")
		sig += ",_"
	}
	if len(signatures) != 17 {
		t.Fatalf("expected 17 call signatures, got %d", len(signatures))
	}

	for _, signature := range signatures {
		symbol := vm.MethodNames.Lookup(signature)
		if symbol < 0 {
			t.Errorf("%s not interned", signature)
			continue
		}
		method := vm.FnClass.LookupMethod(symbol)
		if method.Type != MethodFunctionCall {
			t.Errorf("%s slot kind = %d, want MethodFunctionCall", signature, method.Type)
		}
	}
}

// ---------------------------------------------------------------------------
// System primitive tests
// ---------------------------------------------------------------------------

func TestSystemWriteString(t *testing.T) {
	var written []string
	config := &Config{
		Write: func(vm *VM, text string) {
			written = append(written, text)
		},
	}
	vm := NewVM(config)
	if err := vm.InitializeCore(stubInterpreter{}); err != nil {
		t.Fatalf("InitializeCore failed: %v", err)
	}
	vm.Fiber = vm.NewFiber(nil)

	system, _ := vm.CoreModule().FindVariable("System")
	got, ok := callPrim(t, vm, system, "writeString_(_)", vm.StringVal("hello\n"))
	if !ok {
		t.Fatalf("writeString_ failed: %v", primError(vm))
	}
	if !IsString(got) || AsGoString(got) != "hello\n" {
		t.Error("writeString_ should return its argument")
	}
	if len(written) != 1 || written[0] != "hello\n" {
		t.Errorf("written = %v, want [hello\\n]", written)
	}
}

func TestSystemClock(t *testing.T) {
	vm := testVM(t)
	system, _ := vm.CoreModule().FindVariable("System")

	first, ok := callPrim(t, vm, system, "clock")
	if !ok || !first.IsNum() {
		t.Fatal("System.clock should return a number")
	}
	second, ok := callPrim(t, vm, system, "clock")
	if !ok || second.Num() < first.Num() {
		t.Error("System.clock should be monotonic")
	}
}
