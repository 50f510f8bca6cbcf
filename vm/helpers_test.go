package vm

import "testing"

// stubInterpreter stands in for the compiler/interpreter collaborator in
// tests: it performs only the class declarations of the core script, which
// is all the core itself needs to finish bootstrapping.
type stubInterpreter struct{}

func (stubInterpreter) Interpret(vm *VM, moduleName string, source string) InterpretResult {
	core := vm.CoreModule()
	object, ok := core.FindVariable("Object")
	if !ok {
		return ResultRuntimeError
	}
	objectClass := AsClass(object)

	declare := func(name string, superclass *ObjClass) *ObjClass {
		nameString := vm.NewString(name)
		vm.PushRoot(&nameString.Obj)
		classObj := vm.NewClass(superclass, 0, nameString)
		vm.DefineVariable(core, name, ObjVal(&classObj.Obj))
		vm.PopRoot()
		return classObj
	}

	sequence := declare("Sequence", objectClass)
	declare("Bool", objectClass)
	declare("Fiber", objectClass)
	declare("Fn", objectClass)
	declare("Null", objectClass)
	declare("Num", objectClass)
	declare("String", sequence)
	declare("List", sequence)
	declare("Map", sequence)
	declare("Range", sequence)
	declare("System", objectClass)
	return ResultSuccess
}

// failingInterpreter reports a compile error for any source.
type failingInterpreter struct{}

func (failingInterpreter) Interpret(vm *VM, moduleName string, source string) InterpretResult {
	return ResultCompileError
}

// testVM creates a fully bootstrapped VM with a fiber ready to record
// primitive errors.
func testVM(t *testing.T) *VM {
	t.Helper()
	vm := NewVM(nil)
	if err := vm.InitializeCore(stubInterpreter{}); err != nil {
		t.Fatalf("InitializeCore failed: %v", err)
	}
	vm.Fiber = vm.NewFiber(nil)
	return vm
}

// callPrim dispatches a primitive through the receiver's class method
// table, the way the interpreter would resolve it.
func callPrim(t *testing.T, vm *VM, recv Value, signature string, args ...Value) (Value, bool) {
	t.Helper()

	symbol := vm.MethodNames.Lookup(signature)
	if symbol < 0 {
		t.Fatalf("signature %q was never interned", signature)
	}

	classObj := vm.ClassFor(recv)
	method := classObj.LookupMethod(symbol)
	if method.Type != MethodPrimitive {
		t.Fatalf("class %s has no primitive for %q", classObj.Name.Value, signature)
	}

	argv := append([]Value{recv}, args...)
	ok := method.Primitive(vm, argv)
	return argv[0], ok
}

// wantPrimError asserts that the last primitive call failed with message.
func wantPrimError(t *testing.T, vm *VM, ok bool, message string) {
	t.Helper()
	if ok {
		t.Fatalf("primitive succeeded, want error %q", message)
	}
	if !vm.Fiber.HasError() {
		t.Fatalf("no error recorded, want %q", message)
	}
	got := AsGoString(vm.Fiber.Error)
	if got != message {
		t.Errorf("error = %q, want %q", got, message)
	}
	vm.Fiber.Error = Null
}

// wantNum asserts that a primitive succeeded with a numeric result.
func wantNum(t *testing.T, vm *VM, got Value, ok bool, want float64) {
	t.Helper()
	if !ok {
		t.Fatalf("primitive failed: %v", primError(vm))
	}
	if !got.IsNum() {
		t.Fatalf("result is not a number")
	}
	if got.Num() != want {
		t.Errorf("result = %v, want %v", got.Num(), want)
	}
}

// wantString asserts that a primitive succeeded with a string result.
func wantString(t *testing.T, vm *VM, got Value, ok bool, want string) {
	t.Helper()
	if !ok {
		t.Fatalf("primitive failed: %v", primError(vm))
	}
	if !IsString(got) {
		t.Fatalf("result is not a string")
	}
	if AsGoString(got) != want {
		t.Errorf("result = %q, want %q", AsGoString(got), want)
	}
}

// wantBool asserts that a primitive succeeded with a boolean result.
func wantBool(t *testing.T, vm *VM, got Value, ok bool, want bool) {
	t.Helper()
	if !ok {
		t.Fatalf("primitive failed: %v", primError(vm))
	}
	if !got.IsBool() {
		t.Fatalf("result is not a bool")
	}
	if got.Bool() != want {
		t.Errorf("result = %v, want %v", got.Bool(), want)
	}
}

// wantIterationDone asserts a primitive succeeded and produced the false value,
// the iteration-protocol end marker.
func wantIterationDone(t *testing.T, vm *VM, got Value, ok bool) {
	t.Helper()
	if !ok {
		t.Fatalf("primitive failed: %v", primError(vm))
	}
	if got != False {
		t.Errorf("result = %v, want false", got)
	}
}

func primError(vm *VM) string {
	if vm.Fiber != nil && vm.Fiber.HasError() && IsString(vm.Fiber.Error) {
		return AsGoString(vm.Fiber.Error)
	}
	return "<no error>"
}

// classValue wraps a class as a receiver for class-side calls.
func classValue(c *ObjClass) Value {
	return ObjVal(&c.Obj)
}
