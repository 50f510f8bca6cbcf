package vm

import "testing"

// ---------------------------------------------------------------------------
// Collector tests
// ---------------------------------------------------------------------------

func TestCollectGarbageFreesUnreachable(t *testing.T) {
	vm := testVM(t)
	vm.CollectGarbage()
	baseline := vm.ObjectCount()

	for i := 0; i < 100; i++ {
		vm.NewString("garbage")
	}
	if vm.ObjectCount() != baseline+100 {
		t.Fatalf("object count = %d, want %d", vm.ObjectCount(), baseline+100)
	}

	vm.CollectGarbage()
	if vm.ObjectCount() != baseline {
		t.Errorf("after gc object count = %d, want %d", vm.ObjectCount(), baseline)
	}
}

func TestCollectGarbageKeepsModuleVariables(t *testing.T) {
	vm := testVM(t)

	str := vm.NewString("precious")
	vm.PushRoot(&str.Obj)
	vm.DefineVariable(vm.CoreModule(), "precious", ObjVal(&str.Obj))
	vm.PopRoot()

	vm.CollectGarbage()

	value, ok := vm.CoreModule().FindVariable("precious")
	if !ok {
		t.Fatal("variable disappeared")
	}
	if AsGoString(value) != "precious" {
		t.Error("variable value corrupted by gc")
	}

	// The object must still be linked in the all-objects list.
	found := false
	for obj := vm.FirstObj(); obj != nil; obj = obj.Next {
		if obj == &str.Obj {
			found = true
			break
		}
	}
	if !found {
		t.Error("reachable object was unlinked")
	}
}

func TestCollectGarbageKeepsTempRoots(t *testing.T) {
	vm := testVM(t)

	str := vm.NewString("rooted")
	vm.PushRoot(&str.Obj)
	vm.CollectGarbage()
	vm.PopRoot()

	found := false
	for obj := vm.FirstObj(); obj != nil; obj = obj.Next {
		if obj == &str.Obj {
			found = true
			break
		}
	}
	if !found {
		t.Error("temp-rooted object was collected")
	}
}

func TestCollectGarbageTracesFiberReach(t *testing.T) {
	vm := testVM(t)

	// Build a fiber whose stack holds a list holding a string; all three
	// must survive through the current-fiber root.
	fn := vm.NewFunction(vm.CoreModule(), 4)
	fn.Arity = 0
	closure := vm.NewClosure(fn)
	fiber := vm.NewFiber(closure)

	str := vm.NewString("deep")
	vm.PushRoot(&str.Obj)
	list := vm.NewList(1)
	list.Elements[0] = ObjVal(&str.Obj)
	vm.PopRoot()
	fiber.Push(ObjVal(&list.Obj))

	vm.Fiber = fiber
	vm.CollectGarbage()

	alive := map[*Obj]bool{}
	for obj := vm.FirstObj(); obj != nil; obj = obj.Next {
		alive[obj] = true
	}
	for _, obj := range []*Obj{&fiber.Obj, &closure.Obj, &fn.Obj, &list.Obj, &str.Obj} {
		if !alive[obj] {
			t.Errorf("object of type %d collected while reachable from fiber", obj.Type)
		}
	}
}

func TestCollectGarbageTracesCallerChain(t *testing.T) {
	vm := testVM(t)

	fn := vm.NewFunction(vm.CoreModule(), 2)
	closureA := vm.NewClosure(fn)
	closureB := vm.NewClosure(fn)
	caller := vm.NewFiber(closureA)
	callee := vm.NewFiber(closureB)
	callee.Caller = caller

	vm.Fiber = callee
	vm.CollectGarbage()

	alive := map[*Obj]bool{}
	for obj := vm.FirstObj(); obj != nil; obj = obj.Next {
		alive[obj] = true
	}
	if !alive[&caller.Obj] {
		t.Error("caller fiber collected while reachable")
	}
}

func TestSystemGcPrimitive(t *testing.T) {
	vm := testVM(t)
	vm.CollectGarbage()
	baseline := vm.ObjectCount()
	vm.NewString("transient")

	system, _ := vm.CoreModule().FindVariable("System")
	result, ok := callPrim(t, vm, system, "gc()")
	if !ok {
		t.Fatalf("System.gc() failed: %v", primError(vm))
	}
	if !result.IsNull() {
		t.Error("System.gc() should return null")
	}
	if vm.ObjectCount() != baseline {
		t.Errorf("object count = %d, want %d", vm.ObjectCount(), baseline)
	}
}
