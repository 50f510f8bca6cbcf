package vm

// ---------------------------------------------------------------------------
// System primitives
//
// System has no instances; everything lives on the metaclass.
// ---------------------------------------------------------------------------

var systemPrimitives = []primitiveDef{
	staticPrim("System", "clock", systemClock),
	staticPrim("System", "gc()", systemGc),
	staticPrim("System", "writeString_(_)", systemWriteString),
}

func systemClock(vm *VM, args []Value) bool {
	args[0] = NumVal(vm.Clock())
	return true
}

func systemGc(vm *VM, args []Value) bool {
	vm.CollectGarbage()
	args[0] = Null
	return true
}

func systemWriteString(vm *VM, args []Value) bool {
	vm.Write(AsGoString(args[1]))
	args[0] = args[1]
	return true
}
