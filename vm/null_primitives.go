package vm

// ---------------------------------------------------------------------------
// Null primitives
// ---------------------------------------------------------------------------

var nullPrimitives = []primitiveDef{
	prim("Null", "!", nullNot),
	prim("Null", "toString", nullToString),
}

func nullNot(vm *VM, args []Value) bool {
	args[0] = True
	return true
}

func nullToString(vm *VM, args []Value) bool {
	args[0] = vm.StringVal("null")
	return true
}
