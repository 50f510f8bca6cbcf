package vm

// ---------------------------------------------------------------------------
// Bool primitives
// ---------------------------------------------------------------------------

var boolPrimitives = []primitiveDef{
	prim("Bool", "toString", boolToString),
	prim("Bool", "!", boolNot),
}

func boolNot(vm *VM, args []Value) bool {
	args[0] = BoolVal(!args[0].Bool())
	return true
}

func boolToString(vm *VM, args []Value) bool {
	if args[0].Bool() {
		args[0] = vm.StringVal("true")
	} else {
		args[0] = vm.StringVal("false")
	}
	return true
}
