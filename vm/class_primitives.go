package vm

// ---------------------------------------------------------------------------
// Class primitives
// ---------------------------------------------------------------------------

var classPrimitives = []primitiveDef{
	prim("Class", "name", className),
	prim("Class", "supertype", classSupertype),
	prim("Class", "toString", classToString),
	prim("Class", "attributes", classAttributes),
}

func className(vm *VM, args []Value) bool {
	args[0] = ObjVal(&AsClass(args[0]).Name.Obj)
	return true
}

func classSupertype(vm *VM, args []Value) bool {
	classObj := AsClass(args[0])

	// Object has no superclass.
	if classObj.Superclass == nil {
		args[0] = Null
		return true
	}
	args[0] = ObjVal(&classObj.Superclass.Obj)
	return true
}

func classToString(vm *VM, args []Value) bool {
	args[0] = ObjVal(&AsClass(args[0]).Name.Obj)
	return true
}

func classAttributes(vm *VM, args []Value) bool {
	args[0] = AsClass(args[0]).Attributes
	return true
}
