package vm

// ---------------------------------------------------------------------------
// Object primitives
//
// The root class's methods are the defaults every value inherits: identity
// equality, type reflection, and a fallback toString.
// ---------------------------------------------------------------------------

var objectPrimitives = []primitiveDef{
	prim("Object", "!", objectNot),
	prim("Object", "==(_)", objectEqEq),
	prim("Object", "!=(_)", objectBangEq),
	prim("Object", "is(_)", objectIs),
	prim("Object", "toString", objectToString),
	prim("Object", "type", objectType),

	// same bypasses any user-defined == override.
	prim("Object metaclass", "same(_,_)", objectSame),
}

func objectNot(vm *VM, args []Value) bool {
	args[0] = False
	return true
}

func objectEqEq(vm *VM, args []Value) bool {
	args[0] = BoolVal(ValuesEqual(args[0], args[1]))
	return true
}

func objectBangEq(vm *VM, args []Value) bool {
	args[0] = BoolVal(!ValuesEqual(args[0], args[1]))
	return true
}

func objectIs(vm *VM, args []Value) bool {
	if !IsClass(args[1]) {
		return retError(vm, "Right operand must be a class.")
	}

	classObj := vm.ClassFor(args[0])
	baseClass := AsClass(args[1])

	// Walk the superclass chain looking for the class.
	for ; classObj != nil; classObj = classObj.Superclass {
		if classObj == baseClass {
			args[0] = True
			return true
		}
	}
	args[0] = False
	return true
}

func objectToString(vm *VM, args []Value) bool {
	name := vm.ClassFor(args[0]).Name
	args[0] = vm.StringVal("instance of " + name.Value)
	return true
}

func objectType(vm *VM, args []Value) bool {
	args[0] = ObjVal(&vm.ClassFor(args[0]).Obj)
	return true
}

func objectSame(vm *VM, args []Value) bool {
	args[0] = BoolVal(ValuesEqual(args[1], args[2]))
	return true
}
