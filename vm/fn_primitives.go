package vm

import "strings"

// ---------------------------------------------------------------------------
// Fn primitives
//
// The call(...) family dispatches by arity, so every argument count up to
// 16 is its own signature. The rows are MethodFunctionCall: the
// interpreter transfers control into the receiver closure itself rather
// than running a native function.
// ---------------------------------------------------------------------------

// maxCallArgs is the largest arity Fn.call supports.
const maxCallArgs = 16

var fnPrimitives = buildFnPrimitives()

func buildFnPrimitives() []primitiveDef {
	defs := []primitiveDef{
		staticPrim("Fn", "new(_)", fnNew),
		prim("Fn", "arity", fnArity),
		prim("Fn", "toString", fnToString),
	}

	defs = append(defs, fnCall("call()"))
	for args := 1; args <= maxCallArgs; args++ {
		signature := "call(" + strings.Repeat("_,", args-1) + "_)"
		defs = append(defs, fnCall(signature))
	}
	return defs
}

// fnNew validates the argument and returns the closure unchanged. The
// compiler has already wrapped the block in a closure.
func fnNew(vm *VM, args []Value) bool {
	if !validateFn(vm, args[1], "Argument") {
		return false
	}
	args[0] = args[1]
	return true
}

func fnArity(vm *VM, args []Value) bool {
	args[0] = NumVal(float64(AsClosure(args[0]).Fn.Arity))
	return true
}

func fnToString(vm *VM, args []Value) bool {
	args[0] = vm.StringVal("<fn>")
	return true
}
