package vm

// ---------------------------------------------------------------------------
// Fiber primitives
//
// These are the control-flow surface of the runtime. A primitive that
// switches fibers installs the new current fiber on the VM and returns
// false; the interpreter then continues on whichever fiber is current.
// ---------------------------------------------------------------------------

var fiberPrimitives = []primitiveDef{
	staticPrim("Fiber", "new(_)", fiberNew),
	staticPrim("Fiber", "abort(_)", fiberAbort),
	staticPrim("Fiber", "current", fiberCurrent),
	staticPrim("Fiber", "suspend()", fiberSuspend),
	staticPrim("Fiber", "yield()", fiberYield),
	staticPrim("Fiber", "yield(_)", fiberYield1),

	prim("Fiber", "call()", fiberCall),
	prim("Fiber", "call(_)", fiberCall1),
	prim("Fiber", "error", fiberError),
	prim("Fiber", "isDone", fiberIsDone),
	prim("Fiber", "transfer()", fiberTransfer),
	prim("Fiber", "transfer(_)", fiberTransfer1),
	prim("Fiber", "transferError(_)", fiberTransferError),
	prim("Fiber", "try()", fiberTry),
	prim("Fiber", "try(_)", fiberTry1),
}

func fiberNew(vm *VM, args []Value) bool {
	if !validateFn(vm, args[1], "Argument") {
		return false
	}

	closure := AsClosure(args[1])
	if closure.Fn.Arity > 1 {
		return retError(vm, "Function cannot take more than one parameter.")
	}

	args[0] = ObjVal(&vm.NewFiber(closure).Obj)
	return true
}

// fiberAbort stores the value in the current fiber's error slot. An
// explicitly null argument is not really an abort; the return value tells
// the interpreter whether to start unwinding.
func fiberAbort(vm *VM, args []Value) bool {
	vm.Fiber.Error = args[1]
	return args[1].IsNull()
}

func fiberCurrent(vm *VM, args []Value) bool {
	args[0] = ObjVal(&vm.Fiber.Obj)
	return true
}

// fiberSuspend leaves the VM with no current fiber; execution stops until
// the host resumes a fiber externally.
func fiberSuspend(vm *VM, args []Value) bool {
	vm.Fiber = nil
	return false
}

func fiberError(vm *VM, args []Value) bool {
	args[0] = AsFiber(args[0]).Error
	return true
}

func fiberIsDone(vm *VM, args []Value) bool {
	fiber := AsFiber(args[0])
	args[0] = BoolVal(fiber.NumFrames() == 0 || fiber.HasError())
	return true
}

// ---------------------------------------------------------------------------
// Switching
// ---------------------------------------------------------------------------

// runFiber transfers control to fiber. The isCall flag records the current
// fiber as the target's caller; hasValue passes args[1] into the target.
func runFiber(vm *VM, fiber *ObjFiber, args []Value, isCall, hasValue bool, verb string) bool {
	if fiber.HasError() {
		return retError(vm, "Cannot "+verb+" an aborted fiber.")
	}

	if isCall {
		// You can't call a called fiber, but you can transfer directly to
		// it, which is why this check is gated on isCall.
		if fiber.Caller != nil {
			return retError(vm, "Fiber has already been called.")
		}
		if fiber.State == FiberRoot {
			return retError(vm, "Cannot call root fiber.")
		}

		// Remember who ran it.
		fiber.Caller = vm.Fiber
	}

	if fiber.NumFrames() == 0 {
		return retError(vm, "Cannot "+verb+" a finished fiber.")
	}

	// When the calling fiber resumes, we'll store the result of the call
	// in its stack. If the call has two arguments (the fiber and the
	// value), only one slot is needed for the result, so discard the other
	// now.
	if hasValue {
		vm.Fiber.Drop()
	}

	if fiber.atStart() && fiber.Frame(0).Closure.Fn.Arity == 1 {
		// The fiber is being started for the first time. If its function
		// takes a parameter, bind it.
		if hasValue {
			fiber.Push(args[1])
		} else {
			fiber.Push(Null)
		}
	} else if fiber.NumFrames() > 0 && !fiber.atStart() {
		// The fiber is being resumed; store the value in the slot the
		// suspending switch left on top of its stack.
		if hasValue {
			fiber.SetReturn(args[1])
		} else {
			fiber.SetReturn(Null)
		}
	}

	vm.Fiber = fiber
	return false
}

func fiberCall(vm *VM, args []Value) bool {
	return runFiber(vm, AsFiber(args[0]), args, true, false, "call")
}

func fiberCall1(vm *VM, args []Value) bool {
	return runFiber(vm, AsFiber(args[0]), args, true, true, "call")
}

func fiberTransfer(vm *VM, args []Value) bool {
	return runFiber(vm, AsFiber(args[0]), args, false, false, "transfer to")
}

func fiberTransfer1(vm *VM, args []Value) bool {
	return runFiber(vm, AsFiber(args[0]), args, false, true, "transfer to")
}

// fiberTransferError transfers, then poisons the new current fiber so it
// unwinds when it resumes.
func fiberTransferError(vm *VM, args []Value) bool {
	runFiber(vm, AsFiber(args[0]), args, false, true, "transfer the error to")
	vm.Fiber.Error = args[1]
	return false
}

func fiberTry(vm *VM, args []Value) bool {
	runFiber(vm, AsFiber(args[0]), args, true, false, "try")

	// If we're switching to a valid fiber to try, remember that we're
	// trying it.
	if !vm.Fiber.HasError() {
		vm.Fiber.State = FiberTry
	}
	return false
}

func fiberTry1(vm *VM, args []Value) bool {
	runFiber(vm, AsFiber(args[0]), args, true, true, "try")

	if !vm.Fiber.HasError() {
		vm.Fiber.State = FiberTry
	}
	return false
}

// ---------------------------------------------------------------------------
// Yielding
// ---------------------------------------------------------------------------

func fiberYield(vm *VM, args []Value) bool {
	current := vm.Fiber
	vm.Fiber = current.Caller

	// Unhook this fiber from the one that called it.
	current.Caller = nil
	current.State = FiberOther

	if vm.Fiber != nil {
		// Make the caller's run method return null.
		vm.Fiber.State = FiberOther
		vm.Fiber.SetReturn(Null)
	}
	return false
}

func fiberYield1(vm *VM, args []Value) bool {
	current := vm.Fiber
	vm.Fiber = current.Caller

	current.Caller = nil
	current.State = FiberOther

	if vm.Fiber != nil {
		// Make the caller's run method return the yielded value.
		vm.Fiber.State = FiberOther
		vm.Fiber.SetReturn(args[1])

		// When the yielding fiber resumes, we'll store the result of the
		// yield call in its stack. Since Fiber.yield(value) has two
		// arguments (the Fiber class and the value) and we only need one
		// slot for the result, discard the other slot now.
		current.Drop()
	}
	return false
}
