package vm

// RaiseError unwinds the fiber chain after a runtime error has been
// recorded on the current fiber.
//
// Every fiber along the caller chain is aborted with the same error. If a
// fiber in the chain was entered with try, unwinding stops there: the
// error value becomes the result of the try call and its caller resumes.
// Otherwise the chain is exhausted, the error is reported to the host, and
// the VM is left with no runnable fiber.
func (vm *VM) RaiseError() {
	current := vm.Fiber
	err := current.Error

	for current != nil {
		// Every fiber along the call chain gets aborted with the same
		// error.
		current.Error = err

		// If the caller ran this fiber through "try", stop dispatching
		// the error and make the caller's try method return it.
		if current.State == FiberTry {
			current.Caller.SetReturn(err)
			vm.Fiber = current.Caller
			return
		}

		// Otherwise, unhook the caller since we will never resume and
		// return to it.
		caller := current.Caller
		current.Caller = nil
		current = caller
	}

	// Nothing caught the error, so report it with the stack trace.
	vm.PrintStackTrace()
	vm.Fiber = nil
}

// PrintStackTrace reports the current fiber's error and its frames to the
// host error callback.
func (vm *VM) PrintStackTrace() {
	if vm.config.Error == nil {
		return
	}

	fiber := vm.Fiber
	if IsString(fiber.Error) {
		vm.config.Error(vm, ErrorRuntime, "", -1, AsGoString(fiber.Error))
	} else {
		// TODO: print something a little useful here. A valueToString
		// helper would need to be resilient to badly behaved overrides.
		vm.config.Error(vm, ErrorRuntime, "", -1, "[error object]")
	}

	for i := fiber.NumFrames() - 1; i >= 0; i-- {
		frame := fiber.Frame(i)
		fn := frame.Closure.Fn

		// Anonymous and core-module functions do not contribute
		// meaningful frames.
		if fn.Module == nil || fn.Module.Name == nil {
			continue
		}

		line := 0
		if frame.IP > 0 && frame.IP <= len(fn.Debug.SourceLines) {
			line = fn.Debug.SourceLines[frame.IP-1]
		}
		vm.config.Error(vm, ErrorStackTrace, fn.Module.Name.Value, line, fn.Debug.Name)
	}
}
