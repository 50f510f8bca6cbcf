package vm

import "math"

// The validators record a message on the current fiber's error slot and
// report failure; the calling primitive then returns false so the
// interpreter starts unwinding.

// retError is the shared tail for primitives that fail: it records the
// message and yields the primitive's false return.
func retError(vm *VM, message string) bool {
	vm.Fiber.Error = vm.StringVal(message)
	return false
}

// validateNum checks that arg is a number.
func validateNum(vm *VM, arg Value, argName string) bool {
	if arg.IsNum() {
		return true
	}
	return retError(vm, argName+" must be a number.")
}

// validateIntValue checks that value is an integer-valued number.
func validateIntValue(vm *VM, value float64, argName string) bool {
	if value == math.Trunc(value) && !math.IsInf(value, 0) {
		return true
	}
	return retError(vm, argName+" must be an integer.")
}

// validateInt checks that arg is an integer-valued number.
func validateInt(vm *VM, arg Value, argName string) bool {
	if !validateNum(vm, arg, argName) {
		return false
	}
	return validateIntValue(vm, arg.Num(), argName)
}

// validateIndexValue checks that value is an integer within [0, count).
// A negative value counts backwards from count.
func validateIndexValue(vm *VM, count int, value float64, argName string) (int, bool) {
	if !validateIntValue(vm, value, argName) {
		return 0, false
	}
	if value < 0 {
		value = float64(count) + value
	}
	if value >= 0 && value < float64(count) {
		return int(value), true
	}
	return 0, retError(vm, argName+" out of bounds.")
}

// validateIndex checks that arg is an integer index within [0, count).
func validateIndex(vm *VM, arg Value, count int, argName string) (int, bool) {
	if !validateNum(vm, arg, argName) {
		return 0, false
	}
	return validateIndexValue(vm, count, arg.Num(), argName)
}

// validateString checks that arg is a string.
func validateString(vm *VM, arg Value, argName string) bool {
	if IsString(arg) {
		return true
	}
	return retError(vm, argName+" must be a string.")
}

// validateFn checks that arg is a closure.
func validateFn(vm *VM, arg Value, argName string) bool {
	if IsClosure(arg) {
		return true
	}
	return retError(vm, argName+" must be a function.")
}

// validateKey checks that arg is hashable: a num, string, bool, null,
// range, or class.
func validateKey(vm *VM, arg Value) bool {
	if isValueType(arg) {
		return true
	}
	return retError(vm, "Key must be a value type.")
}

// calculateRange resolves a range used as a subscript against a sequence
// of count elements. It returns the start index, the number of selected
// elements, and the step (+1 or -1; 0 when no element is selected).
func calculateRange(vm *VM, r *ObjRange, count int) (start, length, step int, ok bool) {
	// An empty range at the end of a sequence is allowed, so seq[0..-1]
	// and seq[0...seq.count] copy a sequence even when it is empty.
	if r.From == float64(count) {
		to := float64(count)
		if r.IsInclusive {
			to = -1.0
		}
		if r.To == to {
			return 0, 0, 0, true
		}
	}

	from, valid := validateIndexValue(vm, count, r.From, "Range start")
	if !valid {
		return 0, 0, 0, false
	}

	// Bounds check the end manually to handle exclusive ranges.
	value := r.To
	if !validateIntValue(vm, value, "Range end") {
		return 0, 0, 0, false
	}
	if value < 0 {
		value = float64(count) + value
	}

	// Convert the exclusive range to an inclusive one.
	if !r.IsInclusive {
		// An exclusive range with the same start and end points is empty.
		if value == float64(from) {
			return from, 0, 0, true
		}
		// Shift the endpoint to make it inclusive, handling both
		// increasing and decreasing ranges.
		if value >= float64(from) {
			value--
		} else {
			value++
		}
	}

	if value < 0 || value >= float64(count) {
		return 0, 0, 0, retError(vm, "Range end out of bounds.")
	}

	to := int(value)
	length = to - from
	if length < 0 {
		length = -length
	}
	length++
	step = 1
	if from > to {
		step = -1
	}
	return from, length, step, true
}
