package vm

// ---------------------------------------------------------------------------
// Range primitives
// ---------------------------------------------------------------------------

var rangePrimitives = []primitiveDef{
	prim("Range", "from", rangeFrom),
	prim("Range", "to", rangeTo),
	prim("Range", "min", rangeMin),
	prim("Range", "max", rangeMax),
	prim("Range", "isInclusive", rangeIsInclusive),
	prim("Range", "iterate(_)", rangeIterate),
	prim("Range", "iteratorValue(_)", rangeIteratorValue),
	prim("Range", "toString", rangeToString),
}

func rangeFrom(vm *VM, args []Value) bool {
	args[0] = NumVal(AsRange(args[0]).From)
	return true
}

func rangeTo(vm *VM, args []Value) bool {
	args[0] = NumVal(AsRange(args[0]).To)
	return true
}

func rangeMin(vm *VM, args []Value) bool {
	args[0] = NumVal(AsRange(args[0]).Min())
	return true
}

func rangeMax(vm *VM, args []Value) bool {
	args[0] = NumVal(AsRange(args[0]).Max())
	return true
}

func rangeIsInclusive(vm *VM, args []Value) bool {
	args[0] = BoolVal(AsRange(args[0]).IsInclusive)
	return true
}

// rangeIterate steps by one unit towards To, ascending or descending.
func rangeIterate(vm *VM, args []Value) bool {
	r := AsRange(args[0])

	// Special case: empty range.
	if r.From == r.To && !r.IsInclusive {
		args[0] = False
		return true
	}

	// Start the iteration.
	if args[1].IsNull() {
		args[0] = NumVal(r.From)
		return true
	}

	if !validateNum(vm, args[1], "Iterator") {
		return false
	}
	iterator := args[1].Num()

	// Iterate towards To from From.
	if r.From < r.To {
		iterator++
		if iterator > r.To {
			args[0] = False
			return true
		}
	} else {
		iterator--
		if iterator < r.To {
			args[0] = False
			return true
		}
	}

	if !r.IsInclusive && iterator == r.To {
		args[0] = False
		return true
	}

	args[0] = NumVal(iterator)
	return true
}

// The iterator of a range is its own value.
func rangeIteratorValue(vm *VM, args []Value) bool {
	args[0] = args[1]
	return true
}

func rangeToString(vm *VM, args []Value) bool {
	r := AsRange(args[0])
	op := "..."
	if r.IsInclusive {
		op = ".."
	}
	args[0] = vm.StringVal(numToString(r.From) + op + numToString(r.To))
	return true
}
