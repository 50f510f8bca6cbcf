package vm

// ---------------------------------------------------------------------------
// List primitives
// ---------------------------------------------------------------------------

var listPrimitives = []primitiveDef{
	staticPrim("List", "filled(_,_)", listFilled),
	staticPrim("List", "new()", listNew),

	prim("List", "[_]", listSubscript),
	prim("List", "[_]=(_)", listSubscriptSetter),
	prim("List", "add(_)", listAdd),
	prim("List", "addCore_(_)", listAddCore),
	prim("List", "clear()", listClear),
	prim("List", "count", listCount),
	prim("List", "insert(_,_)", listInsert),
	prim("List", "iterate(_)", listIterate),
	prim("List", "iteratorValue(_)", listIteratorValue),
	prim("List", "removeAt(_)", listRemoveAt),
	prim("List", "remove(_)", listRemoveValue),
	prim("List", "indexOf(_)", listIndexOf),
	prim("List", "swap(_,_)", listSwap),
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func listFilled(vm *VM, args []Value) bool {
	if !validateInt(vm, args[1], "Size") {
		return false
	}
	if args[1].Num() < 0 {
		return retError(vm, "Size cannot be negative.")
	}

	size := int(args[1].Num())
	list := vm.NewList(size)
	for i := 0; i < size; i++ {
		list.Elements[i] = args[2]
	}
	args[0] = ObjVal(&list.Obj)
	return true
}

func listNew(vm *VM, args []Value) bool {
	args[0] = ObjVal(&vm.NewList(0).Obj)
	return true
}

// ---------------------------------------------------------------------------
// Element access
// ---------------------------------------------------------------------------

func listSubscript(vm *VM, args []Value) bool {
	list := AsList(args[0])

	if args[1].IsNum() {
		index, ok := validateIndexValue(vm, len(list.Elements), args[1].Num(), "Subscript")
		if !ok {
			return false
		}
		args[0] = list.Elements[index]
		return true
	}

	if !IsRange(args[1]) {
		return retError(vm, "Subscript must be a number or a range.")
	}

	start, count, step, ok := calculateRange(vm, AsRange(args[1]), len(list.Elements))
	if !ok {
		return false
	}

	result := vm.NewList(count)
	for i := 0; i < count; i++ {
		result.Elements[i] = list.Elements[start+i*step]
	}
	args[0] = ObjVal(&result.Obj)
	return true
}

func listSubscriptSetter(vm *VM, args []Value) bool {
	list := AsList(args[0])
	index, ok := validateIndex(vm, args[1], len(list.Elements), "Subscript")
	if !ok {
		return false
	}
	list.Elements[index] = args[2]
	args[0] = args[2]
	return true
}

// ---------------------------------------------------------------------------
// Mutation
// ---------------------------------------------------------------------------

func listAdd(vm *VM, args []Value) bool {
	list := AsList(args[0])
	list.Elements = append(list.Elements, args[1])
	args[0] = args[1]
	return true
}

// listAddCore returns the list itself, so that the compiled form of a list
// literal can chain element adds.
func listAddCore(vm *VM, args []Value) bool {
	list := AsList(args[0])
	list.Elements = append(list.Elements, args[1])
	return true
}

func listClear(vm *VM, args []Value) bool {
	AsList(args[0]).Elements = nil
	args[0] = Null
	return true
}

func listInsert(vm *VM, args []Value) bool {
	list := AsList(args[0])

	// count + 1 here so you can "insert" at the very end.
	index, ok := validateIndex(vm, args[1], len(list.Elements)+1, "Index")
	if !ok {
		return false
	}
	list.Insert(index, args[2])
	args[0] = args[2]
	return true
}

func listRemoveAt(vm *VM, args []Value) bool {
	list := AsList(args[0])
	index, ok := validateIndex(vm, args[1], len(list.Elements), "Index")
	if !ok {
		return false
	}
	args[0] = list.RemoveAt(index)
	return true
}

func listRemoveValue(vm *VM, args []Value) bool {
	list := AsList(args[0])
	index := list.IndexOf(args[1])
	if index == -1 {
		args[0] = Null
		return true
	}
	args[0] = list.RemoveAt(index)
	return true
}

func listSwap(vm *VM, args []Value) bool {
	list := AsList(args[0])
	indexA, ok := validateIndex(vm, args[1], len(list.Elements), "Index 0")
	if !ok {
		return false
	}
	indexB, ok := validateIndex(vm, args[2], len(list.Elements), "Index 1")
	if !ok {
		return false
	}
	list.Swap(indexA, indexB)
	args[0] = Null
	return true
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func listCount(vm *VM, args []Value) bool {
	args[0] = NumVal(float64(len(AsList(args[0]).Elements)))
	return true
}

func listIndexOf(vm *VM, args []Value) bool {
	args[0] = NumVal(float64(AsList(args[0]).IndexOf(args[1])))
	return true
}

// ---------------------------------------------------------------------------
// Iteration
// ---------------------------------------------------------------------------

// listIterate returns the index following the iterator, so that iteration
// visits every element: the last index returned is count-1.
func listIterate(vm *VM, args []Value) bool {
	list := AsList(args[0])

	if args[1].IsNull() {
		if len(list.Elements) == 0 {
			args[0] = False
			return true
		}
		args[0] = NumVal(0)
		return true
	}

	if !validateInt(vm, args[1], "Iterator") {
		return false
	}

	index := args[1].Num()
	if index < 0 || index >= float64(len(list.Elements)-1) {
		args[0] = False
		return true
	}
	args[0] = NumVal(index + 1)
	return true
}

func listIteratorValue(vm *VM, args []Value) bool {
	list := AsList(args[0])
	index, ok := validateIndex(vm, args[1], len(list.Elements), "Iterator")
	if !ok {
		return false
	}
	args[0] = list.Elements[index]
	return true
}
