package vm

// ---------------------------------------------------------------------------
// Map primitives
//
// Map iteration walks the entry array directly; the iterator is an entry
// index, and the hidden key/value accessors read the entry it points at.
// ---------------------------------------------------------------------------

var mapPrimitives = []primitiveDef{
	staticPrim("Map", "new()", mapNew),

	prim("Map", "[_]", mapSubscript),
	prim("Map", "[_]=(_)", mapSubscriptSetter),
	prim("Map", "addCore_(_,_)", mapAddCore),
	prim("Map", "clear()", mapClear),
	prim("Map", "containsKey(_)", mapContainsKey),
	prim("Map", "count", mapCount),
	prim("Map", "remove(_)", mapRemove),
	prim("Map", "iterate(_)", mapIterate),
	prim("Map", "keyIteratorValue_(_)", mapKeyIteratorValue),
	prim("Map", "valueIteratorValue_(_)", mapValueIteratorValue),
}

func mapNew(vm *VM, args []Value) bool {
	args[0] = ObjVal(&vm.NewMap().Obj)
	return true
}

func mapSubscript(vm *VM, args []Value) bool {
	if !validateKey(vm, args[1]) {
		return false
	}
	value := AsMap(args[0]).Get(args[1])
	if value.IsUndefined() {
		args[0] = Null
		return true
	}
	args[0] = value
	return true
}

func mapSubscriptSetter(vm *VM, args []Value) bool {
	if !validateKey(vm, args[1]) {
		return false
	}
	AsMap(args[0]).Set(args[1], args[2])
	args[0] = args[2]
	return true
}

// mapAddCore returns the map itself, so that the compiled form of a map
// literal can chain entry adds.
func mapAddCore(vm *VM, args []Value) bool {
	AsMap(args[0]).Set(args[1], args[2])
	return true
}

func mapClear(vm *VM, args []Value) bool {
	AsMap(args[0]).Clear()
	args[0] = Null
	return true
}

func mapContainsKey(vm *VM, args []Value) bool {
	if !validateKey(vm, args[1]) {
		return false
	}
	args[0] = BoolVal(AsMap(args[0]).Contains(args[1]))
	return true
}

func mapCount(vm *VM, args []Value) bool {
	args[0] = NumVal(float64(AsMap(args[0]).Count()))
	return true
}

func mapRemove(vm *VM, args []Value) bool {
	if !validateKey(vm, args[1]) {
		return false
	}
	args[0] = AsMap(args[0]).Remove(args[1])
	return true
}

func mapIterate(vm *VM, args []Value) bool {
	m := AsMap(args[0])

	if m.Count() == 0 {
		args[0] = False
		return true
	}

	index := 0
	if !args[1].IsNull() {
		if !validateInt(vm, args[1], "Iterator") {
			return false
		}
		if args[1].Num() < 0 {
			args[0] = False
			return true
		}
		index = int(args[1].Num())
		if index >= m.Capacity() {
			args[0] = False
			return true
		}
		// Advance the iterator.
		index++
	}

	found := m.iterateEntries(index)
	if found == -1 {
		args[0] = False
		return true
	}
	args[0] = NumVal(float64(found))
	return true
}

func mapKeyIteratorValue(vm *VM, args []Value) bool {
	m := AsMap(args[0])
	index, ok := validateIndex(vm, args[1], m.Capacity(), "Iterator")
	if !ok {
		return false
	}
	args[0] = m.entryKey(index)
	return true
}

func mapValueIteratorValue(vm *VM, args []Value) bool {
	m := AsMap(args[0])
	index, ok := validateIndex(vm, args[1], m.Capacity(), "Iterator")
	if !ok {
		return false
	}
	args[0] = m.entryValue(index)
	return true
}
