package vm

import "strings"

// ---------------------------------------------------------------------------
// String primitives
//
// Search and byte accessors work on bytes; the subscript, iteration, and
// code point accessors work on UTF-8 code points.
// ---------------------------------------------------------------------------

var stringPrimitives = []primitiveDef{
	staticPrim("String", "fromCodePoint(_)", stringFromCodePoint),
	staticPrim("String", "fromByte(_)", stringFromByte),

	prim("String", "+(_)", stringPlus),
	prim("String", "[_]", stringSubscript),
	prim("String", "byteAt_(_)", stringByteAt),
	prim("String", "byteCount_", stringByteCount),
	prim("String", "codePointAt_(_)", stringCodePointAtPrim),
	prim("String", "contains(_)", stringContains),
	prim("String", "count", stringCount),
	prim("String", "endsWith(_)", stringEndsWith),
	prim("String", "indexOf(_)", stringIndexOf1),
	prim("String", "indexOf(_,_)", stringIndexOf2),
	prim("String", "iterate(_)", stringIterate),
	prim("String", "iterateByte_(_)", stringIterateByte),
	prim("String", "iteratorValue(_)", stringIteratorValue),
	prim("String", "startsWith(_)", stringStartsWith),
	prim("String", "toString", stringToString),
	prim("String", "$(_)", stringDollar),
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func stringFromCodePoint(vm *VM, args []Value) bool {
	if !validateInt(vm, args[1], "Code point") {
		return false
	}
	codePoint := int(args[1].Num())
	if codePoint < 0 {
		return retError(vm, "Code point cannot be negative.")
	}
	if codePoint > 0x10ffff {
		return retError(vm, "Code point cannot be greater than 0x10ffff.")
	}
	args[0] = vm.stringFromCodePoint(codePoint)
	return true
}

func stringFromByte(vm *VM, args []Value) bool {
	if !validateInt(vm, args[1], "Byte") {
		return false
	}
	byteValue := int(args[1].Num())
	if byteValue < 0 {
		return retError(vm, "Byte cannot be negative.")
	}
	if byteValue > 0xff {
		return retError(vm, "Byte cannot be greater than 0xff.")
	}
	args[0] = vm.StringVal(string([]byte{byte(byteValue)}))
	return true
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

func stringPlus(vm *VM, args []Value) bool {
	if !validateString(vm, args[1], "Right operand") {
		return false
	}
	args[0] = vm.StringVal(AsGoString(args[0]) + AsGoString(args[1]))
	return true
}

func stringSubscript(vm *VM, args []Value) bool {
	s := AsGoString(args[0])

	if args[1].IsNum() {
		index, ok := validateIndexValue(vm, len(s), args[1].Num(), "Subscript")
		if !ok {
			return false
		}
		args[0] = vm.stringCodePointAt(s, index)
		return true
	}

	if !IsRange(args[1]) {
		return retError(vm, "Subscript must be a number or a range.")
	}

	start, count, step, ok := calculateRange(vm, AsRange(args[1]), len(s))
	if !ok {
		return false
	}
	args[0] = vm.stringFromRange(s, start, count, step)
	return true
}

// ---------------------------------------------------------------------------
// Byte access
// ---------------------------------------------------------------------------

func stringByteAt(vm *VM, args []Value) bool {
	s := AsGoString(args[0])
	index, ok := validateIndex(vm, args[1], len(s), "Index")
	if !ok {
		return false
	}
	args[0] = NumVal(float64(s[index]))
	return true
}

func stringByteCount(vm *VM, args []Value) bool {
	args[0] = NumVal(float64(len(AsGoString(args[0]))))
	return true
}

// ---------------------------------------------------------------------------
// Code point access
// ---------------------------------------------------------------------------

func stringCodePointAtPrim(vm *VM, args []Value) bool {
	s := AsGoString(args[0])
	index, ok := validateIndex(vm, args[1], len(s), "Index")
	if !ok {
		return false
	}
	codePoint, _ := utf8Decode(s, index)
	args[0] = NumVal(float64(codePoint))
	return true
}

func stringCount(vm *VM, args []Value) bool {
	args[0] = NumVal(float64(numCodePoints(AsGoString(args[0]))))
	return true
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

func stringContains(vm *VM, args []Value) bool {
	if !validateString(vm, args[1], "Argument") {
		return false
	}
	args[0] = BoolVal(strings.Contains(AsGoString(args[0]), AsGoString(args[1])))
	return true
}

func stringEndsWith(vm *VM, args []Value) bool {
	if !validateString(vm, args[1], "Argument") {
		return false
	}
	args[0] = BoolVal(strings.HasSuffix(AsGoString(args[0]), AsGoString(args[1])))
	return true
}

func stringStartsWith(vm *VM, args []Value) bool {
	if !validateString(vm, args[1], "Argument") {
		return false
	}
	args[0] = BoolVal(strings.HasPrefix(AsGoString(args[0]), AsGoString(args[1])))
	return true
}

func stringIndexOf1(vm *VM, args []Value) bool {
	if !validateString(vm, args[1], "Argument") {
		return false
	}
	index := stringFind(AsGoString(args[0]), AsGoString(args[1]), 0)
	args[0] = NumVal(float64(index))
	return true
}

func stringIndexOf2(vm *VM, args []Value) bool {
	if !validateString(vm, args[1], "Argument") {
		return false
	}
	s := AsGoString(args[0])
	start, ok := validateIndex(vm, args[2], len(s), "Start")
	if !ok {
		return false
	}
	index := stringFind(s, AsGoString(args[1]), start)
	args[0] = NumVal(float64(index))
	return true
}

// ---------------------------------------------------------------------------
// Iteration
// ---------------------------------------------------------------------------

func stringIterate(vm *VM, args []Value) bool {
	s := AsGoString(args[0])

	// If we're starting the iteration, return the first index.
	if args[1].IsNull() {
		if len(s) == 0 {
			args[0] = False
			return true
		}
		args[0] = NumVal(0)
		return true
	}

	if !validateInt(vm, args[1], "Iterator") {
		return false
	}
	if args[1].Num() < 0 {
		args[0] = False
		return true
	}
	index := int(args[1].Num())

	// Advance to the beginning of the next UTF-8 sequence.
	for {
		index++
		if index >= len(s) {
			args[0] = False
			return true
		}
		if s[index]&0xc0 != 0x80 {
			break
		}
	}
	args[0] = NumVal(float64(index))
	return true
}

func stringIterateByte(vm *VM, args []Value) bool {
	s := AsGoString(args[0])

	if args[1].IsNull() {
		if len(s) == 0 {
			args[0] = False
			return true
		}
		args[0] = NumVal(0)
		return true
	}

	if !validateInt(vm, args[1], "Iterator") {
		return false
	}
	if args[1].Num() < 0 {
		args[0] = False
		return true
	}

	// Advance to the next byte.
	index := int(args[1].Num()) + 1
	if index >= len(s) {
		args[0] = False
		return true
	}
	args[0] = NumVal(float64(index))
	return true
}

func stringIteratorValue(vm *VM, args []Value) bool {
	s := AsGoString(args[0])
	index, ok := validateIndex(vm, args[1], len(s), "Iterator")
	if !ok {
		return false
	}
	args[0] = vm.stringCodePointAt(s, index)
	return true
}

// ---------------------------------------------------------------------------
// Misc
// ---------------------------------------------------------------------------

func stringToString(vm *VM, args []Value) bool {
	return true
}

// stringDollar delegates to the host-configured dollar operator handler.
func stringDollar(vm *VM, args []Value) bool {
	if vm.config.DollarOperator != nil {
		return vm.config.DollarOperator(vm, args)
	}
	args[0] = Null
	return true
}
