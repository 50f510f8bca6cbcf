package vm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Num primitives
//
// Numbers are IEEE-754 doubles. Bitwise operators reinterpret both sides
// as unsigned 32-bit integers.
// ---------------------------------------------------------------------------

var numPrimitives = []primitiveDef{
	staticPrim("Num", "fromString(_)", numFromString),
	staticPrim("Num", "infinity", numInfinity),
	staticPrim("Num", "nan", numNan),
	staticPrim("Num", "pi", numPi),
	staticPrim("Num", "tau", numTau),
	staticPrim("Num", "largest", numLargest),
	staticPrim("Num", "smallest", numSmallest),
	staticPrim("Num", "maxSafeInteger", numMaxSafeInteger),
	staticPrim("Num", "minSafeInteger", numMinSafeInteger),

	prim("Num", "-(_)", numMinus),
	prim("Num", "+(_)", numPlus),
	prim("Num", "*(_)", numMultiply),
	prim("Num", "/(_)", numDivide),
	prim("Num", "<(_)", numLt),
	prim("Num", ">(_)", numGt),
	prim("Num", "<=(_)", numLe),
	prim("Num", ">=(_)", numGe),
	prim("Num", "&(_)", numBitwiseAnd),
	prim("Num", "|(_)", numBitwiseOr),
	prim("Num", "^(_)", numBitwiseXor),
	prim("Num", "<<(_)", numBitwiseLeftShift),
	prim("Num", ">>(_)", numBitwiseRightShift),
	prim("Num", "abs", numAbs),
	prim("Num", "acos", numAcos),
	prim("Num", "asin", numAsin),
	prim("Num", "atan", numAtan),
	prim("Num", "cbrt", numCbrt),
	prim("Num", "ceil", numCeil),
	prim("Num", "cos", numCos),
	prim("Num", "floor", numFloor),
	prim("Num", "-", numNegate),
	prim("Num", "round", numRound),
	prim("Num", "min(_)", numMin),
	prim("Num", "max(_)", numMax),
	prim("Num", "clamp(_,_)", numClamp),
	prim("Num", "sin", numSin),
	prim("Num", "sqrt", numSqrt),
	prim("Num", "tan", numTan),
	prim("Num", "log", numLog),
	prim("Num", "log2", numLog2),
	prim("Num", "exp", numExp),
	prim("Num", "%(_)", numMod),
	prim("Num", "~", numBitwiseNot),
	prim("Num", "..(_)", numDotDot),
	prim("Num", "...(_)", numDotDotDot),
	prim("Num", "atan(_)", numAtan2),
	prim("Num", "pow(_)", numPow),
	prim("Num", "fraction", numFraction),
	prim("Num", "isInfinity", numIsInfinity),
	prim("Num", "isInteger", numIsInteger),
	prim("Num", "isNan", numIsNan),
	prim("Num", "sign", numSign),
	prim("Num", "toString", numToStringPrim),
	prim("Num", "truncate", numTruncate),
	prim("Num", "==(_)", numEqEq),
	prim("Num", "!=(_)", numBangEq),
}

// minNormalDouble is the smallest positive normal double (DBL_MIN), not
// the smallest subnormal.
var minNormalDouble = math.Float64frombits(0x0010000000000000)

// numToString formats a number the way the language prints it.
func numToString(n float64) string {
	if math.IsNaN(n) {
		return "nan"
	}
	if math.IsInf(n, 1) {
		return "infinity"
	}
	if math.IsInf(n, -1) {
		return "-infinity"
	}
	return fmt.Sprintf("%.14g", n)
}

// asBits reinterprets a number as an unsigned 32-bit integer.
func asBits(n float64) uint32 {
	return uint32(int64(n))
}

// ---------------------------------------------------------------------------
// Class-side constants and parsing
// ---------------------------------------------------------------------------

func numFromString(vm *VM, args []Value) bool {
	if !validateString(vm, args[1], "Argument") {
		return false
	}

	s := strings.TrimSpace(AsGoString(args[1]))
	if s == "" {
		args[0] = Null
		return true
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			return retError(vm, "Number literal is too large.")
		}
		args[0] = Null
		return true
	}
	args[0] = NumVal(n)
	return true
}

func numInfinity(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Inf(1))
	return true
}

func numNan(vm *VM, args []Value) bool {
	args[0] = NumVal(math.NaN())
	return true
}

func numPi(vm *VM, args []Value) bool {
	args[0] = NumVal(3.14159265358979323846264338327950288)
	return true
}

func numTau(vm *VM, args []Value) bool {
	args[0] = NumVal(6.28318530717958647692528676655900577)
	return true
}

func numLargest(vm *VM, args []Value) bool {
	args[0] = NumVal(math.MaxFloat64)
	return true
}

func numSmallest(vm *VM, args []Value) bool {
	args[0] = NumVal(minNormalDouble)
	return true
}

func numMaxSafeInteger(vm *VM, args []Value) bool {
	args[0] = NumVal(9007199254740991.0)
	return true
}

func numMinSafeInteger(vm *VM, args []Value) bool {
	args[0] = NumVal(-9007199254740991.0)
	return true
}

// ---------------------------------------------------------------------------
// Arithmetic and comparison
// ---------------------------------------------------------------------------

func numMinus(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(args[0].Num() - args[1].Num())
	return true
}

func numPlus(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(args[0].Num() + args[1].Num())
	return true
}

func numMultiply(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(args[0].Num() * args[1].Num())
	return true
}

func numDivide(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(args[0].Num() / args[1].Num())
	return true
}

func numLt(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = BoolVal(args[0].Num() < args[1].Num())
	return true
}

func numGt(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = BoolVal(args[0].Num() > args[1].Num())
	return true
}

func numLe(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = BoolVal(args[0].Num() <= args[1].Num())
	return true
}

func numGe(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = BoolVal(args[0].Num() >= args[1].Num())
	return true
}

func numMod(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(math.Mod(args[0].Num(), args[1].Num()))
	return true
}

// Equality with a non-number is false, not an error.
func numEqEq(vm *VM, args []Value) bool {
	if !args[1].IsNum() {
		args[0] = False
		return true
	}
	args[0] = BoolVal(args[0].Num() == args[1].Num())
	return true
}

func numBangEq(vm *VM, args []Value) bool {
	if !args[1].IsNum() {
		args[0] = True
		return true
	}
	args[0] = BoolVal(args[0].Num() != args[1].Num())
	return true
}

// ---------------------------------------------------------------------------
// Bitwise
// ---------------------------------------------------------------------------

func numBitwiseAnd(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(float64(asBits(args[0].Num()) & asBits(args[1].Num())))
	return true
}

func numBitwiseOr(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(float64(asBits(args[0].Num()) | asBits(args[1].Num())))
	return true
}

func numBitwiseXor(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(float64(asBits(args[0].Num()) ^ asBits(args[1].Num())))
	return true
}

func numBitwiseLeftShift(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(float64(asBits(args[0].Num()) << (asBits(args[1].Num()) & 31)))
	return true
}

func numBitwiseRightShift(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right operand") {
		return false
	}
	args[0] = NumVal(float64(asBits(args[0].Num()) >> (asBits(args[1].Num()) & 31)))
	return true
}

func numBitwiseNot(vm *VM, args []Value) bool {
	args[0] = NumVal(float64(^asBits(args[0].Num())))
	return true
}

// ---------------------------------------------------------------------------
// Unary math
// ---------------------------------------------------------------------------

func numAbs(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Abs(args[0].Num()))
	return true
}

func numAcos(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Acos(args[0].Num()))
	return true
}

func numAsin(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Asin(args[0].Num()))
	return true
}

func numAtan(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Atan(args[0].Num()))
	return true
}

func numCbrt(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Cbrt(args[0].Num()))
	return true
}

func numCeil(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Ceil(args[0].Num()))
	return true
}

func numCos(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Cos(args[0].Num()))
	return true
}

func numFloor(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Floor(args[0].Num()))
	return true
}

func numNegate(vm *VM, args []Value) bool {
	args[0] = NumVal(-args[0].Num())
	return true
}

func numRound(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Round(args[0].Num()))
	return true
}

func numSin(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Sin(args[0].Num()))
	return true
}

func numSqrt(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Sqrt(args[0].Num()))
	return true
}

func numTan(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Tan(args[0].Num()))
	return true
}

func numLog(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Log(args[0].Num()))
	return true
}

func numLog2(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Log2(args[0].Num()))
	return true
}

func numExp(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Exp(args[0].Num()))
	return true
}

// ---------------------------------------------------------------------------
// Binary math
// ---------------------------------------------------------------------------

func numMin(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Other value") {
		return false
	}
	value := args[0].Num()
	other := args[1].Num()
	if other < value {
		value = other
	}
	args[0] = NumVal(value)
	return true
}

func numMax(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Other value") {
		return false
	}
	value := args[0].Num()
	other := args[1].Num()
	if other > value {
		value = other
	}
	args[0] = NumVal(value)
	return true
}

func numClamp(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Min value") {
		return false
	}
	if !validateNum(vm, args[2], "Max value") {
		return false
	}
	value := args[0].Num()
	lower := args[1].Num()
	upper := args[2].Num()
	args[0] = NumVal(math.Min(math.Max(value, lower), upper))
	return true
}

func numAtan2(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "x value") {
		return false
	}
	args[0] = NumVal(math.Atan2(args[0].Num(), args[1].Num()))
	return true
}

func numPow(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Power value") {
		return false
	}
	args[0] = NumVal(math.Pow(args[0].Num(), args[1].Num()))
	return true
}

// ---------------------------------------------------------------------------
// Ranges
// ---------------------------------------------------------------------------

func numDotDot(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right hand side of range") {
		return false
	}
	args[0] = vm.RangeVal(args[0].Num(), args[1].Num(), true)
	return true
}

func numDotDotDot(vm *VM, args []Value) bool {
	if !validateNum(vm, args[1], "Right hand side of range") {
		return false
	}
	args[0] = vm.RangeVal(args[0].Num(), args[1].Num(), false)
	return true
}

// ---------------------------------------------------------------------------
// Inspection
// ---------------------------------------------------------------------------

func numFraction(vm *VM, args []Value) bool {
	// The fractional part keeps the sign of the receiver.
	_, frac := math.Modf(args[0].Num())
	args[0] = NumVal(frac)
	return true
}

func numIsInfinity(vm *VM, args []Value) bool {
	args[0] = BoolVal(math.IsInf(args[0].Num(), 0))
	return true
}

func numIsInteger(vm *VM, args []Value) bool {
	n := args[0].Num()
	if math.IsNaN(n) || math.IsInf(n, 0) {
		args[0] = False
		return true
	}
	args[0] = BoolVal(math.Trunc(n) == n)
	return true
}

func numIsNan(vm *VM, args []Value) bool {
	args[0] = BoolVal(math.IsNaN(args[0].Num()))
	return true
}

func numSign(vm *VM, args []Value) bool {
	n := args[0].Num()
	switch {
	case n > 0:
		args[0] = NumVal(1)
	case n < 0:
		args[0] = NumVal(-1)
	default:
		args[0] = NumVal(0)
	}
	return true
}

func numTruncate(vm *VM, args []Value) bool {
	args[0] = NumVal(math.Trunc(args[0].Num()))
	return true
}

func numToStringPrim(vm *VM, args []Value) bool {
	args[0] = vm.StringVal(numToString(args[0].Num()))
	return true
}
