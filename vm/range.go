package vm

import "unsafe"

// ObjRange is an immutable numeric interval.
//
// Iterating a range ascends or descends in unit steps based on the sign of
// To-From. An exclusive range terminates before To; an inclusive one at To.
type ObjRange struct {
	Obj
	From        float64
	To          float64
	IsInclusive bool
}

// NewRange creates a range object.
func (vm *VM) NewRange(from, to float64, isInclusive bool) *ObjRange {
	r := &ObjRange{From: from, To: to, IsInclusive: isInclusive}
	vm.appendObj(&r.Obj, ObjTypeRange, vm.RangeClass, uint64(unsafe.Sizeof(*r)))
	return r
}

// RangeVal creates a range object and returns it as a Value.
func (vm *VM) RangeVal(from, to float64, isInclusive bool) Value {
	return ObjVal(&vm.NewRange(from, to, isInclusive).Obj)
}

// Min returns the smaller endpoint.
func (r *ObjRange) Min() float64 {
	if r.From < r.To {
		return r.From
	}
	return r.To
}

// Max returns the larger endpoint.
func (r *ObjRange) Max() float64 {
	if r.From > r.To {
		return r.From
	}
	return r.To
}
