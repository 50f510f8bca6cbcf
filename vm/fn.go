package vm

import "unsafe"

// FnDebug carries the debug information for a function: the name it was
// bound to and the source line for each bytecode offset, consumed by the
// stack-trace reporter.
type FnDebug struct {
	Name        string
	SourceLines []int
}

// ObjFn is a compiled unit of code: bytecode, a constant table, and the
// module it was compiled in. Functions are not first-class in the language;
// they are always wrapped in a closure before being invoked.
type ObjFn struct {
	Obj
	Code        []byte
	Constants   []Value
	Module      *ObjModule
	MaxSlots    int
	NumUpvalues int
	Arity       int
	Debug       *FnDebug
}

// NewFunction creates an empty function. The compiler fills in the code,
// constants, and upvalue count afterwards.
func (vm *VM) NewFunction(module *ObjModule, maxSlots int) *ObjFn {
	fn := &ObjFn{
		Module:   module,
		MaxSlots: maxSlots,
		Debug:    &FnDebug{},
	}
	vm.appendObj(&fn.Obj, ObjTypeFn, vm.FnClass, uint64(unsafe.Sizeof(*fn)))
	return fn
}

// BindName sets the function's debug name.
func (fn *ObjFn) BindName(name string) {
	fn.Debug.Name = name
}

// ---------------------------------------------------------------------------
// Closure
// ---------------------------------------------------------------------------

// ObjClosure binds a function with the upvalues it captured.
type ObjClosure struct {
	Obj
	Fn       *ObjFn
	Upvalues []*ObjUpvalue
}

// NewClosure creates a closure over fn with nil upvalue slots; the
// interpreter populates them when executing the closure-creating opcode.
func (vm *VM) NewClosure(fn *ObjFn) *ObjClosure {
	closure := &ObjClosure{
		Fn:       fn,
		Upvalues: make([]*ObjUpvalue, fn.NumUpvalues),
	}
	vm.appendObj(&closure.Obj, ObjTypeClosure, vm.FnClass,
		uint64(unsafe.Sizeof(*closure))+uint64(fn.NumUpvalues)*valueSize)
	return closure
}

// ---------------------------------------------------------------------------
// Upvalue
// ---------------------------------------------------------------------------

// ObjUpvalue is the indirection to an outer local captured by a closure.
//
// While open it refers to a live slot on its owning fiber's stack (by
// index, so the reference survives stack growth). Once the owning frame
// returns the upvalue is closed: it copies the slot's value into itself
// and drops the fiber reference.
type ObjUpvalue struct {
	Obj
	fiber  *ObjFiber
	slot   int
	Closed Value

	// Next links the owning fiber's list of open upvalues, sorted by
	// descending slot index.
	Next *ObjUpvalue
}

func (vm *VM) newUpvalue(fiber *ObjFiber, slot int) *ObjUpvalue {
	upvalue := &ObjUpvalue{fiber: fiber, slot: slot, Closed: Null}
	// Upvalues are never directly accessible from the language.
	vm.appendObj(&upvalue.Obj, ObjTypeUpvalue, nil, uint64(unsafe.Sizeof(*upvalue)))
	return upvalue
}

// IsOpen returns true while the upvalue still refers to a live stack slot.
func (u *ObjUpvalue) IsOpen() bool {
	return u.fiber != nil
}

// Get returns the captured value.
func (u *ObjUpvalue) Get() Value {
	if u.fiber != nil {
		return u.fiber.stack[u.slot]
	}
	return u.Closed
}

// Set stores a value through the upvalue.
func (u *ObjUpvalue) Set(v Value) {
	if u.fiber != nil {
		u.fiber.stack[u.slot] = v
		return
	}
	u.Closed = v
}

// close moves the referenced stack value into the upvalue itself.
func (u *ObjUpvalue) close() {
	u.Closed = u.fiber.stack[u.slot]
	u.fiber = nil
}
