package vm

import "unsafe"

// FiberState tracks how a fiber was entered.
type FiberState uint8

const (
	// FiberOther is every fiber that was not entered via try or as the
	// root of execution.
	FiberOther FiberState = iota

	// FiberTry marks a fiber entered with try(): a runtime error is
	// caught and returned to the caller as the try call's result.
	FiberTry

	// FiberRoot marks the fiber the interpreter was started on. The root
	// fiber cannot be called.
	FiberRoot
)

// initialCallFrames is the starting capacity of a fiber's frame stack.
const initialCallFrames = 4

// CallFrame is one entry on a fiber's frame stack: the executing closure,
// its instruction pointer, and the stack slot its locals start at.
type CallFrame struct {
	Closure    *ObjClosure
	IP         int
	StackStart int
}

// ObjFiber is a cooperative coroutine: a value stack, a frame stack, a link
// to the fiber that called it, and an error slot.
type ObjFiber struct {
	Obj

	// stack holds the allocated value slots; stackTop is the index one
	// past the last used slot.
	stack    []Value
	stackTop int

	frames []CallFrame

	// OpenUpvalues heads the list of upvalues still pointing at live
	// slots on this fiber's stack, sorted by descending slot index.
	OpenUpvalues *ObjUpvalue

	// Caller is the fiber that ran this one via call or try, or nil for
	// the root fiber and fibers entered via transfer.
	Caller *ObjFiber

	// Error is the runtime error value, or null if the fiber is healthy.
	Error Value

	State FiberState
}

// NewFiber creates a fiber that will execute closure, which may be nil for
// the internal root fiber the interpreter allocates.
func (vm *VM) NewFiber(closure *ObjClosure) *ObjFiber {
	// Allocate the stack at a power of 2 to match later growth.
	stackCapacity := 1
	if closure != nil {
		stackCapacity = powerOf2Ceil(closure.Fn.MaxSlots + 1)
	}

	fiber := &ObjFiber{
		stack:  make([]Value, stackCapacity),
		frames: make([]CallFrame, 0, initialCallFrames),
		Error:  Null,
	}
	vm.appendObj(&fiber.Obj, ObjTypeFiber, vm.FiberClass,
		uint64(unsafe.Sizeof(*fiber))+uint64(stackCapacity)*valueSize)

	if closure != nil {
		fiber.appendFrame(closure, 0)

		// The first slot always holds the closure.
		fiber.stack[0] = ObjVal(&closure.Obj)
		fiber.stackTop = 1
	}
	return fiber
}

func powerOf2Ceil(n int) int {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// ---------------------------------------------------------------------------
// Stack operations
// ---------------------------------------------------------------------------

// Push pushes a value onto the fiber's stack.
func (f *ObjFiber) Push(v Value) {
	f.stack[f.stackTop] = v
	f.stackTop++
}

// Pop removes and returns the top of the stack.
func (f *ObjFiber) Pop() Value {
	f.stackTop--
	return f.stack[f.stackTop]
}

// Drop discards the top of the stack.
func (f *ObjFiber) Drop() {
	f.stackTop--
}

// Peek returns the top of the stack without removing it.
func (f *ObjFiber) Peek() Value {
	return f.stack[f.stackTop-1]
}

// Peek2 returns the value one below the top of the stack.
func (f *ObjFiber) Peek2() Value {
	return f.stack[f.stackTop-2]
}

// SetReturn overwrites the top of the stack, where a resumed fiber reads
// the result of the switch that suspended it.
func (f *ObjFiber) SetReturn(v Value) {
	f.stack[f.stackTop-1] = v
}

// StackTop returns the number of used stack slots.
func (f *ObjFiber) StackTop() int {
	return f.stackTop
}

// StackAt returns the value at an absolute stack slot.
func (f *ObjFiber) StackAt(slot int) Value {
	return f.stack[slot]
}

// EnsureStack grows the fiber's stack so at least needed slots exist.
// Open upvalues address slots by index, so no fixup is required.
func (vm *VM) EnsureStack(fiber *ObjFiber, needed int) {
	if len(fiber.stack) >= needed {
		return
	}
	capacity := powerOf2Ceil(needed)
	grown := make([]Value, capacity)
	copy(grown, fiber.stack)
	vm.bytesAllocated += uint64(capacity-len(fiber.stack)) * valueSize
	fiber.stack = grown
}

// ---------------------------------------------------------------------------
// Frame operations
// ---------------------------------------------------------------------------

// NumFrames returns the number of call frames; zero means the fiber has
// finished.
func (f *ObjFiber) NumFrames() int {
	return len(f.frames)
}

// Frame returns the frame at index i, counting from the bottom.
func (f *ObjFiber) Frame(i int) *CallFrame {
	return &f.frames[i]
}

// CurrentFrame returns the innermost call frame.
func (f *ObjFiber) CurrentFrame() *CallFrame {
	return &f.frames[len(f.frames)-1]
}

// PopFrame discards the innermost call frame.
func (f *ObjFiber) PopFrame() {
	f.frames = f.frames[:len(f.frames)-1]
}

func (f *ObjFiber) appendFrame(closure *ObjClosure, stackStart int) {
	f.frames = append(f.frames, CallFrame{Closure: closure, StackStart: stackStart})
}

// atStart reports whether the fiber has a single frame that has not
// executed its first instruction, i.e. it was created but never run.
func (f *ObjFiber) atStart() bool {
	return len(f.frames) == 1 && f.frames[0].IP == 0
}

// CallFunction pushes a frame for closure onto the fiber, with the numArgs
// values currently on top of the stack as its arguments. The interpreter
// loop picks the frame up on its next dispatch.
func (vm *VM) CallFunction(fiber *ObjFiber, closure *ObjClosure, numArgs int) {
	vm.EnsureStack(fiber, fiber.stackTop+closure.Fn.MaxSlots)
	fiber.appendFrame(closure, fiber.stackTop-numArgs)
}

// HasError returns true once a runtime error has been recorded. An errored
// fiber is aborted: it cannot be called, transferred to, or tried.
func (f *ObjFiber) HasError() bool {
	return !f.Error.IsNull()
}

// ---------------------------------------------------------------------------
// Upvalue capture
// ---------------------------------------------------------------------------

// CaptureUpvalue returns an upvalue for the stack slot, reusing an existing
// open upvalue when the slot is already captured so closures share it.
func (vm *VM) CaptureUpvalue(fiber *ObjFiber, slot int) *ObjUpvalue {
	if fiber.OpenUpvalues == nil {
		fiber.OpenUpvalues = vm.newUpvalue(fiber, slot)
		return fiber.OpenUpvalues
	}

	var prev *ObjUpvalue
	upvalue := fiber.OpenUpvalues

	// Walk towards the bottom of the stack until we find a previously
	// existing upvalue or pass where it should be.
	for upvalue != nil && upvalue.slot > slot {
		prev = upvalue
		upvalue = upvalue.Next
	}
	if upvalue != nil && upvalue.slot == slot {
		return upvalue
	}

	created := vm.newUpvalue(fiber, slot)
	if prev == nil {
		fiber.OpenUpvalues = created
	} else {
		prev.Next = created
	}
	created.Next = upvalue
	return created
}

// CloseUpvalues closes every open upvalue at or above the given stack slot.
func (f *ObjFiber) CloseUpvalues(lastSlot int) {
	for f.OpenUpvalues != nil && f.OpenUpvalues.slot >= lastSlot {
		upvalue := f.OpenUpvalues
		f.OpenUpvalues = upvalue.Next
		upvalue.Next = nil
		upvalue.close()
	}
}
