package vm

import (
	"time"
	"unsafe"
)

// maxTempRoots is the number of slots for temporary GC roots. Primitives
// push at most a couple of objects at a time while allocating.
const maxTempRoots = 8

// ---------------------------------------------------------------------------
// Allocation
// ---------------------------------------------------------------------------

// appendObj initializes a freshly created object's header and links it into
// the VM's list of all objects.
//
// The collection check runs before the object becomes visible, so a
// triggered collection cannot sweep it; any other object the caller still
// needs must be protected with PushRoot first.
func (vm *VM) appendObj(obj *Obj, objType ObjType, classObj *ObjClass, size uint64) {
	if vm.bytesAllocated+size > vm.nextGC {
		vm.CollectGarbage()
	}
	vm.bytesAllocated += size

	obj.Type = objType
	obj.isDark = false
	obj.ClassObj = classObj
	obj.Next = vm.first
	vm.first = obj
}

// PushRoot marks obj as reachable across an allocation that could trigger
// a collection.
func (vm *VM) PushRoot(obj *Obj) {
	if vm.numTempRoots == maxTempRoots {
		panic("PushRoot: too many temporary roots")
	}
	vm.tempRoots[vm.numTempRoots] = obj
	vm.numTempRoots++
}

// PopRoot removes the most recently pushed temporary root.
func (vm *VM) PopRoot() {
	if vm.numTempRoots == 0 {
		panic("PopRoot: no temporary roots")
	}
	vm.numTempRoots--
	vm.tempRoots[vm.numTempRoots] = nil
}

// ---------------------------------------------------------------------------
// Collection
// ---------------------------------------------------------------------------

// CollectGarbage performs a full mark-sweep collection.
//
// The root set is the module table, the core class pointers, the current
// fiber (whose traversal reaches the caller chain), and the temporary
// roots. Allocation accounting is rebuilt during the mark phase.
func (vm *VM) CollectGarbage() {
	started := time.Now()
	before := vm.bytesAllocated
	vm.bytesAllocated = 0

	if vm.modules != nil {
		vm.grayObj(&vm.modules.Obj)
	}

	for i := 0; i < vm.numTempRoots; i++ {
		vm.grayObj(vm.tempRoots[i])
	}

	if vm.Fiber != nil {
		vm.grayObj(&vm.Fiber.Obj)
	}

	vm.grayClass(vm.BoolClass)
	vm.grayClass(vm.ClassClass)
	vm.grayClass(vm.FiberClass)
	vm.grayClass(vm.FnClass)
	vm.grayClass(vm.ListClass)
	vm.grayClass(vm.MapClass)
	vm.grayClass(vm.NullClass)
	vm.grayClass(vm.NumClass)
	vm.grayClass(vm.ObjectClass)
	vm.grayClass(vm.RangeClass)
	vm.grayClass(vm.StringClass)

	// Blacken gray objects until the work list drains.
	for len(vm.gray) > 0 {
		obj := vm.gray[len(vm.gray)-1]
		vm.gray = vm.gray[:len(vm.gray)-1]
		vm.blacken(obj)
	}

	// Sweep: unlink every object the mark phase never reached.
	collected := 0
	link := &vm.first
	for *link != nil {
		obj := *link
		if obj.isDark {
			obj.isDark = false
			link = &obj.Next
			continue
		}
		*link = obj.Next
		obj.Next = nil
		collected++
	}

	vm.nextGC = vm.bytesAllocated + vm.bytesAllocated*uint64(vm.config.HeapGrowthPercent)/100
	if vm.nextGC < vm.config.MinHeapSize {
		vm.nextGC = vm.config.MinHeapSize
	}

	log.Debugf("vm %s: gc collected %d objects, %d -> %d bytes, next at %d, %v",
		vm.ID, collected, before, vm.bytesAllocated, vm.nextGC,
		time.Since(started))
}

// ---------------------------------------------------------------------------
// Marking
// ---------------------------------------------------------------------------

func (vm *VM) grayValue(v Value) {
	if v.IsObj() {
		vm.grayObj(v.Obj())
	}
}

func (vm *VM) grayObj(obj *Obj) {
	if obj == nil || obj.isDark {
		return
	}
	obj.isDark = true
	vm.gray = append(vm.gray, obj)
}

func (vm *VM) grayClass(classObj *ObjClass) {
	if classObj != nil {
		vm.grayObj(&classObj.Obj)
	}
}

func (vm *VM) grayValues(values []Value) {
	for _, v := range values {
		vm.grayValue(v)
	}
}

// blacken traces one object's references and accounts its size.
func (vm *VM) blacken(obj *Obj) {
	vm.grayClass(obj.ClassObj)

	switch obj.Type {
	case ObjTypeString:
		str := (*ObjString)(unsafe.Pointer(obj))
		vm.bytesAllocated += uint64(unsafe.Sizeof(*str)) + uint64(len(str.Value))

	case ObjTypeList:
		list := (*ObjList)(unsafe.Pointer(obj))
		vm.grayValues(list.Elements)
		vm.bytesAllocated += uint64(unsafe.Sizeof(*list)) + uint64(cap(list.Elements))*valueSize

	case ObjTypeMap:
		m := (*ObjMap)(unsafe.Pointer(obj))
		for i := range m.entries {
			if !m.entries[i].key.IsUndefined() {
				vm.grayValue(m.entries[i].key)
				vm.grayValue(m.entries[i].value)
			}
		}
		vm.bytesAllocated += uint64(unsafe.Sizeof(*m)) + uint64(len(m.entries))*2*valueSize

	case ObjTypeRange:
		r := (*ObjRange)(unsafe.Pointer(obj))
		vm.bytesAllocated += uint64(unsafe.Sizeof(*r))

	case ObjTypeModule:
		module := (*ObjModule)(unsafe.Pointer(obj))
		vm.grayValues(module.Variables)
		if module.Name != nil {
			vm.grayObj(&module.Name.Obj)
		}
		vm.bytesAllocated += uint64(unsafe.Sizeof(*module)) +
			uint64(cap(module.Variables))*valueSize

	case ObjTypeFn:
		fn := (*ObjFn)(unsafe.Pointer(obj))
		vm.grayValues(fn.Constants)
		if fn.Module != nil {
			vm.grayObj(&fn.Module.Obj)
		}
		vm.bytesAllocated += uint64(unsafe.Sizeof(*fn)) +
			uint64(len(fn.Code)) + uint64(cap(fn.Constants))*valueSize

	case ObjTypeClosure:
		closure := (*ObjClosure)(unsafe.Pointer(obj))
		vm.grayObj(&closure.Fn.Obj)
		for _, upvalue := range closure.Upvalues {
			if upvalue != nil {
				vm.grayObj(&upvalue.Obj)
			}
		}
		vm.bytesAllocated += uint64(unsafe.Sizeof(*closure)) +
			uint64(len(closure.Upvalues))*valueSize

	case ObjTypeUpvalue:
		upvalue := (*ObjUpvalue)(unsafe.Pointer(obj))
		vm.grayValue(upvalue.Closed)
		vm.bytesAllocated += uint64(unsafe.Sizeof(*upvalue))

	case ObjTypeClass:
		classObj := (*ObjClass)(unsafe.Pointer(obj))
		vm.grayClass(classObj.Superclass)
		for i := range classObj.Methods {
			if classObj.Methods[i].Type == MethodBlock {
				vm.grayObj(&classObj.Methods[i].Closure.Obj)
			}
		}
		if classObj.Name != nil {
			vm.grayObj(&classObj.Name.Obj)
		}
		vm.grayValue(classObj.Attributes)
		vm.bytesAllocated += uint64(unsafe.Sizeof(*classObj)) +
			uint64(len(classObj.Methods))*uint64(unsafe.Sizeof(Method{}))

	case ObjTypeInstance:
		instance := (*ObjInstance)(unsafe.Pointer(obj))
		vm.grayValues(instance.Fields)
		vm.bytesAllocated += uint64(unsafe.Sizeof(*instance)) +
			uint64(len(instance.Fields))*valueSize

	case ObjTypeFiber:
		fiber := (*ObjFiber)(unsafe.Pointer(obj))
		vm.grayValues(fiber.stack[:fiber.stackTop])
		for i := range fiber.frames {
			vm.grayObj(&fiber.frames[i].Closure.Obj)
		}
		for upvalue := fiber.OpenUpvalues; upvalue != nil; upvalue = upvalue.Next {
			vm.grayObj(&upvalue.Obj)
		}
		if fiber.Caller != nil {
			vm.grayObj(&fiber.Caller.Obj)
		}
		vm.grayValue(fiber.Error)
		vm.bytesAllocated += uint64(unsafe.Sizeof(*fiber)) +
			uint64(len(fiber.stack))*valueSize

	case ObjTypeForeign:
		foreign := (*ObjForeign)(unsafe.Pointer(obj))
		vm.bytesAllocated += uint64(unsafe.Sizeof(*foreign)) + uint64(len(foreign.Data))
	}
}

// BytesAllocated returns the collector's running allocation estimate.
func (vm *VM) BytesAllocated() uint64 {
	return vm.bytesAllocated
}

// ObjectCount walks the all-objects list and returns its length.
// Intended for tests and diagnostics.
func (vm *VM) ObjectCount() int {
	count := 0
	for obj := vm.first; obj != nil; obj = obj.Next {
		count++
	}
	return count
}

// FirstObj returns the head of the all-objects list. Intended for tests
// and diagnostics.
func (vm *VM) FirstObj() *Obj {
	return vm.first
}
