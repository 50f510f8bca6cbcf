package vm

import "unsafe"

// MethodType tags a method table slot.
type MethodType uint8

const (
	// MethodNone marks an empty slot: the signature is not supported by
	// this class. Dispatch on it reports a missing method.
	MethodNone MethodType = iota

	// MethodPrimitive is a native method executed inline on the fiber
	// stack; its result replaces the receiver slot.
	MethodPrimitive

	// MethodFunctionCall is the special primitive backing Fn.call(...):
	// the interpreter transfers control into the receiver closure itself.
	MethodFunctionCall

	// MethodForeign is a host-provided method bound through the foreign
	// binding configuration.
	MethodForeign

	// MethodBlock is a method defined in the language: a closure compiled
	// from a method body.
	MethodBlock
)

// Primitive is a native method. args[0] is the receiver and args[1..] the
// method arguments. A primitive returns true to indicate the result has
// been written into args[0]; it returns false to indicate either that a
// fiber switch is pending (the interpreter continues on whichever fiber is
// now current) or that an error has been recorded in the current fiber's
// error slot.
type Primitive func(vm *VM, args []Value) bool

// ForeignMethod is a host-provided native method. It may abort the current
// fiber via (*VM).AbortFiber.
type ForeignMethod func(vm *VM, args []Value)

// Method is one method table slot.
type Method struct {
	Type      MethodType
	Primitive Primitive     // MethodPrimitive, MethodFunctionCall
	Foreign   ForeignMethod // MethodForeign
	Closure   *ObjClosure   // MethodBlock
}

// ObjClass is a class: a name, a superclass chain, and a method table
// indexed densely by signature symbol.
//
// The class of a class is its metaclass, reachable through the header's
// ClassObj slot like any other object.
type ObjClass struct {
	Obj
	Superclass *ObjClass
	NumFields  int
	Methods    []Method
	Name       *ObjString

	// Attributes is a map of compile-time class attributes, or null.
	Attributes Value
}

// ---------------------------------------------------------------------------
// Class construction
// ---------------------------------------------------------------------------

// NewSingleClass creates a bare class without a metaclass. Used only
// during bootstrap and as the first half of NewClass.
func (vm *VM) NewSingleClass(numFields int, name *ObjString) *ObjClass {
	classObj := &ObjClass{NumFields: numFields, Name: name, Attributes: Null}
	vm.appendObj(&classObj.Obj, ObjTypeClass, nil, uint64(unsafe.Sizeof(*classObj)))
	return classObj
}

// NewClass creates a class and its metaclass.
//
// The metaclass is a subclass of the superclass's metaclass, so class-side
// methods inherit along the same lines as instance-side ones.
func (vm *VM) NewClass(superclass *ObjClass, numFields int, name *ObjString) *ObjClass {
	metaclassName := vm.NewString(name.Value + " metaclass")
	vm.PushRoot(&metaclassName.Obj)

	metaclass := vm.NewSingleClass(0, metaclassName)
	metaclass.ClassObj = vm.ClassClass
	vm.PopRoot()

	vm.PushRoot(&metaclass.Obj)

	// The metaclass parallels the non-metaclass hierarchy. A superclass
	// without a metaclass falls back to Class.
	superMetaclass := superclass.ClassObj
	if superMetaclass == nil {
		superMetaclass = vm.ClassClass
	}
	vm.BindSuperclass(metaclass, superMetaclass)

	classObj := vm.NewSingleClass(numFields, name)
	vm.PushRoot(&classObj.Obj)
	classObj.ClassObj = metaclass
	vm.BindSuperclass(classObj, superclass)

	vm.PopRoot()
	vm.PopRoot()
	return classObj
}

// BindSuperclass wires subclass under superclass.
//
// The superclass's method table is copied into the subclass so lookup stays
// O(1) by signature symbol; overriding methods then replace slots in place.
// Inherited fields are added to the subclass's field count.
func (vm *VM) BindSuperclass(subclass, superclass *ObjClass) {
	subclass.Superclass = superclass

	// Include the superclass in the total number of fields, except for the
	// field-less special classes backed by native state.
	if subclass.NumFields != -1 {
		subclass.NumFields += superclass.NumFields
	}

	for symbol := range superclass.Methods {
		if superclass.Methods[symbol].Type != MethodNone {
			vm.BindMethod(subclass, symbol, superclass.Methods[symbol])
		}
	}
}

// BindMethod stores a method in the class's table at the signature symbol,
// growing the table with empty slots as needed.
func (vm *VM) BindMethod(classObj *ObjClass, symbol int, method Method) {
	if symbol >= len(classObj.Methods) {
		grown := make([]Method, symbol+1)
		copy(grown, classObj.Methods)
		classObj.Methods = grown
	}
	classObj.Methods[symbol] = method
}

// LookupMethod returns the method bound at the signature symbol. Slots the
// class never bound report MethodNone.
func (c *ObjClass) LookupMethod(symbol int) Method {
	if symbol < 0 || symbol >= len(c.Methods) {
		return Method{Type: MethodNone}
	}
	return c.Methods[symbol]
}

// IsSubclassOf returns true if c is other or inherits from it.
func (c *ObjClass) IsSubclassOf(other *ObjClass) bool {
	for current := c; current != nil; current = current.Superclass {
		if current == other {
			return true
		}
	}
	return false
}
