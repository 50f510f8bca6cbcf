package vm

import "unsafe"

// ObjType identifies the kind of a heap object.
type ObjType uint8

const (
	ObjTypeString ObjType = iota
	ObjTypeList
	ObjTypeMap
	ObjTypeRange
	ObjTypeModule
	ObjTypeFn
	ObjTypeClosure
	ObjTypeUpvalue
	ObjTypeClass
	ObjTypeInstance
	ObjTypeFiber
	ObjTypeForeign
)

// Obj is the header shared by every heap object.
//
// Each kind of object embeds Obj as its first field, so a *Obj can be cast
// to the concrete kind once the type tag has been checked. The header also
// links the object into the VM's list of all allocated objects (walked by
// the sweep phase) and carries the mark flag used by the mark phase.
type Obj struct {
	Type     ObjType
	isDark   bool
	ClassObj *ObjClass
	Next     *Obj
}

// ---------------------------------------------------------------------------
// Instance
// ---------------------------------------------------------------------------

// ObjInstance is an instance of a user-defined class: a fixed-length array
// of fields sized by the class's field count at construction.
type ObjInstance struct {
	Obj
	Fields []Value
}

// NewInstance creates a new instance of classObj with all fields null.
func (vm *VM) NewInstance(classObj *ObjClass) *ObjInstance {
	inst := &ObjInstance{Fields: make([]Value, classObj.NumFields)}
	for i := range inst.Fields {
		inst.Fields[i] = Null
	}
	vm.appendObj(&inst.Obj, ObjTypeInstance, classObj,
		uint64(unsafe.Sizeof(*inst))+uint64(classObj.NumFields)*valueSize)
	return inst
}

// ---------------------------------------------------------------------------
// Foreign
// ---------------------------------------------------------------------------

// ObjForeign is an instance of a foreign class: an opaque blob of host data.
type ObjForeign struct {
	Obj
	Data []byte
}

// NewForeign creates a foreign object with size bytes of zeroed host data.
func (vm *VM) NewForeign(classObj *ObjClass, size int) *ObjForeign {
	foreign := &ObjForeign{Data: make([]byte, size)}
	vm.appendObj(&foreign.Obj, ObjTypeForeign, classObj,
		uint64(unsafe.Sizeof(*foreign))+uint64(size))
	return foreign
}

// ---------------------------------------------------------------------------
// Typed predicates
// ---------------------------------------------------------------------------

func isObjType(v Value, t ObjType) bool {
	return v.IsObj() && v.Obj().Type == t
}

// IsString returns true if v is a string object.
func IsString(v Value) bool { return isObjType(v, ObjTypeString) }

// IsList returns true if v is a list object.
func IsList(v Value) bool { return isObjType(v, ObjTypeList) }

// IsMap returns true if v is a map object.
func IsMap(v Value) bool { return isObjType(v, ObjTypeMap) }

// IsRange returns true if v is a range object.
func IsRange(v Value) bool { return isObjType(v, ObjTypeRange) }

// IsModule returns true if v is a module object.
func IsModule(v Value) bool { return isObjType(v, ObjTypeModule) }

// IsFn returns true if v is a bare function object.
func IsFn(v Value) bool { return isObjType(v, ObjTypeFn) }

// IsClosure returns true if v is a closure object.
func IsClosure(v Value) bool { return isObjType(v, ObjTypeClosure) }

// IsClass returns true if v is a class object.
func IsClass(v Value) bool { return isObjType(v, ObjTypeClass) }

// IsInstance returns true if v is an instance object.
func IsInstance(v Value) bool { return isObjType(v, ObjTypeInstance) }

// IsFiber returns true if v is a fiber object.
func IsFiber(v Value) bool { return isObjType(v, ObjTypeFiber) }

// IsForeign returns true if v is a foreign object.
func IsForeign(v Value) bool { return isObjType(v, ObjTypeForeign) }

// ---------------------------------------------------------------------------
// Typed accessors
//
// Each cast assumes the caller has checked the type tag; the Obj header is
// the first field of every concrete kind, so the pointer conversion is
// layout-safe.
// ---------------------------------------------------------------------------

// AsString returns v as a string object.
func AsString(v Value) *ObjString { return (*ObjString)(unsafe.Pointer(v.Obj())) }

// AsGoString returns the byte content of a string value as a Go string.
func AsGoString(v Value) string { return AsString(v).Value }

// AsList returns v as a list object.
func AsList(v Value) *ObjList { return (*ObjList)(unsafe.Pointer(v.Obj())) }

// AsMap returns v as a map object.
func AsMap(v Value) *ObjMap { return (*ObjMap)(unsafe.Pointer(v.Obj())) }

// AsRange returns v as a range object.
func AsRange(v Value) *ObjRange { return (*ObjRange)(unsafe.Pointer(v.Obj())) }

// AsModule returns v as a module object.
func AsModule(v Value) *ObjModule { return (*ObjModule)(unsafe.Pointer(v.Obj())) }

// AsFn returns v as a function object.
func AsFn(v Value) *ObjFn { return (*ObjFn)(unsafe.Pointer(v.Obj())) }

// AsClosure returns v as a closure object.
func AsClosure(v Value) *ObjClosure { return (*ObjClosure)(unsafe.Pointer(v.Obj())) }

// AsClass returns v as a class object.
func AsClass(v Value) *ObjClass { return (*ObjClass)(unsafe.Pointer(v.Obj())) }

// AsInstance returns v as an instance object.
func AsInstance(v Value) *ObjInstance { return (*ObjInstance)(unsafe.Pointer(v.Obj())) }

// AsFiber returns v as a fiber object.
func AsFiber(v Value) *ObjFiber { return (*ObjFiber)(unsafe.Pointer(v.Obj())) }

// AsForeign returns v as a foreign object.
func AsForeign(v Value) *ObjForeign { return (*ObjForeign)(unsafe.Pointer(v.Obj())) }

// valueSize is the allocation-accounting size of one Value slot.
const valueSize = uint64(unsafe.Sizeof(Value(0)))

// ---------------------------------------------------------------------------
// Class resolution
// ---------------------------------------------------------------------------

// ClassFor returns the class for a value, used for method dispatch.
func (vm *VM) ClassFor(v Value) *ObjClass {
	if v.IsNum() {
		return vm.NumClass
	}
	if v.IsObj() {
		return v.Obj().ClassObj
	}
	switch v {
	case True, False:
		return vm.BoolClass
	case Null:
		return vm.NullClass
	default:
		// Undefined should never reach dispatch.
		return nil
	}
}
