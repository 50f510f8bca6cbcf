package vm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrorType classifies reports delivered to the host error callback.
type ErrorType int

const (
	// ErrorCompile is a syntax or resolution error found while compiling.
	ErrorCompile ErrorType = iota

	// ErrorRuntime is an uncaught runtime error. The message is the
	// error value; stack trace entries follow as separate reports.
	ErrorRuntime

	// ErrorStackTrace is one frame of the stack trace for a preceding
	// runtime error: line and module identify the frame, the message
	// names the function.
	ErrorStackTrace
)

// WriteFn receives text output by the language, e.g. from System.print.
type WriteFn func(vm *VM, text string)

// ErrorFn receives compile errors, runtime errors, and stack trace frames.
type ErrorFn func(vm *VM, errType ErrorType, module string, line int, message string)

// ResolveModuleFn maps an import string in importer to a canonical module
// name.
type ResolveModuleFn func(vm *VM, importer, name string) string

// LoadModuleFn returns the source for an imported module. The second
// result is false if the module could not be found.
type LoadModuleFn func(vm *VM, name string) (string, bool)

// BindForeignMethodFn supplies the host implementation for a foreign
// method declared in a module. Returning nil reports an unknown method.
type BindForeignMethodFn func(vm *VM, module, className string, isStatic bool, signature string) ForeignMethod

// ForeignClassMethods carries the host hooks for a foreign class.
type ForeignClassMethods struct {
	Allocate ForeignMethod
	Finalize func(data []byte)
}

// BindForeignClassFn supplies the host hooks for a foreign class declared
// in a module.
type BindForeignClassFn func(vm *VM, module, className string) ForeignClassMethods

// Config carries the host callbacks and collector tuning supplied at VM
// construction. The zero value is usable: all callbacks optional, heap
// tuning defaulted.
type Config struct {
	Write             WriteFn
	Error             ErrorFn
	ResolveModule     ResolveModuleFn
	LoadModule        LoadModuleFn
	BindForeignMethod BindForeignMethodFn
	BindForeignClass  BindForeignClassFn

	// DollarOperator backs the string $ method; when unset the method
	// returns null.
	DollarOperator Primitive

	InitialHeapSize   uint64
	MinHeapSize       uint64
	HeapGrowthPercent int
}

// Collector tuning defaults.
const (
	DefaultInitialHeapSize   = 10 * 1024 * 1024
	DefaultMinHeapSize       = 1024 * 1024
	DefaultHeapGrowthPercent = 50
)

// VM is a single independent instance of the runtime: a module table, the
// list of all allocated objects, the current fiber, the core classes, and
// the host configuration.
type VM struct {
	// ID identifies this instance in logs and image provenance.
	ID string

	config Config

	// Core classes, bound by bootstrap.
	BoolClass   *ObjClass
	ClassClass  *ObjClass
	FiberClass  *ObjClass
	FnClass     *ObjClass
	ListClass   *ObjClass
	MapClass    *ObjClass
	NullClass   *ObjClass
	NumClass    *ObjClass
	ObjectClass *ObjClass
	RangeClass  *ObjClass
	StringClass *ObjClass

	// Fiber is the currently executing fiber, or nil when the VM is idle.
	Fiber *ObjFiber

	// MethodNames interns method signatures to dispatch symbols.
	MethodNames *SignatureTable

	// modules maps module-name values to module objects, with the core
	// module under the null key.
	modules *ObjMap

	// first heads the intrusive list of all allocated objects.
	first *Obj

	bytesAllocated uint64
	nextGC         uint64

	tempRoots    [maxTempRoots]*Obj
	numTempRoots int
	gray         []*Obj

	registry []primitiveDef
	interp   Interpreter

	startTime time.Time
}

// NewVM creates a VM and performs the native half of the bootstrap: the
// core module, the Object/Class/Object-metaclass triangle, and their
// primitives. InitializeCore completes the bootstrap.
func NewVM(config *Config) *VM {
	vm := &VM{
		ID:          uuid.New().String(),
		MethodNames: NewSignatureTable(),
		registry:    corePrimitives(),
		startTime:   time.Now(),
	}
	if config != nil {
		vm.config = *config
	}
	if vm.config.InitialHeapSize == 0 {
		vm.config.InitialHeapSize = DefaultInitialHeapSize
	}
	if vm.config.MinHeapSize == 0 {
		vm.config.MinHeapSize = DefaultMinHeapSize
	}
	if vm.config.HeapGrowthPercent == 0 {
		vm.config.HeapGrowthPercent = DefaultHeapGrowthPercent
	}
	vm.nextGC = vm.config.InitialHeapSize

	vm.modules = vm.NewMap()

	coreModule := vm.NewModule(nil)
	vm.PushRoot(&coreModule.Obj)
	vm.modules.Set(Null, ObjVal(&coreModule.Obj))
	vm.PopRoot()

	// Define the root Object class. This has to be done a little
	// specially because it has no superclass.
	vm.ObjectClass = vm.defineClass(coreModule, "Object")
	vm.registerPrimitives("Object", vm.ObjectClass)

	// Now we can define Class, which is a subclass of Object.
	vm.ClassClass = vm.defineClass(coreModule, "Class")
	vm.BindSuperclass(vm.ClassClass, vm.ObjectClass)
	vm.registerPrimitives("Class", vm.ClassClass)

	// Finally, we can define Object's metaclass which is a subclass of
	// Class.
	objectMetaclass := vm.defineClass(coreModule, "Object metaclass")

	// Wire up the metaclass relationships now that all three classes are
	// built.
	vm.ObjectClass.ClassObj = objectMetaclass
	objectMetaclass.ClassObj = vm.ClassClass
	vm.ClassClass.ClassObj = vm.ClassClass

	vm.BindSuperclass(objectMetaclass, vm.ClassClass)
	vm.registerPrimitives("Object metaclass", objectMetaclass)

	log.Debugf("vm %s: root classes ready", vm.ID)
	return vm
}

// Configuration returns the VM's resolved host configuration.
func (vm *VM) Configuration() *Config {
	return &vm.config
}

// defineClass creates a bare class and defines it as a top-level variable
// of module.
func (vm *VM) defineClass(module *ObjModule, name string) *ObjClass {
	nameString := vm.NewString(name)
	vm.PushRoot(&nameString.Obj)
	classObj := vm.NewSingleClass(0, nameString)
	vm.DefineVariable(module, name, ObjVal(&classObj.Obj))
	vm.PopRoot()
	return classObj
}

// registerPrimitives binds every registry entry for className into the
// class's method table, or its metaclass's table for static entries.
func (vm *VM) registerPrimitives(className string, classObj *ObjClass) int {
	bound := 0
	for _, def := range vm.registry {
		if def.class != className {
			continue
		}
		target := classObj
		if def.static {
			target = classObj.ClassObj
		}
		symbol := vm.MethodNames.Intern(def.signature)
		vm.BindMethod(target, symbol, Method{Type: def.kind, Primitive: def.fn})
		bound++
	}
	return bound
}

// ---------------------------------------------------------------------------
// Core bootstrap, script half
// ---------------------------------------------------------------------------

// coreClassSlot names one class the bootstrap script declares and the VM
// field it binds to.
type coreClassSlot struct {
	name string
	slot **ObjClass
}

// InitializeCore completes the bootstrap: it interprets the embedded core
// script with interp, binds the classes the script declares, attaches
// their primitives, and repairs the class pointers of strings allocated
// before the String class existed. Any failure is fatal for the VM.
func (vm *VM) InitializeCore(interp Interpreter) error {
	vm.interp = interp

	if result := interp.Interpret(vm, "", coreModuleSource); result != ResultSuccess {
		return fmt.Errorf("vm: core module did not load (%v)", result)
	}

	core := vm.CoreModule()
	slots := []coreClassSlot{
		{"Bool", &vm.BoolClass},
		{"Fiber", &vm.FiberClass},
		{"Fn", &vm.FnClass},
		{"Null", &vm.NullClass},
		{"Num", &vm.NumClass},
		{"String", &vm.StringClass},
		{"List", &vm.ListClass},
		{"Map", &vm.MapClass},
		{"Range", &vm.RangeClass},
	}
	for _, s := range slots {
		value, ok := core.FindVariable(s.name)
		if !ok || !IsClass(value) {
			return fmt.Errorf("vm: core module does not declare class %q", s.name)
		}
		*s.slot = AsClass(value)
		vm.registerPrimitives(s.name, *s.slot)
	}

	// System carries only class-side methods; its primitives land on the
	// metaclass via their static flag.
	systemValue, ok := core.FindVariable("System")
	if !ok || !IsClass(systemValue) {
		return fmt.Errorf("vm: core module does not declare class %q", "System")
	}
	vm.registerPrimitives("System", AsClass(systemValue))

	// While bootstrapping the core types and running the core module, a
	// number of string objects were created before stringClass was
	// available. Assign the class to them all now.
	orphans := 0
	for obj := vm.first; obj != nil; obj = obj.Next {
		if obj.Type == ObjTypeString {
			if obj.ClassObj == nil {
				orphans++
			}
			obj.ClassObj = vm.StringClass
		}
	}

	log.Debugf("vm %s: core initialized, %d signatures, %d orphan strings rewired",
		vm.ID, vm.MethodNames.Len(), orphans)
	return nil
}

// ---------------------------------------------------------------------------
// Module access
// ---------------------------------------------------------------------------

// CoreModule returns the implicitly imported core module.
func (vm *VM) CoreModule() *ObjModule {
	return AsModule(vm.modules.Get(Null))
}

// Module returns a loaded module by name, or nil.
func (vm *VM) Module(name string) *ObjModule {
	nameValue := vm.StringVal(name)
	found := vm.modules.Get(nameValue)
	if found.IsUndefined() {
		return nil
	}
	return AsModule(found)
}

// RegisterModule adds a module to the module table under its name.
func (vm *VM) RegisterModule(module *ObjModule) {
	if module.Name == nil {
		vm.modules.Set(Null, ObjVal(&module.Obj))
		return
	}
	vm.modules.Set(ObjVal(&module.Name.Obj), ObjVal(&module.Obj))
}

// ---------------------------------------------------------------------------
// Host-facing helpers
// ---------------------------------------------------------------------------

// AbortFiber records a runtime error on the current fiber.
func (vm *VM) AbortFiber(message string) {
	vm.Fiber.Error = vm.StringVal(message)
}

// Write sends text to the host write callback, if configured.
func (vm *VM) Write(text string) {
	if vm.config.Write != nil {
		vm.config.Write(vm, text)
	}
}

// ReportError delivers an error report to the host error callback, if
// configured.
func (vm *VM) ReportError(errType ErrorType, module string, line int, message string) {
	if vm.config.Error != nil {
		vm.config.Error(vm, errType, module, line, message)
	}
}

// Clock returns the seconds elapsed since the VM was created.
func (vm *VM) Clock() float64 {
	return time.Since(vm.startTime).Seconds()
}
