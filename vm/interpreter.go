package vm

// InterpretResult reports the outcome of compiling and running a script.
type InterpretResult int

const (
	ResultSuccess InterpretResult = iota
	ResultCompileError
	ResultRuntimeError
)

func (r InterpretResult) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultCompileError:
		return "compile error"
	case ResultRuntimeError:
		return "runtime error"
	default:
		return "unknown"
	}
}

// Interpreter is the compile-and-execute collaborator the core consumes.
//
// Interpret compiles source in the named module (the empty name addresses
// the core module) and runs it to completion on a new fiber. The bootstrap
// requires it to succeed; class bodies it compiles dispatch back into the
// core through the method tables built here.
//
// The other halves of the contract are pure data-model operations the core
// itself provides: (*VM).CallFunction pushes a call frame and
// (*ObjFiber).HasError reports error state.
type Interpreter interface {
	Interpret(vm *VM, moduleName string, source string) InterpretResult
}
