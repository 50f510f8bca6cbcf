package vm

import "unsafe"

// ObjModule is a module: a named table of top-level variables.
//
// Variables and VariableNames are parallel; the index of a name is the
// symbol used by compiled code to address the variable.
type ObjModule struct {
	Obj
	Variables     []Value
	VariableNames []string
	Name          *ObjString
}

// Results for DefineVariable beyond a valid symbol index.
const (
	// VarAlreadyDefined reports a duplicate definition.
	VarAlreadyDefined = -1
	// VarTooManyDefined reports that the module variable table is full.
	VarTooManyDefined = -2
)

// MaxModuleVars bounds the number of top-level variables in one module,
// matching the width of the compiler's variable operand.
const MaxModuleVars = 65536

// NewModule creates a module. A nil name creates the core module.
func (vm *VM) NewModule(name *ObjString) *ObjModule {
	module := &ObjModule{Name: name}
	// Modules take no class so they are invisible to the language. A module
	// stays alive while the module table or another root reaches it.
	vm.appendObj(&module.Obj, ObjTypeModule, nil, uint64(unsafe.Sizeof(*module)))
	return module
}

// FindVariable returns the value of the named top-level variable.
// The second result is false if the variable is not defined.
func (m *ObjModule) FindVariable(name string) (Value, bool) {
	for i, n := range m.VariableNames {
		if n == name {
			return m.Variables[i], true
		}
	}
	return Null, false
}

// variableIndex returns the symbol for a variable name, or -1.
func (m *ObjModule) variableIndex(name string) int {
	for i, n := range m.VariableNames {
		if n == name {
			return i
		}
	}
	return -1
}

// DeclareVariable adds a forward-referenced variable. Its value is the
// referencing line number (a num) so a later definition, or an error
// report, can find where it was first used.
func (vm *VM) DeclareVariable(module *ObjModule, name string, line int) int {
	if len(module.Variables) == MaxModuleVars {
		return VarTooManyDefined
	}
	module.VariableNames = append(module.VariableNames, name)
	module.Variables = append(module.Variables, NumVal(float64(line)))
	return len(module.Variables) - 1
}

// DefineVariable defines a top-level variable, resolving a forward
// declaration if one exists. Returns the variable's symbol,
// VarAlreadyDefined, or VarTooManyDefined.
func (vm *VM) DefineVariable(module *ObjModule, name string, value Value) int {
	if len(module.Variables) == MaxModuleVars {
		return VarTooManyDefined
	}

	symbol := module.variableIndex(name)
	if symbol == -1 {
		module.VariableNames = append(module.VariableNames, name)
		module.Variables = append(module.Variables, value)
		return len(module.Variables) - 1
	}

	if module.Variables[symbol].IsNum() {
		// An implicit forward declaration; this definition resolves it.
		module.Variables[symbol] = value
		return symbol
	}
	return VarAlreadyDefined
}
