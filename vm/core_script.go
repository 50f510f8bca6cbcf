package vm

import _ "embed"

// coreModuleSource is the bootstrap script compiled into the binary. It
// declares the non-root built-in classes in the language itself; the
// native primitives are attached to them once the script has run.
//
//go:embed core.wren
var coreModuleSource string
