// Package vm implements the core of the Wren runtime.
//
// This package contains:
//   - NaN-boxed value representation
//   - Heap object kinds and the all-objects list
//   - Class and metaclass system with signature-indexed method tables
//   - Fibers: cooperative coroutines with call/transfer/try/yield semantics
//   - The static primitive registration table and the ~140 core primitives
//   - Mark-sweep garbage collection over the object list
//   - The bootstrap protocol, including the embedded core script
//
// The compiler and bytecode interpreter are external collaborators,
// consumed through the Interpreter interface.
package vm
