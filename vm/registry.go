package vm

// primitiveDef is one row of the static primitive registration table: it
// names the class and signature a native method binds to, how the
// interpreter treats it, and whether it lands on the metaclass.
//
// The table replaces the compile-time introspection the original runtime
// used to collect primitives; the runtime effect is identical.
type primitiveDef struct {
	class     string
	signature string
	kind      MethodType
	static    bool
	fn        Primitive
}

// prim builds an instance-side primitive row.
func prim(class, signature string, fn Primitive) primitiveDef {
	return primitiveDef{class: class, signature: signature, kind: MethodPrimitive, fn: fn}
}

// staticPrim builds a class-side (metaclass) primitive row.
func staticPrim(class, signature string, fn Primitive) primitiveDef {
	return primitiveDef{class: class, signature: signature, kind: MethodPrimitive, static: true, fn: fn}
}

// fnCall builds a Fn.call row. The interpreter intercepts the
// MethodFunctionCall kind and transfers control into the receiver closure
// itself, so these rows carry no native function.
func fnCall(signature string) primitiveDef {
	return primitiveDef{class: "Fn", signature: signature, kind: MethodFunctionCall}
}

// corePrimitives assembles the full registration table. Each built-in
// class contributes its rows from its own file.
func corePrimitives() []primitiveDef {
	var defs []primitiveDef
	defs = append(defs, objectPrimitives...)
	defs = append(defs, classPrimitives...)
	defs = append(defs, boolPrimitives...)
	defs = append(defs, fiberPrimitives...)
	defs = append(defs, fnPrimitives...)
	defs = append(defs, nullPrimitives...)
	defs = append(defs, numPrimitives...)
	defs = append(defs, stringPrimitives...)
	defs = append(defs, listPrimitives...)
	defs = append(defs, mapPrimitives...)
	defs = append(defs, rangePrimitives...)
	defs = append(defs, systemPrimitives...)
	return defs
}
