// Package signature maps semantic type names to value kinds and kinds to the
// descriptors a host runtime uses to identify method signatures.
//
// The tables are static. They are consulted while registering methods and
// never on the call path.
//
//	k, _ := signature.KindOf("java.lang.String")   // value.KindString
//	d, _ := signature.Descriptor(value.KindBool)    // "Z"
//	sig, _ := signature.MethodSignature([]value.Kind{value.KindInt}, value.KindBool)
//	// "(J)Z"
//
// For wazero-backed hosts, CoreType gives the core wasm value type of a
// kind's slot, and ParseWIT bootstraps declarations from WIT text:
//
//	decls, err := signature.ParseWIT(`
//		add: func(a: s64, b: s64) -> s64;
//		greet: func(name: string) -> string;
//	`)
package signature
