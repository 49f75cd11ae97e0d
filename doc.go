// Package hostbridge bridges a dynamically typed engine to methods of a
// foreign object living in a managed host runtime.
//
// The engine holds values as tagged variants. The host runtime expects
// typed native calls whose arguments are primitives or references to
// host-side objects. hostbridge keeps a table of registered methods, checks
// each call against the declared signature, converts arguments across the
// boundary, invokes the method and converts the result back. Every
// transient reference created for a call is released before the call
// returns, on success and on every failure path.
//
// # Architecture Overview
//
//	hostbridge/
//	├── value/          Tagged Value union and the Kind enumeration
//	├── errors/         Structured call errors (phase + kind)
//	├── native/         Host runtime boundary: slots, refs, objects, Env
//	├── convert/        Value <-> native conversion and the erase list
//	├── signature/      Kind names, type descriptors, WIT declarations
//	├── bridge/         MethodTable, Dispatcher and the Bridge context
//	├── localenv/       In-process Env with Go method stubs and counters
//	├── wazerohost/     Env backed by a wazero module
//	└── cmd/hostbridge  CLI and TUI for calling module methods
//
// # Quick Start
//
// Register methods, set the instance, then call with an Env attached to the
// context:
//
//	b := bridge.New()
//	b.Register("isEven", mid, []value.Kind{value.KindInt}, value.KindBool)
//	b.Init(instance)
//	defer b.Teardown()
//
//	ctx = native.Attach(ctx, env)
//	v, err := b.Call(ctx, "isEven", value.Int(4))
//
// Against a WebAssembly module, methods are declared in WIT and resolved to
// exported functions:
//
//	rt := wazero.NewRuntime(ctx)
//	wazerohost.InstantiateImports(ctx, rt)
//	mod, _ := rt.Instantiate(ctx, wasmBytes)
//
//	b.RegisterWIT(`is-even: func(n: s64) -> bool;`,
//	    func(d signature.Declaration) (native.MethodID, error) {
//	        return wazerohost.Lookup(mod, d.Name, d.Params, d.Return)
//	    })
//	b.Init(mod)
//
// # Conversions
//
// Arguments may be passed where the declared kind differs only by a
// widening: Int for Float, Bool for Int. Anything else fails validation
// before the native side is touched.
//
//   - Inline: nil, bool, int (64-bit), float (64-bit)
//   - By reference: string, string array, int array (32-bit), float array
//     (32-bit), map of string to value
//
// # Thread Safety
//
// The method table is written during init and read without locks
// afterwards. Each goroutine attaches its own Env; an Env is never shared
// between calls in flight.
package hostbridge
