// Package bridge dispatches engine calls to methods of a foreign object.
//
// A Bridge owns a MethodTable (name to descriptor, plus the bridge instance)
// and a Dispatcher that runs one call through validation, argument
// conversion, native invocation and result conversion. Transient references
// created along the way are released on every exit path.
//
//	b := bridge.New(bridge.WithLogger(logger))
//	b.Register("isEven", mid, []value.Kind{value.KindInt}, value.KindBool)
//	b.Init(instance)
//	defer b.Teardown()
//
//	ctx = native.Attach(ctx, env)
//	v, err := b.Call(ctx, "isEven", value.Int(4))
//
// # Concurrency
//
// Registration and Init must complete before calls start. After that the
// table is read without locks by any number of goroutines, each with its own
// native.Env attached to the call context. Teardown must not overlap calls.
package bridge
