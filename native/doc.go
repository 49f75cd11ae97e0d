// Package native defines the contract between the bridge and a host runtime:
// the Env interface through which calls and transient references flow, the
// Slot cell that carries one argument or result, and the foreign object
// model that reference kinds are marshalled into.
//
// Slots use the wazero stack value encoding, so a wazero-backed Env can pass
// them to api.Function.Call unchanged:
//
//	BoolSlot(true)    i32 1
//	IntSlot(n)        i64
//	FloatSlot(f)      f64
//	RefSlot(r)        i32 handle, 0 is null
//
// An Env belongs to one goroutine. Attach binds it to a context so code
// running further down the call, including host functions invoked by a
// guest, can find it with EnvFrom.
package native
