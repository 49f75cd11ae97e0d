// Package wazerohost runs bridge calls against a WebAssembly module loaded
// in wazero.
//
// The bridge instance is the module's api.Module and each method handle is
// one of its exported functions, checked against the declared kinds by
// Lookup. Inline kinds travel as core values (bool as i32, int as i64, float
// as f64). Strings, arrays and dictionaries stay on the host side and travel
// as i32 handles into the Env's reference table.
//
// Guests read and create those objects through the host module installed by
// InstantiateImports:
//
//	(import "hostbridge" "string.len" (func (param i32) (result i32)))
//	(import "hostbridge" "string.read" (func (param i32 i32 i32) (result i32)))
//	(import "hostbridge" "string.new" (func (param i32 i32) (result i32)))
//
// A guest-created reference belongs to the frame of the call in progress and
// is released by the dispatcher once the result is converted.
package wazerohost
