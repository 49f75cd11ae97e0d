// Package value defines the dynamic tagged Value used by the engine side of the
// bridge and the Kind enumeration used to declare method signatures.
//
// A Value is immutable once constructed. Array and map constructors copy their
// input so callers may reuse their slices and maps.
//
//	v := value.IntArray(1, 2, 3)
//	v.Kind()                               // value.KindIntArray
//	value.CanConvert(value.KindInt, value.KindFloat) // true
//
// # Convertibility
//
// CanConvert is the single relation consulted both when validating call
// arguments and when converting them:
//
//	identical kinds   always
//	Int   -> Float    widening
//	Bool  -> Int      0 or 1
//
// Every other pair is rejected.
package value
