// Package convert marshals engine values to native slots and back.
//
// ToNative produces the slot for one argument and, for reference kinds, the
// transient reference that backs it. The caller owns that reference and
// releases it after the call, usually through an EraseList:
//
//	var erase convert.EraseList
//	defer erase.Release(env)
//
//	slot, ref, err := convert.ToNative(env, value.KindString, value.String("hi"))
//	erase.Add(ref)
//
// FromNative decodes a result slot. For reference kinds it reads through the
// reference but leaves releasing it to the caller.
package convert
