package convert

import (
	stderrors "errors"
	"sort"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/native"
	"github.com/wippyai/hostbridge/value"
)

// ToNative converts v to the native form of kind. The returned Ref is
// non-zero only for reference kinds and must be released by the caller.
func ToNative(env native.Env, kind value.Kind, v value.Value) (native.Slot, native.Ref, error) {
	if !hasNativeForm(kind) {
		return 0, 0, errors.UnsupportedKind(errors.PhaseEncode, kind)
	}
	if !value.CanConvert(v.Kind(), kind) {
		return 0, 0, errors.New(errors.PhaseEncode, errors.KindInvalidArgument).
			Expected(kind).
			Got(v.Kind()).
			Build()
	}

	switch kind {
	case value.KindNil:
		return native.RefSlot(0), 0, nil
	case value.KindBool:
		return native.BoolSlot(v.AsBool()), 0, nil
	case value.KindInt:
		return native.IntSlot(v.AsInt()), 0, nil
	case value.KindFloat:
		return native.FloatSlot(v.AsFloat()), 0, nil
	}

	obj, err := ToObject(v)
	if err != nil {
		return 0, 0, err
	}
	ref, err := env.NewLocalRef(obj)
	if err != nil {
		if stderrors.Is(err, native.ErrFrameFull) {
			return 0, 0, errors.ResourceExhausted(errors.PhaseEncode, err)
		}
		return 0, 0, errors.Wrap(errors.PhaseEncode, errors.KindInvalidRef, err, "create local reference")
	}
	return native.RefSlot(ref), ref, nil
}

// ToObject boxes v as a foreign object. Nil becomes a nil Object. Map keys
// are emitted in sorted order.
func ToObject(v value.Value) (native.Object, error) {
	switch v.Kind() {
	case value.KindNil:
		return nil, nil
	case value.KindBool:
		return native.Boolean(v.AsBool()), nil
	case value.KindInt:
		return native.Long(v.AsInt()), nil
	case value.KindFloat:
		return native.Double(v.AsFloat()), nil
	case value.KindString:
		return native.String(v.AsString()), nil
	case value.KindStringArray:
		return native.StringArray(append([]string{}, v.AsStringArray()...)), nil
	case value.KindIntArray:
		return native.IntArray(append([]int32{}, v.AsIntArray()...)), nil
	case value.KindFloatArray:
		return native.FloatArray(append([]float32{}, v.AsFloatArray()...)), nil
	case value.KindMap:
		m := v.AsMap()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		d := &native.Dictionary{
			Keys:   keys,
			Values: make([]native.Object, len(keys)),
		}
		for i, k := range keys {
			obj, err := ToObject(m[k])
			if err != nil {
				return nil, err
			}
			d.Values[i] = obj
		}
		return d, nil
	}
	return nil, errors.UnsupportedKind(errors.PhaseEncode, v.Kind())
}

// FromNative converts a result slot of the given kind. A null reference
// decodes to the empty value of a reference kind.
func FromNative(env native.Env, kind value.Kind, slot native.Slot) (value.Value, error) {
	switch kind {
	case value.KindNil:
		return value.Nil(), nil
	case value.KindBool:
		return value.Bool(slot.Bool()), nil
	case value.KindInt:
		return value.Int(slot.Int()), nil
	case value.KindFloat:
		return value.Float(slot.Float()), nil
	case value.KindString, value.KindStringArray, value.KindIntArray, value.KindFloatArray, value.KindMap:
		return fromRef(env, kind, slot.Ref())
	case value.KindInt64Array:
		return value.Nil(), errors.UnsupportedKind(errors.PhaseDecode, kind)
	}
	return value.Nil(), errors.UnsupportedKind(errors.PhaseDecode, kind)
}

func fromRef(env native.Env, kind value.Kind, ref native.Ref) (value.Value, error) {
	if ref == 0 {
		return empty(kind), nil
	}
	obj, err := env.Deref(ref)
	if err != nil {
		return value.Nil(), errors.Wrap(errors.PhaseDecode, errors.KindInvalidRef, err, "dereference result")
	}

	switch o := obj.(type) {
	case native.String:
		if kind == value.KindString {
			return value.String(string(o)), nil
		}
	case native.StringArray:
		if kind == value.KindStringArray {
			return value.StringArray(o...), nil
		}
	case native.IntArray:
		if kind == value.KindIntArray {
			return value.IntArray(o...), nil
		}
	case native.FloatArray:
		if kind == value.KindFloatArray {
			return value.FloatArray(o...), nil
		}
	case *native.Dictionary:
		if kind == value.KindMap {
			return FromObject(o)
		}
	}
	return value.Nil(), errors.InvalidRef(errors.PhaseDecode, "expected %s result, got %s", kind, native.ClassNameOf(obj))
}

// FromObject converts any foreign object to a value. Boxed primitives map to
// their kinds and dictionaries convert recursively.
func FromObject(obj native.Object) (value.Value, error) {
	switch o := obj.(type) {
	case nil:
		return value.Nil(), nil
	case native.Boolean:
		return value.Bool(bool(o)), nil
	case native.Long:
		return value.Int(int64(o)), nil
	case native.Double:
		return value.Float(float64(o)), nil
	case native.String:
		return value.String(string(o)), nil
	case native.StringArray:
		return value.StringArray(o...), nil
	case native.IntArray:
		return value.IntArray(o...), nil
	case native.FloatArray:
		return value.FloatArray(o...), nil
	case native.LongArray:
		return value.Nil(), errors.UnsupportedKind(errors.PhaseDecode, value.KindInt64Array)
	case *native.Dictionary:
		if o == nil {
			return value.Map(nil), nil
		}
		if len(o.Keys) != len(o.Values) {
			return value.Nil(), errors.InvalidRef(errors.PhaseDecode, "dictionary has %d keys and %d values", len(o.Keys), len(o.Values))
		}
		m := make(map[string]value.Value, len(o.Keys))
		for i, k := range o.Keys {
			v, err := FromObject(o.Values[i])
			if err != nil {
				return value.Nil(), err
			}
			m[k] = v
		}
		return value.Map(m), nil
	}
	return value.Nil(), errors.New(errors.PhaseDecode, errors.KindUnsupportedKind).
		Detail("no value kind for class %s", obj.ClassName()).
		Build()
}

func hasNativeForm(kind value.Kind) bool {
	switch kind {
	case value.KindNil, value.KindBool, value.KindInt, value.KindFloat,
		value.KindString, value.KindStringArray, value.KindIntArray, value.KindFloatArray, value.KindMap:
		return true
	}
	return false
}

func empty(kind value.Kind) value.Value {
	switch kind {
	case value.KindString:
		return value.String("")
	case value.KindStringArray:
		return value.StringArray()
	case value.KindIntArray:
		return value.IntArray()
	case value.KindFloatArray:
		return value.FloatArray()
	case value.KindMap:
		return value.Map(nil)
	}
	return value.Nil()
}
