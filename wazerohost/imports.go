package wazerohost

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/native"
)

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
	f32 = api.ValueTypeF32
)

type hostFunc struct {
	fn      api.GoModuleFunc
	name    string
	params  []api.ValueType
	results []api.ValueType
}

// InstantiateImports installs the reference functions guests import from
// ModuleName. Failures inside them trap the calling guest, which surfaces
// as a failed invocation.
func InstantiateImports(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(ModuleName)
	for _, f := range hostFuncs {
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.params, f.results).
			WithName(f.name).
			Export(f.name)
	}
	return builder.Instantiate(ctx)
}

var hostFuncs = []hostFunc{
	{name: "ref.delete", fn: refDelete, params: []api.ValueType{i32}},
	{name: "string.len", fn: stringLen, params: []api.ValueType{i32}, results: []api.ValueType{i32}},
	{name: "string.read", fn: stringRead, params: []api.ValueType{i32, i32, i32}, results: []api.ValueType{i32}},
	{name: "string.new", fn: stringNew, params: []api.ValueType{i32, i32}, results: []api.ValueType{i32}},
	{name: "array.len", fn: arrayLen, params: []api.ValueType{i32}, results: []api.ValueType{i32}},
	{name: "int_array.get", fn: intArrayGet, params: []api.ValueType{i32, i32}, results: []api.ValueType{i32}},
	{name: "float_array.get", fn: floatArrayGet, params: []api.ValueType{i32, i32}, results: []api.ValueType{f32}},
	{name: "string_array.get", fn: stringArrayGet, params: []api.ValueType{i32, i32}, results: []api.ValueType{i32}},
	{name: "int_array.new", fn: intArrayNew, params: []api.ValueType{i32, i32}, results: []api.ValueType{i32}},
	{name: "float_array.new", fn: floatArrayNew, params: []api.ValueType{i32, i32}, results: []api.ValueType{i32}},
	{name: "dictionary.len", fn: dictionaryLen, params: []api.ValueType{i32}, results: []api.ValueType{i32}},
	{name: "dictionary.key", fn: dictionaryKey, params: []api.ValueType{i32, i32}, results: []api.ValueType{i32}},
	{name: "dictionary.get_int", fn: dictionaryGetInt, params: []api.ValueType{i32, i32}, results: []api.ValueType{i64}},
}

func refDelete(ctx context.Context, _ api.Module, stack []uint64) {
	envFrom(ctx).DeleteLocalRef(native.Ref(api.DecodeU32(stack[0])))
}

func stringLen(ctx context.Context, _ api.Module, stack []uint64) {
	s := deref[native.String](ctx, stack[0])
	stack[0] = api.EncodeU32(uint32(len(s)))
}

// stringRead copies up to cap bytes of the string into guest memory at ptr
// and returns the number of bytes written.
func stringRead(ctx context.Context, mod api.Module, stack []uint64) {
	s := deref[native.String](ctx, stack[0])
	ptr, capacity := api.DecodeU32(stack[1]), api.DecodeU32(stack[2])

	n := min(uint32(len(s)), capacity)
	if !memory(mod).Write(ptr, []byte(s[:n])) {
		panic(fmt.Errorf("string.read: %d bytes at %d out of range", n, ptr))
	}
	stack[0] = api.EncodeU32(n)
}

func stringNew(ctx context.Context, mod api.Module, stack []uint64) {
	ptr, n := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	b, ok := memory(mod).Read(ptr, n)
	if !ok {
		panic(fmt.Errorf("string.new: %d bytes at %d out of range", n, ptr))
	}
	stack[0] = newRef(ctx, native.String(b))
}

func arrayLen(ctx context.Context, _ api.Module, stack []uint64) {
	var n int
	switch a := deref[native.Object](ctx, stack[0]).(type) {
	case native.StringArray:
		n = len(a)
	case native.IntArray:
		n = len(a)
	case native.FloatArray:
		n = len(a)
	case native.LongArray:
		n = len(a)
	default:
		panic(fmt.Errorf("array.len: %s is not an array", native.ClassNameOf(a)))
	}
	stack[0] = api.EncodeU32(uint32(n))
}

func intArrayGet(ctx context.Context, _ api.Module, stack []uint64) {
	a := deref[native.IntArray](ctx, stack[0])
	stack[0] = api.EncodeI32(a[index(stack[1], len(a))])
}

func floatArrayGet(ctx context.Context, _ api.Module, stack []uint64) {
	a := deref[native.FloatArray](ctx, stack[0])
	stack[0] = api.EncodeF32(a[index(stack[1], len(a))])
}

func stringArrayGet(ctx context.Context, _ api.Module, stack []uint64) {
	a := deref[native.StringArray](ctx, stack[0])
	stack[0] = newRef(ctx, native.String(a[index(stack[1], len(a))]))
}

// intArrayNew creates an int array from n little-endian i32 values at ptr.
func intArrayNew(ctx context.Context, mod api.Module, stack []uint64) {
	ptr, n := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	mem := memory(mod)
	checkRange(mem, ptr, n, 4)

	a := make(native.IntArray, n)
	for i := range a {
		v, _ := mem.ReadUint32Le(ptr + uint32(i)*4)
		a[i] = int32(v)
	}
	stack[0] = newRef(ctx, a)
}

// floatArrayNew creates a float array from n little-endian f32 values at ptr.
func floatArrayNew(ctx context.Context, mod api.Module, stack []uint64) {
	ptr, n := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	mem := memory(mod)
	checkRange(mem, ptr, n, 4)

	a := make(native.FloatArray, n)
	for i := range a {
		a[i], _ = mem.ReadFloat32Le(ptr + uint32(i)*4)
	}
	stack[0] = newRef(ctx, a)
}

func dictionaryLen(ctx context.Context, _ api.Module, stack []uint64) {
	d := deref[*native.Dictionary](ctx, stack[0])
	stack[0] = api.EncodeU32(uint32(d.Len()))
}

func dictionaryKey(ctx context.Context, _ api.Module, stack []uint64) {
	d := deref[*native.Dictionary](ctx, stack[0])
	stack[0] = newRef(ctx, native.String(d.Keys[index(stack[1], len(d.Keys))]))
}

// dictionaryGetInt returns the integer stored under a key. Booleans read as
// 0 or 1, doubles are truncated, and absent keys read as 0.
func dictionaryGetInt(ctx context.Context, _ api.Module, stack []uint64) {
	d := deref[*native.Dictionary](ctx, stack[0])
	key := deref[native.String](ctx, stack[1])

	var n int64
	v, _ := d.Get(string(key))
	switch v := v.(type) {
	case native.Long:
		n = int64(v)
	case native.Boolean:
		if v {
			n = 1
		}
	case native.Double:
		n = int64(v)
	case nil:
	default:
		panic(fmt.Errorf("dictionary.get_int: %q holds %s", key, v.ClassName()))
	}
	stack[0] = api.EncodeI64(n)
}

func envFrom(ctx context.Context) native.Env {
	env, ok := native.EnvFrom(ctx)
	if !ok {
		panic(errors.NotAttached(""))
	}
	return env
}

func deref[T native.Object](ctx context.Context, raw uint64) T {
	ref := native.Ref(api.DecodeU32(raw))
	obj, err := envFrom(ctx).Deref(ref)
	if err != nil {
		panic(err)
	}
	v, ok := obj.(T)
	if !ok {
		panic(fmt.Errorf("%w: %d holds %s", native.ErrInvalidRef, ref, native.ClassNameOf(obj)))
	}
	return v
}

func newRef(ctx context.Context, obj native.Object) uint64 {
	ref, err := envFrom(ctx).NewLocalRef(obj)
	if err != nil {
		panic(err)
	}
	return api.EncodeU32(uint32(ref))
}

func memory(mod api.Module) api.Memory {
	mem := mod.Memory()
	if mem == nil {
		panic(fmt.Errorf("module %q exports no memory", mod.Name()))
	}
	return mem
}

func index(raw uint64, n int) int {
	i := api.DecodeU32(raw)
	if uint64(i) >= uint64(n) {
		panic(fmt.Errorf("index %d out of range [0, %d)", i, n))
	}
	return int(i)
}

func checkRange(mem api.Memory, ptr, n, size uint32) {
	end := uint64(ptr) + uint64(n)*uint64(size)
	if end > math.MaxUint32 || uint32(end) > mem.Size() {
		panic(fmt.Errorf("%d elements at %d out of range", n, ptr))
	}
}
