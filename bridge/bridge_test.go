package bridge

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/localenv"
	"github.com/wippyai/hostbridge/native"
	"github.com/wippyai/hostbridge/signature"
	"github.com/wippyai/hostbridge/value"
)

var errBoom = stderrors.New("boom")

func plugin() *localenv.Object {
	obj := localenv.NewObject("Plugin")
	obj.Define("isOdd", func(_ *localenv.Env, args []native.Slot) (native.Slot, error) {
		return native.BoolSlot(args[0].Int()%2 != 0), nil
	})
	obj.Define("add", func(_ *localenv.Env, args []native.Slot) (native.Slot, error) {
		return native.IntSlot(args[0].Int() + args[1].Int()), nil
	})
	obj.Define("half", func(_ *localenv.Env, args []native.Slot) (native.Slot, error) {
		return native.FloatSlot(args[0].Float() / 2), nil
	})
	obj.Define("noop", func(_ *localenv.Env, _ []native.Slot) (native.Slot, error) {
		return 0, nil
	})
	obj.Define("concat", func(env *localenv.Env, args []native.Slot) (native.Slot, error) {
		var b strings.Builder
		for _, a := range args {
			o, err := env.Arg(a)
			if err != nil {
				return 0, err
			}
			s, _ := o.(native.String)
			b.WriteString(string(s))
		}
		return env.Return(native.String(b.String()))
	})
	obj.Define("sum", func(env *localenv.Env, args []native.Slot) (native.Slot, error) {
		o, err := env.Arg(args[0])
		if err != nil {
			return 0, err
		}
		var n int64
		for _, x := range o.(native.IntArray) {
			n += int64(x)
		}
		return native.IntSlot(n), nil
	})
	obj.Define("scale", func(env *localenv.Env, args []native.Slot) (native.Slot, error) {
		o, err := env.Arg(args[0])
		if err != nil {
			return 0, err
		}
		in := o.(native.FloatArray)
		out := make(native.FloatArray, len(in))
		for i, x := range in {
			out[i] = x * float32(args[1].Float())
		}
		return env.Return(out)
	})
	obj.Define("info", func(env *localenv.Env, _ []native.Slot) (native.Slot, error) {
		d := &native.Dictionary{}
		d.Put("name", native.String("plugin"))
		d.Put("version", native.Long(3))
		return env.Return(d)
	})
	obj.Define("wrongClass", func(env *localenv.Env, _ []native.Slot) (native.Slot, error) {
		return env.Return(native.IntArray{1})
	})
	obj.Define("same", func(_ *localenv.Env, args []native.Slot) (native.Slot, error) {
		return args[0], nil
	})
	obj.Define("fail", func(_ *localenv.Env, _ []native.Slot) (native.Slot, error) {
		return 0, errBoom
	})
	return obj
}

type fixture struct {
	bridge *Bridge
	env    *localenv.Env
	obj    *localenv.Object
	ctx    context.Context
}

func newFixture(t *testing.T, opts ...localenv.Option) *fixture {
	t.Helper()
	env := localenv.New(opts...)
	t.Cleanup(func() { env.Close() })
	obj := plugin()
	b := New()
	b.Init(obj)
	return &fixture{
		bridge: b,
		env:    env,
		obj:    obj,
		ctx:    native.Attach(context.Background(), env),
	}
}

func (f *fixture) register(t *testing.T, name, method string, params []value.Kind, ret value.Kind) {
	t.Helper()
	mid, err := f.obj.MethodID(method)
	if err != nil {
		t.Fatalf("MethodID(%q): %v", method, err)
	}
	f.bridge.Register(name, mid, params, ret)
}

func (f *fixture) assertBalanced(t *testing.T) {
	t.Helper()
	st := f.env.Stats()
	if st.Acquired != st.Released {
		t.Errorf("acquired %d refs, released %d", st.Acquired, st.Released)
	}
	if st.Reclaimed != 0 {
		t.Errorf("%d refs reclaimed by frame pop instead of released", st.Reclaimed)
	}
	if st.InvalidDeletes != 0 {
		t.Errorf("%d deletes of refs no frame owned", st.InvalidDeletes)
	}
	if d := f.env.Depth(); d != 0 {
		t.Errorf("frame depth = %d after call", d)
	}
}

func kinds(k value.Kind, n int) []value.Kind {
	out := make([]value.Kind, n)
	for i := range out {
		out[i] = k
	}
	return out
}

func TestCall_SingleInvocation(t *testing.T) {
	f := newFixture(t)
	f.register(t, "f", "isOdd", []value.Kind{value.KindInt}, value.KindBool)

	got, err := f.bridge.Call(f.ctx, "f", value.Int(3))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !value.Equal(got, value.Bool(true)) {
		t.Errorf("result = %v, want true", got)
	}

	st := f.env.Stats()
	if st.Calls[value.KindBool] != 1 || st.TotalCalls() != 1 {
		t.Errorf("calls = %v, want exactly one bool call", st.Calls)
	}
	f.assertBalanced(t)
}

func TestCall_ReturnPaths(t *testing.T) {
	tests := []struct {
		name   string
		method string
		params []value.Kind
		ret    value.Kind
		args   []value.Value
		want   value.Value
	}{
		{
			name:   "void",
			method: "noop",
			ret:    value.KindNil,
			want:   value.Nil(),
		},
		{
			name:   "int",
			method: "add",
			params: []value.Kind{value.KindInt, value.KindInt},
			ret:    value.KindInt,
			args:   []value.Value{value.Int(40), value.Int(2)},
			want:   value.Int(42),
		},
		{
			name:   "bool widens to int",
			method: "add",
			params: []value.Kind{value.KindInt, value.KindInt},
			ret:    value.KindInt,
			args:   []value.Value{value.Bool(true), value.Int(2)},
			want:   value.Int(3),
		},
		{
			name:   "int widens to float",
			method: "half",
			params: []value.Kind{value.KindFloat},
			ret:    value.KindFloat,
			args:   []value.Value{value.Int(5)},
			want:   value.Float(2.5),
		},
		{
			name:   "string",
			method: "concat",
			params: []value.Kind{value.KindString, value.KindString},
			ret:    value.KindString,
			args:   []value.Value{value.String("foo"), value.String("bar")},
			want:   value.String("foobar"),
		},
		{
			name:   "int array argument",
			method: "sum",
			params: []value.Kind{value.KindIntArray},
			ret:    value.KindInt,
			args:   []value.Value{value.IntArray(1, 2, 3, 4)},
			want:   value.Int(10),
		},
		{
			name:   "float array result",
			method: "scale",
			params: []value.Kind{value.KindFloatArray, value.KindFloat},
			ret:    value.KindFloatArray,
			args:   []value.Value{value.FloatArray(1, 2.5), value.Float(2)},
			want:   value.FloatArray(2, 5),
		},
		{
			name:   "argument returned as result",
			method: "same",
			params: []value.Kind{value.KindString},
			ret:    value.KindString,
			args:   []value.Value{value.String("x")},
			want:   value.String("x"),
		},
		{
			name:   "map argument returned as result",
			method: "same",
			params: []value.Kind{value.KindMap},
			ret:    value.KindMap,
			args:   []value.Value{value.Map(map[string]value.Value{"k": value.Int(1)})},
			want:   value.Map(map[string]value.Value{"k": value.Int(1)}),
		},
		{
			name:   "map result",
			method: "info",
			ret:    value.KindMap,
			want: value.Map(map[string]value.Value{
				"name":    value.String("plugin"),
				"version": value.Int(3),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.register(t, tt.method, tt.method, tt.params, tt.ret)

			got, err := f.bridge.Call(f.ctx, tt.method, tt.args...)
			if err != nil {
				t.Fatalf("Call: %v", err)
			}
			if !value.Equal(got, tt.want) {
				t.Errorf("result = %v, want %v", got, tt.want)
			}
			if n := f.env.Stats().Calls[tt.ret]; n != 1 {
				t.Errorf("calls on %s path = %d, want 1", tt.ret, n)
			}
			f.assertBalanced(t)
		})
	}
}

func TestCall_Failures(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		call     string
		params   []value.Kind
		ret      value.Kind
		args     []value.Value
		opts     []localenv.Option
		wantKind errors.Kind
		wantArg  int
		invoked  bool
	}{
		{
			name:     "unknown method",
			call:     "missing",
			wantKind: errors.KindInvalidMethod,
			wantArg:  -1,
		},
		{
			name:     "too few arguments",
			method:   "add",
			params:   []value.Kind{value.KindInt, value.KindInt},
			ret:      value.KindInt,
			args:     []value.Value{value.Int(1)},
			wantKind: errors.KindTooFewArguments,
			wantArg:  2,
		},
		{
			name:     "too many arguments",
			method:   "add",
			params:   []value.Kind{value.KindInt, value.KindInt},
			ret:      value.KindInt,
			args:     []value.Value{value.Int(1), value.Int(2), value.Int(3)},
			wantKind: errors.KindTooManyArguments,
			wantArg:  2,
		},
		{
			name:     "string where int expected",
			method:   "add",
			params:   []value.Kind{value.KindInt, value.KindInt},
			ret:      value.KindInt,
			args:     []value.Value{value.Int(1), value.String("2")},
			wantKind: errors.KindInvalidArgument,
			wantArg:  1,
		},
		{
			name:     "first mismatch wins",
			method:   "add",
			params:   []value.Kind{value.KindInt, value.KindInt},
			ret:      value.KindInt,
			args:     []value.Value{value.Float(1), value.String("2")},
			wantKind: errors.KindInvalidArgument,
			wantArg:  0,
		},
		{
			name:     "float does not narrow to int",
			method:   "isOdd",
			params:   []value.Kind{value.KindInt},
			ret:      value.KindBool,
			args:     []value.Value{value.Float(3)},
			wantKind: errors.KindInvalidArgument,
			wantArg:  0,
		},
		{
			name:     "int64 array parameter",
			method:   "sum",
			params:   []value.Kind{value.KindInt64Array},
			ret:      value.KindInt,
			args:     []value.Value{value.IntArray(1)},
			wantKind: errors.KindInvalidArgument,
			wantArg:  0,
		},
		{
			name:     "unsupported return type",
			method:   "concat",
			params:   []value.Kind{value.KindString},
			ret:      value.KindInt64Array,
			args:     []value.Value{value.String("x")},
			wantKind: errors.KindUnsupportedReturnType,
			wantArg:  -1,
		},
		{
			name:     "frame cannot be opened",
			method:   "concat",
			params:   []value.Kind{value.KindString},
			ret:      value.KindString,
			args:     []value.Value{value.String("x")},
			opts:     []localenv.Option{localenv.WithMaxFrames(0)},
			wantKind: errors.KindResourceExhausted,
			wantArg:  -1,
		},
		{
			name:     "native failure",
			method:   "fail",
			params:   []value.Kind{value.KindString, value.KindMap},
			ret:      value.KindNil,
			args:     []value.Value{value.String("x"), value.Map(map[string]value.Value{"k": value.Int(1)})},
			wantKind: errors.KindInvocationFailed,
			wantArg:  -1,
			invoked:  true,
		},
		{
			name:     "result of wrong class",
			method:   "wrongClass",
			ret:      value.KindString,
			wantKind: errors.KindInvalidRef,
			wantArg:  -1,
			invoked:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.opts...)
			if tt.method != "" {
				f.register(t, tt.method, tt.method, tt.params, tt.ret)
			}
			name := tt.call
			if name == "" {
				name = tt.method
			}

			got, err := f.bridge.Call(f.ctx, name, tt.args...)
			if err == nil {
				t.Fatalf("Call succeeded with %v", got)
			}
			if !got.IsNil() {
				t.Errorf("result on failure = %v, want nil", got)
			}

			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("err = %T %v, want *errors.Error", err, err)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s (%v)", e.Kind, tt.wantKind, err)
			}
			if e.Argument != tt.wantArg {
				t.Errorf("argument = %d, want %d", e.Argument, tt.wantArg)
			}
			if e.Method != name {
				t.Errorf("method = %q, want %q", e.Method, name)
			}

			calls := f.env.Stats().TotalCalls()
			if tt.invoked && calls != 1 {
				t.Errorf("native calls = %d, want 1", calls)
			}
			if !tt.invoked && calls != 0 {
				t.Errorf("native calls = %d, want 0", calls)
			}
			f.assertBalanced(t)
		})
	}
}

func TestCall_InvalidArgumentExpected(t *testing.T) {
	f := newFixture(t)
	f.register(t, "add", "add", []value.Kind{value.KindInt, value.KindInt}, value.KindInt)

	_, err := f.bridge.Call(f.ctx, "add", value.Int(1), value.String("2"))
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err = %v", err)
	}
	if !e.HasExpected || e.Expected != value.KindInt || e.Got != value.KindString {
		t.Errorf("expected/got = %s/%s", e.Expected, e.Got)
	}
	if !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Error("errors.Is(ErrInvalidArgument) = false")
	}
}

func TestCall_NullInstance(t *testing.T) {
	f := newFixture(t)
	f.register(t, "f", "isOdd", []value.Kind{value.KindInt}, value.KindBool)
	f.bridge.Init(nil)

	_, err := f.bridge.Call(f.ctx, "f", value.Int(1))
	if !stderrors.Is(err, errors.ErrNullInstance) {
		t.Fatalf("err = %v, want null instance", err)
	}
	if n := f.env.Stats().TotalCalls(); n != 0 {
		t.Errorf("native calls = %d", n)
	}
}

func TestCall_NullInstanceBeforeLookup(t *testing.T) {
	b := New()
	_, err := b.Call(context.Background(), "never-registered")
	if !stderrors.Is(err, errors.ErrNullInstance) {
		t.Errorf("err = %v, want null instance", err)
	}
}

func TestCall_NotAttached(t *testing.T) {
	f := newFixture(t)
	f.register(t, "f", "isOdd", []value.Kind{value.KindInt}, value.KindBool)

	_, err := f.bridge.Call(context.Background(), "f", value.Int(1))
	if !stderrors.Is(err, errors.ErrNotAttached) {
		t.Fatalf("err = %v, want not attached", err)
	}
}

func TestCall_Resolver(t *testing.T) {
	env := localenv.New()
	defer env.Close()
	obj := plugin()
	b := New(WithResolver(func(context.Context) (native.Env, bool) { return env, true }))
	b.Init(obj)
	mid, _ := obj.MethodID("isOdd")
	b.Register("f", mid, []value.Kind{value.KindInt}, value.KindBool)

	got, err := b.Call(context.Background(), "f", value.Int(2))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.AsBool() {
		t.Errorf("isOdd(2) = true")
	}
}

func TestCall_FrameFull(t *testing.T) {
	f := newFixture(t)
	n := FrameCapacity + 1
	f.register(t, "concat", "concat", kinds(value.KindString, n), value.KindString)

	args := make([]value.Value, n)
	for i := range args {
		args[i] = value.String(fmt.Sprint(i))
	}

	_, err := f.bridge.Call(f.ctx, "concat", args...)
	if !stderrors.Is(err, errors.ErrResourceExhausted) {
		t.Fatalf("err = %v, want resource exhausted", err)
	}
	st := f.env.Stats()
	if st.Acquired != FrameCapacity {
		t.Errorf("acquired = %d, want %d", st.Acquired, FrameCapacity)
	}
	if st.TotalCalls() != 0 {
		t.Errorf("native calls = %d", st.TotalCalls())
	}
	f.assertBalanced(t)
}

func TestCall_FrameCapacityLessResult(t *testing.T) {
	f := newFixture(t)
	n := FrameCapacity - 1
	f.register(t, "concat", "concat", kinds(value.KindString, n), value.KindString)

	args := make([]value.Value, n)
	for i := range args {
		args[i] = value.String("a")
	}

	got, err := f.bridge.Call(f.ctx, "concat", args...)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.AsString() != strings.Repeat("a", n) {
		t.Errorf("result = %v", got)
	}
	f.assertBalanced(t)
}

func TestCall_RepeatedCallsStayBalanced(t *testing.T) {
	f := newFixture(t)
	f.register(t, "concat", "concat", []value.Kind{value.KindString, value.KindString}, value.KindString)

	for i := 0; i < 100; i++ {
		if _, err := f.bridge.Call(f.ctx, "concat", value.String("a"), value.String("b")); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	st := f.env.Stats()
	if st.Acquired != 300 {
		t.Errorf("acquired = %d, want 300", st.Acquired)
	}
	f.assertBalanced(t)
}

func TestRegister_Overwrites(t *testing.T) {
	f := newFixture(t)
	f.register(t, "f", "isOdd", []value.Kind{value.KindInt}, value.KindBool)
	f.register(t, "f", "add", []value.Kind{value.KindInt, value.KindInt}, value.KindInt)

	if _, err := f.bridge.Call(f.ctx, "f", value.Int(1)); !stderrors.Is(err, errors.ErrTooFewArguments) {
		t.Errorf("old arity still active: %v", err)
	}
	got, err := f.bridge.Call(f.ctx, "f", value.Int(1), value.Int(2))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.AsInt() != 3 {
		t.Errorf("result = %v, want 3", got)
	}
	if f.bridge.Table().Len() != 1 {
		t.Errorf("table len = %d", f.bridge.Table().Len())
	}
}

func TestRegister_CopiesParams(t *testing.T) {
	f := newFixture(t)
	params := []value.Kind{value.KindInt}
	f.register(t, "f", "isOdd", params, value.KindBool)
	params[0] = value.KindString

	if _, err := f.bridge.Call(f.ctx, "f", value.Int(1)); err != nil {
		t.Errorf("Call after caller mutated params: %v", err)
	}
}

func TestRegisterSignature(t *testing.T) {
	f := newFixture(t)
	mid, _ := f.obj.MethodID("add")
	if err := f.bridge.RegisterSignature("add", mid, "(JJ)J"); err != nil {
		t.Fatalf("RegisterSignature: %v", err)
	}
	got, err := f.bridge.Call(f.ctx, "add", value.Int(2), value.Int(3))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.AsInt() != 5 {
		t.Errorf("result = %v", got)
	}

	if err := f.bridge.RegisterSignature("bad", mid, "(Q)V"); err == nil {
		t.Error("expected error for malformed signature")
	}
}

func TestRegisterWIT(t *testing.T) {
	f := newFixture(t)
	decls, err := f.bridge.RegisterWIT(`
		is-odd: func(n: s64) -> bool;
		concat: func(a: string, b: string) -> string;
	`, func(d signature.Declaration) (native.MethodID, error) {
		switch d.Name {
		case "is-odd":
			return f.obj.MethodID("isOdd")
		default:
			return f.obj.MethodID(d.Name)
		}
	})
	if err != nil {
		t.Fatalf("RegisterWIT: %v", err)
	}
	if len(decls) != 2 {
		t.Fatalf("decls = %d, want 2", len(decls))
	}

	got, err := f.bridge.Call(f.ctx, "concat", value.String("x"), value.String("y"))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.AsString() != "xy" {
		t.Errorf("result = %v", got)
	}

	_, err = f.bridge.RegisterWIT(`missing: func()`, func(d signature.Declaration) (native.MethodID, error) {
		return f.obj.MethodID(d.Name)
	})
	if err == nil {
		t.Error("expected resolve error")
	}
}

func TestTeardown(t *testing.T) {
	f := newFixture(t)
	f.register(t, "f", "isOdd", []value.Kind{value.KindInt}, value.KindBool)
	f.bridge.Teardown()

	if _, ok := f.bridge.Table().Instance(); ok {
		t.Error("instance still set after teardown")
	}
	if f.bridge.Table().Len() != 1 {
		t.Errorf("table len = %d after teardown, want 1", f.bridge.Table().Len())
	}
	if _, err := f.bridge.Call(f.ctx, "f", value.Int(1)); !stderrors.Is(err, errors.ErrNullInstance) {
		t.Errorf("err = %v, want null instance", err)
	}

	f.bridge.Init(f.obj)
	got, err := f.bridge.Call(f.ctx, "f", value.Int(1))
	if err != nil {
		t.Fatalf("Call after re-init: %v", err)
	}
	if !value.Equal(got, value.Bool(true)) {
		t.Errorf("result = %v, want true", got)
	}
	f.assertBalanced(t)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	f.register(t, "f", "isOdd", []value.Kind{value.KindInt}, value.KindBool)
	f.bridge.Reset()

	if _, ok := f.bridge.Table().Instance(); ok {
		t.Error("instance still set after reset")
	}
	if f.bridge.Table().Len() != 0 {
		t.Error("methods still registered after reset")
	}

	f.bridge.Init(f.obj)
	if _, err := f.bridge.Call(f.ctx, "f", value.Int(1)); !stderrors.Is(err, errors.ErrInvalidMethod) {
		t.Errorf("err = %v, want invalid method", err)
	}
}

func TestInit_TypedNilInstance(t *testing.T) {
	f := newFixture(t)
	f.register(t, "f", "isOdd", []value.Kind{value.KindInt}, value.KindBool)
	f.bridge.Init((*localenv.Object)(nil))

	if _, err := f.bridge.Call(f.ctx, "f", value.Int(1)); !stderrors.Is(err, errors.ErrNullInstance) {
		t.Errorf("err = %v, want null instance", err)
	}
	if n := f.env.Stats().TotalCalls(); n != 0 {
		t.Errorf("native calls = %d, want 0", n)
	}
}

func TestCall_FrameFullOnResult(t *testing.T) {
	f := newFixture(t)
	f.register(t, "concat", "concat", kinds(value.KindString, FrameCapacity), value.KindString)

	args := make([]value.Value, FrameCapacity)
	for i := range args {
		args[i] = value.String("a")
	}

	_, err := f.bridge.Call(f.ctx, "concat", args...)
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err = %T %v, want *errors.Error", err, err)
	}
	if e.Kind != errors.KindResourceExhausted || e.Phase != errors.PhaseInvoke {
		t.Errorf("err = %v, want resource exhausted at invoke", err)
	}
	if e.Method != "concat" {
		t.Errorf("method = %q", e.Method)
	}
	if n := f.env.Stats().TotalCalls(); n != 1 {
		t.Errorf("native calls = %d, want 1", n)
	}
	f.assertBalanced(t)
}

func TestDescribe(t *testing.T) {
	f := newFixture(t)
	f.register(t, "add", "add", []value.Kind{value.KindInt, value.KindInt}, value.KindInt)

	got, ok := f.bridge.Describe("add")
	if !ok || got != "add(int, int) -> int" {
		t.Errorf("Describe = %q, %v", got, ok)
	}
	if _, ok := f.bridge.Describe("nope"); ok {
		t.Error("Describe found unregistered method")
	}
}

func TestProperty_ReferencesBalanced(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Arity up to twice the frame capacity covers the success, frame-full
	// and arity paths. The string result needs one slot of its own.
	properties.Property("every acquired ref is released", prop.ForAll(
		func(declared, skew int) bool {
			env := localenv.New()
			defer env.Close()
			obj := plugin()
			b := New()
			b.Init(obj)
			mid, _ := obj.MethodID("concat")
			b.Register("concat", mid, kinds(value.KindString, declared), value.KindString)

			n := declared + skew
			if n < 0 {
				n = 0
			}
			args := make([]value.Value, n)
			for i := range args {
				args[i] = value.String(fmt.Sprint(i))
			}
			_, err := b.Call(native.Attach(context.Background(), env), "concat", args...)

			st := env.Stats()
			if st.Acquired != st.Released || st.Reclaimed != 0 || st.InvalidDeletes != 0 {
				return false
			}
			switch {
			case n != declared:
				return err != nil && st.TotalCalls() == 0
			case n < FrameCapacity:
				return err == nil && st.TotalCalls() == 1
			default:
				return err != nil
			}
		},
		gen.IntRange(0, 2*FrameCapacity),
		gen.IntRange(-1, 1),
	))

	properties.TestingRun(t)
}
