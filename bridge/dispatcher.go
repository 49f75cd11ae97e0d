package bridge

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/hostbridge/convert"
	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/native"
	"github.com/wippyai/hostbridge/value"
)

// FrameCapacity is the number of transient references one call may hold at
// once, arguments and result included.
const FrameCapacity = 16

// Resolver finds the native environment of the calling goroutine.
type Resolver func(ctx context.Context) (native.Env, bool)

// Dispatcher runs calls against a MethodTable.
type Dispatcher struct {
	table   *MethodTable
	resolve Resolver
	logger  *zap.Logger
}

// NewDispatcher creates a dispatcher over table. A nil resolver uses
// native.EnvFrom.
func NewDispatcher(table *MethodTable, resolve Resolver, logger *zap.Logger) *Dispatcher {
	if resolve == nil {
		resolve = native.EnvFrom
	}
	if logger == nil {
		logger = Logger()
	}
	return &Dispatcher{table: table, resolve: resolve, logger: logger}
}

// Call invokes the named method with args. On failure it returns Nil and an
// *errors.Error.
func (d *Dispatcher) Call(ctx context.Context, name string, args ...value.Value) (value.Value, error) {
	inst, desc, err := d.validate(name, args)
	if err != nil {
		return value.Nil(), err
	}

	env, ok := d.resolve(ctx)
	if !ok {
		return value.Nil(), errors.NotAttached(name)
	}

	if err := env.PushLocalFrame(FrameCapacity); err != nil {
		d.logger.Warn("open reference frame", zap.String("method", name), zap.Error(err))
		return value.Nil(), errors.WithMethod(errors.ResourceExhausted(errors.PhaseFrame, err), name)
	}

	var erase convert.EraseList
	defer func() {
		if n := erase.Len(); n > 0 {
			d.logger.Debug("release arguments", zap.String("method", name), zap.Int("refs", n))
		}
		erase.Release(env)
		env.PopLocalFrame()
	}()

	slots := make([]native.Slot, len(args))
	for i, arg := range args {
		slot, ref, err := convert.ToNative(env, desc.Params[i], arg)
		if err != nil {
			return value.Nil(), argumentError(err, name, i)
		}
		slots[i] = slot
		erase.Add(ref)
	}

	raw, err := d.invoke(ctx, env, inst, name, desc, slots)
	if err != nil {
		return value.Nil(), err
	}

	return d.convertResult(env, &erase, name, desc.Return, raw)
}

func (d *Dispatcher) validate(name string, args []value.Value) (native.Instance, *MethodDescriptor, error) {
	inst, ok := d.table.Instance()
	if !ok {
		return nil, nil, errors.NullInstance(name)
	}

	desc, ok := d.table.Lookup(name)
	if !ok {
		return nil, nil, errors.InvalidMethod(name)
	}

	expected := desc.Arity()
	if len(args) < expected {
		return nil, nil, errors.TooFewArguments(name, expected)
	}
	if len(args) > expected {
		return nil, nil, errors.TooManyArguments(name, expected)
	}

	// Only the first mismatch is reported.
	for i, arg := range args {
		if !value.CanConvert(arg.Kind(), desc.Params[i]) {
			return nil, nil, errors.InvalidArgument(name, i, desc.Params[i], arg.Kind())
		}
	}

	return inst, desc, nil
}

func (d *Dispatcher) invoke(ctx context.Context, env native.Env, inst native.Instance, name string, desc *MethodDescriptor, args []native.Slot) (native.Slot, error) {
	switch desc.Return {
	case value.KindNil, value.KindBool, value.KindInt, value.KindFloat,
		value.KindString, value.KindStringArray, value.KindIntArray, value.KindFloatArray, value.KindMap:
	default:
		return 0, errors.UnsupportedReturnType(name, desc.Return)
	}

	d.logger.Debug("invoke",
		zap.String("method", name),
		zap.Stringer("return", desc.Return),
		zap.Int("args", len(args)),
	)

	raw, err := env.Call(ctx, inst, desc.Handle, desc.Return, args)
	if err != nil {
		if stderrors.Is(err, native.ErrFrameFull) {
			return 0, errors.WithMethod(errors.ResourceExhausted(errors.PhaseInvoke, err), name)
		}
		return 0, errors.InvocationFailed(name, err)
	}
	return raw, nil
}

// convertResult decodes the result and releases its reference. A result
// that is one of the call's own argument references is taken off the erase
// list first so it is deleted once.
func (d *Dispatcher) convertResult(env native.Env, erase *convert.EraseList, name string, kind value.Kind, raw native.Slot) (value.Value, error) {
	v, err := convert.FromNative(env, kind, raw)
	if kind.IsReference() {
		if ref := raw.Ref(); ref != 0 {
			erase.Remove(ref)
			env.DeleteLocalRef(ref)
		}
	}
	if err != nil {
		return value.Nil(), errors.WithMethod(err, name)
	}
	return v, nil
}

// argumentError attaches the method name and argument index to a conversion
// failure.
func argumentError(err error, name string, index int) error {
	e, ok := err.(*errors.Error)
	if !ok {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidArgument, err, "convert argument")
	}
	cp := *e
	cp.Method = name
	if cp.Kind == errors.KindInvalidArgument || cp.Kind == errors.KindUnsupportedKind {
		cp.Argument = index
	}
	return &cp
}
