package wazerohost

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/hostbridge/internal/reftable"
	"github.com/wippyai/hostbridge/native"
	"github.com/wippyai/hostbridge/value"
)

// Env implements native.Env for modules running in wazero. It belongs to
// one goroutine.
type Env struct {
	stack  *reftable.Stack
	logger *zap.Logger

	// borrowed holds the argument references of the running call.
	borrowed       map[native.Ref]struct{}
	invalidDeletes int
}

var _ native.Env = (*Env)(nil)

func New(opts ...Option) *Env {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxFrames == 0 {
		cfg.MaxFrames = DefaultMaxFrames
	}
	if cfg.Logger == nil {
		cfg.Logger = Logger()
	}

	return &Env{
		stack:  reftable.NewStack(reftable.New(), cfg.MaxFrames),
		logger: cfg.Logger,
	}
}

func (e *Env) PushLocalFrame(capacity int) error {
	if err := e.stack.Push(capacity); err != nil {
		return fmt.Errorf("%w: %w", native.ErrFrameUnavailable, err)
	}
	e.logger.Debug("frame opened", zap.Int("capacity", capacity), zap.Int("depth", e.stack.Depth()))
	return nil
}

func (e *Env) PopLocalFrame() {
	if n := e.stack.Pop(); n > 0 {
		e.logger.Warn("frame closed with live references", zap.Int("reclaimed", n))
	}
}

func (e *Env) NewLocalRef(obj native.Object) (native.Ref, error) {
	h, err := e.stack.Acquire(obj)
	if err != nil {
		if stderrors.Is(err, reftable.ErrFrameFull) {
			return 0, fmt.Errorf("%w: %w", native.ErrFrameFull, err)
		}
		return 0, err
	}
	return native.Ref(h), nil
}

// DeleteLocalRef releases ref. Argument references of the running call are
// owned by the caller and are left alone.
func (e *Env) DeleteLocalRef(ref native.Ref) {
	if _, ok := e.borrowed[ref]; ok {
		e.logger.Debug("delete of borrowed argument ignored", zap.Uint32("ref", uint32(ref)))
		return
	}
	if err := e.stack.Release(reftable.Handle(ref)); err != nil {
		e.invalidDeletes++
		e.logger.Debug("delete local ref", zap.Uint32("ref", uint32(ref)), zap.Error(err))
	}
}

func (e *Env) Deref(ref native.Ref) (native.Object, error) {
	v, ok := e.stack.Get(reftable.Handle(ref))
	if !ok {
		return nil, fmt.Errorf("%w: %d", native.ErrInvalidRef, ref)
	}
	obj, _ := v.(native.Object)
	return obj, nil
}

// Call invokes a Method of the module inst. The env is attached to the
// context the guest runs under so imported host functions can reach it.
func (e *Env) Call(ctx context.Context, inst native.Instance, method native.MethodID, ret value.Kind, args []native.Slot) (native.Slot, error) {
	mod, ok := inst.(api.Module)
	if !ok || mod == nil {
		return 0, fmt.Errorf("instance %T is not an api.Module", inst)
	}
	m, ok := method.(*Method)
	if !ok || m == nil {
		return 0, fmt.Errorf("method %T is not a *wazerohost.Method", method)
	}
	if m.module != mod {
		return 0, fmt.Errorf("method %q is not exported by module %q", m.name, mod.Name())
	}
	if m.ret != ret {
		return 0, fmt.Errorf("method %q returns %s, called as %s", m.name, m.ret, ret)
	}

	stack := make([]uint64, len(args))
	borrowed := make(map[native.Ref]struct{})
	for i, a := range args {
		stack[i] = uint64(a)
		if i < len(m.params) && m.params[i].IsReference() && a.Ref() != 0 {
			borrowed[a.Ref()] = struct{}{}
		}
	}

	prev := e.borrowed
	e.borrowed = borrowed
	defer func() { e.borrowed = prev }()

	results, err := m.fn.Call(native.Attach(ctx, e), stack...)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return native.Slot(results[0]), nil
}

// Live returns the number of references currently held.
func (e *Env) Live() int {
	return e.stack.Table().Len()
}

// InvalidDeletes returns the number of deletes of references no open frame
// owned.
func (e *Env) InvalidDeletes() int {
	return e.invalidDeletes
}

// Depth returns the number of open frames.
func (e *Env) Depth() int {
	return e.stack.Depth()
}

// Close releases every remaining reference.
func (e *Env) Close() error {
	for e.stack.Depth() > 0 {
		e.stack.Pop()
	}
	return e.stack.Table().Close()
}
