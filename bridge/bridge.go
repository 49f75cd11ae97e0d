package bridge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/native"
	"github.com/wippyai/hostbridge/signature"
	"github.com/wippyai/hostbridge/value"
)

// Options configures a Bridge.
type Options struct {
	Logger   *zap.Logger
	Resolver Resolver
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithResolver sets how the calling goroutine's environment is found.
// The default reads it from the call context.
func WithResolver(r Resolver) Option {
	return func(o *Options) {
		o.Resolver = r
	}
}

// Bridge is the explicit context object every engine call receives.
type Bridge struct {
	table      *MethodTable
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func New(opts ...Option) *Bridge {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = Logger()
	}

	table := NewMethodTable()
	return &Bridge{
		table:      table,
		dispatcher: NewDispatcher(table, o.Resolver, o.Logger),
		logger:     o.Logger,
	}
}

// Init sets the bridge instance. A nil instance leaves the bridge unset.
func (b *Bridge) Init(instance native.Instance) {
	b.table.SetInstance(instance)
	_, ok := b.table.Instance()
	b.logger.Debug("bridge initialized", zap.Bool("instance", ok))
}

// Teardown clears the instance. Registered methods stay, so a later Init
// serves them again.
func (b *Bridge) Teardown() {
	b.table.ClearInstance()
	b.logger.Debug("bridge torn down", zap.Int("methods", b.table.Len()))
}

// Reset clears the instance and drops every registered method.
func (b *Bridge) Reset() {
	n := b.table.Len()
	b.table.Reset()
	b.logger.Debug("bridge reset", zap.Int("methods", n))
}

// Register adds or replaces a method.
func (b *Bridge) Register(name string, handle native.MethodID, params []value.Kind, ret value.Kind) {
	b.table.Register(name, handle, params, ret)
	b.logger.Debug("method registered",
		zap.String("method", name),
		zap.Stringers("params", params),
		zap.Stringer("return", ret),
	)
}

// RegisterSignature registers a method from a descriptor string such as
// "(JLjava/lang/String;)Z".
func (b *Bridge) RegisterSignature(name string, handle native.MethodID, sig string) error {
	params, ret, err := signature.ParseMethodSignature(sig)
	if err != nil {
		return errors.WithMethod(err, name)
	}
	b.Register(name, handle, params, ret)
	return nil
}

// RegisterWIT registers every function declared in a WIT fragment. resolve
// maps each declaration to its native handle.
func (b *Bridge) RegisterWIT(text string, resolve func(signature.Declaration) (native.MethodID, error)) ([]signature.Declaration, error) {
	decls, err := signature.ParseWIT(text)
	if err != nil {
		return nil, err
	}
	for _, d := range decls {
		handle, err := resolve(d)
		if err != nil {
			return nil, errors.New(errors.PhaseRegister, errors.KindInvalidMethod).
				Method(d.Name).
				Cause(err).
				Detail("resolve handle").
				Build()
		}
		b.Register(d.Name, handle, d.Params, d.Return)
	}
	return decls, nil
}

// Call invokes a registered method. The native environment is resolved
// from ctx.
func (b *Bridge) Call(ctx context.Context, name string, args ...value.Value) (value.Value, error) {
	return b.dispatcher.Call(ctx, name, args...)
}

// Invoke is Call with the outcome reported as an engine CallError.
func (b *Bridge) Invoke(ctx context.Context, name string, args []value.Value) (value.Value, CallError) {
	return b.dispatcher.Invoke(ctx, name, args)
}

// Table exposes the method table for inspection.
func (b *Bridge) Table() *MethodTable {
	return b.table
}

// Describe formats a registered method as name(params) -> ret.
func (b *Bridge) Describe(name string) (string, bool) {
	d, ok := b.table.Lookup(name)
	if !ok {
		return "", false
	}
	s := name + "("
	for i, p := range d.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + fmt.Sprintf(") -> %s", d.Return), true
}
