package localenv

import (
	"context"
	"errors"
	"fmt"

	"github.com/wippyai/hostbridge/internal/reftable"
	"github.com/wippyai/hostbridge/native"
	"github.com/wippyai/hostbridge/value"
)

// DefaultMaxFrames bounds how many frames may be open at once.
const DefaultMaxFrames = 32

type config struct {
	maxFrames int
}

type Option func(*config)

// WithMaxFrames sets the frame depth limit. Zero makes every push fail.
func WithMaxFrames(n int) Option {
	return func(c *config) {
		c.maxFrames = n
	}
}

// Stats counts reference traffic and native invocations.
type Stats struct {
	// Calls counts invocations per native return path.
	Calls map[value.Kind]int
	// Acquired and Released count references created and explicitly
	// deleted. Reclaimed counts references freed only because their frame
	// was popped.
	Acquired  int
	Released  int
	Reclaimed int
	// InvalidDeletes counts deletes of references no open frame owns.
	InvalidDeletes int
}

// Live returns the number of references still held.
func (s Stats) Live() int {
	return s.Acquired - s.Released - s.Reclaimed
}

// TotalCalls returns the number of native invocations on all paths.
func (s Stats) TotalCalls() int {
	n := 0
	for _, c := range s.Calls {
		n += c
	}
	return n
}

// Env implements native.Env in process.
type Env struct {
	stack *reftable.Stack
	stats Stats
}

var _ native.Env = (*Env)(nil)

func New(opts ...Option) *Env {
	cfg := config{maxFrames: DefaultMaxFrames}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Env{
		stats: Stats{Calls: make(map[value.Kind]int)},
	}
	table := reftable.New()
	table.Subscribe(reftable.ObserverFunc(e.onRefEvent))
	e.stack = reftable.NewStack(table, cfg.maxFrames)
	return e
}

func (e *Env) onRefEvent(ev reftable.Event) {
	switch ev.Type {
	case reftable.EventAcquired:
		e.stats.Acquired++
	case reftable.EventReleased:
		e.stats.Released++
	case reftable.EventReclaimed:
		e.stats.Reclaimed++
	}
}

func (e *Env) PushLocalFrame(capacity int) error {
	if err := e.stack.Push(capacity); err != nil {
		return fmt.Errorf("%w: %w", native.ErrFrameUnavailable, err)
	}
	return nil
}

func (e *Env) PopLocalFrame() {
	e.stack.Pop()
}

func (e *Env) NewLocalRef(obj native.Object) (native.Ref, error) {
	h, err := e.stack.Acquire(obj)
	if err != nil {
		if errors.Is(err, reftable.ErrFrameFull) {
			return 0, fmt.Errorf("%w: %w", native.ErrFrameFull, err)
		}
		return 0, err
	}
	return native.Ref(h), nil
}

func (e *Env) DeleteLocalRef(ref native.Ref) {
	if err := e.stack.Release(reftable.Handle(ref)); err != nil {
		e.stats.InvalidDeletes++
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

// Call dispatches to a Method of an Object. Every call is counted under its
// return kind.
func (e *Env) Call(_ context.Context, inst native.Instance, method native.MethodID, ret value.Kind, args []native.Slot) (native.Slot, error) {
	obj, ok := inst.(*Object)
	if !ok || obj == nil {
		return 0, fmt.Errorf("instance %T is not a *localenv.Object", inst)
	}
	m, ok := method.(*Method)
	if !ok || m == nil {
		return 0, fmt.Errorf("method %T is not a *localenv.Method", method)
	}
	if m.owner != obj {
		return 0, fmt.Errorf("method %q does not belong to %s", m.name, obj.name)
	}

	e.stats.Calls[ret]++
	return m.fn(e, args)
}

// Arg dereferences a reference argument.
func (e *Env) Arg(slot native.Slot) (native.Object, error) {
	return e.Deref(slot.Ref())
}

// Return creates a reference result for obj. A nil obj returns a null
// reference.
func (e *Env) Return(obj native.Object) (native.Slot, error) {
	if obj == nil {
		return native.RefSlot(0), nil
	}
	ref, err := e.NewLocalRef(obj)
	if err != nil {
		return 0, err
	}
	return native.RefSlot(ref), nil
}

// Stats returns a snapshot of the counters.
func (e *Env) Stats() Stats {
	st := e.stats
	st.Calls = make(map[value.Kind]int, len(e.stats.Calls))
	for k, v := range e.stats.Calls {
		st.Calls[k] = v
	}
	return st
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
