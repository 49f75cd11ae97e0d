package native

import (
	"context"

	"github.com/wippyai/hostbridge/value"
)

// Instance is the opaque handle of the foreign object methods are invoked on.
// The bridge never introspects or frees it.
type Instance any

// MethodID is the opaque handle of a resolved foreign method.
type MethodID any

// Env is the native call boundary of one host runtime, bound to one
// goroutine.
type Env interface {
	// PushLocalFrame opens a frame that can hold at most capacity transient
	// references.
	PushLocalFrame(capacity int) error

	// PopLocalFrame closes the top frame, reclaiming any references it still
	// holds.
	PopLocalFrame()

	// NewLocalRef stores obj on the host side and returns a reference owned
	// by the top frame. Fails with an error wrapping ErrFrameFull when the
	// frame is at capacity.
	NewLocalRef(obj Object) (Ref, error)

	// DeleteLocalRef releases a reference. Unknown references are ignored.
	DeleteLocalRef(ref Ref)

	// Deref returns the object behind a live reference.
	Deref(ref Ref) (Object, error)

	// Call invokes method on inst through the native path for the return
	// kind ret. Reference results are returned as a RefSlot owned by the
	// current frame and may be one of the argument references. Argument
	// references stay owned by the caller; the callee must not delete them.
	Call(ctx context.Context, inst Instance, method MethodID, ret value.Kind, args []Slot) (Slot, error)
}

type envKey struct{}

// Attach returns a context carrying env.
func Attach(ctx context.Context, env Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// EnvFrom returns the env attached to ctx.
func EnvFrom(ctx context.Context) (Env, bool) {
	env, ok := ctx.Value(envKey{}).(Env)
	return env, ok && env != nil
}
