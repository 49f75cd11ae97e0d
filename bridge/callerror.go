package bridge

import (
	"context"
	stderrors "errors"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/value"
)

// CallErrorType is the engine's call error code.
type CallErrorType int

const (
	CallOK CallErrorType = iota
	CallErrorInvalidMethod
	CallErrorInvalidArgument
	CallErrorTooManyArguments
	CallErrorTooFewArguments
	CallErrorInstanceIsNull
	// CallErrorFailed covers failures the engine has no dedicated code for:
	// exhausted frames, unsupported kinds, native exceptions.
	CallErrorFailed
)

var callErrorNames = [...]string{
	CallOK:                    "ok",
	CallErrorInvalidMethod:    "invalid_method",
	CallErrorInvalidArgument:  "invalid_argument",
	CallErrorTooManyArguments: "too_many_arguments",
	CallErrorTooFewArguments:  "too_few_arguments",
	CallErrorInstanceIsNull:   "instance_is_null",
	CallErrorFailed:           "failed",
}

func (t CallErrorType) String() string {
	if int(t) < len(callErrorNames) {
		return callErrorNames[t]
	}
	return "unknown"
}

// CallError is the engine's view of a call outcome. Argument holds the
// offending index for CallErrorInvalidArgument and the expected arity for
// the arity codes.
type CallError struct {
	// Err is the underlying error, nil for CallOK.
	Err      error
	Type     CallErrorType
	Argument int
	Expected value.Kind
}

func (c CallError) OK() bool {
	return c.Type == CallOK
}

// ToCallError maps an error returned by Call onto the engine's codes.
func ToCallError(err error) CallError {
	if err == nil {
		return CallError{Type: CallOK}
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		return CallError{Type: CallErrorFailed, Err: err}
	}

	ce := CallError{Err: err, Argument: e.Argument, Expected: e.Expected}
	switch e.Kind {
	case errors.KindInvalidMethod:
		ce.Type = CallErrorInvalidMethod
	case errors.KindInvalidArgument:
		ce.Type = CallErrorInvalidArgument
	case errors.KindTooManyArguments:
		ce.Type = CallErrorTooManyArguments
	case errors.KindTooFewArguments:
		ce.Type = CallErrorTooFewArguments
	case errors.KindNullInstance:
		ce.Type = CallErrorInstanceIsNull
	default:
		ce.Type = CallErrorFailed
	}
	return ce
}

// Invoke is the engine-facing entry point: it calls name with args and
// reports the outcome as a CallError instead of a Go error.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args []value.Value) (value.Value, CallError) {
	v, err := d.Call(ctx, name, args...)
	return v, ToCallError(err)
}
