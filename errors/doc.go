// Package errors provides structured error types for the bridge.
//
// Errors are categorized by Phase (which step of registration or a call
// failed) and Kind (the error category). Call errors also carry the method
// name and, depending on the kind, the offending argument index, the expected
// arity or the expected value kind.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindInvalidArgument).
//		Method("greet").
//		Argument(1).
//		Expected(value.KindString).
//		Detail("got int").
//		Build()
//
// Or the constructors for the call taxonomy:
//
//	err := errors.TooFewArguments("greet", 2)
//	err := errors.InvalidArgument("greet", 1, value.KindString, value.KindInt)
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with Is compares Kind, and Phase when the target sets one, so the
// exported sentinels (ErrInvalidMethod, ...) match errors from any phase.
package errors
