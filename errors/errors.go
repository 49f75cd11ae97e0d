package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/hostbridge/value"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // method registration
	PhaseValidate Phase = "validate" // call validation
	PhaseFrame    Phase = "frame"    // scoped reference frame
	PhaseEncode   Phase = "encode"   // engine value to native
	PhaseInvoke   Phase = "invoke"   // native invocation
	PhaseDecode   Phase = "decode"   // native to engine value
	PhaseParse    Phase = "parse"    // signature/WIT parsing
)

// Kind categorizes the error
type Kind string

const (
	KindNullInstance          Kind = "null_instance"
	KindInvalidMethod         Kind = "invalid_method"
	KindTooFewArguments       Kind = "too_few_arguments"
	KindTooManyArguments      Kind = "too_many_arguments"
	KindInvalidArgument       Kind = "invalid_argument"
	KindResourceExhausted     Kind = "resource_exhausted"
	KindUnsupportedReturnType Kind = "unsupported_return_type"
	KindUnsupportedKind       Kind = "unsupported_kind"
	KindInvocationFailed      Kind = "invocation_failed"
	KindInvalidRef            Kind = "invalid_ref"
	KindNotAttached           Kind = "not_attached"
	KindInvalidInput          Kind = "invalid_input"
)

// Sentinels for errors.Is. They match any phase.
var (
	ErrNullInstance          = &Error{Kind: KindNullInstance}
	ErrInvalidMethod         = &Error{Kind: KindInvalidMethod}
	ErrTooFewArguments       = &Error{Kind: KindTooFewArguments}
	ErrTooManyArguments      = &Error{Kind: KindTooManyArguments}
	ErrInvalidArgument       = &Error{Kind: KindInvalidArgument}
	ErrResourceExhausted     = &Error{Kind: KindResourceExhausted}
	ErrUnsupportedReturnType = &Error{Kind: KindUnsupportedReturnType}
	ErrUnsupportedKind       = &Error{Kind: KindUnsupportedKind}
	ErrInvocationFailed      = &Error{Kind: KindInvocationFailed}
	ErrInvalidRef            = &Error{Kind: KindInvalidRef}
	ErrNotAttached           = &Error{Kind: KindNotAttached}
	ErrInvalidInput          = &Error{Kind: KindInvalidInput}
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Method string
	Detail string
	// Argument is the offending argument index for KindInvalidArgument and
	// the expected arity for the arity kinds. -1 when unset.
	Argument int
	Expected value.Kind
	Got      value.Kind
	// HasExpected reports whether Expected is meaningful.
	HasExpected bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Method != "" {
		b.WriteString(" in ")
		b.WriteString(strconv.Quote(e.Method))
	}

	switch e.Kind {
	case KindInvalidArgument:
		if e.Argument >= 0 {
			b.WriteString(" at argument ")
			b.WriteString(strconv.Itoa(e.Argument))
		}
	case KindTooFewArguments, KindTooManyArguments:
		if e.Argument >= 0 {
			b.WriteString(": expected ")
			b.WriteString(strconv.Itoa(e.Argument))
			b.WriteString(" argument(s)")
		}
	}

	if e.HasExpected {
		b.WriteString(": expected ")
		b.WriteString(e.Expected.String())
		if e.Got != e.Expected {
			b.WriteString(", got ")
			b.WriteString(e.Got.String())
		}
	}

	if e.Detail != "" {
		b.WriteString(" - ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a Phase
// matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:    phase,
			Kind:     kind,
			Argument: -1,
		},
	}
}

// Method sets the method name
func (b *Builder) Method(name string) *Builder {
	b.err.Method = name
	return b
}

// Argument sets the argument index or expected arity
func (b *Builder) Argument(n int) *Builder {
	b.err.Argument = n
	return b
}

// Expected sets the expected value kind
func (b *Builder) Expected(k value.Kind) *Builder {
	b.err.Expected = k
	b.err.Got = k
	b.err.HasExpected = true
	return b
}

// Got sets the actual value kind. Call after Expected.
func (b *Builder) Got(k value.Kind) *Builder {
	b.err.Got = k
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	e := b.err
	return &e
}

// Call taxonomy constructors

// NullInstance reports a call issued while no bridge instance is set.
func NullInstance(method string) *Error {
	return New(PhaseValidate, KindNullInstance).Method(method).Build()
}

// InvalidMethod reports a call to a name that was never registered.
func InvalidMethod(method string) *Error {
	return New(PhaseValidate, KindInvalidMethod).Method(method).Build()
}

// TooFewArguments reports a call with fewer arguments than declared.
func TooFewArguments(method string, expected int) *Error {
	return New(PhaseValidate, KindTooFewArguments).Method(method).Argument(expected).Build()
}

// TooManyArguments reports a call with more arguments than declared.
func TooManyArguments(method string, expected int) *Error {
	return New(PhaseValidate, KindTooManyArguments).Method(method).Argument(expected).Build()
}

// InvalidArgument reports an argument whose kind cannot convert to the
// declared parameter kind.
func InvalidArgument(method string, index int, expected, got value.Kind) *Error {
	return New(PhaseValidate, KindInvalidArgument).
		Method(method).
		Argument(index).
		Expected(expected).
		Got(got).
		Build()
}

// ResourceExhausted reports that a reference frame could not be opened or
// is full.
func ResourceExhausted(phase Phase, cause error) *Error {
	return New(phase, KindResourceExhausted).Cause(cause).Build()
}

// UnsupportedReturnType reports a declared return kind with no native call
// path.
func UnsupportedReturnType(method string, kind value.Kind) *Error {
	return New(PhaseValidate, KindUnsupportedReturnType).
		Method(method).
		Expected(kind).
		Build()
}

// UnsupportedKind reports a kind the converter cannot handle.
func UnsupportedKind(phase Phase, kind value.Kind) *Error {
	return New(phase, KindUnsupportedKind).
		Expected(kind).
		Detail("no native representation").
		Build()
}

// InvocationFailed wraps a failure raised by the native call itself.
func InvocationFailed(method string, cause error) *Error {
	return New(PhaseInvoke, KindInvocationFailed).Method(method).Cause(cause).Build()
}

// InvalidRef reports a reference that is null, released or of the wrong
// object type.
func InvalidRef(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindInvalidRef).Detail(detail, args...).Build()
}

// NotAttached reports a call from a goroutine with no native environment.
func NotAttached(method string) *Error {
	return New(PhaseValidate, KindNotAttached).
		Method(method).
		Detail("no native environment attached to context").
		Build()
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return New(phase, KindInvalidInput).Detail(detail).Build()
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return New(phase, kind).Cause(cause).Detail(detail).Build()
}

// WithMethod returns a copy of err annotated with a method name when err is
// an *Error without one. Other errors are returned unchanged.
func WithMethod(err error, method string) error {
	e, ok := err.(*Error)
	if !ok || e.Method != "" {
		return err
	}
	cp := *e
	cp.Method = method
	return &cp
}
