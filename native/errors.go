package native

import "errors"

var (
	// ErrFrameFull is wrapped by errors from NewLocalRef when the top frame
	// has no free slot.
	ErrFrameFull = errors.New("local reference frame full")

	// ErrFrameUnavailable is wrapped by errors from PushLocalFrame.
	ErrFrameUnavailable = errors.New("local reference frame unavailable")

	// ErrInvalidRef is wrapped by errors from Deref for null, released or
	// unknown references.
	ErrInvalidRef = errors.New("invalid local reference")
)
