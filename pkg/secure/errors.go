package secure

import "fmt"

// ArgumentError reports an invalid argument: a nil target, a disposed
// target handed to a lock request, or an invalid constructor input.
type ArgumentError struct {
	Name    string
	Message string
}

func (e *ArgumentError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid argument '%s': %s", e.Name, e.Message)
	}
	return "invalid argument: " + e.Message
}

// IndexError reports a buffer access outside [0, Length).
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

// UseAfterFreeError reports an access to a disposed instance. This is a
// programming-contract violation: callers that hold a reference past
// disposal have a lifetime bug, not a condition to retry.
type UseAfterFreeError struct {
	What string
}

func (e *UseAfterFreeError) Error() string {
	if e.What != "" {
		return e.What + " used after dispose"
	}
	return "use after dispose"
}

// TimeoutError reports that a bounded-wait lock acquisition did not
// complete within its budget. Any locks acquired before the deadline
// were released before this error was returned.
type TimeoutError struct {
	Waited string
}

func (e *TimeoutError) Error() string {
	return "lock acquisition timed out after " + e.Waited
}
