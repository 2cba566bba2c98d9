package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// SecureArray holds a fixed-length buffer of sensitive elements and
// guarantees the buffer is overwritten with zero values before its
// storage is released. Callers never receive a reference to the live
// backing storage, only copies.
type SecureArray[T any] struct {
	mu   sync.Mutex
	data []T
	// live distinguishes erased-but-readable from disposed. Erase zeroes
	// the elements but keeps the storage addressable; Dispose releases it.
	live bool
}

// NewSecureArray creates a buffer of length zero-valued elements.
func NewSecureArray[T any](length int) (*SecureArray[T], error) {
	if length < 0 {
		return nil, &ArgumentError{Name: "length", Message: "must be non-negative"}
	}
	return &SecureArray[T]{data: make([]T, length), live: true}, nil
}

// NewSecureArrayFrom creates a buffer holding a copy of src. The caller's
// slice is never retained; it remains the caller's to wipe.
func NewSecureArrayFrom[T any](src []T) *SecureArray[T] {
	data := make([]T, len(src))
	copy(data, src)
	return &SecureArray[T]{data: data, live: true}
}

// Len returns the fixed length of the buffer.
func (a *SecureArray[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.data)
}

// Read returns the element at index. Reads on an erased (but not
// disposed) buffer succeed and observe zero values.
func (a *SecureArray[T]) Read(index int) (T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var zero T
	if !a.live {
		return zero, &UseAfterFreeError{What: "secure array"}
	}
	if index < 0 || index >= len(a.data) {
		return zero, &IndexError{Index: index, Length: len(a.data)}
	}
	return a.data[index], nil
}

// Write stores value at index.
func (a *SecureArray[T]) Write(index int, value T) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.live {
		return &UseAfterFreeError{What: "secure array"}
	}
	if index < 0 || index >= len(a.data) {
		return &IndexError{Index: index, Length: len(a.data)}
	}
	a.data[index] = value
	return nil
}

// ToCopy returns a freshly allocated copy of the whole buffer. The copy
// carries the sensitive content; callers should wipe it when done.
func (a *SecureArray[T]) ToCopy() ([]T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.live {
		return nil, &UseAfterFreeError{What: "secure array"}
	}
	out := make([]T, len(a.data))
	copy(out, a.data)
	return out, nil
}

// Erase overwrites every element with the zero value. Idempotent.
// The buffer stays readable afterwards; reads observe zero values.
// Byte buffers are wiped through memguard so the store is not elided.
func (a *SecureArray[T]) Erase() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.eraseLocked()
}

// Dispose erases the buffer and releases the backing storage. Any
// subsequent access fails with UseAfterFreeError. Idempotent.
func (a *SecureArray[T]) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.live {
		return
	}
	a.eraseLocked()
	a.data = nil
	a.live = false
}

func (a *SecureArray[T]) eraseLocked() {
	if b, ok := any(a.data).([]byte); ok {
		memguard.WipeBytes(b)
		return
	}
	var zero T
	for i := range a.data {
		a.data[i] = zero
	}
}
