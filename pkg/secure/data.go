package secure

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/awnumar/memguard"
)

// tokenCounter issues lock tokens. Process-wide and strictly increasing,
// so every SecureData carries a total-order position that all threads
// agree on. Identity hashes are not used; they are neither stable nor
// portable.
var tokenCounter atomic.Uint64

// SecureData represents one sensitive value as an ordered, append-only
// sequence of byte buffers. The buffer sequence is built by a single
// constructing goroutine, frozen, and then only read; the lock token
// serializes concurrent reads against each other and against erasure.
//
// The zero value is not usable; construct with NewSecureData.
type SecureData struct {
	token   uint64
	buffers []*SecureArray[byte]

	// sem is a capacity-1 semaphore standing in for a mutex. A channel
	// is used rather than sync.Mutex so acquisition can carry a bound
	// (see LockTimeout).
	sem chan struct{}

	frozen   atomic.Bool
	disposed atomic.Bool

	// mu guards the buffer slice during construction only. After Freeze
	// the slice never changes; post-freeze readers go through the lock
	// token instead.
	mu sync.Mutex
}

// NewSecureData creates an empty, unfrozen SecureData and assigns its
// lock token. Buffers are added with AddBuffer, then the instance is
// frozen with Freeze before it is shared.
func NewSecureData() *SecureData {
	return &SecureData{
		token: tokenCounter.Add(1),
		sem:   make(chan struct{}, 1),
	}
}

// NewSecureDataFrom is the common single-buffer construction: copy the
// encoded bytes in, freeze, done. The caller keeps ownership of enc and
// should wipe it.
func NewSecureDataFrom(enc []byte) *SecureData {
	d := NewSecureData()
	d.AddBuffer(enc)
	d.Freeze()
	return d
}

// AddBuffer wraps a private copy of b in a new buffer and appends it.
// Permitted only during construction: calling AddBuffer on a frozen
// instance is a contract violation and panics. A correctly built wrapper
// never reaches this panic.
func (d *SecureData) AddBuffer(b []byte) {
	if d.frozen.Load() {
		panic("secure: AddBuffer on frozen SecureData")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buffers = append(d.buffers, NewSecureArrayFrom(b))
}

// Freeze publishes the instance: no buffer may be added afterwards.
// Construction happens on one goroutine, so Freeze is the point from
// which the instance may be shared.
func (d *SecureData) Freeze() {
	d.frozen.Store(true)
}

// Len returns the total encoded length in bytes.
func (d *SecureData) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, buf := range d.buffers {
		n += buf.Len()
	}
	return n
}

// Bytes concatenates all buffers, in insertion order, into one freshly
// allocated slice. The result carries plaintext: callers must hold this
// instance's lock (via a Scope) while the slice is alive and wipe it
// before the scope closes.
func (d *SecureData) Bytes() ([]byte, error) {
	if d.disposed.Load() {
		return nil, &UseAfterFreeError{What: "secure data"}
	}
	out := make([]byte, 0, d.Len())
	for _, buf := range d.buffers {
		chunk, err := buf.ToCopy()
		if err != nil {
			memguard.WipeBytes(out)
			return nil, err
		}
		out = append(out, chunk...)
		memguard.WipeBytes(chunk)
	}
	return out, nil
}

// LockToken returns the opaque ordering key. Only the key is exposed,
// never the underlying semaphore, so callers cannot bypass the ordering
// discipline Scope imposes.
func (d *SecureData) LockToken() uint64 {
	return d.token
}

// Disposed reports whether Dispose has completed or is in progress.
func (d *SecureData) Disposed() bool {
	return d.disposed.Load()
}

// Dispose erases every buffer under this instance's own lock, so no
// concurrent reader observes half-zeroed storage. Idempotent. Reads
// after Dispose fail with UseAfterFreeError.
func (d *SecureData) Dispose() {
	if d.disposed.Load() {
		return
	}
	d.acquire()
	defer d.release()
	if !d.disposed.CompareAndSwap(false, true) {
		return
	}
	for _, buf := range d.buffers {
		buf.Dispose()
	}
}

func (d *SecureData) acquire() {
	d.sem <- struct{}{}
}

// tryAcquire attempts a non-blocking acquisition.
func (d *SecureData) tryAcquire() bool {
	select {
	case d.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// acquireBefore blocks until the lock is held or the deadline passes,
// reporting which.
func (d *SecureData) acquireBefore(deadline time.Time) bool {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()
	select {
	case d.sem <- struct{}{}:
		return true
	case <-timer.C:
		return false
	}
}

func (d *SecureData) release() {
	<-d.sem
}
