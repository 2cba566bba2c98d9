package secure

import (
	"os"
	"sort"
	"time"

	"github.com/systmms/securevalue/internal/logging"
)

var logger = logging.New(os.Getenv("SECUREVALUE_DEBUG") != "")

// Scope holds exclusive access to a set of SecureData instances. All
// operands of one operation funnel through a single Scope; opening a
// nested Scope over a target the current goroutine already holds will
// self-deadlock, and that is a caller bug Scope cannot detect.
type Scope struct {
	targets  []*SecureData // deduplicated, ascending token order
	released bool
}

// Lock acquires exclusive access to every distinct target, blocking
// until all locks are held.
//
// Deadlock freedom: two goroutines running `a op b` and `b op a` would
// acquire in opposite orders if acquisition followed argument order.
// Sorting by lock token gives every goroutine the identical global
// order, so no circular wait can form. Duplicate targets (a
// self-operation) are coalesced to a single acquisition.
//
// A nil or already-disposed target fails with ArgumentError before any
// lock is taken.
func Lock(targets ...*SecureData) (*Scope, error) {
	return lock(targets, time.Time{})
}

// LockTimeout is the bounded-wait variant of Lock. If the full set
// cannot be acquired within d, every lock taken so far is released and
// a TimeoutError is returned. The base Lock blocks indefinitely; use
// this form where an unbounded wait is unacceptable.
func LockTimeout(d time.Duration, targets ...*SecureData) (*Scope, error) {
	if d <= 0 {
		return nil, &ArgumentError{Name: "d", Message: "timeout must be positive"}
	}
	return lock(targets, time.Now().Add(d))
}

// With runs fn while holding a Scope over targets, releasing on normal
// return, on error, and on panic. It is the acquire/compute/release
// helper every wrapper operation goes through, so the try/finally
// discipline lives in exactly one place.
func With(fn func() error, targets ...*SecureData) error {
	scope, err := Lock(targets...)
	if err != nil {
		return err
	}
	defer scope.Release()
	return fn()
}

func lock(targets []*SecureData, deadline time.Time) (*Scope, error) {
	if len(targets) == 0 {
		return nil, &ArgumentError{Name: "targets", Message: "at least one target is required"}
	}
	// Validate the whole set before touching any lock, so a bad target
	// never leaves a partial acquisition behind.
	for _, t := range targets {
		if t == nil {
			return nil, &ArgumentError{Name: "targets", Message: "target is nil"}
		}
		if t.Disposed() {
			return nil, &ArgumentError{Name: "targets", Message: "target is disposed"}
		}
	}

	ordered := dedupeByToken(targets)
	start := time.Now()
	for i, t := range ordered {
		if t.tryAcquire() {
			continue
		}
		logger.Debug("scope contended on token %d (%d of %d)", t.LockToken(), i+1, len(ordered))
		if deadline.IsZero() {
			t.acquire()
			continue
		}
		if !t.acquireBefore(deadline) {
			for j := i - 1; j >= 0; j-- {
				ordered[j].release()
			}
			waited := time.Since(start)
			observeScope(outcomeTimeout, waited)
			return nil, &TimeoutError{Waited: waited.Round(time.Millisecond).String()}
		}
	}
	observeScope(outcomeAcquired, time.Since(start))
	scopeOpened()
	return &Scope{targets: ordered}, nil
}

// Release unlocks every target in strictly reverse acquisition order.
// Idempotent; a second call is a no-op. Release is intended to be
// called by the goroutine that opened the scope, usually via defer.
func (s *Scope) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	for i := len(s.targets) - 1; i >= 0; i-- {
		s.targets[i].release()
	}
	scopeClosed()
}

// dedupeByToken sorts targets ascending by lock token and drops
// duplicates, so a target named twice is acquired exactly once.
func dedupeByToken(targets []*SecureData) []*SecureData {
	ordered := make([]*SecureData, len(targets))
	copy(ordered, targets)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].token < ordered[j].token
	})
	out := ordered[:0]
	for i, t := range ordered {
		if i > 0 && t.token == out[len(out)-1].token {
			continue
		}
		out = append(out, t)
	}
	return out
}
