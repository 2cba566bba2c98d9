package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Sealed is the at-rest form of a SecureData: its decoded bytes held in
// a memguard enclave, encrypted in memory and mlocked where the platform
// allows. A value parked for a long time between operations can be
// sealed so its plaintext only exists inside active lock scopes.
//
// If mlock is unavailable (e.g. RLIMIT_MEMLOCK) memguard degrades to
// standard allocation; the encryption at rest still holds.
type Sealed struct {
	enclave *memguard.Enclave
	mu      sync.RWMutex
	// destroyed allows idempotent Destroy and blocks use after destroy
	destroyed bool
}

// Seal snapshots d under its own lock and returns the sealed form.
// d itself is left untouched; callers that want the plaintext copies
// gone usually Dispose d right after sealing.
func Seal(d *SecureData) (*Sealed, error) {
	if d == nil {
		return nil, &ArgumentError{Name: "d", Message: "target is nil"}
	}
	var enclave *memguard.Enclave
	err := With(func() error {
		plain, err := d.Bytes()
		if err != nil {
			return err
		}
		// NewEnclave wipes its input after encrypting it.
		enclave = memguard.NewEnclave(plain)
		return nil
	}, d)
	if err != nil {
		return nil, err
	}
	return &Sealed{enclave: enclave}, nil
}

// Unseal decrypts the enclave and reconstructs a fresh SecureData with
// a new lock token. The transient plaintext buffer is destroyed before
// Unseal returns.
func (s *Sealed) Unseal() (*SecureData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed {
		return nil, &UseAfterFreeError{What: "sealed value"}
	}
	locked, err := s.enclave.Open()
	if err != nil {
		return nil, err
	}
	defer locked.Destroy()
	return NewSecureDataFrom(locked.Bytes()), nil
}

// Destroy marks the sealed value as unusable. Idempotent. The enclave
// ciphertext is useless without the memguard session key, so dropping
// the reference is sufficient cleanup; memguard.Purge at process exit
// covers the rest.
func (s *Sealed) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}
	s.enclave = nil
	s.destroyed = true
}
