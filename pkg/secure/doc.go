// Package secure provides the storage and locking core for sensitive
// in-process values.
//
// Three pieces fit together:
//
//   - SecureArray holds a fixed-length buffer of sensitive elements and
//     guarantees deterministic erasure: the storage is zeroed exactly
//     once, at a known point, before it is released.
//   - SecureData represents one sensitive value as an ordered,
//     append-only sequence of byte buffers, and owns a lock token — an
//     opaque, process-wide, strictly increasing ordering key.
//   - Scope acquires exclusive access to any set of SecureData
//     instances as one atomic region. Targets are deduplicated and
//     acquired in ascending token order, so every goroutine takes the
//     same global order and circular waits cannot form. Release happens
//     in reverse order on every exit path.
//
// A typical binary operation over two values:
//
//	err := secure.With(func() error {
//	    x, err := a.Bytes()
//	    if err != nil {
//	        return err
//	    }
//	    defer memguard.WipeBytes(x)
//	    // decode, compute, encode a brand-new SecureData
//	    return nil
//	}, a, b)
//
// Existing instances are never mutated after construction; operations
// build new ones. The only externally observable mutation is erasure,
// which Dispose performs under the instance's own lock so no concurrent
// reader sees half-zeroed storage.
//
// # What this protects
//
// The package bounds the lifetime and exposure of plaintext bytes: they
// exist as copies inside active lock scopes and are wiped when the
// scope work is done. Sealed additionally keeps parked values encrypted
// at rest via memguard. None of this defends against an attacker who
// can already read arbitrary process memory.
package secure
