// Package securevalue provides thread-safe wrapper types over the
// pkg/secure core: a generic fixed-width integer wrapper (Numeric, with
// Int and Long instantiations) and a sensitive-text wrapper (String).
//
// Wrappers never mutate; arithmetic and concatenation return new
// instances. Every operation over two wrappers runs inside one lock
// scope covering both operands, so concurrent `a.Add(b)` and `b.Add(a)`
// on shared values serialize instead of deadlocking. Decoded plaintext
// exists only inside that scope and is wiped before it closes.
//
// Conversions to native values are explicit (Value, Reveal, Format);
// fmt.Stringer output is always redacted.
package securevalue
