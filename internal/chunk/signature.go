// Package chunk provides the binary primitives the musicdb format is
// built from: four-byte chunk signatures and a zero-copy, bounds-checked
// cursor over a decoded byte buffer.
package chunk

import "unicode/utf8"

// SignatureLength is the byte length of every chunk signature.
const SignatureLength = 4

// Signature identifies a chunk's type. Every signature observed so far
// matches /[a-z]{4}/i; comparison is byte-wise, display is lossy UTF-8.
type Signature [SignatureLength]byte

// Sig builds a Signature from a four-character string literal.
// It panics on any other length, so it is only for package-level
// constants describing the format itself.
func Sig(s string) Signature {
	if len(s) != SignatureLength {
		panic("chunk: signature must be exactly 4 bytes")
	}
	var sig Signature
	copy(sig[:], s)
	return sig
}

// Bytes returns the signature's raw bytes.
func (s Signature) Bytes() [SignatureLength]byte {
	return s
}

// String renders the signature for diagnostics, replacing any
// non-UTF-8 bytes rather than failing.
func (s Signature) String() string {
	if utf8.Valid(s[:]) {
		return string(s[:])
	}
	out := make([]rune, 0, SignatureLength)
	for _, b := range s[:] {
		if b < utf8.RuneSelf {
			out = append(out, rune(b))
		} else {
			out = append(out, utf8.RuneError)
		}
	}
	return string(out)
}
