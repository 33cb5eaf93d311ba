package chunk

import "fmt"

// OutOfBoundsError is returned when a read or seek would leave the
// buffer. Length fields inside the file are untrusted, so every place
// they reach the cursor must surface this as a value, never a panic.
type OutOfBoundsError struct {
	Offset int // position the operation started from
	Length int // bytes requested (0 for pure seeks)
	Size   int // total buffer size
	What   string
}

func (e *OutOfBoundsError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("seek to offset %d out of bounds (buffer size %d) while reading %s",
			e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("read of %d bytes at offset %d would exceed buffer size %d while reading %s",
		e.Length, e.Offset, e.Size, e.What)
}

// SignatureError is returned when the bytes under the cursor do not
// match the signature a decoder expected. The offset points at the
// first byte of the mismatch to aid diagnosis of format-version drift.
type SignatureError struct {
	Offset int
	Want   Signature
	Got    Signature
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("invalid signature at 0x%X (%d): expected %q, got %q",
		e.Offset, e.Offset, e.Want.String(), e.Got.String())
}

// MissingTerminatorError is returned by ReadCStrBlock when a
// fixed-size block holds no NUL byte, which would otherwise allow an
// embedded string to run past its field.
type MissingTerminatorError struct {
	Offset int
	Block  int
}

func (e *MissingTerminatorError) Error() string {
	return fmt.Sprintf("no NUL terminator within %d-byte block at offset %d", e.Block, e.Offset)
}
