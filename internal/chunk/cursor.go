package chunk

import (
	"bytes"
	"encoding/binary"
)

// Cursor is a forward-only (but seekable) view over an immutable byte
// buffer. It never copies: slices returned by Read* methods alias the
// underlying buffer and stay valid for as long as the buffer does,
// which in Go is as long as anything still references them.
//
// All multi-byte integers in the format are little-endian.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Size returns the total buffer length.
func (c *Cursor) Size() int {
	return len(c.data)
}

// Remaining returns the unread tail of the buffer without advancing.
func (c *Cursor) Remaining() []byte {
	return c.data[c.pos:]
}

// SeekTo repositions the cursor at an absolute offset. Seeking exactly
// to the end is legal; past it is not.
func (c *Cursor) SeekTo(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return &OutOfBoundsError{Offset: pos, Size: len(c.data), What: "seek target"}
	}
	c.pos = pos
	return nil
}

// Advance moves the cursor by delta bytes, which may be negative.
func (c *Cursor) Advance(delta int) error {
	return c.SeekTo(c.pos + delta)
}

// PeekSignature returns the next four bytes as a Signature without
// consuming them.
func (c *Cursor) PeekSignature() (Signature, error) {
	if len(c.data)-c.pos < SignatureLength {
		return Signature{}, &OutOfBoundsError{Offset: c.pos, Length: SignatureLength, Size: len(c.data), What: "signature"}
	}
	var sig Signature
	copy(sig[:], c.data[c.pos:])
	return sig, nil
}

// ReadSignature consumes and returns the next four bytes as a Signature.
func (c *Cursor) ReadSignature() (Signature, error) {
	sig, err := c.PeekSignature()
	if err != nil {
		return Signature{}, err
	}
	c.pos += SignatureLength
	return sig, nil
}

// Expect consumes the next signature and verifies it matches want.
func (c *Cursor) Expect(want Signature) error {
	offset := c.pos
	got, err := c.ReadSignature()
	if err != nil {
		return err
	}
	if got != want {
		c.pos = offset
		return &SignatureError{Offset: offset, Want: want, Got: got}
	}
	return nil
}

// ReadSlice returns n bytes starting at the cursor, advancing past
// them. The slice aliases the cursor's buffer.
func (c *Cursor) ReadSlice(n int) ([]byte, error) {
	if n < 0 || len(c.data)-c.pos < n {
		return nil, &OutOfBoundsError{Offset: c.pos, Length: n, Size: len(c.data), What: "slice"}
	}
	s := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return s, nil
}

// ReadCStrBlock consumes a fixed-size block and returns the
// NUL-terminated string at its start. The block is consumed whole
// regardless of where the terminator sits; a block with no terminator
// is an error, since the string's true extent would be unknowable.
func (c *Cursor) ReadCStrBlock(block int) (string, error) {
	offset := c.pos
	raw, err := c.ReadSlice(block)
	if err != nil {
		return "", err
	}
	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		c.pos = offset
		return "", &MissingTerminatorError{Offset: offset, Block: block}
	}
	return string(raw[:nul]), nil
}

// ReadUint8 consumes one byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.ReadSlice(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 consumes a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.ReadSlice(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint32 consumes a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadSlice(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64 consumes a little-endian uint64.
func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.ReadSlice(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
