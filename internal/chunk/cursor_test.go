package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	s := Sig("boma")
	assert.Equal(t, "boma", s.String())
	assert.Equal(t, [SignatureLength]byte{'b', 'o', 'm', 'a'}, s.Bytes())

	assert.Panics(t, func() { Sig("toolong") })
	assert.Panics(t, func() { Sig("ab") })
}

func TestCursorReads(t *testing.T) {
	c := NewCursor([]byte{
		'i', 't', 'm', 'a',
		0x12, 0x34,
		0x78, 0x56, 0x34, 0x12,
		0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01,
		0x7F,
	})

	sig, err := c.ReadSignature()
	require.NoError(t, err)
	assert.Equal(t, Sig("itma"), sig)

	v16, err := c.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3412), v16)

	v32, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v32)

	v64, err := c.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0123456789ABCDEF), v64)

	v8, err := c.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7F), v8)

	assert.Equal(t, 0, len(c.Remaining()))
	_, err = c.ReadUint8()
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)
}

func TestCursorExpect(t *testing.T) {
	c := NewCursor([]byte("lpma...."))

	err := c.Expect(Sig("lama"))
	var serr *SignatureError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, Sig("lama"), serr.Want)
	assert.Equal(t, Sig("lpma"), serr.Got)
	// A failed Expect must not consume the signature.
	assert.Equal(t, 0, c.Pos())

	require.NoError(t, c.Expect(Sig("lpma")))
	assert.Equal(t, 4, c.Pos())
}

func TestCursorSeekAndAdvance(t *testing.T) {
	c := NewCursor(make([]byte, 32))

	require.NoError(t, c.Advance(10))
	assert.Equal(t, 10, c.Pos())
	require.NoError(t, c.Advance(-4))
	assert.Equal(t, 6, c.Pos())

	require.NoError(t, c.SeekTo(32)) // end is addressable
	require.Error(t, c.SeekTo(33))
	require.Error(t, c.Advance(1))
	assert.Equal(t, 32, c.Pos())
}

func TestCursorReadSliceAliases(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	c := NewCursor(data)

	s, err := c.ReadSlice(3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, s)

	// The slice views the source buffer rather than copying it.
	data[0] = 99
	assert.Equal(t, byte(99), s[0])
	// And appending to it cannot clobber unread bytes.
	s = append(s, 0)
	assert.Equal(t, byte(4), data[3])
}

func TestCursorReadCStrBlock(t *testing.T) {
	block := append([]byte("1.5.2.10\x00"), make([]byte, 0x20-9)...)
	c := NewCursor(append(block, 0xFF))

	s, err := c.ReadCStrBlock(0x20)
	require.NoError(t, err)
	assert.Equal(t, "1.5.2.10", s)
	// The whole block is consumed regardless of string length.
	assert.Equal(t, 0x20, c.Pos())
}

func TestCursorReadCStrBlockUnterminated(t *testing.T) {
	c := NewCursor([]byte("no terminator here"))

	_, err := c.ReadCStrBlock(8)
	var merr *MissingTerminatorError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 0, c.Pos())
}
