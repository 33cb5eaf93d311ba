package musicdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTF16String(t *testing.T) {
	s := NewUTF16String(utf16Bytes("Sgt. Pepper's"))

	assert.Equal(t, "Sgt. Pepper's", s.String())
	assert.Equal(t, 13, s.Len())
	assert.False(t, s.IsEmpty())
	assert.NoError(t, s.Validate())
}

func TestUTF16StringEmpty(t *testing.T) {
	s := NewUTF16String(nil)

	assert.Equal(t, "", s.String())
	assert.True(t, s.IsEmpty())
	assert.NoError(t, s.Validate())
}

func TestUTF16StringSurrogatePairs(t *testing.T) {
	s := NewUTF16String(utf16Bytes("music 🎵 library"))

	assert.Equal(t, "music 🎵 library", s.String())
	assert.NoError(t, s.Validate())
	// One astral code point takes two code units.
	assert.Equal(t, 16, s.Len())
}

func TestUTF16StringUnpairedSurrogate(t *testing.T) {
	for _, tc := range []struct {
		name  string
		units []byte
		index int
	}{
		{"lone high at end", []byte{'a', 0, 0x00, 0xD8}, 1},
		{"high without low", []byte{0x00, 0xD8, 'b', 0}, 0},
		{"lone low", []byte{'a', 0, 0x00, 0xDC, 'b', 0}, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewUTF16String(tc.units)
			var ierr *InvalidUTF16Error
			require.ErrorAs(t, s.Validate(), &ierr)
			assert.Equal(t, tc.index, ierr.Index)
			// Decoding still works, substituting the bad unit.
			assert.Contains(t, s.String(), "�")
		})
	}
}

func TestUTF16StringEqual(t *testing.T) {
	s := NewUTF16String(utf16Bytes("Abbey Road 🎸"))

	assert.True(t, s.Equal("Abbey Road 🎸"))
	assert.False(t, s.Equal("Abbey Road"))
	assert.False(t, s.Equal("Abbey Road 🎸!"))
	assert.False(t, s.Equal(""))
	assert.True(t, NewUTF16String(nil).Equal(""))
}

func TestUTF16StringOddTrailingByte(t *testing.T) {
	raw := append(utf16Bytes("ab"), 0xFF)
	s := NewUTF16String(raw)
	assert.Equal(t, "ab", s.String())
}
