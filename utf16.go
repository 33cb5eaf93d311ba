package musicdb

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// utf16Decoder converts little-endian UTF-16 payloads. Invalid
// sequences come out as U+FFFD; use Validate to detect them.
var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// InvalidUTF16Error reports an unpaired surrogate in a raw string
// payload. Index is in code units from the start of the string.
type InvalidUTF16Error struct {
	Index int
	Unit  uint16
}

func (e *InvalidUTF16Error) Error() string {
	return fmt.Sprintf("invalid UTF-16: unpaired surrogate 0x%04X at code unit %d", e.Unit, e.Index)
}

// UTF16String is a little-endian UTF-16 string viewing the decoded
// file buffer directly. No decoding or copying happens until String
// or Validate is called, so holding a UTF16String keeps the whole
// buffer reachable.
//
// The wire data is not guaranteed to be well-formed; String replaces
// unpaired surrogates with U+FFFD while Validate reports them.
type UTF16String struct {
	raw []byte
}

// NewUTF16String wraps raw little-endian code units. An odd trailing
// byte is ignored.
func NewUTF16String(raw []byte) UTF16String {
	return UTF16String{raw: raw[:len(raw)&^1]}
}

// Bytes returns the raw little-endian code units, aliasing the file
// buffer. Callers must not modify the result.
func (s UTF16String) Bytes() []byte { return s.raw }

// Len is the length in UTF-16 code units, not runes.
func (s UTF16String) Len() int { return len(s.raw) / 2 }

// IsEmpty reports whether the string holds no code units.
func (s UTF16String) IsEmpty() bool { return len(s.raw) == 0 }

// String decodes to UTF-8, replacing ill-formed sequences with the
// replacement character.
func (s UTF16String) String() string {
	if len(s.raw) == 0 {
		return ""
	}
	decoded, err := utf16Decoder.NewDecoder().Bytes(s.raw)
	if err != nil {
		// The UTF16 decoder substitutes rather than failing; an error
		// here would mean a transformer bug, so surface it loudly.
		panic(err)
	}
	return string(decoded)
}

// Validate scans for unpaired surrogates, returning the first found.
func (s UTF16String) Validate() error {
	units := s.Len()
	for i := 0; i < units; i++ {
		u := binary.LittleEndian.Uint16(s.raw[i*2:])
		switch {
		case u >= 0xD800 && u < 0xDC00: // high surrogate, needs a low after it
			if i+1 >= units {
				return &InvalidUTF16Error{Index: i, Unit: u}
			}
			next := binary.LittleEndian.Uint16(s.raw[(i+1)*2:])
			if next < 0xDC00 || next >= 0xE000 {
				return &InvalidUTF16Error{Index: i, Unit: u}
			}
			i++
		case u >= 0xDC00 && u < 0xE000: // low surrogate with no high before it
			return &InvalidUTF16Error{Index: i, Unit: u}
		}
	}
	return nil
}

// Equal compares against a UTF-8 string without allocating.
func (s UTF16String) Equal(other string) bool {
	i := 0
	units := s.Len()
	for _, r := range other {
		if r == utf8.RuneError {
			// Can't compare ill-formed UTF-8 meaningfully.
			return false
		}
		if r >= 0x10000 {
			if i+1 >= units {
				return false
			}
			r -= 0x10000
			hi := 0xD800 + uint16(r>>10)
			lo := 0xDC00 + uint16(r&0x3FF)
			if binary.LittleEndian.Uint16(s.raw[i*2:]) != hi ||
				binary.LittleEndian.Uint16(s.raw[(i+1)*2:]) != lo {
				return false
			}
			i += 2
			continue
		}
		if i >= units || binary.LittleEndian.Uint16(s.raw[i*2:]) != uint16(r) {
			return false
		}
		i++
	}
	return i == units
}
