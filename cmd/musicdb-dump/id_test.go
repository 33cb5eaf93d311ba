package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmbiguousID(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"0xDEADBEEF", 0xDEADBEEF, true},
		{"0Xdeadbeef", 0xDEADBEEF, true},
		{"0d1234", 1234, true},
		{"0D1234", 1234, true},
		{"0d-2i", 0xFFFFFFFFFFFFFFFE, true},
		{"-2i", 0xFFFFFFFFFFFFFFFE, true},
		{"123i", 123, true},
		{"AB12CD", 0xAB12CD, true},              // non-digit forces hex
		{"99999999999999999999", 0, false},      // 20 digits, overflows uint64
		{"184467440737095516", 184467440737095516, true}, // 18 digits, decimal
		{"1234", 0, false},                      // ambiguous
		{"", 0, false},
		{"zzz", 0, false},
	}
	for _, c := range cases {
		got, err := parseAmbiguousID(c.in)
		if !c.ok {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseAmbiguousIDs(t *testing.T) {
	ids, err := parseAmbiguousIDs([]string{"0x10, 0x20", "0d48"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{0x10, 0x20, 48}, ids)

	_, err = parseAmbiguousIDs([]string{"0x10,bogus-value"})
	require.Error(t, err)
}
