package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseAmbiguousID accepts a persistent ID in the forms users paste
// them in: "0x" or "0X" prefixed hex, "0d"/"0D" prefixed decimal, a
// trailing "i" for signed decimal (some tools render the IDs that
// way), bare hex when a non-digit gives it away, and bare decimal when
// it is too long to be hex. A bare string of 16 or fewer digits is
// ambiguous and rejected.
func parseAmbiguousID(id string) (uint64, error) {
	if rest, ok := strippedPrefix(id, "0x", "0X"); ok {
		return strconv.ParseUint(rest, 16, 64)
	}
	if rest, ok := strippedPrefix(id, "0d", "0D"); ok {
		if dec, ok := strings.CutSuffix(rest, "i"); ok {
			signed, err := strconv.ParseInt(dec, 10, 64)
			return uint64(signed), err
		}
		return strconv.ParseUint(rest, 10, 64)
	}
	if dec, ok := strings.CutSuffix(id, "i"); ok {
		signed, err := strconv.ParseInt(dec, 10, 64)
		return uint64(signed), err
	}
	if strings.ContainsFunc(id, func(r rune) bool { return r < '0' || r > '9' }) {
		return strconv.ParseUint(id, 16, 64)
	}
	if len(id) > 16 {
		// Too long for hex.
		return strconv.ParseUint(id, 10, 64)
	}
	return 0, fmt.Errorf("base of ID %q is unknown; use a 0x (hex) or 0d (decimal) prefix", id)
}

func strippedPrefix(value string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(value, p); ok {
			return rest, true
		}
	}
	return "", false
}

// parseAmbiguousIDs expands comma-separated ID lists.
func parseAmbiguousIDs(args []string) ([]uint64, error) {
	var out []uint64
	for _, given := range args {
		for _, part := range strings.Split(given, ",") {
			id, err := parseAmbiguousID(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
	}
	return out, nil
}
