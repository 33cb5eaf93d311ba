package musicdb

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the semantic version of the musicdb library.
const Version = "0.1.0"

// AppVersion is the four-part version of the application that wrote a
// library file, as recorded in the file header (e.g. "1.5.2.10").
// Later application releases changed parts of the format, so decoding
// behavior is gated on it in a few places.
type AppVersion struct {
	Major, Minor, Patch, Build uint32
}

// ParseAppVersion parses a dotted version string from the file header.
// Missing trailing parts are treated as zero; "1.5" parses the same as
// "1.5.0.0".
func ParseAppVersion(s string) (AppVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) > 4 || parts[0] == "" {
		return AppVersion{}, fmt.Errorf("malformed application version %q", s)
	}
	var nums [4]uint32
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return AppVersion{}, fmt.Errorf("malformed application version %q: %w", s, err)
		}
		nums[i] = uint32(n)
	}
	return AppVersion{Major: nums[0], Minor: nums[1], Patch: nums[2], Build: nums[3]}, nil
}

func (v AppVersion) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Build)
}

// Compare orders two versions part by part, returning -1, 0 or 1.
func (v AppVersion) Compare(other AppVersion) int {
	pairs := [4][2]uint32{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
		{v.Build, other.Build},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v is other or newer.
func (v AppVersion) AtLeast(other AppVersion) bool {
	return v.Compare(other) >= 0
}
