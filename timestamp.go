package musicdb

import "time"

// Timestamps on the wire count seconds from the classic Mac OS epoch,
// 1904-01-01 00:00:00 UTC. This is the offset to the Unix epoch.
const macEpochOffset = 2082819600

// macTime converts a wire timestamp. Zero means "not set" and maps to
// the zero time.
func macTime(secs uint32) time.Time {
	if secs == 0 {
		return time.Time{}
	}
	return time.Unix(int64(secs)-macEpochOffset, 0).UTC()
}
