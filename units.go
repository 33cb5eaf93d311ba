package musicdb

import "fmt"

// KilobitsPerSecond is an audio bitrate as stored in a track's numeric
// properties. Zero on the wire means the bitrate is unknown; decoded
// tracks carry zero only in that case.
type KilobitsPerSecond uint32

func (k KilobitsPerSecond) String() string {
	return fmt.Sprintf("%d kbps", uint32(k))
}
