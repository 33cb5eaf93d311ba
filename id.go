package musicdb

import (
	"fmt"
	"strconv"
	"strings"
)

// Persistent IDs identify entities within the database itself. They
// are stable over time and always present, whether the entity is local
// or cloud-sourced. Each entity kind gets its own named type so that,
// for example, a TrackID cannot be passed where an AlbumID is wanted.
type (
	TrackID      uint64
	AlbumID      uint64
	ArtistID     uint64
	CollectionID uint64
	AccountID    uint64
)

func (id TrackID) String() string      { return formatPersistentID(uint64(id)) }
func (id AlbumID) String() string      { return formatPersistentID(uint64(id)) }
func (id ArtistID) String() string     { return formatPersistentID(uint64(id)) }
func (id CollectionID) String() string { return formatPersistentID(uint64(id)) }
func (id AccountID) String() string    { return formatPersistentID(uint64(id)) }

// Persistent IDs are conventionally rendered as upper-case hex, the
// form the vendor applications use in exported XML.
func formatPersistentID(raw uint64) string {
	return fmt.Sprintf("%016X", raw)
}

// ParseTrackID parses the hexadecimal rendering of a track's
// persistent ID.
func ParseTrackID(s string) (TrackID, error) {
	raw, err := strconv.ParseUint(s, 16, 64)
	return TrackID(raw), err
}

// ParseCollectionID parses the hexadecimal rendering of a collection's
// persistent ID.
func ParseCollectionID(s string) (CollectionID, error) {
	raw, err := strconv.ParseUint(s, 16, 64)
	return CollectionID(raw), err
}

// Cloud catalog IDs point at resources in the global catalog rather
// than the user's library. Zero is never a valid catalog ID; the
// decoders map a zero on the wire to an absent field, so any value
// held by one of these types is known non-zero.
type (
	CatalogTrackID      uint32
	CatalogAlbumID      uint32
	CatalogArtistID     uint32
	CatalogCollectionID uint32
)

// BadNamespaceError reports a cloud library ID whose namespace prefix
// does not match the entity kind it was presented as.
type BadNamespaceError struct {
	Value string
	Want  string
}

func (e *BadNamespaceError) Error() string {
	return fmt.Sprintf("cloud library ID %q is not in namespace %q", e.Value, e.Want)
}

// Cloud library IDs identify library-scoped entities in the cloud.
// They are short strings carrying a one or two letter namespace prefix
// and a full stop, e.g. "i.ABcd12345". Locally-synced variants use an
// extended prefix such as "l.z-" and still satisfy the namespace
// check.
type (
	CloudTrackID      string // namespace "i"
	CloudAlbumID      string // namespace "l"
	CloudArtistID     string // namespace "r"
	CloudCollectionID string // namespace "p"
	CloudAccountID    string // namespace "sp"
)

const (
	nsTrack      = "i"
	nsAlbum      = "l"
	nsArtist     = "r"
	nsCollection = "p"
	nsAccount    = "sp"
)

func checkNamespace(value, ns string) error {
	if !strings.HasPrefix(value, ns) {
		return &BadNamespaceError{Value: value, Want: ns}
	}
	return nil
}

// NewCloudTrackID validates the namespace prefix of a track's cloud
// library ID. The sibling constructors do the same for the other
// entity kinds.
func NewCloudTrackID(s string) (CloudTrackID, error) {
	return CloudTrackID(s), checkNamespace(s, nsTrack)
}

func NewCloudAlbumID(s string) (CloudAlbumID, error) {
	return CloudAlbumID(s), checkNamespace(s, nsAlbum)
}

func NewCloudArtistID(s string) (CloudArtistID, error) {
	return CloudArtistID(s), checkNamespace(s, nsArtist)
}

func NewCloudCollectionID(s string) (CloudCollectionID, error) {
	return CloudCollectionID(s), checkNamespace(s, nsCollection)
}

func NewCloudAccountID(s string) (CloudAccountID, error) {
	return CloudAccountID(s), checkNamespace(s, nsAccount)
}
