package musicdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func xmlPlist(pairs ...string) []byte {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0"><dict>`
	for i := 0; i < len(pairs); i += 2 {
		body += "<key>" + xmlEscaper.Replace(pairs[i]) + "</key><string>" + xmlEscaper.Replace(pairs[i+1]) + "</string>"
	}
	return []byte(body + "</dict></plist>")
}

func TestParseCollectionInfo(t *testing.T) {
	info, err := parseCollectionInfo(xmlPlist(
		"uuid", "pl.u-abcdef012345678",
		"description", "Road trip songs",
		"ownerName", "Simon",
		"ownerID", "123456",
		"subscribed-container-url", "https://example.com/playlist",
	))
	require.NoError(t, err)

	assert.Equal(t, "pl.u-abcdef012345678", info.UUID)
	assert.Equal(t, "Road trip songs", info.Description)
	assert.Equal(t, "https://example.com/playlist", info.SubscribedContainerURL)
	require.NotNil(t, info.Owner)
	assert.Equal(t, "Simon", info.Owner.Name)
	assert.Equal(t, uint32(123456), info.Owner.ID)
}

func TestParseCollectionInfoOwnPlaylist(t *testing.T) {
	info, err := parseCollectionInfo(xmlPlist("uuid", "pl.0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	assert.Nil(t, info.Owner)
}

func TestParseCollectionInfoBadOwnerID(t *testing.T) {
	_, err := parseCollectionInfo(xmlPlist("ownerName", "Simon", "ownerID", "not-a-number"))
	require.Error(t, err)
}

func TestParseCollectionInfoMalformed(t *testing.T) {
	_, err := parseCollectionInfo([]byte("<plist><dict>"))
	require.Error(t, err)
}

func TestParseTrackCloudInfo(t *testing.T) {
	info, err := parseTrackCloudInfo(xmlPlist(
		"cloud-album-id", "l.ABC",
		"cloud-artist-id", "r.DEF",
		"cloud-artwork-url", "https://example.com/{w}x{h}.jpg",
	))
	require.NoError(t, err)
	assert.Equal(t, "l.ABC", info.CloudAlbumID)
	assert.Equal(t, "r.DEF", info.CloudArtistID)
	assert.Equal(t, "https://example.com/{w}x{h}.jpg", info.CloudArtworkURL)
}

func TestParseCloudDownloadInfo(t *testing.T) {
	info, err := parseCloudDownloadInfo(xmlPlist(
		"cloud-universal-library-id", "u.123",
		"redownload-params", "a=1&b=2",
	))
	require.NoError(t, err)
	assert.Equal(t, "u.123", info.UniversalLibraryID)
	assert.Equal(t, "a=1&b=2", info.RedownloadParams)
}

func TestParseArtworkURL(t *testing.T) {
	url, err := parseArtworkURL(xmlPlist("artwork-url", "https://example.com/a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.jpg", url)
}

// A track carrying a broken plist keeps decoding; the plist failure
// only produces a warning.
func TestTrackBadPlistWarns(t *testing.T) {
	d := newTestDecoder()
	parts := defaultViewParts()
	parts.tracks = [][]byte{buildTrackChunk(1, 100, 200,
		buildUTF16Boma(SubtypeTrackTitle, "Come Together"),
		buildUTF8Boma(SubtypePlistTrackCloudInfo, "<plist><dict>"),
		buildNumericsBoma(numericsFields{durationMillis: 259000}),
	)}
	parts.collections = nil

	v := decodeView(t, d, parts)
	track := v.Tracks[1]
	require.NotNil(t, track)
	assert.Equal(t, "Come Together", track.Title.String())
	assert.Nil(t, track.CloudInfo)
	require.Len(t, d.warnings, 1)
	assert.Equal(t, "tracks", d.warnings[0].Stage)
}

func TestTrackCloudPlists(t *testing.T) {
	d := newTestDecoder()
	parts := defaultViewParts()
	parts.tracks = [][]byte{buildTrackChunk(1, 100, 200,
		buildUTF8Boma(SubtypePlistTrackCloudInfo, string(xmlPlist("cloud-album-id", "l.ABC"))),
		buildUTF8Boma(SubtypePlistCloudDownloadInfo, string(xmlPlist("cloud-universal-library-id", "u.123"))),
		buildNumericsBoma(numericsFields{durationMillis: 1000}),
	)}
	parts.collections = nil

	v := decodeView(t, d, parts)
	track := v.Tracks[1]
	require.NotNil(t, track)
	require.NotNil(t, track.CloudInfo)
	assert.Equal(t, "l.ABC", track.CloudInfo.CloudAlbumID)
	require.NotNil(t, track.DownloadInfo)
	assert.Equal(t, "u.123", track.DownloadInfo.UniversalLibraryID)
	assert.Empty(t, d.warnings)
}
