package musicdb

import (
	"fmt"
	"strconv"

	"howett.net/plist"
)

// Several sub-records carry XML property lists. They are decoded with
// howett.net/plist; none of their keys are guaranteed present.

// TrackCloudInfo is the cloud-side description of a track.
type TrackCloudInfo struct {
	CloudAlbumID      string `plist:"cloud-album-id"`
	CloudArtistID     string `plist:"cloud-artist-id"`
	CloudArtworkToken string `plist:"cloud-artwork-token"`
	CloudArtworkURL   string `plist:"cloud-artwork-url"`
	CloudLyrics       string `plist:"cloud-lyrics"`
	CloudLyricsTokens string `plist:"cloud-lyrics-tokens"`
}

// CloudDownloadInfo describes how a downloaded track can be fetched
// again.
type CloudDownloadInfo struct {
	UniversalLibraryID string `plist:"cloud-universal-library-id"`
	RedownloadParams   string `plist:"redownload-params"`
}

// CollectionOwner identifies who published a collection. Own user
// playlists carry a name with no ID.
type CollectionOwner struct {
	ID   uint32
	Name string
}

// CollectionInfo is the property-list portion of a collection's
// metadata. It is absent on some built-in collections.
type CollectionInfo struct {
	Description string
	Owner       *CollectionOwner

	// UUID takes several shapes: "pl." plus 32 hex digits, "pl.u-"
	// plus 15 word characters, or free-form text.
	UUID string

	VersionHash            string
	UniversalLibraryID     string
	SubscribedContainerURL string
	CloudArtworkToken      string
	CloudArtworkURL        string
	ExternalVendorName     string
}

type rawCollectionInfo struct {
	Description            string `plist:"description"`
	OwnerID                string `plist:"ownerID"`
	OwnerName              string `plist:"ownerName"`
	UUID                   string `plist:"uuid"`
	VersionHash            string `plist:"version-hash"`
	UniversalLibraryID     string `plist:"universal-library-id"`
	SubscribedContainerURL string `plist:"subscribed-container-url"`
	CloudArtworkToken      string `plist:"cloud-artwork-token"`
	CloudArtworkURL        string `plist:"cloud-artwork-url"`
	ExternalVendorName     string `plist:"external-vendor-display-name"`
}

func parseCollectionInfo(data []byte) (*CollectionInfo, error) {
	var raw rawCollectionInfo
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("collection info plist: %w", err)
	}

	info := &CollectionInfo{
		Description:            raw.Description,
		UUID:                   raw.UUID,
		VersionHash:            raw.VersionHash,
		UniversalLibraryID:     raw.UniversalLibraryID,
		SubscribedContainerURL: raw.SubscribedContainerURL,
		CloudArtworkToken:      raw.CloudArtworkToken,
		CloudArtworkURL:        raw.CloudArtworkURL,
		ExternalVendorName:     raw.ExternalVendorName,
	}
	if raw.OwnerName != "" {
		owner := &CollectionOwner{Name: raw.OwnerName}
		if raw.OwnerID != "" {
			id, err := strconv.ParseUint(raw.OwnerID, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("collection owner ID %q: %w", raw.OwnerID, err)
			}
			owner.ID = uint32(id)
		}
		info.Owner = owner
	}
	return info, nil
}

func parseTrackCloudInfo(data []byte) (*TrackCloudInfo, error) {
	var info TrackCloudInfo
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("track cloud info plist: %w", err)
	}
	return &info, nil
}

func parseCloudDownloadInfo(data []byte) (*CloudDownloadInfo, error) {
	var info CloudDownloadInfo
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("cloud download info plist: %w", err)
	}
	return &info, nil
}

// parseArtworkURL extracts the single "artwork-url" key some artist
// records carry.
func parseArtworkURL(data []byte) (string, error) {
	var raw struct {
		ArtworkURL string `plist:"artwork-url"`
	}
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("artwork URL plist: %w", err)
	}
	return raw.ArtworkURL, nil
}
