package models

import (
	"fmt"
	"strings"
)

// AssetKind identifies which kind of payload a download request is asking for.
type AssetKind int

const (
	AssetUnknown AssetKind = iota
	AssetVideo
	AssetAudio
)

// String returns the string representation of the asset kind.
func (k AssetKind) String() string {
	switch k {
	case AssetVideo:
		return "video"
	case AssetAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// ContentType returns the MIME type used when delivering this kind of asset.
func (k AssetKind) ContentType() string {
	if k == AssetAudio {
		return "audio/mpeg"
	}
	return "video/mp4"
}

// Extension returns the file extension (with leading dot) for delivered files.
func (k AssetKind) Extension() string {
	if k == AssetAudio {
		return ".mp3"
	}
	return ".mp4"
}

// ParseAssetKind converts a format query parameter to an AssetKind.
func ParseAssetKind(s string) (AssetKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video":
		return AssetVideo, nil
	case "audio":
		return AssetAudio, nil
	default:
		return AssetUnknown, fmt.Errorf("unknown asset kind %q", s)
	}
}
