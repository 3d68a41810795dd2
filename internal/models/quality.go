package models

import "strings"

// VideoQuality represents a named vertical-resolution target for video downloads
type VideoQuality int

const (
	QualityUnknown VideoQuality = iota
	Quality144p
	Quality240p
	Quality360p
	Quality480p
	Quality720p
	Quality1080p
	Quality1440p
	Quality2160p // 4K
)

// String returns the string representation of the quality
func (q VideoQuality) String() string {
	switch q {
	case Quality144p:
		return "144p"
	case Quality240p:
		return "240p"
	case Quality360p:
		return "360p"
	case Quality480p:
		return "480p"
	case Quality720p:
		return "720p"
	case Quality1080p:
		return "1080p"
	case Quality1440p:
		return "1440p"
	case Quality2160p:
		return "2160p"
	default:
		return "unknown"
	}
}

// Height returns the vertical resolution in pixels, or 0 for QualityUnknown
func (q VideoQuality) Height() int {
	switch q {
	case Quality144p:
		return 144
	case Quality240p:
		return 240
	case Quality360p:
		return 360
	case Quality480p:
		return 480
	case Quality720p:
		return 720
	case Quality1080p:
		return 1080
	case Quality1440p:
		return 1440
	case Quality2160p:
		return 2160
	default:
		return 0
	}
}

// ParseVideoQuality converts a quality string to a VideoQuality enum.
// Both the labeled form ("720p") and the bare number ("720") are accepted.
func ParseVideoQuality(qualityStr string) VideoQuality {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(qualityStr)), "p") {
	case "144":
		return Quality144p
	case "240":
		return Quality240p
	case "360":
		return Quality360p
	case "480":
		return Quality480p
	case "720":
		return Quality720p
	case "1080":
		return Quality1080p
	case "1440":
		return Quality1440p
	case "2160", "4k":
		return Quality2160p
	default:
		return QualityUnknown
	}
}

// MarshalJSON implements json.Marshaler interface
func (q VideoQuality) MarshalJSON() ([]byte, error) {
	return []byte(`"` + q.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (q *VideoQuality) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	*q = ParseVideoQuality(str)
	return nil
}
