package client

import (
	"net/url"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
)

// watchHosts are the hostnames accepted as YouTube watch-page URLs,
// checked after stripping a leading "www.".
var watchHosts = map[string]bool{
	"youtube.com":          true,
	"m.youtube.com":        true,
	"music.youtube.com":    true,
	"youtu.be":             true,
	"youtube-nocookie.com": true,
}

// ParseReference validates a raw watch-page URL and extracts the video
// identifier from it. Validation is purely syntactic: no network call is
// made, so malformed input is rejected before anything upstream is touched.
func ParseReference(raw string) (models.ContentReference, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.ContentReference{}, apperrors.NewInvalidReferenceError(raw, nil)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return models.ContentReference{}, apperrors.NewInvalidReferenceError(raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return models.ContentReference{}, apperrors.NewInvalidReferenceError(raw, nil)
	}
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if !watchHosts[host] {
		return models.ContentReference{}, apperrors.NewInvalidReferenceError(raw, nil)
	}

	videoID, err := youtube.ExtractVideoID(trimmed)
	if err != nil {
		return models.ContentReference{}, apperrors.NewInvalidReferenceError(raw, err)
	}

	return models.ContentReference{VideoID: videoID, Raw: trimmed}, nil
}
