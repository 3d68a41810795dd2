package client

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
)

// Resolve fetches the catalog snapshot for the referenced content: title,
// every available rendition, and every thumbnail variant. It performs exactly
// one metadata call against the platform.
func (c *Client) Resolve(ctx context.Context, ref models.ContentReference) (*Resolution, error) {
	logger := config.GetLogger()

	video, err := c.yt.GetVideoContext(ctx, ref.Raw)
	if err != nil {
		return nil, mapResolveError(ref, err)
	}

	info := models.ContentInfo{
		ID:         video.ID,
		Title:      video.Title,
		Author:     video.Author,
		Renditions: toRenditions(video.Formats),
		Thumbnails: toThumbnailVariants(video.Thumbnails),
	}

	logger.Debug().
		Str("videoID", video.ID).
		Int("renditions", len(info.Renditions)).
		Int("thumbnails", len(info.Thumbnails)).
		Msg("Resolved catalog snapshot")

	opener := func(ctx context.Context, itag int) (io.ReadCloser, int64, error) {
		for i := range video.Formats {
			if video.Formats[i].ItagNo == itag {
				stream, size, err := c.yt.GetStreamContext(ctx, video, &video.Formats[i])
				if err != nil {
					return nil, 0, apperrors.NewUpstreamResolutionError(video.ID, err)
				}
				return stream, size, nil
			}
		}
		return nil, 0, apperrors.NewNotFoundError("rendition", itag)
	}

	return NewResolution(info, opener), nil
}

// toRenditions converts the platform's format list into the catalog's
// rendition model, preserving the upstream ordering. That ordering is the
// tie-breaker during selection, so it must survive the conversion.
func toRenditions(formats youtube.FormatList) []models.Rendition {
	renditions := make([]models.Rendition, 0, len(formats))
	for _, f := range formats {
		renditions = append(renditions, models.Rendition{
			Itag:         f.ItagNo,
			MimeType:     f.MimeType,
			QualityLabel: f.QualityLabel,
			HasAudio:     f.AudioChannels > 0,
			HasVideo:     f.Width > 0 || f.Height > 0,
			AudioBitrate: audioBitrateKbps(f),
			Height:       f.Height,
		})
	}
	return renditions
}

// audioBitrateKbps normalizes the format bitrate to kbps. The platform
// reports bits per second, preferring the average when present.
func audioBitrateKbps(f youtube.Format) int {
	if f.AudioChannels == 0 {
		return 0
	}
	bitrate := f.Bitrate
	if f.AverageBitrate > 0 {
		bitrate = f.AverageBitrate
	}
	return bitrate / 1000
}

// toThumbnailVariants converts the platform's thumbnail list, deriving the
// quality tag from the image URL's base name (e.g. ".../maxresdefault.jpg").
// Upstream orders variants smallest first, so the last entry is the safe
// fallback when no tag from the preference vocabulary matches.
func toThumbnailVariants(thumbnails youtube.Thumbnails) []models.ThumbnailVariant {
	variants := make([]models.ThumbnailVariant, 0, len(thumbnails))
	for _, t := range thumbnails {
		variants = append(variants, models.ThumbnailVariant{
			Quality: thumbnailQualityTag(t.URL),
			URL:     t.URL,
		})
	}
	return variants
}

// thumbnailQualityTag extracts the quality tag from a thumbnail URL.
func thumbnailQualityTag(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(parsed.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

// mapResolveError translates the platform library's error surface into the
// application taxonomy.
func mapResolveError(ref models.ContentReference, err error) error {
	switch {
	case errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrLoginRequired),
		errors.Is(err, youtube.ErrNotPlayableInEmbed):
		return apperrors.NewUnavailableError(ref.VideoID, err.Error())
	case errors.Is(err, youtube.ErrInvalidCharactersInVideoID),
		errors.Is(err, youtube.ErrVideoIDMinLength):
		return apperrors.NewInvalidReferenceError(ref.Raw, err)
	}

	var statusErr *youtube.ErrPlayabiltyStatus
	if errors.As(err, &statusErr) {
		return apperrors.NewUnavailableError(ref.VideoID, statusErr.Reason)
	}

	return apperrors.NewUpstreamResolutionError(ref.VideoID, err)
}
