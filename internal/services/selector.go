package services

import (
	"strconv"
	"strings"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
)

// HighestQuality is the sentinel quality hint asking for the best available
// rendition instead of a numeric target.
const HighestQuality = "highest"

// SelectRendition picks the single best rendition for the requested asset
// kind and quality hint. It is pure and deterministic: the same snapshot and
// hint always yield the same rendition.
//
// Audio requests only consider renditions carrying audio and no video; video
// requests require both capabilities. There is no muted-video fallback: an
// empty filtered set fails with ErrNoSuitableRendition even when other
// renditions exist.
//
// With the "highest" hint the rendition with the greatest metric wins (audio
// bitrate for audio, vertical resolution for video). With a numeric hint the
// rendition closest to the target wins. Ties keep the earliest rendition in
// catalog order. A hint that is neither "highest" nor parseable is treated
// as "highest".
func SelectRendition(renditions []models.Rendition, kind models.AssetKind, hint string) (models.Rendition, error) {
	var candidates []models.Rendition
	for _, r := range renditions {
		if matchesKind(r, kind) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return models.Rendition{}, apperrors.NewNoSuitableRenditionError(kind.String())
	}

	target, numeric := parseQualityTarget(kind, hint)

	best := candidates[0]
	for _, c := range candidates[1:] {
		if numeric {
			if distance(metric(c, kind), target) < distance(metric(best, kind), target) {
				best = c
			}
		} else if metric(c, kind) > metric(best, kind) {
			best = c
		}
	}
	return best, nil
}

// matchesKind is the capability filter: audio wants audio-only renditions,
// video wants muxed audio+video ones.
func matchesKind(r models.Rendition, kind models.AssetKind) bool {
	switch kind {
	case models.AssetAudio:
		return r.HasAudio && !r.HasVideo
	case models.AssetVideo:
		return r.HasAudio && r.HasVideo
	default:
		return false
	}
}

// metric returns the comparable quality number for a rendition under the
// given kind: audio bitrate in kbps, or vertical resolution in pixels.
func metric(r models.Rendition, kind models.AssetKind) int {
	if kind == models.AssetAudio {
		return r.AudioBitrate
	}
	return r.Height
}

// parseQualityTarget interprets the quality hint. The second return is false
// when the hint asks for (or falls back to) the highest quality.
func parseQualityTarget(kind models.AssetKind, hint string) (int, bool) {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" || hint == HighestQuality {
		return 0, false
	}

	if kind == models.AssetVideo {
		if q := models.ParseVideoQuality(hint); q != models.QualityUnknown {
			return q.Height(), true
		}
		return 0, false
	}

	if kbps, err := strconv.Atoi(strings.TrimSuffix(hint, "kbps")); err == nil && kbps > 0 {
		return kbps, true
	}
	return 0, false
}

func distance(value, target int) int {
	if value > target {
		return value - target
	}
	return target - value
}
