package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/cache"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
)

// thumbnailQualityOrder is the platform's thumbnail quality vocabulary,
// most-preferred first.
var thumbnailQualityOrder = []string{
	"maxresdefault",
	"sddefault",
	"hqdefault",
	"mqdefault",
	"default",
}

// maxThumbnailBytes caps a fetched image. Thumbnails top out well under 1MB;
// anything bigger means we are not talking to the image CDN.
const maxThumbnailBytes = 8 * 1024 * 1024

// PickThumbnailVariant scans the snapshot for the first variant matching the
// quality vocabulary in preference order. When no named quality matches it
// falls back to the last snapshot entry, which upstream ordering puts at the
// highest quality. Returns false only for an empty snapshot.
func PickThumbnailVariant(variants []models.ThumbnailVariant) (models.ThumbnailVariant, bool) {
	for _, quality := range thumbnailQualityOrder {
		for _, v := range variants {
			if v.Quality == quality {
				return v, true
			}
		}
	}
	if len(variants) > 0 {
		return variants[len(variants)-1], true
	}
	return models.ThumbnailVariant{}, false
}

// ThumbnailResolver picks the best preview image variant for a piece of
// content and fetches its bytes, preferring the WebP encoding when the CDN
// has one. Fetched images are cached by URL; they are immutable, so a long
// TTL is safe.
type ThumbnailResolver struct {
	httpClient *http.Client
	cache      cache.Cache
	userAgent  string
	retry      retrypolicy.RetryPolicy[*models.Image]
}

// NewThumbnailResolver creates a ThumbnailResolver. The cache may be nil to
// disable caching.
func NewThumbnailResolver(httpClient *http.Client, imageCache cache.Cache, userAgent string) *ThumbnailResolver {
	retry := retrypolicy.NewBuilder[*models.Image]().
		HandleIf(func(_ *models.Image, err error) bool {
			// Missing encodings must fail fast so the fallback candidate
			// gets tried; only transient fetch errors are worth retrying.
			return err != nil && !isStatusError(err)
		}).
		WithBackoff(500*time.Millisecond, 5*time.Second).
		WithMaxRetries(2).
		Build()

	return &ThumbnailResolver{
		httpClient: httpClient,
		cache:      imageCache,
		userAgent:  userAgent,
		retry:      retry,
	}
}

// Fetch resolves the preview image for the given snapshot: picks the best
// variant, then downloads it, trying the WebP form of a JPEG URL first and
// falling back to the native encoding when the substituted form does not
// exist. The fallback is verified by the actual fetch, never assumed.
func (t *ThumbnailResolver) Fetch(ctx context.Context, variants []models.ThumbnailVariant) (*models.Image, error) {
	logger := config.GetLogger()

	variant, ok := PickThumbnailVariant(variants)
	if !ok {
		return nil, apperrors.NewNotFoundError("thumbnail", nil)
	}

	var lastErr error
	for _, candidate := range candidateURLs(variant.URL) {
		if img, ok := t.cached(candidate); ok {
			return img, nil
		}

		img, err := failsafe.With[*models.Image](t.retry).
			WithContext(ctx).
			Get(func() (*models.Image, error) {
				return t.fetchImage(ctx, candidate)
			})
		if err != nil {
			logger.Debug().Err(err).Str("url", candidate).Msg("Thumbnail candidate fetch failed")
			lastErr = err
			continue
		}

		t.store(candidate, img)
		return img, nil
	}

	return nil, fmt.Errorf("thumbnail fetch failed for %s: %w", variant.URL, lastErr)
}

// candidateURLs orders the URLs to try for a variant: the WebP substitution
// of a JPEG URL first, then the native form.
func candidateURLs(rawURL string) []string {
	if strings.HasSuffix(rawURL, ".jpg") {
		return []string{strings.TrimSuffix(rawURL, ".jpg") + ".webp", rawURL}
	}
	return []string{rawURL}
}

// fetchImage downloads one candidate URL. Browser-like headers keep the CDN
// serving the same bytes it would serve the watch page.
func (t *ThumbnailResolver) fetchImage(ctx context.Context, rawURL string) (*models.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Referer", "https://www.youtube.com/")
	req.Header.Set("Origin", "https://www.youtube.com")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, url: rawURL}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxThumbnailBytes))
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeForURL(rawURL)
	}

	return &models.Image{
		Data:        data,
		ContentType: contentType,
		Ext:         extensionForContentType(contentType),
	}, nil
}

func (t *ThumbnailResolver) cached(url string) (*models.Image, bool) {
	if t.cache == nil {
		return nil, false
	}
	raw, ok := t.cache.Get(url)
	if !ok {
		return nil, false
	}
	img, err := decodeCachedImage(raw)
	if err != nil {
		return nil, false
	}
	return img, true
}

func (t *ThumbnailResolver) store(url string, img *models.Image) {
	if t.cache == nil {
		return
	}
	t.cache.Set(url, encodeCachedImage(img))
}

// Cache entries are the content type, a newline, then the raw image bytes.

func encodeCachedImage(img *models.Image) []byte {
	buf := make([]byte, 0, len(img.ContentType)+1+len(img.Data))
	buf = append(buf, img.ContentType...)
	buf = append(buf, '\n')
	return append(buf, img.Data...)
}

func decodeCachedImage(raw []byte) (*models.Image, error) {
	sep := bytes.IndexByte(raw, '\n')
	if sep < 0 {
		return nil, fmt.Errorf("malformed cached image entry")
	}
	contentType := string(raw[:sep])
	return &models.Image{
		Data:        raw[sep+1:],
		ContentType: contentType,
		Ext:         extensionForContentType(contentType),
	}, nil
}

// statusError marks a non-2xx CDN response so the retry policy knows not to
// bother retrying it.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.code, e.url)
}

func isStatusError(err error) bool {
	_, ok := err.(*statusError)
	return ok
}

func contentTypeForURL(rawURL string) string {
	switch {
	case strings.HasSuffix(rawURL, ".webp"):
		return "image/webp"
	case strings.HasSuffix(rawURL, ".png"):
		return "image/png"
	default:
		return "image/jpeg"
	}
}

func extensionForContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "webp"):
		return ".webp"
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	default:
		return ".img"
	}
}
