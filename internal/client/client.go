package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
)

// Resolver is the capability interface for the upstream platform: given a
// validated content reference it returns the full catalog snapshot for that
// content. Implementations must perform exactly one metadata call per
// invocation and no caching, because rendition URLs are short-lived and
// session-scoped.
type Resolver interface {
	Resolve(ctx context.Context, ref models.ContentReference) (*Resolution, error)
}

// StreamOpener opens the byte stream for the rendition identified by itag
// within a single catalog snapshot. It returns the stream and its total size
// in bytes when known (0 otherwise).
type StreamOpener func(ctx context.Context, itag int) (io.ReadCloser, int64, error)

// Resolution bundles a catalog snapshot with the means to open a rendition
// stream from that same snapshot. Stream URLs are only valid against the
// metadata they were resolved with, so the two travel together.
type Resolution struct {
	Info   models.ContentInfo
	opener StreamOpener
}

// NewResolution creates a Resolution from a snapshot and a stream opener.
func NewResolution(info models.ContentInfo, opener StreamOpener) *Resolution {
	return &Resolution{Info: info, opener: opener}
}

// OpenStream opens the upstream byte stream for the given rendition.
func (r *Resolution) OpenStream(ctx context.Context, rendition models.Rendition) (io.ReadCloser, int64, error) {
	return r.opener(ctx, rendition.Itag)
}

// Client resolves content against YouTube's internal metadata API.
type Client struct {
	yt youtube.Client
}

// New creates a Client backed by the given HTTP client. Pass a client built
// by NewHTTPClient so proxy and decompression settings apply.
func New(httpClient *http.Client) *Client {
	return &Client{
		yt: youtube.Client{HTTPClient: httpClient},
	}
}

// NewHTTPClient builds the outbound HTTP client used for all platform
// traffic: proxy support from config plus transparent response
// decompression. A zero timeout means no overall deadline, which the media
// stream path needs since large downloads run for minutes; callers bound
// those with a request context instead.
func NewHTTPClient(cfg *config.Config, timeout time.Duration) *http.Client {
	// Clone DefaultTransport to preserve its settings (timeouts, connection pooling, HTTP/2).
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: newCompressionTransport(baseTransport),
	}
}
