package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/client"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/metrics"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/services"
)

// handleDownload delivers the selected media rendition as an attachment.
//
// The request proceeds through strict stages: validate input, fetch the
// catalog snapshot, select a rendition, open its stream, stage response
// headers, then relay. The first relayed byte commits the framing; until
// then any failure is still reportable as a structured error, and after
// it the only failure mode left is truncating the connection.
func (s *Server) handleDownload(c *gin.Context) {
	logger := config.GetLogger()

	rawURL := c.Query("url")
	format := c.Query("format")
	if rawURL == "" || format == "" {
		respondError(c, apperrors.NewValidationError("Missing required parameters"))
		return
	}

	kind, err := models.ParseAssetKind(format)
	if err != nil {
		respondError(c, apperrors.NewValidationError("Invalid format parameter"))
		return
	}

	ref, err := client.ParseReference(rawURL)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.ceiling)
	defer cancel()

	resolution, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues(kind.String(), "resolve_failed").Inc()
		respondError(c, err)
		return
	}

	rendition, err := services.SelectRendition(resolution.Info.Renditions, kind, c.Query("quality"))
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues(kind.String(), "no_rendition").Inc()
		respondError(c, err)
		return
	}

	stream, size, err := resolution.OpenStream(ctx, rendition)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues(kind.String(), "open_failed").Inc()
		respondError(c, err)
		return
	}
	defer stream.Close()

	logger.Info().
		Str("videoID", ref.VideoID).
		Str("kind", kind.String()).
		Int("itag", rendition.Itag).
		Int64("size", size).
		Msg("Streaming download")

	// Stage the attachment framing. The headers go on the wire with the
	// first relayed byte, not before: a stream that dies without producing
	// any payload must still be reportable as a structured error.
	filename := sanitizeTitle(resolution.Info.Title) + kind.Extension()
	c.Header("Content-Type", kind.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if size > 0 {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}

	written, err := services.Relay(c.Writer, stream)
	metrics.BytesRelayedTotal.WithLabelValues(kind.String()).Add(float64(written))
	if err != nil {
		s.abortStream(c, ctx, kind, ref.VideoID, written, err)
		return
	}

	metrics.DownloadsTotal.WithLabelValues(kind.String(), "completed").Inc()
}

// abortStream handles a relay failure. Before the first payload byte the
// framing can be withdrawn and the failure reported as a structured error;
// after it the status code is on the wire and the client can only be
// signalled by truncation: log, count, and abort the connection without
// writing anything further.
func (s *Server) abortStream(c *gin.Context, ctx context.Context, kind models.AssetKind, videoID string, written int64, err error) {
	logger := config.GetLogger()

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		// The client went away or the request ceiling expired; there is
		// nobody left to signal.
		logger.Debug().
			Str("videoID", videoID).
			Int64("bytesSent", written).
			AnErr("cause", ctx.Err()).
			Msg("Download cancelled mid-stream")
		metrics.DownloadsTotal.WithLabelValues(kind.String(), "cancelled").Inc()
		return
	}

	if written == 0 && !c.Writer.Written() {
		// Nothing reached the wire. Withdraw the attachment framing and
		// answer with the structured error body instead.
		c.Writer.Header().Del("Content-Type")
		c.Writer.Header().Del("Content-Disposition")
		c.Writer.Header().Del("Content-Length")
		metrics.DownloadsTotal.WithLabelValues(kind.String(), "stream_failed").Inc()
		respondError(c, err)
		return
	}

	logger.Error().Err(err).
		Str("videoID", videoID).
		Int64("bytesSent", written).
		Msg("Upstream stream failed mid-relay, truncating response")
	metrics.DownloadsTotal.WithLabelValues(kind.String(), "aborted").Inc()

	// Push the committed status and any buffered payload to the wire, then
	// let net/http abort the connection on this panic. Against the declared
	// Content-Length the short body is the only in-protocol way left to
	// tell the client the payload is incomplete.
	c.Writer.Flush()
	panic(http.ErrAbortHandler)
}
