package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/client"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/metrics"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
)

// thumbnailCacheControl marks thumbnails as immutable for a year; a video's
// preview image never changes for a given URL.
const thumbnailCacheControl = "public, max-age=31536000"

// handleThumbnail serves the best preview image inline for in-browser display.
func (s *Server) handleThumbnail(c *gin.Context) {
	img, _, ok := s.resolveThumbnail(c)
	if !ok {
		return
	}

	c.Header("Cache-Control", thumbnailCacheControl)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "thumbnail"+img.Ext))
	c.Data(http.StatusOK, img.ContentType, img.Data)
	metrics.ThumbnailRequestsTotal.WithLabelValues("completed").Inc()
}

// handleThumbnailDownload serves the same image as a forced download with a
// filename derived from the content title.
func (s *Server) handleThumbnailDownload(c *gin.Context) {
	img, info, ok := s.resolveThumbnail(c)
	if !ok {
		return
	}

	filename := snakeTitle(info.Title) + "_thumbnail" + img.Ext
	c.Header("Cache-Control", thumbnailCacheControl)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, img.ContentType, img.Data)
	metrics.ThumbnailRequestsTotal.WithLabelValues("completed").Inc()
}

// resolveThumbnail runs the shared part of both thumbnail endpoints:
// validation, catalog resolution, variant selection, and the image fetch.
// The third return is false when an error response has already been written.
func (s *Server) resolveThumbnail(c *gin.Context) (*models.Image, models.ContentInfo, bool) {
	rawURL := c.Query("url")
	if rawURL == "" {
		respondError(c, apperrors.NewValidationError("URL is required"))
		return nil, models.ContentInfo{}, false
	}

	ref, err := client.ParseReference(rawURL)
	if err != nil {
		respondError(c, err)
		return nil, models.ContentInfo{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.ceiling)
	defer cancel()

	resolution, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		metrics.ThumbnailRequestsTotal.WithLabelValues("resolve_failed").Inc()
		respondError(c, err)
		return nil, models.ContentInfo{}, false
	}

	img, err := s.thumbnails.Fetch(ctx, resolution.Info.Thumbnails)
	if err != nil {
		metrics.ThumbnailRequestsTotal.WithLabelValues("fetch_failed").Inc()
		respondError(c, err)
		return nil, models.ContentInfo{}, false
	}

	return img, resolution.Info, true
}
