package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/client"
)

// handleFormats lists the catalog snapshot for a video so clients can see
// which renditions and thumbnail variants a download request could target.
func (s *Server) handleFormats(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		respondError(c, apperrors.NewValidationError("URL is required"))
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
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resolution.Info)
}
