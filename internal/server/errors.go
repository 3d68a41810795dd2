package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
)

// statusForError maps the application error taxonomy to an HTTP status code
// and the message exposed to the client. Internal detail stays in the logs.
func statusForError(err error) (int, string) {
	var (
		validationErr  *apperrors.ErrValidation
		referenceErr   *apperrors.ErrInvalidReference
		noRenditionErr *apperrors.ErrNoSuitableRendition
		notFoundErr    *apperrors.ErrNotFound
		unavailableErr *apperrors.ErrUnavailable
		upstreamErr    *apperrors.ErrUpstreamResolution
		streamErr      *apperrors.ErrStream
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.As(err, &referenceErr):
		return http.StatusBadRequest, "Invalid YouTube URL"
	case errors.As(err, &noRenditionErr):
		return http.StatusBadRequest, "No suitable format found"
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &unavailableErr):
		return http.StatusNotFound, "Video is unavailable"
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, "Failed to resolve video"
	case errors.As(err, &streamErr):
		return http.StatusBadGateway, "Failed to download video"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes the structured error body. It must only be called
// before any payload byte has been written.
func respondError(c *gin.Context, err error) {
	status, message := statusForError(err)
	logger := config.GetLogger()
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Request rejected")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
