package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/client"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/services"
)

// Server exposes the media delivery HTTP API.
type Server struct {
	resolver   client.Resolver
	thumbnails *services.ThumbnailResolver
	ceiling    time.Duration // upper bound for one whole download request
}

// New creates a Server. The ceiling bounds a complete request (catalog fetch
// plus relay) and should be generous: large media legitimately streams for
// minutes.
func New(resolver client.Resolver, thumbnails *services.ThumbnailResolver, ceiling time.Duration) *Server {
	return &Server{
		resolver:   resolver,
		thumbnails: thumbnails,
		ceiling:    ceiling,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(recovery())
	engine.Use(cors())

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/formats", s.handleFormats)
	engine.GET("/download", s.handleDownload)
	engine.GET("/thumbnail", s.handleThumbnail)
	engine.GET("/download-thumbnail", s.handleThumbnailDownload)

	return engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// recovery turns panics into 500 responses, except http.ErrAbortHandler
// which must keep propagating so net/http tears the connection down. That
// panic is how a mid-stream failure truncates a response whose headers are
// already on the wire.
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(err)
				}
				logger := config.GetLogger()
				logger.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				} else {
					c.Abort()
				}
			}
		}()
		c.Next()
	}
}

// cors allows the browser frontend, served from a different origin, to call
// the API. The tool is single-tenant and unauthenticated, so a wildcard is
// appropriate.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
