package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/services"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/testutil"
)

// newThumbnailFixture wires a fake CDN, a resolver whose snapshot points at
// it, and a Server using both.
func newThumbnailFixture(t *testing.T, title string) (*Server, *httptest.Server) {
	t.Helper()

	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".webp") {
			w.Header().Set("Content-Type", "image/webp")
			_, _ = w.Write([]byte("webp-bytes"))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(cdn.Close)

	resolver := &testutil.FakeResolver{
		Info: models.ContentInfo{
			Title: title,
			Thumbnails: []models.ThumbnailVariant{
				{Quality: "default", URL: cdn.URL + "/vi/abc/default.jpg"},
				{Quality: "maxresdefault", URL: cdn.URL + "/vi/abc/maxresdefault.jpg"},
			},
		},
	}

	thumbnails := services.NewThumbnailResolver(cdn.Client(), nil, config.DefaultUserAgent)
	return New(resolver, thumbnails, time.Minute), cdn
}

func TestHandleThumbnail_Inline(t *testing.T) {
	srv, _ := newThumbnailFixture(t, "Some Video")
	router := srv.Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thumbnail?url="+watchURL, nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/webp" {
		t.Errorf("Content-Type = %q, want image/webp", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=31536000" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `inline; filename="thumbnail.webp"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Body.String() != "webp-bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHandleThumbnailDownload_Attachment(t *testing.T) {
	srv, _ := newThumbnailFixture(t, "My Great Video!")
	router := srv.Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download-thumbnail?url="+watchURL, nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="my_great_video__thumbnail.webp"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestHandleThumbnail_MissingURL(t *testing.T) {
	srv, _ := newThumbnailFixture(t, "Video")
	router := srv.Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thumbnail", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if msg := errorBody(t, rec.Body); msg != "URL is required" {
		t.Errorf("error = %q, want %q", msg, "URL is required")
	}
}

func TestHandleThumbnail_EmptySnapshotIs404(t *testing.T) {
	resolver := &testutil.FakeResolver{
		Info: models.ContentInfo{Title: "Video"},
	}
	thumbnails := services.NewThumbnailResolver(http.DefaultClient, nil, config.DefaultUserAgent)
	router := New(resolver, thumbnails, time.Minute).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/thumbnail?url="+watchURL, nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
