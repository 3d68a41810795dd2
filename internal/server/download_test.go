package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/services"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/testutil"
)

const watchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func newTestServer(resolver *testutil.FakeResolver) *Server {
	thumbnails := services.NewThumbnailResolver(http.DefaultClient, nil, config.DefaultUserAgent)
	return New(resolver, thumbnails, time.Minute)
}

func errorBody(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("error body is not valid JSON: %v", err)
	}
	return payload.Error
}

func TestHandleDownload_MissingParameters(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no url", "format=audio"},
		{"no format", "url=" + watchURL},
		{"nothing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &testutil.FakeResolver{}
			router := newTestServer(resolver).Router()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/download?"+tt.query, nil)
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if msg := errorBody(t, rec.Body); msg == "" {
				t.Error("error body missing message")
			}
			if resolver.Calls() != 0 {
				t.Errorf("resolver called %d times for invalid input, want 0", resolver.Calls())
			}
		})
	}
}

func TestHandleDownload_InvalidURLMakesNoUpstreamCall(t *testing.T) {
	resolver := &testutil.FakeResolver{}
	router := newTestServer(resolver).Router()

	for _, raw := range []string{
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"not-a-url",
		"ftp://youtube.com/watch?v=dQw4w9WgXcQ",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/download?format=video&url="+raw, nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status for %q = %d, want 400", raw, rec.Code)
		}
		if msg := errorBody(t, rec.Body); msg != "Invalid YouTube URL" {
			t.Errorf("error for %q = %q, want %q", raw, msg, "Invalid YouTube URL")
		}
	}

	if resolver.Calls() != 0 {
		t.Errorf("resolver called %d times for invalid URLs, want 0", resolver.Calls())
	}
}

func TestHandleDownload_NoSuitableRendition(t *testing.T) {
	resolver := &testutil.FakeResolver{
		Info: models.ContentInfo{
			Title: "Video",
			Renditions: []models.Rendition{
				testutil.MutedRendition(20, 1080),
			},
		},
	}
	router := newTestServer(resolver).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download?format=audio&quality=highest&url="+watchURL, nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if msg := errorBody(t, rec.Body); msg != "No suitable format found" {
		t.Errorf("error = %q, want %q", msg, "No suitable format found")
	}
}

func TestHandleDownload_ResolveFailureTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"upstream failure", apperrors.NewUpstreamResolutionError("dQw4w9WgXcQ", errors.New("boom")), http.StatusBadGateway},
		{"unavailable content", apperrors.NewUnavailableError("dQw4w9WgXcQ", "private"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &testutil.FakeResolver{Err: tt.err}
			router := newTestServer(resolver).Router()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/download?format=video&url="+watchURL, nil)
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleDownload_SuccessfulStream(t *testing.T) {
	payload := strings.Repeat("media", 1000)
	resolver := &testutil.FakeResolver{
		Info: models.ContentInfo{
			Title: `My: "Video" <Title>?`,
			Renditions: []models.Rendition{
				testutil.AudioRendition(140, 128),
			},
		},
		Opener: testutil.StaticStream(payload),
	}
	router := newTestServer(resolver).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download?format=audio&quality=highest&url="+watchURL, nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("Content-Type = %q, want audio/mpeg", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="My Video Title.mp3"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if cl := rec.Header().Get("Content-Length"); cl != "5000" {
		t.Errorf("Content-Length = %q, want 5000", cl)
	}
	if rec.Body.String() != payload {
		t.Error("body differs from upstream payload")
	}
}

func TestHandleDownload_VideoContentType(t *testing.T) {
	resolver := &testutil.FakeResolver{
		Info: models.ContentInfo{
			Title: "Clip",
			Renditions: []models.Rendition{
				testutil.VideoRendition(22, 720),
			},
		},
		Opener: testutil.StaticStream("bytes"),
	}
	router := newTestServer(resolver).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download?format=video&quality=720p&url="+watchURL, nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "video/mp4" {
		t.Errorf("Content-Type = %q, want video/mp4", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Clip.mp4"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestHandleDownload_StreamFailureBeforeFirstByte(t *testing.T) {
	resolver := &testutil.FakeResolver{
		Info: models.ContentInfo{
			Title: "Video",
			Renditions: []models.Rendition{
				testutil.AudioRendition(140, 128),
			},
		},
		// Opens fine, dies on the very first read.
		Opener: testutil.BrokenStream("", 1000, errors.New("upstream reset")),
	}
	router := newTestServer(resolver).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download?format=audio&url="+watchURL, nil)
	router.ServeHTTP(rec, req)

	// No payload byte went out, so the framing is withdrawn and the
	// failure reported as a structured error.
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if msg := errorBody(t, rec.Body); msg != "Failed to download video" {
		t.Errorf("error = %q, want %q", msg, "Failed to download video")
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "" {
		t.Errorf("Content-Disposition = %q, want attachment framing withdrawn", cd)
	}
	if cl := rec.Header().Get("Content-Length"); cl == "1000" {
		t.Error("declared media Content-Length survived into the error response")
	}
}

func TestHandleDownload_MidStreamFailureTruncates(t *testing.T) {
	resolver := &testutil.FakeResolver{
		Info: models.ContentInfo{
			Title: "Video",
			Renditions: []models.Rendition{
				testutil.AudioRendition(140, 128),
			},
		},
		// Claims 1000 bytes, dies after 10.
		Opener: testutil.BrokenStream("0123456789", 1000, errors.New("upstream reset")),
	}

	ts := httptest.NewServer(newTestServer(resolver).Router())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/download?format=audio&url=" + watchURL)
	if err != nil {
		t.Fatalf("request failed before headers: %v", err)
	}
	defer resp.Body.Close()

	// Headers were committed before the failure, so the status is 200.
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr == nil {
		t.Error("expected a truncated body read error, got clean EOF")
	}
	if len(body) >= 1000 {
		t.Errorf("body length %d, want truncation well below the declared 1000", len(body))
	}
	// No error JSON may be appended after the payload bytes.
	if strings.Contains(string(body), `"error"`) {
		t.Errorf("truncated body contains an error payload: %q", body)
	}
}
