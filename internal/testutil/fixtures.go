package testutil

import (
	"context"
	"io"
	"strings"
	"sync/atomic"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/client"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/models"
)

// FakeResolver is a deterministic client.Resolver double. It counts Resolve
// calls so tests can assert that validation failures never reach the
// upstream.
type FakeResolver struct {
	Info   models.ContentInfo
	Opener client.StreamOpener
	Err    error

	calls atomic.Int32
}

// Resolve returns the canned resolution or error.
func (f *FakeResolver) Resolve(_ context.Context, _ models.ContentReference) (*client.Resolution, error) {
	f.calls.Add(1)
	if f.Err != nil {
		return nil, f.Err
	}
	opener := f.Opener
	if opener == nil {
		opener = func(context.Context, int) (io.ReadCloser, int64, error) {
			return io.NopCloser(strings.NewReader("")), 0, nil
		}
	}
	return client.NewResolution(f.Info, opener), nil
}

// Calls reports how many times Resolve was invoked.
func (f *FakeResolver) Calls() int {
	return int(f.calls.Load())
}

// StaticStream returns a StreamOpener that always serves the given payload
// and reports its length.
func StaticStream(payload string) client.StreamOpener {
	return func(context.Context, int) (io.ReadCloser, int64, error) {
		return io.NopCloser(strings.NewReader(payload)), int64(len(payload)), nil
	}
}

// BrokenStream returns a StreamOpener whose stream yields prefix bytes and
// then fails with failure, claiming totalSize bytes up front. It reproduces
// an upstream connection dying mid-transfer.
func BrokenStream(prefix string, totalSize int64, failure error) client.StreamOpener {
	return func(context.Context, int) (io.ReadCloser, int64, error) {
		return io.NopCloser(&failingReader{
			inner: strings.NewReader(prefix),
			err:   failure,
		}), totalSize, nil
	}
}

// failingReader serves its inner reader to exhaustion and then returns err
// instead of io.EOF.
type failingReader struct {
	inner io.Reader
	err   error
}

func (r *failingReader) Read(p []byte) (int, error) {
	n, err := r.inner.Read(p)
	if err == io.EOF {
		return n, r.err
	}
	return n, err
}

// AudioRendition builds an audio-only rendition fixture.
func AudioRendition(itag, kbps int) models.Rendition {
	return models.Rendition{
		Itag:         itag,
		MimeType:     `audio/mp4; codecs="mp4a.40.2"`,
		HasAudio:     true,
		AudioBitrate: kbps,
	}
}

// VideoRendition builds a muxed audio+video rendition fixture.
func VideoRendition(itag, height int) models.Rendition {
	return models.Rendition{
		Itag:     itag,
		MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`,
		HasAudio: true,
		HasVideo: true,
		Height:   height,
	}
}

// MutedRendition builds a video-only rendition fixture, which no asset kind
// should ever select.
func MutedRendition(itag, height int) models.Rendition {
	return models.Rendition{
		Itag:     itag,
		MimeType: `video/mp4; codecs="avc1.4d401f"`,
		HasVideo: true,
		Height:   height,
	}
}
