package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// compressionTransport wraps an http.RoundTripper to advertise and
// transparently decode gzip, brotli, and zstd response encodings. The
// thumbnail CDN serves brotli to browser-like User-Agents, so the outbound
// client has to be able to undo it before relaying image bytes.
type compressionTransport struct {
	base http.RoundTripper
}

// newCompressionTransport creates a transport that handles automatic decompression.
func newCompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &compressionTransport{base: base}
}

// RoundTrip executes a single HTTP transaction and decodes the response body
// according to its Content-Encoding header.
func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br, zstd")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	decoded, err := newDecoder(lastEncoding(resp.Header.Get("Content-Encoding")), resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	if decoded == nil {
		// Identity or unknown encoding, leave the response untouched.
		return resp, nil
	}

	resp.Body = &decodedBody{reader: decoded, original: resp.Body}
	// The encoding has been undone, so the original framing headers no longer apply.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	return resp, nil
}

// newDecoder returns a reader that decodes body for the given encoding, or
// nil when no decoding is needed or the encoding is not recognized.
func newDecoder(encoding string, body io.ReadCloser) (io.ReadCloser, error) {
	switch encoding {
	case "gzip":
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		return gz, nil
	case "br":
		return io.NopCloser(brotli.NewReader(body)), nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, nil
	}
}

// lastEncoding extracts the outermost encoding from a Content-Encoding
// header, which may be a comma-separated list. The last listed encoding was
// applied last and must be removed first.
func lastEncoding(header string) string {
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}

// decodedBody closes both the decoder and the underlying response body.
type decodedBody struct {
	reader   io.ReadCloser
	original io.ReadCloser
}

func (d *decodedBody) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

func (d *decodedBody) Close() error {
	readerErr := d.reader.Close()
	bodyErr := d.original.Close()
	if readerErr != nil {
		return readerErr
	}
	return bodyErr
}
