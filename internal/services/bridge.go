package services

import (
	"io"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/apperrors"
)

// relayBufferSize bounds the bytes held in process memory per in-flight
// relay. The copy only pulls more upstream data once the sink has accepted
// the previous window, so backpressure propagates naturally.
const relayBufferSize = 64 * 1024

// Relay copies the upstream media stream to the client sink until
// exhaustion. It never buffers more than relayBufferSize bytes at a time.
//
// On failure it returns an ErrStream carrying the number of bytes already
// delivered to the sink; the caller needs that count to decide whether a
// structured error response is still possible or the connection can only be
// truncated.
func Relay(sink io.Writer, source io.Reader) (int64, error) {
	buf := make([]byte, relayBufferSize)
	written, err := io.CopyBuffer(sink, source, buf)
	if err != nil {
		return written, apperrors.NewStreamError(written, err)
	}
	return written, nil
}
