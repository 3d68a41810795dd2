package apperrors

import "fmt"

// ErrValidation represents bad or missing request input. No network call has
// been made when this error is returned.
type ErrValidation struct {
	Message string
}

// Error implements the error interface.
func (e *ErrValidation) Error() string {
	return e.Message
}

// Is allows for error checking with errors.Is().
func (e *ErrValidation) Is(target error) bool {
	_, ok := target.(*ErrValidation)
	return ok
}

// NewValidationError creates a new ErrValidation.
func NewValidationError(message string) *ErrValidation {
	return &ErrValidation{Message: message}
}

// ErrInvalidReference is returned when a URL does not match the platform's
// content-URL grammar.
type ErrInvalidReference struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrInvalidReference) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid content URL %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("invalid content URL %q", e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidReference) Is(target error) bool {
	_, ok := target.(*ErrInvalidReference)
	return ok
}

// Unwrap returns the underlying cause, if any.
func (e *ErrInvalidReference) Unwrap() error {
	return e.Err
}

// NewInvalidReferenceError creates a new ErrInvalidReference.
func NewInvalidReferenceError(url string, err error) *ErrInvalidReference {
	return &ErrInvalidReference{URL: url, Err: err}
}

// ErrUpstreamResolution is returned when the upstream metadata fetch failed
// or returned unparseable data.
type ErrUpstreamResolution struct {
	VideoID string
	Err     error
}

// Error implements the error interface.
func (e *ErrUpstreamResolution) Error() string {
	return fmt.Sprintf("upstream resolution failed for %s: %v", e.VideoID, e.Err)
}

// Is allows for error checking with errors.Is().
func (e *ErrUpstreamResolution) Is(target error) bool {
	_, ok := target.(*ErrUpstreamResolution)
	return ok
}

// Unwrap returns the underlying cause.
func (e *ErrUpstreamResolution) Unwrap() error {
	return e.Err
}

// NewUpstreamResolutionError creates a new ErrUpstreamResolution.
func NewUpstreamResolutionError(videoID string, err error) *ErrUpstreamResolution {
	return &ErrUpstreamResolution{VideoID: videoID, Err: err}
}

// ErrUnavailable is returned when the content exists but is not resolvable,
// typically because it is private or has been removed.
type ErrUnavailable struct {
	VideoID string
	Reason  string
}

// Error implements the error interface.
func (e *ErrUnavailable) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("content %s is unavailable: %s", e.VideoID, e.Reason)
	}
	return fmt.Sprintf("content %s is unavailable", e.VideoID)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnavailable) Is(target error) bool {
	_, ok := target.(*ErrUnavailable)
	return ok
}

// NewUnavailableError creates a new ErrUnavailable.
func NewUnavailableError(videoID, reason string) *ErrUnavailable {
	return &ErrUnavailable{VideoID: videoID, Reason: reason}
}

// ErrNoSuitableRendition is returned when resolution succeeded but no
// rendition passed the capability filter for the requested asset kind.
type ErrNoSuitableRendition struct {
	Kind string
}

// Error implements the error interface.
func (e *ErrNoSuitableRendition) Error() string {
	return fmt.Sprintf("no suitable %s format found", e.Kind)
}

// Is allows for error checking with errors.Is().
func (e *ErrNoSuitableRendition) Is(target error) bool {
	_, ok := target.(*ErrNoSuitableRendition)
	return ok
}

// NewNoSuitableRenditionError creates a new ErrNoSuitableRendition.
func NewNoSuitableRenditionError(kind string) *ErrNoSuitableRendition {
	return &ErrNoSuitableRendition{Kind: kind}
}

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s for %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{Resource: resource, ID: id}
}

// ErrStream is returned when the upstream byte stream fails during relay.
// BytesSent distinguishes a pre-flush failure (0, still reportable to the
// client as a structured error) from a post-flush one (>0, the response can
// only be truncated).
type ErrStream struct {
	BytesSent int64
	Err       error
}

// Error implements the error interface.
func (e *ErrStream) Error() string {
	return fmt.Sprintf("stream failed after %d bytes: %v", e.BytesSent, e.Err)
}

// Is allows for error checking with errors.Is().
func (e *ErrStream) Is(target error) bool {
	_, ok := target.(*ErrStream)
	return ok
}

// Unwrap returns the underlying cause.
func (e *ErrStream) Unwrap() error {
	return e.Err
}

// NewStreamError creates a new ErrStream.
func NewStreamError(bytesSent int64, err error) *ErrStream {
	return &ErrStream{BytesSent: bytesSent, Err: err}
}
