package models

// ContentReference is a validated identifier for a piece of content on the
// platform, derived from a raw watch-page URL. It is constructed per request
// by client.ParseReference and never persisted.
type ContentReference struct {
	VideoID string // the 11-character video identifier
	Raw     string // the URL exactly as the user supplied it
}

// Rendition is one available encoding of the content. The Itag is an opaque
// reference usable to open the rendition's byte stream within the same
// catalog snapshot.
type Rendition struct {
	Itag         int    `json:"itag"`
	MimeType     string `json:"mime_type"`
	QualityLabel string `json:"quality_label,omitempty"`
	HasAudio     bool   `json:"has_audio"`
	HasVideo     bool   `json:"has_video"`
	AudioBitrate int    `json:"audio_bitrate,omitempty"` // kbps, 0 when unknown
	Height       int    `json:"height,omitempty"`        // vertical pixels, 0 when unknown
}

// ThumbnailVariant is one preview image for the content. Quality is a tag
// from the platform's fixed vocabulary (maxresdefault, sddefault, ...),
// derived from the image URL.
type ThumbnailVariant struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

// ContentInfo is the catalog snapshot for one piece of content: its title
// plus every rendition and thumbnail variant available at resolve time.
// The snapshot is fetched atomically and treated as immutable for the
// lifetime of the request.
type ContentInfo struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Author     string             `json:"author,omitempty"`
	Renditions []Rendition        `json:"renditions"`
	Thumbnails []ThumbnailVariant `json:"thumbnails"`
}

// Image is a fetched preview image ready for delivery.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string // extension with leading dot, e.g. ".webp"
}
