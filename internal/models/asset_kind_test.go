package models

import "testing"

func TestParseAssetKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AssetKind
		wantErr bool
	}{
		{"audio", "audio", AssetAudio, false},
		{"video", "video", AssetVideo, false},
		{"uppercase", "AUDIO", AssetAudio, false},
		{"surrounding whitespace", " video ", AssetVideo, false},
		{"empty", "", AssetUnknown, true},
		{"unknown word", "subtitles", AssetUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAssetKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAssetKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAssetKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAssetKindDelivery(t *testing.T) {
	tests := []struct {
		kind        AssetKind
		contentType string
		extension   string
	}{
		{AssetAudio, "audio/mpeg", ".mp3"},
		{AssetVideo, "video/mp4", ".mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.ContentType(); got != tt.contentType {
				t.Errorf("ContentType() = %q, want %q", got, tt.contentType)
			}
			if got := tt.kind.Extension(); got != tt.extension {
				t.Errorf("Extension() = %q, want %q", got, tt.extension)
			}
		})
	}
}
