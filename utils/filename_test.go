package utils

import (
	"soldown/config"
	"strings"
	"testing"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "myvideo", "myvideo"},
		{"spaces and punctuation", "Hello World! (Official)", "Hello_World___Official_"},
		{"unicode stripped", "日本語 title", "____title"},
		{"empty falls back", "", "video"},
		{"all symbols fall back to underscores", "!!!", "___"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.title); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitleTruncates(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := SanitizeTitle(long)
	if len(got) != config.MaxFilenameLength {
		t.Errorf("len = %d, want %d", len(got), config.MaxFilenameLength)
	}
}

func TestContentTypeFromExt(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"mp4", "video/mp4"},
		{"mp3", "audio/mpeg"},
		{"webm", "video/webm"},
		{"bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := ContentTypeFromExt(tt.ext); got != tt.want {
			t.Errorf("ContentTypeFromExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
