package services

import (
	"soldown/models"
	"testing"

	"github.com/kkdai/youtube/v2"
)

func testFormatList() youtube.FormatList {
	return youtube.FormatList{
		{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p"},
		{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, QualityLabel: "360p", AudioChannels: 2, ContentLength: 1536},
		{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2},
	}
}

func TestSelectYouTubeFormat(t *testing.T) {
	list := testFormatList()

	tests := []struct {
		name string
		itag string
		want int // ItagNo, 0 for nil
	}{
		{"exact match", "137", 137},
		{"unknown itag falls back to combined", "999", 18},
		{"non-numeric itag falls back to combined", "audio", 18},
		{"empty itag falls back to combined", "", 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectYouTubeFormat(list, tt.itag)
			if got == nil {
				t.Fatalf("selectYouTubeFormat(%q) = nil", tt.itag)
			}
			if got.ItagNo != tt.want {
				t.Errorf("selectYouTubeFormat(%q).ItagNo = %d, want %d", tt.itag, got.ItagNo, tt.want)
			}
		})
	}

	// No combined format at all: first entry wins
	videoOnly := youtube.FormatList{
		{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p"},
	}
	if got := selectYouTubeFormat(videoOnly, ""); got == nil || got.ItagNo != 137 {
		t.Errorf("expected first format fallback, got %+v", got)
	}

	if got := selectYouTubeFormat(youtube.FormatList{}, "18"); got != nil {
		t.Errorf("expected nil for empty list, got %+v", got)
	}
}

func TestIsCombinedMP4(t *testing.T) {
	list := testFormatList()

	if isCombinedMP4(&list[0]) {
		t.Error("video-only mp4 should not count as combined")
	}
	if !isCombinedMP4(&list[1]) {
		t.Error("mp4 with audio channels should count as combined")
	}
	if isCombinedMP4(&list[2]) {
		t.Error("audio-only stream should not count as combined")
	}
}

func TestMapYouTubeFormat(t *testing.T) {
	list := testFormatList()

	got := mapYouTubeFormat(&list[1])
	want := models.FormatOption{
		Format:  "MP4",
		Quality: "360p",
		Codec:   "avc1.42001E + mp4a.40.2",
		Size:    "1.5 KB",
		Itag:    "18",
		Type:    models.FormatTypeVideo,
	}
	if got != want {
		t.Errorf("mapYouTubeFormat = %+v, want %+v", got, want)
	}

	// Unknown content length surfaces as N/A
	got = mapYouTubeFormat(&list[0])
	if got.Size != "N/A" {
		t.Errorf("Size = %q, want N/A", got.Size)
	}
}
