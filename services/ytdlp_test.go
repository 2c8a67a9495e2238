package services

import (
	"bytes"
	"errors"
	"slices"
	"soldown/models"
	"testing"
)

func TestBuildYtDlpDownloadArgsAudio(t *testing.T) {
	req := &models.DownloadRequest{URL: "https://vimeo.com/123", FormatType: "mp3"}

	args, filename, contentType := buildYtDlpDownloadArgs(req)

	if filename != "video.mp3" {
		t.Errorf("filename = %q, want video.mp3", filename)
	}
	if contentType != "audio/mpeg" {
		t.Errorf("contentType = %q, want audio/mpeg", contentType)
	}

	want := []string{"-f", "bestaudio/best", "-x", "--audio-format", "mp3", "--audio-quality", "0", "-o", "-", req.URL}
	if !slices.Equal(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestBuildYtDlpDownloadArgsVideoWithItag(t *testing.T) {
	req := &models.DownloadRequest{URL: "https://vimeo.com/123", Itag: "137"}

	args, filename, contentType := buildYtDlpDownloadArgs(req)

	if filename != "video.mp4" || contentType != "video/mp4" {
		t.Errorf("got %q/%q, want video.mp4/video/mp4", filename, contentType)
	}

	want := []string{"-f", "137", "--merge-output-format", "mp4", "--no-part", "--remux-video", "mp4", "-o", "-", req.URL}
	if !slices.Equal(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestBuildYtDlpDownloadArgsVideoFallback(t *testing.T) {
	req := &models.DownloadRequest{URL: "https://vimeo.com/123"}

	args, _, _ := buildYtDlpDownloadArgs(req)

	if args[0] != "-f" || args[1] != ytDlpDefaultFormat {
		t.Errorf("selector = %q, want %q", args[1], ytDlpDefaultFormat)
	}
}

func TestYtDlpError(t *testing.T) {
	stderr := bytes.NewBufferString("WARNING: something\nERROR: Unsupported URL: https://example.com\n")
	err := ytDlpError(stderr, errors.New("exit status 1"))
	if err.Error() != "yt-dlp: ERROR: Unsupported URL: https://example.com" {
		t.Errorf("unexpected message: %v", err)
	}

	err = ytDlpError(&bytes.Buffer{}, errors.New("exit status 1"))
	if err.Error() != "yt-dlp: exit status 1" {
		t.Errorf("unexpected fallback message: %v", err)
	}
}

func TestExtractionErrorMessage(t *testing.T) {
	err := &ExtractionError{Err: errors.New("yt-dlp: ERROR: boom")}
	if err.Error() != "Failed to get video info: yt-dlp: ERROR: boom" {
		t.Errorf("unexpected message: %v", err)
	}

	var target *ExtractionError
	if !errors.As(error(err), &target) {
		t.Error("errors.As failed for ExtractionError")
	}
}
