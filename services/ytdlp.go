package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"soldown/config"
	"soldown/models"
	"soldown/utils"

	"github.com/jaevor/go-nanoid"
)

// Fallback selection expression when the client did not pin a format:
// best matching video+audio pair merged into mp4
const ytDlpDefaultFormat = "bestvideo+bestaudio[ext=mp4]/best[ext=mp4]/best"

// YtDlpBackend is the general extraction backend. It shells out to the
// yt-dlp binary and supports every platform in the allow-list and beyond.
type YtDlpBackend struct {
	newScratchID func() string
}

func NewYtDlpBackend() *YtDlpBackend {
	gen, err := nanoid.Standard(config.RequestIDLength)
	if err != nil {
		panic(err)
	}
	return &YtDlpBackend{newScratchID: gen}
}

func (b *YtDlpBackend) Name() string { return "ytdlp" }

// Analyze requests a single structured metadata dump and normalizes it
func (b *YtDlpBackend) Analyze(ctx context.Context, rawURL string) (*models.VideoInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, config.AnalyzeTimeout)
	defer cancel()

	args := []string{
		"-J",
		"--no-warnings",
		"--no-check-certificates",
		"--prefer-free-formats",
		rawURL,
	}

	cmd := exec.CommandContext(ctx, config.YtDlpPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ExtractionError{Err: ytDlpError(&stderr, err)}
	}

	var dump models.YtDlpDump
	if err := json.Unmarshal(stdout.Bytes(), &dump); err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf("invalid yt-dlp output: %w", err)}
	}

	title := dump.Title
	if title == "" {
		title = "Video"
	}
	platform := dump.Extractor
	if platform == "" {
		platform = "generic"
	}

	return &models.VideoInfo{
		Title:    title,
		Duration: int(dump.Duration),
		Platform: platform,
		Formats:  NormalizeYtDlpFormats(&dump),
	}, nil
}

// Resolve spawns yt-dlp writing the chosen rendition to stdout. The process
// runs inside a per-request scratch directory so merge temporaries never
// collide across requests; the directory is removed when the download closes.
func (b *YtDlpBackend) Resolve(ctx context.Context, req *models.DownloadRequest) (*Download, error) {
	args, filename, contentType := buildYtDlpDownloadArgs(req)

	scratch := filepath.Join(config.ScratchDir, b.newScratchID())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return nil, &DownloadError{Err: fmt.Errorf("scratch dir: %w", err)}
	}

	dlCtx, cancel := context.WithTimeout(context.Background(), config.DownloadTimeout)

	cmd := exec.CommandContext(dlCtx, config.YtDlpPath, args...)
	cmd.Dir = scratch

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		os.RemoveAll(scratch)
		return nil, &DownloadError{Err: err}
	}

	if err := cmd.Start(); err != nil {
		cancel()
		os.RemoveAll(scratch)
		return nil, &DownloadError{Err: fmt.Errorf("yt-dlp: %w", err)}
	}

	return &Download{
		Filename:    filename,
		ContentType: contentType,
		Body:        stdout,
		cancel:      cancel,
		cmd:         cmd,
		stderr:      stderr,
		cleanup:     func() { os.RemoveAll(scratch) },
	}, nil
}

// buildYtDlpDownloadArgs constructs the yt-dlp invocation for a download.
// Audio requests extract and re-encode to MP3 at best quality; video requests
// use the client-chosen format id, or the merged-mp4 fallback expression.
func buildYtDlpDownloadArgs(req *models.DownloadRequest) (args []string, filename, contentType string) {
	if req.IsAudioOnly() {
		args = []string{
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "0",
			"-o", "-",
			req.URL,
		}
		return args, "video.mp3", utils.ContentTypeFromExt("mp3")
	}

	selector := req.Itag
	if selector == "" {
		selector = ytDlpDefaultFormat
	}
	args = []string{
		"-f", selector,
		"--merge-output-format", "mp4",
		"--no-part",
		"--remux-video", "mp4",
		"-o", "-",
		req.URL,
	}
	return args, "video.mp4", utils.ContentTypeFromExt("mp4")
}

func ytDlpError(stderr *bytes.Buffer, err error) error {
	if line := lastStderrLine(stderr); line != "" {
		return fmt.Errorf("yt-dlp: %s", line)
	}
	return fmt.Errorf("yt-dlp: %w", err)
}
