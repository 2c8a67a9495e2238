package services

import (
	"context"
	"fmt"
	"soldown/config"
	"soldown/models"
	"soldown/utils"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// Restriction messages shown on the serverless deployment
const (
	restrictedAnalyzeMsg  = "Non-YouTube videos require a VPS/dedicated server"
	restrictedDownloadMsg = "Non-YouTube videos are not supported on serverless platforms. " +
		"Please use YouTube URLs only, or deploy to a VPS/dedicated server for full support."
)

// YouTubeBackend is the constrained extraction backend. It talks to YouTube
// through a client library and never shells out, so it can run on serverless
// deployments. Only the YouTube URL grammar is supported.
type YouTubeBackend struct {
	client youtube.Client
}

func NewYouTubeBackend() *YouTubeBackend {
	return &YouTubeBackend{
		client: youtube.Client{HTTPClient: config.ExtractClient},
	}
}

func (b *YouTubeBackend) Name() string { return "youtube" }

// Analyze fetches metadata and keeps only formats carrying both video and
// audio in an mp4 container, the combination most likely to play anywhere.
func (b *YouTubeBackend) Analyze(ctx context.Context, rawURL string) (*models.VideoInfo, error) {
	if !IsYouTubeURL(rawURL) {
		return nil, &RestrictedEnvError{Message: restrictedAnalyzeMsg}
	}

	video, err := b.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	formats := make([]models.FormatOption, 0, len(video.Formats))
	for i := range video.Formats {
		f := &video.Formats[i]
		if !isCombinedMP4(f) {
			continue
		}
		formats = append(formats, mapYouTubeFormat(f))
	}

	return &models.VideoInfo{
		Title:    video.Title,
		Duration: int(video.Duration.Seconds()),
		Platform: "youtube",
		Formats:  formats,
	}, nil
}

// Resolve picks a concrete stream for the requested itag and prepares it for
// streaming, transcoding to MP3 through ffmpeg when audio was requested.
func (b *YouTubeBackend) Resolve(ctx context.Context, req *models.DownloadRequest) (*Download, error) {
	if !IsYouTubeURL(req.URL) {
		return nil, &RestrictedEnvError{Message: restrictedDownloadMsg}
	}

	video, err := b.client.GetVideoContext(ctx, req.URL)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	format := selectYouTubeFormat(video.Formats, req.Itag)
	if format == nil {
		return nil, &DownloadError{Err: fmt.Errorf("no downloadable formats found")}
	}

	// The stream outlives the handler, so its lifetime is bounded by its own
	// timeout rather than the request context.
	dlCtx, cancel := context.WithTimeout(context.Background(), config.DownloadTimeout)

	stream, _, err := b.client.GetStreamContext(dlCtx, video, format)
	if err != nil {
		cancel()
		return nil, &DownloadError{Err: err}
	}

	base := utils.SanitizeTitle(video.Title)

	if req.IsAudioOnly() {
		cmd, body, stderr, err := startMP3Transcode(dlCtx, stream)
		if err != nil {
			stream.Close()
			cancel()
			return nil, &DownloadError{Err: fmt.Errorf("ffmpeg: %w", err)}
		}
		return &Download{
			Filename:    base + ".mp3",
			ContentType: utils.ContentTypeFromExt("mp3"),
			Body:        body,
			cancel:      cancel,
			cmd:         cmd,
			stderr:      stderr,
			cleanup:     func() { stream.Close() },
		}, nil
	}

	return &Download{
		Filename:    base + ".mp4",
		ContentType: utils.ContentTypeFromExt("mp4"),
		Body:        stream,
		cancel:      cancel,
	}, nil
}

// selectYouTubeFormat resolves the requested itag against the available
// formats, falling back to any combined audio+video format, then to the
// first format at all.
func selectYouTubeFormat(list youtube.FormatList, itag string) *youtube.Format {
	if n, err := strconv.Atoi(itag); err == nil {
		if matches := list.Itag(n); len(matches) > 0 {
			return &matches[0]
		}
	}

	for i := range list {
		if list[i].AudioChannels > 0 && list[i].QualityLabel != "" {
			return &list[i]
		}
	}

	if len(list) > 0 {
		return &list[0]
	}
	return nil
}

// isCombinedMP4 reports whether a format carries video and audio in a single
// mp4 stream
func isCombinedMP4(f *youtube.Format) bool {
	return strings.HasPrefix(f.MimeType, "video/mp4") &&
		f.QualityLabel != "" &&
		f.AudioChannels > 0
}

func mapYouTubeFormat(f *youtube.Format) models.FormatOption {
	quality := f.QualityLabel
	if quality == "" && f.Height > 0 {
		quality = fmt.Sprintf("%dp", f.Height)
	}

	size := "N/A"
	if f.ContentLength > 0 {
		size = FormatApproxSize(float64(f.ContentLength))
	}

	return models.FormatOption{
		Format:  "MP4",
		Quality: quality,
		Codec:   codecLabel(f.MimeType),
		Size:    size,
		Itag:    strconv.Itoa(f.ItagNo),
		Type:    models.FormatTypeVideo,
	}
}
