package services

import (
	"fmt"
	"math"
	"soldown/models"
	"strconv"
	"strings"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatApproxSize renders a byte count as a human-readable label using
// base-1024 units, rounded to at most two decimal places.
func FormatApproxSize(bytes float64) string {
	if bytes == 0 {
		return "0 B"
	}
	if bytes < 0 {
		return "N/A"
	}

	i := int(math.Floor(math.Log(bytes) / math.Log(1024)))
	if i < 0 {
		i = 0
	}
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	value := math.Round(bytes/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}

// NormalizeYtDlpFormats maps a raw yt-dlp dump to the response schema.
// Formats without a video codec are dropped, then ordered by how likely they
// are to play out of the box: mp4 with an embedded audio track first, mp4
// without audio (merged at download time) second, every other container last.
// Intra-group order is preserved.
func NormalizeYtDlpFormats(dump *models.YtDlpDump) []models.FormatOption {
	var withVideo []models.YtDlpFormat
	for _, f := range dump.Formats {
		if hasCodec(f.VCodec) {
			withVideo = append(withVideo, f)
		}
	}

	var sorted []models.YtDlpFormat
	for _, f := range withVideo {
		if strings.EqualFold(f.Ext, "mp4") && hasCodec(f.ACodec) {
			sorted = append(sorted, f)
		}
	}
	for _, f := range withVideo {
		if strings.EqualFold(f.Ext, "mp4") && !hasCodec(f.ACodec) {
			sorted = append(sorted, f)
		}
	}
	for _, f := range withVideo {
		if !strings.EqualFold(f.Ext, "mp4") {
			sorted = append(sorted, f)
		}
	}

	formats := make([]models.FormatOption, 0, len(sorted))
	for _, f := range sorted {
		formats = append(formats, models.FormatOption{
			Format:  containerLabel(f.Ext),
			Quality: qualityLabel(&f),
			Codec:   ytDlpCodecLabel(&f),
			Size:    ytDlpSizeLabel(&f, dump.Duration),
			Itag:    f.FormatID,
			Type:    models.FormatTypeVideo,
		})
	}
	return formats
}

// WithAudioOptions appends one synthesized MP3 companion per video format,
// after all video entries, preserving relative order. The MP3 size is unknown
// until transcoding completes, so it is always "N/A".
func WithAudioOptions(formats []models.FormatOption) []models.FormatOption {
	out := make([]models.FormatOption, 0, len(formats)*2)
	out = append(out, formats...)

	for _, f := range formats {
		quality := f.Quality
		if quality == "" {
			quality = "Audio"
		}
		itag := f.Itag
		if itag == "" {
			itag = "audio"
		}
		out = append(out, models.FormatOption{
			Format:  "MP3",
			Quality: quality,
			Codec:   "AAC → MP3",
			Size:    "N/A",
			Itag:    itag,
			Type:    models.FormatTypeAudio,
		})
	}
	return out
}

func hasCodec(codec string) bool {
	return codec != "" && codec != "none"
}

func containerLabel(ext string) string {
	if ext == "" {
		ext = "mp4"
	}
	return strings.ToUpper(ext)
}

func qualityLabel(f *models.YtDlpFormat) string {
	if f.FormatNote != "" {
		return f.FormatNote
	}
	if f.Height > 0 {
		return fmt.Sprintf("%dp", f.Height)
	}
	return "video"
}

func ytDlpCodecLabel(f *models.YtDlpFormat) string {
	label := f.VCodec
	if hasCodec(f.ACodec) {
		label = strings.TrimSpace(label + " + " + f.ACodec)
	}
	if label == "" {
		return "unknown"
	}
	return label
}

// ytDlpSizeLabel picks the best size estimate available: an exact byte count,
// then yt-dlp's own approximation, then bitrate x duration.
func ytDlpSizeLabel(f *models.YtDlpFormat, duration float64) string {
	switch {
	case f.Filesize > 0:
		return FormatApproxSize(f.Filesize)
	case f.FilesizeApprox > 0:
		return FormatApproxSize(f.FilesizeApprox)
	case duration > 0 && f.TBR > 0:
		return FormatApproxSize(f.TBR * 1000 / 8 * duration)
	default:
		return "N/A"
	}
}

// codecLabel extracts a codec description from a MIME type.
// `video/mp4; codecs="avc1.42001E, mp4a.40.2"` -> "avc1.42001E + mp4a.40.2"
func codecLabel(mimeType string) string {
	if idx := strings.Index(mimeType, "codecs="); idx != -1 {
		codecs := strings.Trim(mimeType[idx+7:], "\"' ")
		parts := strings.Split(codecs, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return strings.Join(parts, " + ")
	}

	// Fallback: "video/mp4" -> "mp4"
	if parts := strings.Split(mimeType, "/"); len(parts) == 2 {
		return strings.Split(parts[1], ";")[0]
	}
	return "unknown"
}
