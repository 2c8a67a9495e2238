package models

// Format option kinds
const (
	FormatTypeVideo = "video"
	FormatTypeAudio = "audio"
)

// AnalyzeRequest represents the incoming analyze request
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeResponse is returned for a successful analyze call
type AnalyzeResponse struct {
	Success  bool           `json:"success"`
	Title    string         `json:"title"`
	Duration int            `json:"duration"`
	Formats  []FormatOption `json:"formats"`
	Platform string         `json:"platform"`
}

// FormatOption is one downloadable rendition offered to the client.
// Itag values are scoped to the backend that produced them and are not
// portable across backends.
type FormatOption struct {
	Format  string `json:"format"`  // container label: "MP4", "MP3", ...
	Quality string `json:"quality"` // "1080p", "720p", ...
	Codec   string `json:"codec"`
	Size    string `json:"size"` // approximate, "N/A" when unknown
	Itag    string `json:"itag"`
	Type    string `json:"type"` // "video" or "audio"
}

// VideoInfo is the normalized result of a metadata fetch
type VideoInfo struct {
	Title    string
	Duration int // seconds
	Platform string
	Formats  []FormatOption
}

// DownloadRequest represents the incoming download request
type DownloadRequest struct {
	URL        string `json:"url"`
	Format     string `json:"format"`
	Quality    string `json:"quality"`
	Itag       string `json:"itag"`
	FormatType string `json:"formatType"` // "mp3" selects the audio-only path
}

// IsAudioOnly reports whether the client asked for audio extraction
func (r *DownloadRequest) IsAudioOnly() bool {
	return r.FormatType == "mp3"
}

// ErrorResponse for API errors
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse for health check
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// YtDlpDump mirrors the parts of a `yt-dlp -J` single JSON dump we consume
type YtDlpDump struct {
	Title     string        `json:"title"`
	Duration  float64       `json:"duration"`
	Extractor string        `json:"extractor"`
	Formats   []YtDlpFormat `json:"formats"`
}

// YtDlpFormat is one raw format entry from the dump
type YtDlpFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	FormatNote     string  `json:"format_note"`
	Height         int     `json:"height"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	Filesize       float64 `json:"filesize"`
	FilesizeApprox float64 `json:"filesize_approx"`
	TBR            float64 `json:"tbr"` // total bitrate, kbit/s
}
