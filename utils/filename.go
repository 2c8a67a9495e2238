package utils

import (
	"regexp"
	"soldown/config"
)

// Anything outside ASCII letters and digits
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeTitle turns a video title into a safe attachment filename base:
// non-alphanumeric characters become underscores and the result is capped at
// MaxFilenameLength bytes.
func SanitizeTitle(title string) string {
	name := nonAlphanumeric.ReplaceAllString(title, "_")
	if len(name) > config.MaxFilenameLength {
		name = name[:config.MaxFilenameLength]
	}
	if name == "" {
		name = "video"
	}
	return name
}

// ContentTypeFromExt returns the content type for a file extension
func ContentTypeFromExt(ext string) string {
	switch ext {
	case "mp4":
		return "video/mp4"
	case "webm":
		return "video/webm"
	case "mkv":
		return "video/x-matroska"
	case "mp3":
		return "audio/mpeg"
	case "m4a":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
