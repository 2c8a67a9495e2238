package services

import (
	"net/url"
	"regexp"
	"soldown/config"
	"strings"
)

// YouTube URL grammar: watch/embed/v/shorts paths or youtu.be, 11-char ID
var youtubeURLPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|v/|shorts/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// IsYouTubeURL reports whether the URL matches the YouTube grammar the
// YouTube backend can resolve.
func IsYouTubeURL(raw string) bool {
	return youtubeURLPattern.MatchString(raw)
}

// IsSupportedURL decides whether a submitted string is a supported video URL.
// Unparsable input is rejected, not errored. Hostname matching is substring
// containment against the allow-list, not suffix matching.
func IsSupportedURL(raw string) bool {
	if IsYouTubeURL(raw) {
		return true
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return false
	}

	host := u.Hostname()
	for _, domain := range config.SupportedDomains {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}
