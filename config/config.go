package config

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload" // Auto-load .env file
	"golang.org/x/net/proxy"
)

const (
	// Server
	DefaultPort = 3000
	PortRetries = 10

	// External tool timeouts
	AnalyzeTimeout  = 60 * time.Second
	DownloadTimeout = 30 * time.Minute

	// Audio extraction
	MP3Bitrate = "128k"

	// Filename
	MaxFilenameLength = 50

	// Scratch space for yt-dlp work directories
	ScratchDir      = "./scratch"
	CleanupInterval = "0 * * * *" // Every hour
	MaxScratchAge   = 1 * time.Hour

	// Request ID
	RequestIDLength = 21

	BufferSize = 64 * 1024 // 64KB - optimal for io.CopyBuffer
)

// External binaries (paths overridable via env)
var (
	FFmpegPath = getEnv("FFMPEG_PATH", "ffmpeg")
	YtDlpPath  = getEnv("YTDLP_PATH", "yt-dlp")
)

// SupportedDomains is the hostname allow-list for non-YouTube platforms.
// Matching is substring containment, so a crafted hostname such as
// tiktok.com.evil.example also passes. Kept for wire compatibility.
var SupportedDomains = []string{
	"youtube.com", "youtu.be",
	"vimeo.com",
	"twitter.com", "x.com",
	"instagram.com",
	"tiktok.com",
	"fb.com", "facebook.com",
}

// Stream rate limit (bytes per second)
// 0 = unlimited, otherwise limits how fast subprocess output is drained.
// This creates backpressure so a transcode cannot run far ahead of the client.
var StreamRateLimit = getEnvInt("STREAM_RATE_LIMIT", 0)

// BufferPool for reusing stream copy buffers (reduces GC pressure)
var BufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, BufferSize)
		return &buf
	},
}

// ExtractClient is the shared outbound HTTP client used by the YouTube
// backend. Routed through a SOCKS5 proxy when SOCKS5_PROXY is set.
var ExtractClient *http.Client

var extractTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

func init() {
	if addr := os.Getenv("SOCKS5_PROXY"); addr != "" {
		extractTransport.Dial = func(network, taddr string) (net.Conn, error) {
			dialer, err := proxy.SOCKS5("tcp", addr, nil, proxy.Direct)
			if err != nil {
				return nil, err
			}
			return dialer.Dial(network, taddr)
		}
	}
	ExtractClient = &http.Client{
		Transport: extractTransport,
	}
}

// Port returns the configured listen port.
func Port() int {
	return getEnvInt("PORT", DefaultPort)
}

// IsServerless reports whether the process runs in a restricted environment
// that cannot shell out to external binaries.
func IsServerless() bool {
	return os.Getenv("VERCEL") != "" || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
