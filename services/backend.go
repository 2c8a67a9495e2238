package services

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"soldown/config"
	"soldown/models"
	"strings"
	"sync"
	"time"
)

// Backend is an extraction mechanism that turns a URL into format metadata
// and resolves download requests into byte streams. One backend is selected
// at startup and injected; request handling never consults the environment.
type Backend interface {
	Name() string
	Analyze(ctx context.Context, url string) (*models.VideoInfo, error)
	Resolve(ctx context.Context, req *models.DownloadRequest) (*Download, error)
}

// SelectBackend picks the extraction backend for this process
func SelectBackend() Backend {
	if config.IsServerless() {
		return NewYouTubeBackend()
	}
	return NewYtDlpBackend()
}

// Download is a resolved rendition ready to be streamed to a client.
// Body yields the file bytes; Close must be called on every exit path so an
// owning subprocess cannot outlive the request.
type Download struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser

	once    sync.Once
	cancel  context.CancelFunc
	cmd     *exec.Cmd
	stderr  *bytes.Buffer
	cleanup func()
	err     error
}

// Close tears the stream down on every exit path: the body is closed, the
// subprocess reaped (killed if it does not exit promptly) and any scratch
// space removed. Safe to call more than once.
func (d *Download) Close() error {
	d.once.Do(func() {
		if d.Body != nil {
			d.Body.Close()
		}
		if d.cmd != nil {
			d.err = d.reap()
		}
		if d.cancel != nil {
			d.cancel()
		}
		if d.cleanup != nil {
			d.cleanup()
		}
	})
	return d.err
}

// reap waits briefly for the subprocess to exit on its own (closing Body
// gives it a broken pipe), then cancels its context to force a kill.
func (d *Download) reap() error {
	done := make(chan error, 1)
	go func() { done <- d.cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		if d.cancel != nil {
			d.cancel()
		}
		return <-done
	}
}

// Stderr returns the last line the subprocess wrote to stderr, for logging
func (d *Download) Stderr() string {
	return lastStderrLine(d.stderr)
}

func lastStderrLine(buf *bytes.Buffer) string {
	if buf == nil {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
