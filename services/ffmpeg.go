package services

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"soldown/config"
)

// startMP3Transcode spawns ffmpeg reading the source stream on stdin and
// re-encoding it to MP3 at the fixed bitrate on stdout. The returned reader
// is the transcoded stream; the command has been started but not waited on.
func startMP3Transcode(ctx context.Context, src io.Reader) (*exec.Cmd, io.ReadCloser, *bytes.Buffer, error) {
	args := []string{
		"-i", "pipe:0",
		"-vn",
		"-c:a", "libmp3lame",
		"-b:a", config.MP3Bitrate,
		"-f", "mp3",
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, config.FFmpegPath, args...)
	cmd.Stdin = src

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, nil, err
	}

	return cmd, stdout, stderr, nil
}
