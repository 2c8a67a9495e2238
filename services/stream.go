package services

import (
	"bufio"
	"context"
	"io"
	"soldown/config"

	"golang.org/x/time/rate"
)

// CopyStream drains r into w chunk by chunk, flushing after every write so
// bytes reach the client immediately. A write error means the client is gone
// and the caller must tear the source down. Honors the configured stream
// rate limit.
func CopyStream(w *bufio.Writer, r io.Reader) error {
	var limiter *rate.Limiter
	if config.StreamRateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.StreamRateLimit), config.BufferSize)
	}

	bufp := config.BufferPool.Get().(*[]byte)
	defer config.BufferPool.Put(bufp)
	buf := *bufp

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if limiter != nil {
				if err := limiter.WaitN(context.Background(), n); err != nil {
					return err
				}
			}
			if _, err := w.Write(buf[:n]); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
