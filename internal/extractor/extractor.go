// Package extractor wraps the external video extraction capability and
// normalizes its heterogeneous outputs into DownloadResult values.
package extractor

import (
	"context"
	"time"
)

// Options is the immutable option set for a single extraction attempt.
type Options struct {
	// Format is the yt-dlp format selection expression.
	Format string

	// MergeOutputFormat is the container for merged streams; empty when no
	// merge tool is available.
	MergeOutputFormat string

	// OutputTemplate is the output path template with a %(ext)s placeholder.
	OutputTemplate string

	// MaxFileSize caps the artifact size in bytes; 0 disables the cap.
	MaxFileSize int64

	// SocketTimeout bounds each network operation.
	SocketTimeout time.Duration

	// Retries and FragmentRetries are passed through to the extractor's own
	// transient-failure handling.
	Retries         int
	FragmentRetries int

	// UserAgent overrides the extractor's default user agent.
	UserAgent string

	// CookieFile is an optional Netscape-format credential file, attached
	// only for platforms that need it.
	CookieFile string
}

// Media is the normalized output of one extraction.
type Media struct {
	// FilePath is the final artifact path reported by the extractor. May be
	// empty; the adapter falls back to template and directory resolution.
	FilePath string
	Title    string
	Duration float64
}

// Extractor is the external extraction capability.
type Extractor interface {
	Extract(ctx context.Context, url string, opts Options) (Media, error)
}

// ExtractionError is a failure reported by the extraction capability itself,
// as opposed to an unexpected internal fault.
type ExtractionError struct {
	Message string
}

func (e *ExtractionError) Error() string {
	return e.Message
}
