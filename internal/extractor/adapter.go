package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MelDxKviel/reels-downloader-bot/internal/config"
	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
)

// defaultTitle is used when the extractor reports no title.
const defaultTitle = "Video"

// videoExtensions are the container extensions tried when resolving the
// artifact produced for an output template.
var videoExtensions = []string{"mp4", "webm", "mkv", "mov", "avi"}

// ffmpegFormat prefers separate high-quality streams merged into mp4.
// singleStreamFormat avoids combinations that would require a merge tool.
const (
	ffmpegFormat       = "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=1080]+bestaudio/best[height<=1080]/best"
	singleStreamFormat = "best[ext=mp4]/best"
)

// Adapter invokes the extraction capability with a derived option set and
// normalizes its outputs and failures into DownloadResult values.
type Adapter struct {
	extractor       Extractor
	downloadDir     string
	maxFileSize     int64
	timeout         time.Duration
	socketTimeout   time.Duration
	retries         int
	fragmentRetries int
	userAgent       string
	cookieFile      string
	hasFFmpeg       bool
	logger          *slog.Logger
}

// NewAdapter creates an extraction adapter. Merge-tool availability is
// probed once at construction.
func NewAdapter(
	ext Extractor,
	storageCfg config.StorageConfig,
	downloadCfg config.DownloadConfig,
	logger *slog.Logger,
) *Adapter {
	return &Adapter{
		extractor:       ext,
		downloadDir:     storageCfg.DownloadDir,
		maxFileSize:     storageCfg.MaxFileSize,
		timeout:         downloadCfg.Timeout,
		socketTimeout:   downloadCfg.SocketTimeout,
		retries:         downloadCfg.Retries,
		fragmentRetries: downloadCfg.FragmentRetries,
		userAgent:       downloadCfg.UserAgent,
		cookieFile:      downloadCfg.CookiesFile,
		hasFFmpeg:       ffmpegAvailable(),
		logger:          logger,
	}
}

// ffmpegAvailable reports whether the media-merging tool is on PATH.
func ffmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// Fetch performs one download attempt for the URL and returns a normalized
// result. Never returns FromCache=true and never panics past this layer for
// extraction failures; the orchestrator guards against anything residual.
func (a *Adapter) Fetch(ctx context.Context, url string, p domain.Platform) domain.DownloadResult {
	requestID := uuid.New().String()[:8]
	template := filepath.Join(a.downloadDir, requestID+".%(ext)s")
	opts := a.buildOptions(template, p)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	media, err := a.extract(ctx, url, opts)
	if err != nil {
		kind, msg := Classify(err)
		a.logger.Warn("extraction failed",
			"url", url,
			"platform", p,
			"kind", kind,
			"error", err,
		)
		return domain.Failure(msg)
	}

	path, ok := a.resolveFile(media.FilePath, template, requestID)
	if !ok {
		a.logger.Warn("extraction reported success but no artifact was found",
			"url", url,
			"template", template,
		)
		return domain.Failure("The video file was not produced")
	}

	if result, oversized := a.enforceSizeLimit(path); oversized {
		return result
	}

	title := media.Title
	if title == "" {
		title = defaultTitle
	}

	return domain.DownloadResult{
		Success:  true,
		FilePath: path,
		Title:    title,
		Duration: media.Duration,
	}
}

// buildOptions derives the option set for one request. Credentials are
// attached only for YouTube, and only when the configured file passes the
// structural format sniff.
func (a *Adapter) buildOptions(template string, p domain.Platform) Options {
	opts := Options{
		OutputTemplate:  template,
		MaxFileSize:     a.maxFileSize,
		SocketTimeout:   a.socketTimeout,
		Retries:         a.retries,
		FragmentRetries: a.fragmentRetries,
		UserAgent:       a.userAgent,
	}

	if a.hasFFmpeg {
		opts.Format = ffmpegFormat
		opts.MergeOutputFormat = "mp4"
	} else {
		opts.Format = singleStreamFormat
	}

	if p == domain.PlatformYouTube {
		opts.CookieFile = a.youtubeCookieFile()
	}

	return opts
}

// youtubeCookieFile returns the configured cookie file if it exists and
// resembles the Netscape format. An invalid-looking file is ignored with a
// warning rather than failing the download.
func (a *Adapter) youtubeCookieFile() string {
	if a.cookieFile == "" {
		return ""
	}
	if _, err := os.Stat(a.cookieFile); err != nil {
		return ""
	}
	if !LooksLikeNetscapeCookieFile(a.cookieFile) {
		a.logger.Warn("cookie file does not look like Netscape format, ignoring",
			"path", a.cookieFile,
		)
		return ""
	}
	return a.cookieFile
}

// extract runs at most two attempts: the second only when the extractor
// rejected the credential file on the first, with credentials omitted.
func (a *Adapter) extract(ctx context.Context, url string, opts Options) (Media, error) {
	media, err := a.extractor.Extract(ctx, url, opts)
	if err == nil {
		return media, nil
	}

	if opts.CookieFile != "" && IsCookieFileRejection(err) {
		a.logger.Warn("extractor rejected the cookie file, retrying without cookies",
			"path", opts.CookieFile,
		)
		opts.CookieFile = ""
		return a.extractor.Extract(ctx, url, opts)
	}

	return Media{}, err
}

// resolveFile locates the produced artifact: the reported path first, then
// the output template with known container extensions, then a directory scan
// for files named after the request ID.
func (a *Adapter) resolveFile(reported, template, requestID string) (string, bool) {
	if reported != "" {
		if _, err := os.Stat(reported); err == nil {
			return reported, true
		}
	}

	base := strings.TrimSuffix(template, ".%(ext)s")
	for _, ext := range videoExtensions {
		candidate := base + "." + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	entries, err := os.ReadDir(a.downloadDir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		if !strings.HasPrefix(name, requestID) {
			continue
		}
		for _, known := range videoExtensions {
			if ext == known {
				return filepath.Join(a.downloadDir, name), true
			}
		}
	}

	return "", false
}

// enforceSizeLimit deletes oversized artifacts the extractor failed to cap
// and reports a size-policy failure instead of returning the file.
func (a *Adapter) enforceSizeLimit(path string) (domain.DownloadResult, bool) {
	if a.maxFileSize <= 0 {
		return domain.DownloadResult{}, false
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() <= a.maxFileSize {
		return domain.DownloadResult{}, false
	}

	if err := os.Remove(path); err != nil {
		a.logger.Warn("failed to remove oversized artifact", "path", path, "error", err)
	}

	return domain.Failure(fmt.Sprintf(
		"Downloaded file is too large (%dMB). Maximum: %dMB",
		info.Size()/(1024*1024),
		a.maxFileSize/(1024*1024),
	)), true
}
