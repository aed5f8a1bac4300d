package extractor

import (
	"context"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// progressPollInterval is how often the completion hook is invoked.
const progressPollInterval = 500 * time.Millisecond

// YTDLPExtractor implements Extractor on top of the yt-dlp binary via
// go-ytdlp.
type YTDLPExtractor struct{}

// NewYTDLPExtractor creates the production extractor.
func NewYTDLPExtractor() *YTDLPExtractor {
	return &YTDLPExtractor{}
}

// Install ensures the yt-dlp binary is available, downloading it if needed.
func Install(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	return err
}

// Extract runs yt-dlp for the URL. Extraction failures are returned as
// *ExtractionError carrying the extractor's own message; playlist-shaped
// responses are collapsed to their first non-nil entry.
func (e *YTDLPExtractor) Extract(ctx context.Context, url string, opts Options) (Media, error) {
	dl := ytdlp.New().
		Format(opts.Format).
		Output(opts.OutputTemplate).
		NoPlaylist().
		Quiet().
		NoWarnings()

	if opts.SocketTimeout > 0 {
		dl = dl.SocketTimeout(opts.SocketTimeout.Seconds())
	}
	if opts.Retries > 0 {
		dl = dl.Retries(strconv.Itoa(opts.Retries))
	}
	if opts.FragmentRetries > 0 {
		dl = dl.FragmentRetries(strconv.Itoa(opts.FragmentRetries))
	}
	if opts.UserAgent != "" {
		dl = dl.UserAgent(opts.UserAgent)
	}
	if opts.MaxFileSize > 0 {
		dl = dl.MaxFileSize(strconv.FormatInt(opts.MaxFileSize, 10))
	}
	if opts.MergeOutputFormat != "" {
		dl = dl.MergeOutputFormat(opts.MergeOutputFormat)
	}
	if opts.CookieFile != "" {
		dl = dl.Cookies(opts.CookieFile)
	}

	// The completion hook is the most reliable source of the final artifact
	// path, since postprocessing may change the container extension.
	var finishedPath string
	dl.ProgressFunc(progressPollInterval, func(update ytdlp.ProgressUpdate) {
		if update.Status != ytdlp.ProgressStatusFinished {
			return
		}
		if update.Info != nil && update.Info.Filename != nil && *update.Info.Filename != "" {
			finishedPath = *update.Info.Filename
		}
	})

	result, err := dl.Run(ctx, url)
	if err != nil {
		msg := err.Error()
		if result != nil && result.Stderr != "" {
			msg = result.Stderr
		}
		return Media{}, &ExtractionError{Message: msg}
	}

	media := Media{FilePath: finishedPath}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		// The download itself succeeded; metadata is best-effort.
		return media, nil
	}

	if info := firstEntry(infos); info != nil {
		if info.Title != nil {
			media.Title = *info.Title
		}
		if info.Duration != nil {
			media.Duration = *info.Duration
		}
		if media.FilePath == "" && info.Filename != nil {
			media.FilePath = *info.Filename
		}
	}

	return media, nil
}

// firstEntry selects the first usable item from the extractor's output,
// descending into playlist entries when present.
func firstEntry(infos []*ytdlp.ExtractedInfo) *ytdlp.ExtractedInfo {
	for _, info := range infos {
		if info == nil {
			continue
		}
		if len(info.Entries) > 0 {
			for _, entry := range info.Entries {
				if entry != nil {
					return entry
				}
			}
			continue
		}
		return info
	}
	return nil
}
