package extractor

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
)

// maxErrorLength bounds the raw extractor text shown to users.
const maxErrorLength = 200

// Classify maps an extraction failure to a user-facing category and message.
// Raw extractor output is never passed through untruncated, and errors that
// did not originate from the extraction capability are reported as internal.
func Classify(err error) (domain.FailureKind, string) {
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		return domain.FailureInternal, "Unexpected error: " + truncate(err.Error())
	}

	msg := extErr.Message
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "ffmpeg is not installed"):
		return domain.FailureMergeToolMissing,
			"FFmpeg is required to merge audio and video for this download. Install FFmpeg and make sure it is on PATH."
	case strings.Contains(lower, "video unavailable"):
		return domain.FailureUnavailable, "Video is unavailable"
	case strings.Contains(lower, "private video"):
		return domain.FailurePrivate, "This video is private"
	case strings.Contains(lower, "sign in") || strings.Contains(lower, "login"):
		return domain.FailureAuthRequired, "This video requires authentication"
	case strings.Contains(lower, "max-filesize"):
		return domain.FailureSizeExceeded, "Video exceeds the maximum allowed file size"
	default:
		return domain.FailureGeneric, "Download failed: " + truncate(msg)
	}
}

// IsCookieFileRejection reports whether the extractor refused the credential
// file at call time, which is the one failure retried without credentials.
func IsCookieFileRejection(err error) bool {
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		return false
	}
	return strings.Contains(strings.ToLower(extErr.Message), "netscape format cookies file")
}

// truncate cuts s to at most maxErrorLength bytes, backing up to a rune
// boundary so the result stays valid UTF-8.
func truncate(s string) string {
	if len(s) <= maxErrorLength {
		return s
	}
	cut := maxErrorLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
