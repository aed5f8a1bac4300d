package domain

// Platform identifies a supported video platform.
type Platform string

const (
	PlatformYouTube   Platform = "YouTube"
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
	PlatformTwitter   Platform = "X/Twitter"
	PlatformUnknown   Platform = "Unknown"
)

// String returns the display name of the platform.
func (p Platform) String() string {
	return string(p)
}

// DownloadResult is the outcome of a single download attempt.
// Exactly one of (Success with FilePath) or (!Success with ErrorMessage)
// holds.
type DownloadResult struct {
	Success      bool    `json:"success"`
	FilePath     string  `json:"file_path,omitempty"`
	Title        string  `json:"title,omitempty"`
	Duration     float64 `json:"duration_seconds,omitempty"`
	ErrorMessage string  `json:"error,omitempty"`
	FromCache    bool    `json:"from_cache"`
}

// Failure builds a failed DownloadResult with the given user-facing message.
func Failure(message string) DownloadResult {
	return DownloadResult{Success: false, ErrorMessage: message}
}

// FailureKind categorizes a failed download attempt.
type FailureKind string

const (
	FailureUnsupportedURL   FailureKind = "unsupported_url"
	FailureUnavailable      FailureKind = "unavailable"
	FailurePrivate          FailureKind = "private"
	FailureAuthRequired     FailureKind = "auth_required"
	FailureSizeExceeded     FailureKind = "size_exceeded"
	FailureMergeToolMissing FailureKind = "merge_tool_missing"
	FailureFileNotProduced  FailureKind = "file_not_produced"
	FailureGeneric          FailureKind = "generic"
	FailureInternal         FailureKind = "internal"
)
