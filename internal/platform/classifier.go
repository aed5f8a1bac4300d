// Package platform recognizes supported video platform URLs.
package platform

import (
	"strings"

	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
)

type patternSet struct {
	platform domain.Platform
	patterns []string
}

// downloadPatterns maps each platform to the URL substrings that make it
// downloadable. Matching is case-insensitive over the raw URL; first match
// wins.
var downloadPatterns = []patternSet{
	{domain.PlatformYouTube, []string{"youtube.com", "youtu.be"}},
	{domain.PlatformInstagram, []string{"instagram.com/reel", "instagram.com/p"}},
	{domain.PlatformTikTok, []string{"tiktok.com", "vm.tiktok.com"}},
	{domain.PlatformTwitter, []string{"twitter.com", "x.com"}},
}

// hostPatterns identifies a platform by host alone, naming URLs that are
// recognizable but not downloadable (e.g. Instagram profile pages).
var hostPatterns = []patternSet{
	{domain.PlatformYouTube, []string{"youtube.com", "youtu.be"}},
	{domain.PlatformInstagram, []string{"instagram.com"}},
	{domain.PlatformTikTok, []string{"tiktok.com", "vm.tiktok.com"}},
	{domain.PlatformTwitter, []string{"twitter.com", "x.com"}},
}

// IsSupported reports whether the URL belongs to a supported platform.
// Malformed input never errors; it is simply unsupported.
func IsSupported(url string) bool {
	return match(downloadPatterns, url) != domain.PlatformUnknown
}

// Name returns the platform a URL belongs to, or PlatformUnknown.
func Name(url string) domain.Platform {
	return match(hostPatterns, url)
}

func match(sets []patternSet, url string) domain.Platform {
	lower := strings.ToLower(url)
	for _, p := range sets {
		for _, pattern := range p.patterns {
			if strings.Contains(lower, pattern) {
				return p.platform
			}
		}
	}
	return domain.PlatformUnknown
}
