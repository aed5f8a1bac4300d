// Package cache provides the content-addressed download cache: stable key
// derivation from URLs and a disk-backed index of downloaded artifacts.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// keyLength is the number of hex characters kept from the digest.
const keyLength = 16

// trackingParams are query keys that never affect which resource a URL
// points to. Matched as whole keys; utm_* matches by prefix.
var trackingParams = map[string]bool{
	"si":      true,
	"feature": true,
	"ref":     true,
}

// Normalize strips known tracking query parameters so that cosmetically
// different URLs for the same resource collide on one cache key.
// URLs that cannot be parsed are returned unchanged.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	changed := false
	for key := range q {
		if trackingParams[key] || strings.HasPrefix(key, "utm_") {
			q.Del(key)
			changed = true
		}
	}
	if !changed {
		return rawURL
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// Key derives the cache key for a URL: a truncated hex digest of the
// normalized URL. Deterministic across processes; not security-sensitive.
func Key(rawURL string) string {
	sum := md5.Sum([]byte(Normalize(rawURL)))
	return hex.EncodeToString(sum[:])[:keyLength]
}
