package deduplication

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns the dedup identity for an article: a SHA-256 hex digest
// of the normalized title and source name. Case and surrounding whitespace do
// not affect the result.
//
// Identity is deliberately title+source only, ignoring the URL: two distinct
// articles from the same outlet with identical titles will collide. That is a
// known precision limitation of this scheme.
func Fingerprint(title, source string) string {
	combined := normalize(title) + ":" + normalize(source)
	h := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(h[:])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
