package util

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

// HashUserKey returns a filesystem-safe identifier for a user ID.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ScopedKey builds an object-store key under namespace/<hashed user>/. Empty or
// dot segments are dropped so callers cannot climb out of the user's directory.
func ScopedKey(namespace, userID string, parts ...string) string {
	segments := []string{namespace, HashUserKey(userID)}
	for _, p := range parts {
		for _, seg := range strings.Split(p, "/") {
			if seg == "" || seg == "." || seg == ".." {
				continue
			}
			segments = append(segments, seg)
		}
	}
	return path.Join(segments...)
}
