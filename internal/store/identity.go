package store

import (
	"fmt"
	"path"
	"strings"
)

// maxIdentityLen bounds identities so they fit any backend's key column.
const maxIdentityLen = 1024

// CleanIdentity validates identity and returns it in slash-separated,
// cleaned form: "a//b/../c" becomes "a/c". Identities may not be empty,
// contain NUL, or climb above their root with "..".
func CleanIdentity(identity string) (string, error) {
	if identity == "" || strings.ContainsRune(identity, 0) || len(identity) > maxIdentityLen {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, identity)
	}

	cleaned := path.Clean("/" + strings.ReplaceAll(identity, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, identity)
	}
	if rel := path.Clean(strings.ReplaceAll(identity, "\\", "/")); rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %q escapes the store root", ErrInvalidIdentity, identity)
	}

	return cleaned, nil
}
