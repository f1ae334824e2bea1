package route

import (
	"errors"
	"strings"
)

// Path canonicalization errors.
var (
	ErrBackslashInPath = errors.New("path contains backslash")
	ErrNullByteInPath  = errors.New("path contains null byte")
)

// Normalize returns the canonical form of a path:
//   - always prefixed with "/"
//   - duplicate slashes collapsed
//   - trailing slash removed (except for root)
//
// Normalize is idempotent: Normalize(Normalize(p)) == Normalize(p).
// It does not validate the path; use Canonicalize for untrusted input.
func Normalize(path string) string {
	if path == "" {
		return "/"
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}

	return path
}

// Canonicalize normalizes an untrusted logical path for navigation.
// The input may carry a query string, which is split off and preserved
// but not canonicalized.
//
// Returns an error for paths containing a backslash or NUL byte.
// changed reports whether normalization altered the path portion.
func Canonicalize(input string) (path, query string, changed bool, err error) {
	if input == "" {
		return "/", "", true, nil
	}

	path, query, _ = strings.Cut(input, "?")

	// SECURITY: Reject backslash and NUL.
	if strings.Contains(path, "\\") {
		return "", "", false, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") {
		return "", "", false, ErrNullByteInPath
	}

	original := path
	path = Normalize(path)
	return path, query, path != original, nil
}
