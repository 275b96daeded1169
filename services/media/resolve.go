package media

import (
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned for traversal attempts and genuinely missing
// files alike, so a response never reveals whether a path exists
// outside the sandbox.
var ErrNotFound = errors.New("media file not found")

// Resolve joins a requested relative path onto the sandbox root,
// normalizes it and requires the result to stay inside the root. It is
// a pure path computation plus a stat; no request object involved.
func Resolve(root, requested string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", ErrNotFound
	}

	requested = strings.TrimLeft(requested, "/")
	full := filepath.Clean(filepath.Join(absRoot, filepath.FromSlash(requested)))

	if full != absRoot && !strings.HasPrefix(full, absRoot+string(filepath.Separator)) {
		return "", ErrNotFound
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", ErrNotFound
	}

	return full, nil
}

// ContentType infers a MIME type from the file extension, falling back
// to a generic binary type.
func ContentType(path string) string {
	if ctype := mime.TypeByExtension(filepath.Ext(path)); ctype != "" {
		return ctype
	}
	return "application/octet-stream"
}
