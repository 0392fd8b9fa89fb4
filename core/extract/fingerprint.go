package extract

import (
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/zeebo/xxh3"
)

// Files are streamed through the hash in fixed-size chunks so memory use
// stays bounded regardless of file size.
const fingerprintChunkSize = 4096

// FingerprintFile computes the xxh128 digest of a file's content.
func FingerprintFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	defer f.Close()

	h := xxh3.New()
	buf := make([]byte, fingerprintChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", path, err)
		}
	}

	sum := h.Sum128().Bytes()
	return hex.EncodeToString(sum[:]), nil
}

// FingerprintDirectory computes one xxh128 digest for a directory tree: each
// file is fingerprinted individually and the per-file "<digest> <path>"
// lines are folded through the hash in lexicographic path order. Sorting is
// what makes the digest independent of filesystem traversal order. A file
// that cannot be read is skipped with a warning.
func FingerprintDirectory(path string) (string, error) {
	var files []string
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	sort.Strings(files)

	h := xxh3.New()
	for _, file := range files {
		digest, err := FingerprintFile(file)
		if err != nil {
			slog.Warn("skipping unreadable file in directory fingerprint", "path", file, "error", err)
			continue
		}
		h.Write([]byte(digest + " " + file))
	}

	sum := h.Sum128().Bytes()
	return hex.EncodeToString(sum[:]), nil
}

// FingerprintReference resolves a URI to a local path and fingerprints the
// file or directory it names. A URI whose target does not exist yields
// ErrUnresolvedReference.
func FingerprintReference(uri string) (string, error) {
	path := referencePath(uri)

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedReference, uri)
	}
	if info.IsDir() {
		return FingerprintDirectory(path)
	}
	return FingerprintFile(path)
}

// referencePath extracts the filesystem path from a URI, decoding
// percent-escapes. Plain paths pass through unchanged.
func referencePath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Path == "" {
		if unescaped, uerr := url.PathUnescape(uri); uerr == nil {
			return unescaped
		}
		return uri
	}
	return u.Path
}
