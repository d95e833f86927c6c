package assets

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const fetchTimeout = 60 * time.Second

// modelExts are the extensions the parser understands; the saved filename
// must keep one so format dispatch works.
var modelExts = map[string]bool{".glb": true, ".gltf": true, ".obj": true}

// Fetcher downloads model files into a local directory. Filenames are
// derived from the URL (basename plus a short URL hash) so distinct URLs
// never collide and repeat fetches of one URL overwrite in place.
type Fetcher struct {
	client *http.Client
	dir    string
}

// NewFetcher returns a fetcher saving into dir, created on first use.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		dir:    dir,
	}
}

// Fetch downloads url and returns the path of the saved file. Non-200
// responses and I/O failures are errors; the partial file is removed.
func (f *Fetcher) Fetch(url string) (string, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch: HTTP %d", resp.StatusCode)
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	saved := filepath.Join(f.dir, localName(url))
	out, err := os.Create(saved)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(saved)
		return "", fmt.Errorf("fetch: %w", err)
	}
	return saved, nil
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// localName builds a collision-free filename for url: sanitized basename,
// a short hash of the full URL, and the model extension from the URL path.
func localName(url string) string {
	path := url
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !modelExts[ext] {
		ext = ".bin"
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = safeNameRe.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		base = "model"
	}
	if len(base) > 64 {
		base = base[:64]
	}
	sum := sha1.Sum([]byte(url))
	return base + "-" + hex.EncodeToString(sum[:4]) + ext
}
